package game

import "math"

// Point is a position on the map plane. The engine calls the second axis z.
type Point struct {
	X, Z float64
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Z: p.Z + q.Z}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Z: p.Z - q.Z}
}

func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Z: p.Z * f}
}

func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Z)
}

func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Len()
}

// Center returns the mean position of the units. It returns false for an empty group.
func Center(units []Unit) (Point, bool) {
	if len(units) == 0 {
		return Point{}, false
	}
	var sum Point
	for _, u := range units {
		sum = sum.Add(u.Position())
	}
	return sum.Scale(1 / float64(len(units))), true
}
