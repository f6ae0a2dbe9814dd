package rl

// Discrete is a space of N actions numbered 0..N-1.
type Discrete struct {
	N int
}

func (d Discrete) Contains(action int) bool {
	return action >= 0 && action < d.N
}

// Box is a space of float vectors with every element in [Low, High].
type Box struct {
	Low   float64
	High  float64
	Shape []int
}

func (b Box) Size() int {
	size := 1
	for _, dim := range b.Shape {
		size *= dim
	}
	return size
}

func (b Box) Contains(obs []float64) bool {
	if len(obs) != b.Size() {
		return false
	}
	for _, v := range obs {
		if v < b.Low || v > b.High {
			return false
		}
	}
	return true
}
