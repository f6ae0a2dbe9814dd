package rl

import "golang.org/x/exp/rand"

// Agent picks actions from observations.
type Agent interface {
	Act(obs []float64) int
}

// RandomAgent samples actions uniformly. It is the baseline any trained
// policy should beat.
type RandomAgent struct {
	space Discrete
	rng   *rand.Rand
}

func NewRandomAgent(space Discrete, seed uint64) *RandomAgent {
	if space.N <= 0 {
		panic("random agent needs a non-empty action space")
	}
	return &RandomAgent{
		space: space,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (a *RandomAgent) Act(obs []float64) int {
	return a.rng.Intn(a.space.N)
}
