package searcher

import (
	"context"
	"errors"

	"balance/game"
)

// Search bounds

const Start = 0.0001     // Smallest scale probed; the player must win here
const InitialUpper = 1.0 // First upper bound tried by bracket expansion

var (
	// ErrNotViable is returned when the player does not win at the smallest scale.
	ErrNotViable = errors.New("scenario not viable for search")
	// ErrNoBoundary is returned when bracket expansion runs out of doublings.
	ErrNoBoundary = errors.New("no outcome flip found")
)

// Probe runs the black-box scenario at the given scale and reports who won.
// Each call is expected to be expensive and stateful.
type Probe func(ctx context.Context, value float64) (game.Outcome, error)

// Boundary is the result of a completed search.
type Boundary struct {
	Value        float64      // Midpoint of the final interval
	Reference    game.Outcome // Outcome observed below the boundary
	Lower        float64
	Upper        float64
	BracketLower float64 // Interval after bracket expansion, before bisection
	BracketUpper float64
	Probes       int // Completed probes
}
