package engine

import (
	"context"
	"encoding/json"

	"balance/game"
)

// Engine is the RL interface exposed by a running game. Implementations are
// not safe for concurrent use: the game runs a single session.
type Engine interface {
	// Reset starts a new scenario from the given configuration and returns the initial observation
	Reset(ctx context.Context, config string) (*game.State, error)
	// Step advances the simulation one turn, applying the commands first
	Step(ctx context.Context, commands ...game.Command) (*game.State, error)
	// Evaluate runs a script inside the simulation and returns its JSON result
	Evaluate(ctx context.Context, code string) (json.RawMessage, error)
}
