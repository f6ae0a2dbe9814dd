package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"balance/game"
)

// Replay is an in-memory Engine that plays back a fixed sequence of
// observations. It records everything it is sent, which makes it a stand-in
// for a running game in tests and dry runs.
type Replay struct {
	initial *game.State
	states  []*game.State
	next    int

	Configs  []string
	Commands [][]game.Command
	Scripts  []string
}

// NewReplay returns an engine whose Reset yields initial and whose steps
// yield states in order. Once exhausted, the last state is repeated.
func NewReplay(initial *game.State, states ...*game.State) *Replay {
	if initial == nil {
		panic("replay needs an initial state")
	}
	return &Replay{
		initial: initial,
		states:  states,
	}
}

func (e *Replay) Reset(ctx context.Context, config string) (*game.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	e.Configs = append(e.Configs, config)
	e.next = 0
	return e.initial, nil
}

func (e *Replay) Step(ctx context.Context, commands ...game.Command) (*game.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("step: %w", err)
	}
	e.Commands = append(e.Commands, commands)

	if len(e.states) == 0 {
		return e.initial, nil
	}
	i := e.next
	if i >= len(e.states) {
		i = len(e.states) - 1
	} else {
		e.next++
	}
	return e.states[i], nil
}

func (e *Replay) Evaluate(ctx context.Context, code string) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	e.Scripts = append(e.Scripts, code)
	return nil, nil
}

// Steps returns the number of steps taken since the engine was created.
func (e *Replay) Steps() int {
	return len(e.Commands)
}
