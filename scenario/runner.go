package scenario

import (
	"context"
	"errors"
	"fmt"

	"balance/engine"
	"balance/game"
	"balance/policy"
	"balance/searcher"

	"github.com/rs/zerolog/log"
)

var ErrNoWinner = errors.New("scenario ended without a winner")

// Runner plays one scenario per call against a single engine session.
type Runner struct {
	Engine   engine.Engine
	Config   Config
	Modifier Modifier
	// Policy drives the player's units; nil leaves them to their default
	// behaviour (deathball)
	Policy   policy.Policy
	MaxSteps int // Engine steps before the run counts as a timeout, 0 for no cap
	Stride   int // Engine steps per policy decision
}

// Run resets the scenario, applies the modifier scaled by value and steps
// until the scripted player is no longer active or the step cap is exceeded.
func (r *Runner) Run(ctx context.Context, value float64) (game.Outcome, error) {
	state, err := r.Engine.Reset(ctx, r.Config.Text)
	if err != nil {
		return 0, fmt.Errorf("failed to reset %s: %w", r.Config.Name, err)
	}
	if r.Modifier != nil {
		if err := r.Modifier(ctx, r.Engine, value); err != nil {
			return 0, err
		}
	}
	chat := game.Chat(fmt.Sprintf("Testing with repeat time scaled by %v", value))
	if _, err := r.Engine.Step(ctx, chat); err != nil {
		return 0, fmt.Errorf("failed to announce run: %w", err)
	}
	if r.Policy != nil {
		r.Policy.Reset()
	}

	steps := 0
	for state.IsActive() {
		if r.Policy == nil {
			state, err = r.Engine.Step(ctx)
			steps++
		} else {
			state, err = r.step(ctx, state)
			steps += r.stride()
		}
		if err != nil {
			return 0, fmt.Errorf("failed to step %s: %w", r.Config.Name, err)
		}
		if r.MaxSteps > 0 && steps > r.MaxSteps {
			log.Warn().Msgf("stopping scenario %s: exceeded episode duration limit (%d steps)", r.Config.Name, r.MaxSteps)
			return game.Timeout, nil
		}
	}

	winner, ok := state.Winner()
	if !ok {
		return 0, fmt.Errorf("%w: %s after %d steps", ErrNoWinner, r.Config.Name, steps)
	}
	outcome := game.OutcomeOf(winner)
	log.Debug().Msgf("scenario %s at %v: %s won after %d steps", r.Config.Name, value, outcome, steps)
	return outcome, nil
}

// step sends the policy's commands, then lets the simulation run for the
// rest of the stride.
func (r *Runner) step(ctx context.Context, state *game.State) (*game.State, error) {
	state, err := r.Engine.Step(ctx, r.Policy.Act(state)...)
	if err != nil {
		return nil, err
	}
	for i := 1; i < r.stride(); i++ {
		state, err = r.Engine.Step(ctx)
		if err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (r *Runner) stride() int {
	if r.Stride < 1 {
		return 1
	}
	return r.Stride
}

// Probe adapts the runner to a boundary search.
func (r *Runner) Probe() searcher.Probe {
	return r.Run
}
