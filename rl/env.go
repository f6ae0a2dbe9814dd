package rl

import (
	"context"
	"errors"
	"fmt"

	"balance/engine"
	"balance/game"
)

var ErrNotReset = errors.New("environment must be reset before stepping")

type EnvOption func(e *Env)

// WithStepsPerAction lets the simulation run for n steps per action. The
// action's commands are sent with the first of them.
func WithStepsPerAction(n int) EnvOption {
	return func(e *Env) {
		if n > 0 {
			e.stepsPerAction = n
		}
	}
}

// Env exposes a scenario as an episodic environment: the learner picks an
// action index, the ActionBuilder turns it into commands, and the
// StateBuilder and RewardBuilder score the resulting observation.
type Env struct {
	engine         engine.Engine
	config         string
	actions        ActionBuilder
	states         StateBuilder
	reward         RewardBuilder
	stepsPerAction int
	state          *game.State
}

func NewEnv(e engine.Engine, config string, actions ActionBuilder, states StateBuilder, reward RewardBuilder, options ...EnvOption) *Env {
	env := &Env{
		engine:         e,
		config:         config,
		actions:        actions,
		states:         states,
		reward:         reward,
		stepsPerAction: 1,
	}
	for _, option := range options {
		option(env)
	}
	return env
}

// StepsPerAction returns the number of engine steps each Step call takes.
func (e *Env) StepsPerAction() int {
	return e.stepsPerAction
}

func (e *Env) ActionSpace() Discrete {
	return e.actions.Space()
}

func (e *Env) ObservationSpace() Box {
	return e.states.Space()
}

// Reset starts a new episode and returns its first observation.
func (e *Env) Reset(ctx context.Context) ([]float64, error) {
	state, err := e.engine.Reset(ctx, e.config)
	if err != nil {
		return nil, fmt.Errorf("failed to reset environment: %w", err)
	}
	e.state = state
	e.reward.Reset(state)
	return e.states.Observe(state), nil
}

// Step applies the action and returns the next observation, the reward for
// the transition and whether the episode is over.
func (e *Env) Step(ctx context.Context, action int) ([]float64, float64, bool, error) {
	if e.state == nil {
		return nil, 0, false, ErrNotReset
	}
	if !e.actions.Space().Contains(action) {
		return nil, 0, false, fmt.Errorf("action %d outside of %+v", action, e.actions.Space())
	}

	prev := e.state
	state, err := e.engine.Step(ctx, e.actions.Commands(action, prev)...)
	for i := 1; err == nil && i < e.stepsPerAction; i++ {
		state, err = e.engine.Step(ctx)
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to step environment: %w", err)
	}

	e.state = state
	reward := e.reward.Reward(prev, state)
	return e.states.Observe(state), reward, !state.IsActive(), nil
}

// State returns the latest raw observation.
func (e *Env) State() *game.State {
	return e.state
}
