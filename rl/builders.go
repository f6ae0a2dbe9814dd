package rl

import (
	"math"

	"balance/game"
	"balance/policy"
)

// ActionBuilder turns an action index from the learner into engine commands.
type ActionBuilder interface {
	Space() Discrete
	Commands(action int, state *game.State) []game.Command
}

// StateBuilder turns an observation into the learner's input vector.
type StateBuilder interface {
	Space() Box
	Observe(state *game.State) []float64
}

// RewardBuilder scores a transition. Reset is called with the first
// observation of every episode.
type RewardBuilder interface {
	Reset(state *game.State)
	Reward(prev, state *game.State) float64
}

// AttackMove lets the learner walk the player's units in one of four
// directions or attack the closest enemy.
type AttackMove struct {
	Distance float64 // How far each move order walks
}

const attackAction = 4

func NewAttackMove() AttackMove {
	return AttackMove{Distance: 15}
}

func (a AttackMove) Space() Discrete {
	return Discrete{N: 5}
}

func (a AttackMove) Commands(action int, state *game.State) []game.Command {
	var cmd game.Command
	var ok bool
	if action == attackAction {
		cmd, ok = policy.AttackClosest(state)
	} else {
		cmd, ok = a.move(state, 2*math.Pi*float64(action)/4)
	}
	if !ok {
		return nil
	}
	return []game.Command{cmd}
}

func (a AttackMove) move(state *game.State, angle float64) (game.Command, bool) {
	units := state.Units(game.Player)
	center, ok := game.Center(units)
	if !ok {
		return nil, false
	}
	target := center.Add(game.Point{X: a.Distance * math.Cos(angle), Z: a.Distance * math.Sin(angle)})
	return game.Walk(units, target.X, target.Z), true
}

// EnemyDisplacement observes the offset between the two armies' centres,
// normalized by MaxDistance.
type EnemyDisplacement struct {
	MaxDistance float64
}

func NewEnemyDisplacement() EnemyDisplacement {
	return EnemyDisplacement{MaxDistance: 80}
}

func (e EnemyDisplacement) Space() Box {
	return Box{Low: -1, High: 1, Shape: []int{2}}
}

func (e EnemyDisplacement) Observe(state *game.State) []float64 {
	player, ok := game.Center(state.Units(game.Player))
	if !ok {
		return []float64{1, 1}
	}
	enemy, ok := game.Center(state.Units(game.Opponent))
	if !ok {
		return []float64{1, 1}
	}
	d := enemy.Sub(player).Scale(1 / e.MaxDistance)
	return []float64{clamp(d.X), clamp(d.Z)}
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
