package policy

import (
	"math"

	"balance/game"
)

type Mode int

const (
	Attacking Mode = iota
	Retreating
)

func (m Mode) String() string {
	if m == Retreating {
		return "retreating"
	}
	return "attacking"
}

// KiteOptions are the distances driving the kiting state machine.
type KiteOptions struct {
	RetreatDistance float64 `yaml:"retreat_distance"` // Start retreating when the nearest enemy is closer
	ResumeDistance  float64 `yaml:"resume_distance"`  // Keep retreating until the nearest enemy is this far
	RetreatOffset   float64 `yaml:"retreat_offset"`   // How far each retreat order walks
}

func DefaultKiteOptions() KiteOptions {
	return KiteOptions{
		RetreatDistance: 30,
		ResumeDistance:  60,
		RetreatOffset:   50,
	}
}

// Kite runs one transition of the kiting state machine with default options.
func Kite(mode Mode, state *game.State) (Mode, []game.Command) {
	return DefaultKiteOptions().Kite(mode, state)
}

// Kite returns the next mode and the commands for this step. A retreat
// continues until the nearest enemy is past ResumeDistance; otherwise the
// units retreat only once an enemy is within RetreatDistance.
func (o KiteOptions) Kite(mode Mode, state *game.State) (Mode, []game.Command) {
	offset, ok := NearestEnemyOffset(state)
	if !ok {
		return mode, nil
	}
	dist := offset.Len()

	next := Attacking
	if (mode == Retreating && dist < o.ResumeDistance) || dist < o.RetreatDistance {
		next = Retreating
	}

	var cmd game.Command
	if next == Retreating {
		cmd, ok = o.Retreat(state, offset)
	} else {
		cmd, ok = AttackClosest(state)
	}
	if !ok {
		return next, nil
	}
	return next, []game.Command{cmd}
}

// Retreat walks the player's units RetreatOffset away from the enemy at the
// given offset, veering a quarter turn to the side.
func (o KiteOptions) Retreat(state *game.State, enemyOffset game.Point) (game.Command, bool) {
	units := state.Units(game.Player)
	center, ok := game.Center(units)
	if !ok {
		return nil, false
	}
	angle := math.Atan2(enemyOffset.X, enemyOffset.Z) + math.Pi/4
	rel := game.Point{X: o.RetreatOffset * math.Sin(angle), Z: o.RetreatOffset * math.Cos(angle)}
	target := center.Sub(rel)
	return game.Walk(units, target.X, target.Z), true
}

// Kiter is a Policy holding the kiting mode across the steps of one run.
type Kiter struct {
	options KiteOptions
	mode    Mode
}

func NewKiter(options KiteOptions) *Kiter {
	return &Kiter{options: options}
}

func (k *Kiter) Reset() {
	k.mode = Attacking
}

func (k *Kiter) Act(state *game.State) []game.Command {
	var commands []game.Command
	k.mode, commands = k.options.Kite(k.mode, state)
	return commands
}

func (k *Kiter) Mode() Mode {
	return k.mode
}
