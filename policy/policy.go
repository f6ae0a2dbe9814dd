package policy

import (
	"balance/game"
	"balance/utils"
)

// Policy maps observations to commands for the scripted player. Policies may
// keep state between steps of one run; Reset clears it.
type Policy interface {
	Reset()
	Act(state *game.State) []game.Command
}

// NearestEnemyOffset returns the offset from the centre of the player's units
// to the closest enemy unit.
func NearestEnemyOffset(state *game.State) (game.Point, bool) {
	center, ok := game.Center(state.Units(game.Player))
	if !ok {
		return game.Point{}, false
	}
	enemies := state.Units(game.Opponent)
	i := utils.ArgMin(enemies, func(u game.Unit) float64 { return u.Position().Dist(center) })
	if i < 0 {
		return game.Point{}, false
	}
	return enemies[i].Position().Sub(center), true
}

// AttackClosest orders all of the player's units to attack the enemy closest
// to their centre.
func AttackClosest(state *game.State) (game.Command, bool) {
	units := state.Units(game.Player)
	center, ok := game.Center(units)
	if !ok {
		return nil, false
	}
	enemies := state.Units(game.Opponent)
	i := utils.ArgMin(enemies, func(u game.Unit) float64 { return u.Position().Dist(center) })
	if i < 0 {
		return nil, false
	}
	return game.Attack(units, enemies[i]), true
}
