package rl

import "balance/game"

// DamageDifference rewards damage dealt to the enemy and penalizes damage
// received, weighted by Caution. Both are measured as the fraction of the
// side's starting health lost so far.
type DamageDifference struct {
	Caution     float64
	playerCount int
	enemyCount  int
}

func NewDamageDifference(caution float64) *DamageDifference {
	return &DamageDifference{Caution: caution}
}

func (d *DamageDifference) Reset(state *game.State) {
	d.playerCount = len(state.Units(game.Player))
	d.enemyCount = len(state.Units(game.Opponent))
}

func (d *DamageDifference) Reward(prev, state *game.State) float64 {
	dealt := healthLost(state.Units(game.Opponent), d.enemyCount)
	received := healthLost(state.Units(game.Player), d.playerCount)
	return dealt - d.Caution*received
}

// healthLost returns the fraction of count full-health units' health that is
// missing from units. Dead units count as fully lost.
func healthLost(units []game.Unit, count int) float64 {
	if count == 0 {
		return 0
	}
	remaining := 0.0
	for _, u := range units {
		remaining += u.Health(true)
	}
	return 1 - remaining/float64(count)
}

// WinLose gives +1 when the player wins, -1 when it loses and 0 otherwise.
type WinLose struct{}

func (WinLose) Reset(state *game.State) {}

func (WinLose) Reward(prev, state *game.State) float64 {
	switch state.PlayerState(game.Player) {
	case game.Won:
		return 1
	case game.Defeated:
		return -1
	default:
		return 0
	}
}

// Sum adds up weighted rewards. Missing weights default to 1.
type Sum struct {
	builders []RewardBuilder
	weights  []float64
}

func NewSum(builders []RewardBuilder, weights ...float64) *Sum {
	return &Sum{builders: builders, weights: weights}
}

func (s *Sum) Reset(state *game.State) {
	for _, b := range s.builders {
		b.Reset(state)
	}
}

func (s *Sum) Reward(prev, state *game.State) float64 {
	total := 0.0
	for i, b := range s.builders {
		weight := 1.0
		if i < len(s.weights) {
			weight = s.weights[i]
		}
		total += weight * b.Reward(prev, state)
	}
	return total
}
