package policy

import (
	"math"
	"testing"

	"balance/game"

	"github.com/stretchr/testify/require"
)

// duel places two player units around the origin and one enemy dist away on the x axis.
func duel(dist float64) *game.State {
	return game.NewState([]string{game.Active, game.Active, game.Active},
		game.Unit{ID: 1, Owner: game.Player, Pos: [2]float64{-1, 0}},
		game.Unit{ID: 2, Owner: game.Player, Pos: [2]float64{1, 0}},
		game.Unit{ID: 10, Owner: game.Opponent, Pos: [2]float64{dist, 0}},
	)
}

func TestNearestEnemyOffset(t *testing.T) {
	t.Run("closest enemy relative to the player centre", func(t *testing.T) {
		state := game.NewState([]string{game.Active, game.Active, game.Active},
			game.Unit{ID: 1, Owner: game.Player, Pos: [2]float64{10, 10}},
			game.Unit{ID: 5, Owner: game.Opponent, Pos: [2]float64{40, 10}},
			game.Unit{ID: 6, Owner: game.Opponent, Pos: [2]float64{10, 20}},
		)

		offset, ok := NearestEnemyOffset(state)

		require.True(t, ok)
		require.Equal(t, game.Point{X: 0, Z: 10}, offset)
	})

	t.Run("no enemies", func(t *testing.T) {
		state := game.NewState([]string{game.Active, game.Won, game.Defeated},
			game.Unit{ID: 1, Owner: game.Player})

		_, ok := NearestEnemyOffset(state)

		require.False(t, ok)
	})
}

func TestAttackClosest(t *testing.T) {
	state := game.NewState([]string{game.Active, game.Active, game.Active},
		game.Unit{ID: 1, Owner: game.Player, Pos: [2]float64{0, 0}},
		game.Unit{ID: 7, Owner: game.Opponent, Pos: [2]float64{50, 0}},
		game.Unit{ID: 8, Owner: game.Opponent, Pos: [2]float64{0, -20}},
	)

	cmd, ok := AttackClosest(state)

	require.True(t, ok)
	require.Equal(t, "attack", cmd["type"])
	require.Equal(t, 8, cmd["target"])
	require.Equal(t, []int{1}, cmd["entities"])
}

func TestKite(t *testing.T) {
	t.Run("attacks while enemies are far", func(t *testing.T) {
		mode, commands := Kite(Attacking, duel(45))

		require.Equal(t, Attacking, mode)
		require.Len(t, commands, 1)
		require.Equal(t, "attack", commands[0]["type"])
	})

	t.Run("starts retreating inside the retreat distance", func(t *testing.T) {
		mode, commands := Kite(Attacking, duel(20))

		require.Equal(t, Retreating, mode)
		require.Len(t, commands, 1)
		require.Equal(t, "walk", commands[0]["type"])
	})

	t.Run("keeps retreating until the resume distance", func(t *testing.T) {
		mode, commands := Kite(Retreating, duel(45))

		require.Equal(t, Retreating, mode)
		require.Equal(t, "walk", commands[0]["type"])
	})

	t.Run("resumes attacking past the resume distance", func(t *testing.T) {
		mode, commands := Kite(Retreating, duel(75))

		require.Equal(t, Attacking, mode)
		require.Equal(t, "attack", commands[0]["type"])
	})

	t.Run("no commands without enemies", func(t *testing.T) {
		state := game.NewState([]string{game.Active, game.Won, game.Defeated},
			game.Unit{ID: 1, Owner: game.Player})

		mode, commands := Kite(Retreating, state)

		require.Equal(t, Retreating, mode, "Mode should not change")
		require.Empty(t, commands)
	})

	t.Run("custom distances", func(t *testing.T) {
		options := KiteOptions{RetreatDistance: 10, ResumeDistance: 15, RetreatOffset: 5}

		mode, _ := options.Kite(Attacking, duel(20))

		require.Equal(t, Attacking, mode)
	})
}

func TestRetreat(t *testing.T) {
	state := duel(20)

	cmd, ok := DefaultKiteOptions().Retreat(state, game.Point{X: 20, Z: 0})

	require.True(t, ok)
	// Enemy along +x: the retreat heads to -x, veering towards +z
	require.InDelta(t, -50*math.Sqrt2/2, cmd["x"], 1e-9)
	require.InDelta(t, 50*math.Sqrt2/2, cmd["z"], 1e-9)
	require.Equal(t, []int{1, 2}, cmd["entities"])
}

func TestKiter(t *testing.T) {
	k := NewKiter(DefaultKiteOptions())

	k.Act(duel(20))
	require.Equal(t, Retreating, k.Mode())

	k.Act(duel(45))
	require.Equal(t, Retreating, k.Mode(), "Hysteresis should hold the retreat")

	k.Reset()
	require.Equal(t, Attacking, k.Mode())

	var p Policy = k
	commands := p.Act(duel(45))
	require.Equal(t, "attack", commands[0]["type"])
}
