package rl

import (
	"context"
	"testing"

	"balance/engine"
	"balance/game"

	"github.com/stretchr/testify/require"
)

var active = []string{game.Active, game.Active, game.Active}

func battle(players []string, playerHP, enemyHP float64) *game.State {
	return game.NewState(players,
		game.Unit{ID: 1, Owner: game.Player, Pos: [2]float64{0, 0}, Hitpoints: playerHP, MaxHitpoints: 100},
		game.Unit{ID: 2, Owner: game.Player, Pos: [2]float64{10, 0}, Hitpoints: playerHP, MaxHitpoints: 100},
		game.Unit{ID: 3, Owner: game.Opponent, Pos: [2]float64{45, 20}, Hitpoints: enemyHP, MaxHitpoints: 100},
	)
}

func TestSpaces(t *testing.T) {
	d := Discrete{N: 5}
	require.True(t, d.Contains(0))
	require.True(t, d.Contains(4))
	require.False(t, d.Contains(5))
	require.False(t, d.Contains(-1))

	b := Box{Low: -1, High: 1, Shape: []int{2}}
	require.Equal(t, 2, b.Size())
	require.True(t, b.Contains([]float64{-1, 0.5}))
	require.False(t, b.Contains([]float64{1.5, 0}))
	require.False(t, b.Contains([]float64{0}))
}

func TestAttackMove(t *testing.T) {
	a := NewAttackMove()
	state := battle(active, 100, 100)

	t.Run("moves in four directions", func(t *testing.T) {
		expected := []game.Point{{X: 20, Z: 0}, {X: 5, Z: 15}, {X: -10, Z: 0}, {X: 5, Z: -15}}
		for action, want := range expected {
			cmds := a.Commands(action, state)
			require.Len(t, cmds, 1)
			require.Equal(t, "walk", cmds[0]["type"])
			require.InDelta(t, want.X, cmds[0]["x"], 1e-9, "action %d", action)
			require.InDelta(t, want.Z, cmds[0]["z"], 1e-9, "action %d", action)
		}
	})

	t.Run("attacks the closest enemy", func(t *testing.T) {
		cmds := a.Commands(4, state)
		require.Equal(t, "attack", cmds[0]["type"])
		require.Equal(t, 3, cmds[0]["target"])
	})

	t.Run("no commands without units", func(t *testing.T) {
		require.Empty(t, a.Commands(0, game.NewState(active)))
		require.Empty(t, a.Commands(4, game.NewState(active, game.Unit{ID: 1, Owner: game.Player})))
	})
}

func TestEnemyDisplacement(t *testing.T) {
	s := NewEnemyDisplacement()

	t.Run("normalized offset between centres", func(t *testing.T) {
		obs := s.Observe(battle(active, 100, 100))
		require.InDeltaSlice(t, []float64{40.0 / 80, 20.0 / 80}, obs, 1e-9)
		require.True(t, s.Space().Contains(obs))
	})

	t.Run("clamped to the box", func(t *testing.T) {
		state := game.NewState(active,
			game.Unit{ID: 1, Owner: game.Player, Pos: [2]float64{0, 0}},
			game.Unit{ID: 2, Owner: game.Opponent, Pos: [2]float64{-200, 100}},
		)
		require.Equal(t, []float64{-1, 1}, s.Observe(state))
	})

	t.Run("missing side", func(t *testing.T) {
		require.Equal(t, []float64{1, 1}, s.Observe(game.NewState(active)))
	})
}

func TestRewards(t *testing.T) {
	start := battle(active, 100, 100)

	t.Run("damage difference", func(t *testing.T) {
		d := NewDamageDifference(4)
		d.Reset(start)

		require.Zero(t, d.Reward(start, start))
		// Enemy lost half its health, player units a tenth each
		require.InDelta(t, 0.5-4*0.1, d.Reward(start, battle(active, 90, 50)), 1e-9)

		dead := game.NewState(active,
			game.Unit{ID: 1, Owner: game.Player, Hitpoints: 100, MaxHitpoints: 100},
			game.Unit{ID: 2, Owner: game.Player, Hitpoints: 100, MaxHitpoints: 100},
		)
		require.InDelta(t, 1.0, d.Reward(start, dead), 1e-9, "Dead enemies count as fully damaged")
	})

	t.Run("win lose", func(t *testing.T) {
		w := WinLose{}
		require.Equal(t, 1.0, w.Reward(start, battle([]string{game.Active, game.Won, game.Defeated}, 1, 0)))
		require.Equal(t, -1.0, w.Reward(start, battle([]string{game.Active, game.Defeated, game.Won}, 0, 1)))
		require.Zero(t, w.Reward(start, start))
	})

	t.Run("weighted sum", func(t *testing.T) {
		s := NewSum([]RewardBuilder{NewDamageDifference(4), WinLose{}}, 1, 5)
		s.Reset(start)

		won := battle([]string{game.Active, game.Won, game.Defeated}, 100, 50)
		require.InDelta(t, 0.5+5, s.Reward(start, won), 1e-9)
	})

	t.Run("missing weights default to one", func(t *testing.T) {
		s := NewSum([]RewardBuilder{WinLose{}, WinLose{}})
		won := battle([]string{game.Active, game.Won, game.Defeated}, 100, 50)
		require.Equal(t, 2.0, s.Reward(start, won))
	})
}

func TestEnv(t *testing.T) {
	newEnv := func(states ...*game.State) (*Env, *engine.Replay) {
		e := engine.NewReplay(battle(active, 100, 100), states...)
		env := NewEnv(e, "{}", NewAttackMove(), NewEnemyDisplacement(), NewSum([]RewardBuilder{NewDamageDifference(4), WinLose{}}, 1, 5))
		return env, e
	}

	t.Run("step before reset", func(t *testing.T) {
		env, _ := newEnv()
		_, _, _, err := env.Step(context.Background(), 0)
		require.ErrorIs(t, err, ErrNotReset)
	})

	t.Run("episode", func(t *testing.T) {
		env, e := newEnv(battle(active, 100, 60), battle([]string{game.Active, game.Won, game.Defeated}, 100, 0))
		ctx := context.Background()

		obs, err := env.Reset(ctx)
		require.NoError(t, err)
		require.Len(t, obs, env.ObservationSpace().Size())

		_, reward, done, err := env.Step(ctx, 4)
		require.NoError(t, err)
		require.False(t, done)
		require.InDelta(t, 0.4, reward, 1e-9)
		require.Equal(t, "attack", e.Commands[0][0]["type"])

		_, reward, done, err = env.Step(ctx, 0)
		require.NoError(t, err)
		require.True(t, done)
		require.InDelta(t, 1.0+5, reward, 1e-9)
	})

	t.Run("invalid action", func(t *testing.T) {
		env, _ := newEnv()
		_, err := env.Reset(context.Background())
		require.NoError(t, err)

		_, _, _, err = env.Step(context.Background(), 7)
		require.ErrorContains(t, err, "action 7")
	})

	t.Run("several steps per action", func(t *testing.T) {
		e := engine.NewReplay(battle(active, 100, 100))
		env := NewEnv(e, "{}", NewAttackMove(), NewEnemyDisplacement(), WinLose{}, WithStepsPerAction(3))
		ctx := context.Background()
		_, err := env.Reset(ctx)
		require.NoError(t, err)

		_, _, _, err = env.Step(ctx, 1)

		require.NoError(t, err)
		require.Equal(t, 3, e.Steps())
		require.Len(t, e.Commands[0], 1)
		require.Empty(t, e.Commands[1])
	})
}

func TestRegistry(t *testing.T) {
	Register("test/CavVsInf", func(e engine.Engine) (*Env, error) {
		return NewEnv(e, "{}", NewAttackMove(), NewEnemyDisplacement(), WinLose{}), nil
	})

	env, err := Make("test/CavVsInf", engine.NewReplay(battle(active, 100, 100)))
	require.NoError(t, err)
	require.Equal(t, 5, env.ActionSpace().N)
	require.Contains(t, Registered(), "test/CavVsInf")

	_, err = Make("test/Unknown", nil)
	require.Error(t, err)

	require.Panics(t, func() { Register("test/Nil", nil) })
}

func TestRandomAgent(t *testing.T) {
	space := Discrete{N: 5}
	a := NewRandomAgent(space, 42)
	b := NewRandomAgent(space, 42)

	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		action := a.Act(nil)
		require.True(t, space.Contains(action))
		require.Equal(t, action, b.Act(nil), "Same seed should give the same actions")
		seen[action] = true
	}
	require.Len(t, seen, space.N)

	require.Panics(t, func() { NewRandomAgent(Discrete{}, 1) })
}
