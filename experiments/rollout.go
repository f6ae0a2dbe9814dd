package experiments

import (
	"context"
	"fmt"
	"time"

	"balance/config"
	"balance/engine"
	"balance/experiments/metrics"
	"balance/game"
	"balance/rl"
	"balance/scenario"

	"github.com/rs/zerolog/log"
)

const CavVsInfDirections = "CavVsInfDirections"

// RegisterEnvs makes the rollout environments available to rl.Make.
func RegisterEnvs(cfg config.Rollout) {
	rl.Register(CavVsInfDirections, func(e engine.Engine) (*rl.Env, error) {
		sc, err := scenario.Load(cfg.Scenario)
		if err != nil {
			return nil, err
		}
		reward := rl.NewSum([]rl.RewardBuilder{rl.NewDamageDifference(cfg.Caution), rl.WinLose{}}, 1, cfg.WinWeight)
		return rl.NewEnv(e, sc.Text, rl.NewAttackMove(), rl.NewEnemyDisplacement(), reward, rl.WithStepsPerAction(cfg.StepsPerAction)), nil
	})
}

// RunRollout plays episodes of the configured environment with a random
// agent and stores one record per episode.
func RunRollout(ctx context.Context, cfg config.Config, e engine.Engine) ([]metrics.EpisodeRecord, error) {
	RegisterEnvs(cfg.Rollout)
	env, err := rl.Make(cfg.Rollout.Env, e)
	if err != nil {
		return nil, err
	}
	agent := rl.NewRandomAgent(env.ActionSpace(), cfg.Rollout.Seed)

	writer, err := metrics.NewWriter(cfg.OutputDir, "rollout")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(cfg.Rollout); err != nil {
		return nil, fmt.Errorf("failed to store setup: %w", err)
	}

	log.Info().Msgf("starting rollout of %s for %d episodes...", cfg.Rollout.Env, cfg.Rollout.Episodes)

	records := []metrics.EpisodeRecord{}
	for i := 0; i < cfg.Rollout.Episodes; i++ {
		episodeMetric, err := runEpisode(ctx, env, agent, cfg.Rollout.MaxSteps)
		if err != nil {
			return records, fmt.Errorf("episode %d: %w", i+1, err)
		}
		episodeMetric.Episode = i + 1
		records = append(records, metrics.EpisodeRecord{Env: cfg.Rollout.Env, EpisodeMetric: episodeMetric})

		log.Info().Msgf("episode %d of %d: %s after %d steps with return %.3f", i+1, cfg.Rollout.Episodes, episodeMetric.Outcome, episodeMetric.Steps, episodeMetric.Return)
	}

	if err := writer.WriteEpisodeRecords(records); err != nil {
		return records, fmt.Errorf("failed to write episode records: %w", err)
	}
	log.Info().Msg("stored episode records")

	return records, nil
}

func runEpisode(ctx context.Context, env *rl.Env, agent rl.Agent, maxSteps int) (metrics.EpisodeMetric, error) {
	start := time.Now()
	m := metrics.EpisodeMetric{}

	obs, err := env.Reset(ctx)
	if err != nil {
		return m, err
	}
	for done := false; !done; {
		var reward float64
		obs, reward, done, err = env.Step(ctx, agent.Act(obs))
		if err != nil {
			return m, err
		}
		m.Steps += env.StepsPerAction()
		m.Return += reward
		if !done && maxSteps > 0 && m.Steps >= maxSteps {
			m.Outcome = game.Timeout
			m.Duration = time.Since(start)
			return m, nil
		}
	}

	winner, ok := env.State().Winner()
	if !ok {
		return m, scenario.ErrNoWinner
	}
	m.Outcome = game.OutcomeOf(winner)
	m.Duration = time.Since(start)
	return m, nil
}
