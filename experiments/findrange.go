package experiments

import (
	"context"
	"errors"
	"fmt"

	"balance/config"
	"balance/engine"
	"balance/experiments/metrics"
	"balance/policy"
	"balance/scenario"
	"balance/searcher"

	"github.com/rs/zerolog/log"
)

// RunFindRange searches the modifier scale at which the winner flips, for
// every configured policy and scenario, and stores the results under
// cfg.OutputDir. Scenarios the player cannot win, or that never flip, are
// recorded with their error and skipped.
func RunFindRange(ctx context.Context, cfg config.Config, e engine.Engine) ([]metrics.SearchRecord, error) {
	modifier, err := scenario.ModifierByName(cfg.Modifier)
	if err != nil {
		return nil, err
	}
	scenarios := make([]scenario.Config, 0, len(cfg.Scenarios))
	for _, s := range cfg.Scenarios {
		sc, err := s.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		scenarios = append(scenarios, sc)
	}

	writer, err := metrics.NewWriter(cfg.OutputDir, "findrange")
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSetup(cfg); err != nil {
		return nil, fmt.Errorf("failed to store setup: %w", err)
	}

	log.Info().Msgf("starting findrange experiment in %s...", writer.Dir())

	count := 0
	searchRecords := []metrics.SearchRecord{}
	probeRecords := []metrics.ProbeRecord{}
	var runErr error

searches:
	for _, name := range cfg.Policies {
		for _, sc := range scenarios {
			count++
			runner := newRunner(cfg, name, e, sc, modifier)
			search := searcher.NewSearch(
				searcher.WithPrecision(cfg.Search.Precision),
				searcher.WithMaxDoublings(cfg.Search.MaxDoublings),
				searcher.WithLabel(name+"/"+sc.Name),
				searcher.WithMetrics(),
			)

			log.Info().Msgf("starting search %d: %s with %s policy...", count, sc.Name, name)
			b, searchMetric, err := search.FindBoundary(ctx, runner.Probe())

			record := metrics.SearchRecord{
				ID:           count,
				Policy:       name,
				Scenario:     sc.Name,
				Boundary:     b.Value,
				Reference:    b.Reference,
				Lower:        b.Lower,
				Upper:        b.Upper,
				SearchMetric: searchMetric,
			}
			for _, pm := range searchMetric.Probes {
				probeRecords = append(probeRecords, metrics.ProbeRecord{Search: count, ProbeMetric: pm})
			}

			switch {
			case err == nil:
				log.Info().Msgf("%s: %s wins if it is below %v", sc.Name, b.Reference, b.Value)
			case errors.Is(err, searcher.ErrNotViable), errors.Is(err, searcher.ErrNoBoundary):
				log.Warn().Err(err).Msgf("skipping %s with %s policy", sc.Name, name)
				record.Error = err.Error()
			default:
				runErr = fmt.Errorf("search %s with %s policy: %w", sc.Name, name, err)
				record.Error = err.Error()
				searchRecords = append(searchRecords, record)
				break searches
			}
			searchRecords = append(searchRecords, record)
		}
	}

	log.Info().Msgf("completed findrange experiment after %d searches", count)

	if err := writer.WriteSearchRecords(searchRecords); err != nil {
		return searchRecords, fmt.Errorf("failed to write search records: %w", err)
	}
	if err := writer.WriteProbeRecords(probeRecords); err != nil {
		return searchRecords, fmt.Errorf("failed to write probe records: %w", err)
	}
	log.Info().Msg("stored search and probe records")

	return searchRecords, runErr
}

func newRunner(cfg config.Config, name string, e engine.Engine, sc scenario.Config, modifier scenario.Modifier) *scenario.Runner {
	runner := &scenario.Runner{
		Engine:   e,
		Config:   sc,
		Modifier: modifier,
		MaxSteps: cfg.Deathball.MaxSteps,
	}
	if name == "kiting" {
		runner.Policy = policy.NewKiter(cfg.Kiting.KiteOptions)
		runner.MaxSteps = cfg.Kiting.MaxSteps
		runner.Stride = cfg.Kiting.Stride
	}
	return runner
}
