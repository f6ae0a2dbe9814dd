package searcher

import (
	"context"
	"fmt"
	"time"

	"balance/experiments/metrics"
	"balance/game"
	"balance/meta"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(s *Search)

type Search struct {
	precision    float64
	maxDoublings int
	label        string
	metrics      metrics.Collector
}

func WithPrecision(precision float64) Option {
	return func(s *Search) {
		if precision > 0 {
			s.precision = precision
		}
	}
}

func WithMaxDoublings(doublings int) Option {
	return func(s *Search) {
		if doublings > 0 {
			s.maxDoublings = doublings
		}
	}
}

// WithLabel tags every log line of the search, e.g. with the scenario name.
func WithLabel(label string) Option {
	return func(s *Search) {
		s.label = label
	}
}

func WithMetrics() Option {
	return func(s *Search) {
		s.metrics = metrics.NewCollector()
	}
}

func NewSearch(options ...Option) *Search {
	s := &Search{ // Default values
		precision:    meta.PRECISION,
		maxDoublings: meta.MAX_DOUBLINGS,
		metrics:      metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// FindBoundary runs a search with the given precision and default options.
func FindBoundary(ctx context.Context, probe Probe, precision float64) (float64, game.Outcome, error) {
	if precision <= 0 {
		return 0, 0, fmt.Errorf("precision must be positive, got %v", precision)
	}
	b, _, err := NewSearch(WithPrecision(precision)).FindBoundary(ctx, probe)
	if err != nil {
		return 0, b.Reference, err
	}
	return b.Value, b.Reference, nil
}

// FindBoundary locates the scale at which probe stops returning the outcome
// it returns at Start. The upper bound is doubled from InitialUpper until the
// outcome flips, then the bracket is bisected down to the search precision.
// Outcomes are compared by equality only, so a Timeout counts as a flip.
func (s *Search) FindBoundary(ctx context.Context, probe Probe) (Boundary, metrics.SearchMetric, error) {
	logger := log.With().Str("search", s.label).Logger()
	s.metrics.Start(s.precision, s.maxDoublings)
	b := Boundary{}
	lower, upper := Start, InitialUpper

	logger.Info().Msgf("testing %v", lower)
	winner, err := s.run(ctx, logger, probe, metrics.Precondition, lower, &b)
	if err != nil {
		return b, s.metrics.Complete(), err
	}
	if winner != game.PlayerWin {
		return b, s.metrics.Complete(), fmt.Errorf("%w: %s wins at %v", ErrNotViable, winner, lower)
	}
	b.Reference = winner

	// Bracket expansion
	for doublings := 0; ; doublings++ {
		logger.Info().Msgf("finding upper bound... (%v)", upper)
		outcome, err := s.run(ctx, logger, probe, metrics.Bracket, upper, &b)
		if err != nil {
			return b, s.metrics.Complete(), err
		}
		if outcome != winner {
			break
		}
		if doublings >= s.maxDoublings {
			return b, s.metrics.Complete(), fmt.Errorf("%w: %s still wins at %v after %d doublings", ErrNoBoundary, winner, upper, doublings)
		}
		lower = upper
		upper *= 2
		s.metrics.AddDoubling()
	}
	b.BracketLower, b.BracketUpper = lower, upper
	logger.Info().Msgf("found an upper bound: %v", upper)

	// Bisection
	for upper-lower > s.precision {
		value := (upper + lower) / 2
		logger.Info().Msgf("testing %v (%v - %v)", value, lower, upper)
		outcome, err := s.run(ctx, logger, probe, metrics.Bisect, value, &b)
		if err != nil {
			return b, s.metrics.Complete(), err
		}
		if outcome == winner {
			lower = value
		} else {
			upper = value
		}
	}

	b.Lower, b.Upper = lower, upper
	b.Value = (upper + lower) / 2
	return b, s.metrics.Complete(), nil
}

func (s *Search) run(ctx context.Context, logger zerolog.Logger, probe Probe, phase metrics.Phase, value float64, b *Boundary) (game.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("search interrupted at %v: %w", value, err)
	}

	start := time.Now()
	outcome, err := probe(ctx, value)
	if err != nil {
		return 0, fmt.Errorf("probe at %v: %w", value, err)
	}
	b.Probes++
	elapsed := time.Since(start)
	s.metrics.AddProbe(phase, value, outcome, elapsed)
	logger.Debug().Msgf("%s probe at %v: %s in %s", phase, value, outcome, elapsed)
	return outcome, nil
}
