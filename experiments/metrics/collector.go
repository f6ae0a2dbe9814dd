package metrics

import (
	"balance/game"
	"time"
)

// Phase names the part of a boundary search a probe belongs to.
type Phase string

const (
	Precondition Phase = "precondition"
	Bracket      Phase = "bracket"
	Bisect       Phase = "bisect"
)

type ProbeMetric struct {
	Step     int
	Phase    Phase
	Value    float64
	Outcome  game.Outcome
	Duration time.Duration
}

type SearchMetric struct {
	Precision    float64
	MaxDoublings int
	StartTime    time.Time
	Duration     time.Duration
	Doublings    int
	Probes       []ProbeMetric
}

type EpisodeMetric struct {
	Episode  int
	Steps    int // Engine steps
	Return   float64
	Outcome  game.Outcome
	Duration time.Duration
}

type Collector interface {
	Start(precision float64, maxDoublings int)
	AddProbe(phase Phase, value float64, outcome game.Outcome, duration time.Duration)
	AddDoubling()
	Complete() SearchMetric
}

type collector struct {
	precision    float64
	maxDoublings int
	startTime    time.Time
	doublings    int
	probes       []ProbeMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(precision float64, maxDoublings int) {
	m.startTime = time.Now()
	m.precision = precision
	m.maxDoublings = maxDoublings
	m.doublings = 0
	m.probes = nil
}

func (m *collector) AddProbe(phase Phase, value float64, outcome game.Outcome, duration time.Duration) {
	m.probes = append(m.probes, ProbeMetric{
		Step:     len(m.probes) + 1,
		Phase:    phase,
		Value:    value,
		Outcome:  outcome,
		Duration: duration,
	})
}

func (m *collector) AddDoubling() {
	m.doublings++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Precision:    m.precision,
		MaxDoublings: m.maxDoublings,
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Doublings:    m.doublings,
		Probes:       m.probes,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(precision float64, maxDoublings int)            {}
func (m *dummyCollector) AddProbe(Phase, float64, game.Outcome, time.Duration) {}
func (m *dummyCollector) AddDoubling()                                         {}
func (m *dummyCollector) Complete() SearchMetric                               { return SearchMetric{} }
