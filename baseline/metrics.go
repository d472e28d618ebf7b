package baseline

import (
	"sync/atomic"
	"time"
)

type DecisionMetrics struct {
	Decisions  int64
	Openings   int64
	Challenges int64 // Challenges, and counts on a rebid
	NewBids    int64
	Duration   time.Duration // Total time spent deciding
}

type MetricsCollector interface {
	AddDecision(kind decisionKind, elapsed time.Duration)
	Complete() DecisionMetrics
}

type decisionKind int

const (
	openingKind decisionKind = iota
	challengeKind
	newBidKind
)

type metricsCollector struct {
	decisions  atomic.Int64
	openings   atomic.Int64
	challenges atomic.Int64
	newBids    atomic.Int64
	nanos      atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) AddDecision(kind decisionKind, elapsed time.Duration) {
	m.decisions.Add(1)
	m.nanos.Add(int64(elapsed))
	switch kind {
	case openingKind:
		m.openings.Add(1)
	case challengeKind:
		m.challenges.Add(1)
	case newBidKind:
		m.newBids.Add(1)
	}
}

func (m *metricsCollector) Complete() DecisionMetrics {
	return DecisionMetrics{
		Decisions:  m.decisions.Load(),
		Openings:   m.openings.Load(),
		Challenges: m.challenges.Load(),
		NewBids:    m.newBids.Load(),
		Duration:   time.Duration(m.nanos.Load()),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) AddDecision(decisionKind, time.Duration) {}
func (m *noMetricsCollector) Complete() DecisionMetrics               { return DecisionMetrics{} }
