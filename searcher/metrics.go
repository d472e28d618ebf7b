package searcher

import (
	"sync/atomic"
	"time"
)

type MoveMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Episodes  int64
	Nodes     int64 // Tree nodes added during the search
}

type MetricsCollector interface {
	Start()
	AddEpisode()
	AddNode()
	Complete() MoveMetrics
}

type metricsCollector struct {
	startTime time.Time
	episodes  atomic.Int64
	nodes     atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.nodes.Store(0)
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) Complete() MoveMetrics {
	return MoveMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Episodes:  m.episodes.Load(),
		Nodes:     m.nodes.Load(),
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                {}
func (m *noMetricsCollector) AddEpisode()           {}
func (m *noMetricsCollector) AddNode()              {}
func (m *noMetricsCollector) Complete() MoveMetrics { return MoveMetrics{} }
