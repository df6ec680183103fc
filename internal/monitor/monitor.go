package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iamasit07/hotseat-connect4/internal/domain"
)

type Metrics struct {
	ActiveTables     prometheus.Gauge
	Connections      prometheus.Gauge
	MovesTotal       *prometheus.CounterVec
	GamesFinished    *prometheus.CounterVec
	MessagesReceived prometheus.Counter
	MoveLatency      prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics registers on its own registry so tests and several servers can coexist.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		ActiveTables: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_tables",
			Help:      "Number of live tables",
		}),
		Connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_connections",
			Help:      "Number of open WebSocket connections",
		}),
		MovesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Moves applied, by outcome kind",
		}, []string{"outcome"}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Finished games, by reason",
		}, []string{"reason"}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Total number of WebSocket messages received",
		}),
		MoveLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "move_latency_seconds",
			Help:      "Time spent applying and fanning out a move",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.ActiveTables,
		m.Connections,
		m.MovesTotal,
		m.GamesFinished,
		m.MessagesReceived,
		m.MoveLatency,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// The methods below satisfy the table service's Recorder interface.

func (m *Metrics) TableOpened() { m.ActiveTables.Inc() }
func (m *Metrics) TableClosed() { m.ActiveTables.Dec() }

func (m *Metrics) MoveApplied(kind domain.OutcomeKind, seconds float64) {
	m.MovesTotal.WithLabelValues(string(kind)).Inc()
	m.MoveLatency.Observe(seconds)
}

func (m *Metrics) GameFinished(reason string) {
	m.GamesFinished.WithLabelValues(reason).Inc()
}

func (m *Metrics) ConnectionOpened() { m.Connections.Inc() }
func (m *Metrics) ConnectionClosed() { m.Connections.Dec() }
func (m *Metrics) MessageReceived()  { m.MessagesReceived.Inc() }
