// Package metrics expõe as métricas do servidor em formato Prometheus.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controla o registro de métricas.
type Config struct {
	Namespace     string `mapstructure:"namespace"`
	EnableRuntime bool   `mapstructure:"enable_runtime"`
}

// Buckets do tempo de conclusão, em segundos.
var CompletionBuckets = []float64{30, 60, 120, 180, 300, 600, 900, 1800}

// Game agrupa as métricas das partidas. Satisfaz session.Recorder.
type Game struct {
	registry *prometheus.Registry

	sessions       *prometheus.GaugeVec
	placements     *prometheus.CounterVec
	checks         *prometheus.CounterVec
	resets         prometheus.Counter
	completionTime *prometheus.HistogramVec
	correctedItems prometheus.Histogram
}

func New(cfg Config) (*Game, error) {
	if cfg.Namespace == "" {
		return nil, fmt.Errorf("metrics: namespace is required")
	}

	reg := prometheus.NewRegistry()
	if cfg.EnableRuntime {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.Namespace}),
		)
	}

	m := &Game{
		registry: reg,
		sessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "active_sessions",
			Help:      "Connected learners, by evaluator.",
		}, []string{"evaluator"}),
		placements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "placements_total",
			Help:      "Instruments dropped on a zone, by correctness.",
		}, []string{"result"}),
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "checks_total",
			Help:      "Board validations, by outcome.",
		}, []string{"result"}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "resets_total",
			Help:      "Games restarted by the learner.",
		}),
		completionTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "completion_seconds",
			Help:      "Elapsed time of completed games.",
			Buckets:   CompletionBuckets,
		}, []string{"evaluator"}),
		correctedItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "corrected_items",
			Help:      "Instruments fixed after a wrong attempt, per completed game.",
			Buckets:   prometheus.LinearBuckets(0, 5, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.sessions, m.placements, m.checks, m.resets, m.completionTime, m.correctedItems} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("metrics: register: %w", err)
		}
	}
	return m, nil
}

// Handler serve /metrics.
func (m *Game) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry é usado pelos testes e por quem precisar registrar coletores extras.
func (m *Game) Registry() *prometheus.Registry { return m.registry }

func (m *Game) SessionOpened(evaluator string) { m.sessions.WithLabelValues(evaluator).Inc() }
func (m *Game) SessionClosed(evaluator string) { m.sessions.WithLabelValues(evaluator).Dec() }

func (m *Game) Placement(correct bool) {
	m.placements.WithLabelValues(result(correct, "correct", "wrong")).Inc()
}

func (m *Game) Checked(complete bool) {
	m.checks.WithLabelValues(result(complete, "complete", "incomplete")).Inc()
}

func (m *Game) Completed(evaluator string, timeSec, corrected int) {
	m.completionTime.WithLabelValues(evaluator).Observe(float64(timeSec))
	m.correctedItems.Observe(float64(corrected))
}

func (m *Game) Reset() { m.resets.Inc() }

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
