package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fx "github.com/robotalks/reaction.go/pkg/framework"
)

const metricsNamespace = "reaction"

// Metrics exports round statistics to Prometheus.
type Metrics struct {
	Registry *prometheus.Registry

	rounds    prometheus.Counter
	active    prometheus.Gauge
	hits      *prometheus.CounterVec
	lastScore *prometheus.GaugeVec
	results   *prometheus.CounterVec
}

var playerLabels = [2]string{"player1", "player2"}

// NewMetrics creates Metrics with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		rounds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "rounds_total",
			Help:      "Number of rounds started.",
		}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "round_active",
			Help:      "1 while a round is being played.",
		}),
		hits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "hits_total",
			Help:      "Number of targets hit per player.",
		}, []string{"player"}),
		lastScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "last_score",
			Help:      "Score of the last finished round per player.",
		}, []string{"player"}),
		results: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "game",
			Name:      "results_total",
			Help:      "Finished rounds by winner.",
		}, []string{"winner"}),
	}
}

// RoundStarted implements Reporter.
func (m *Metrics) RoundStarted(time.Time) {
	m.rounds.Inc()
	m.active.Set(1)
}

// RoundFinished implements Reporter.
func (m *Metrics) RoundFinished(r RoundResult) {
	m.active.Set(0)
	for n, label := range playerLabels {
		m.hits.WithLabelValues(label).Add(float64(r.Scores[n]))
		m.lastScore.WithLabelValues(label).Set(float64(r.Scores[n]))
	}
	m.results.WithLabelValues(winnerLabel(r.Winner)).Inc()
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func winnerLabel(winner int) string {
	switch winner {
	case Player1:
		return playerLabels[0]
	case Player2:
		return playerLabels[1]
	default:
		return "tie"
	}
}

// MetricsServer serves /metrics over HTTP.
type MetricsServer struct {
	Addr    string
	Handler http.Handler
}

// Name implements Named.
func (s *MetricsServer) Name() string {
	return "metrics"
}

// Run implements Runnable.
func (s *MetricsServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.Handler)
	srv := &http.Server{Addr: s.Addr, Handler: mux}
	glog.Infof("metrics listening on %s", s.Addr)
	err := fx.RunWithContextCloser(ctx, srv, srv.ListenAndServe)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
