package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	tradesTotal   *prometheus.CounterVec
	alertsTotal   *prometheus.CounterVec
	commandsTotal *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	lastPrice     *prometheus.GaugeVec
	zScore        prometheus.Gauge
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		tradesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volsentry_trades_total",
				Help: "Total number of trades ingested",
			},
			[]string{"symbol"},
		),
		alertsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volsentry_alerts_total",
				Help: "Total number of alerts fired by kind",
			},
			[]string{"kind"},
		),
		commandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volsentry_commands_total",
				Help: "Total number of operator commands handled",
			},
			[]string{"command"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volsentry_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "volsentry_last_price",
				Help: "Last observed price for the tracked symbol",
			},
			[]string{"symbol"},
		),
		zScore: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "volsentry_z_score",
				Help: "Latest short-window volume z-score",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "volsentry_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordTrade records an ingested trade and its price.
func (r *Recorder) RecordTrade(symbol string, price float64) {
	r.tradesTotal.WithLabelValues(symbol).Inc()
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordAlert records a fired alert by kind.
func (r *Recorder) RecordAlert(kind string) {
	r.alertsTotal.WithLabelValues(kind).Inc()
}

// RecordCommand records a handled operator command.
func (r *Recorder) RecordCommand(cmd string) {
	r.commandsTotal.WithLabelValues(cmd).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordZScore records the latest computed z-score.
func (r *Recorder) RecordZScore(v float64) {
	r.zScore.Set(v)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
