package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the pipeline's prometheus collectors.
type Metrics struct {
	ClipsSubmitted prometheus.Counter
	ClipsFinished  *prometheus.CounterVec
	StageDuration  *prometheus.HistogramVec
	StageFailures  *prometheus.CounterVec
	InFlight       prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. A nil reg leaves
// them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ClipsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vmw",
			Name:      "clips_submitted_total",
			Help:      "Clips accepted for processing.",
		}),
		ClipsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vmw",
			Name:      "clips_finished_total",
			Help:      "Clips that reached a terminal status.",
		}, []string{"status"}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vmw",
			Name:      "stage_duration_seconds",
			Help:      "Wall time of a pipeline stage.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}, []string{"stage", "outcome"}),
		StageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vmw",
			Name:      "stage_failures_total",
			Help:      "Pipeline stages that failed, by cause.",
		}, []string{"stage", "cause"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vmw",
			Name:      "clips_in_flight",
			Help:      "Clips currently holding a worker slot.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.ClipsSubmitted, m.ClipsFinished, m.StageDuration, m.StageFailures, m.InFlight)
	}
	return m
}
