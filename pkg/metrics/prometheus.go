package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	rowsEvaluated *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	modelWeight   *prometheus.GaugeVec
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		rowsEvaluated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evalpull_rows_evaluated_total",
				Help: "Total number of prediction rows evaluated per asset",
			},
			[]string{"asset"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "evalpull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		modelWeight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "evalpull_model_weight",
				Help: "Latest normalized ensemble weight per model and asset",
			},
			[]string{"model_type", "asset"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "evalpull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEvaluation records evaluated rows for an asset.
func (r *Recorder) RecordEvaluation(asset string, rows int) {
	r.rowsEvaluated.WithLabelValues(asset).Add(float64(rows))
}

// RecordModelWeight records the latest weight for a model on an asset.
func (r *Recorder) RecordModelWeight(modelType, asset string, weight float64) {
	r.modelWeight.WithLabelValues(modelType, asset).Set(weight)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
