package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the pipeline's Prometheus collectors.
//
//   - taskpicker_runs_total{source,result}
//   - taskpicker_tasks_appended_total{category}
//   - taskpicker_tasks_skipped_total
//   - taskpicker_analysis_duration_seconds
type Metrics struct {
	Runs             *prometheus.CounterVec
	Appended         *prometheus.CounterVec
	Skipped          prometheus.Counter
	AnalysisDuration prometheus.Histogram
}

// NewMetrics registers the collectors on reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taskpicker_runs_total",
			Help: "Pipeline runs by source kind and result",
		}, []string{"source", "result"}),
		Appended: f.NewCounterVec(prometheus.CounterOpts{
			Name: "taskpicker_tasks_appended_total",
			Help: "Tasks appended to the task document by category",
		}, []string{"category"}),
		Skipped: f.NewCounter(prometheus.CounterOpts{
			Name: "taskpicker_tasks_skipped_total",
			Help: "Candidates dropped as duplicates",
		}),
		AnalysisDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "taskpicker_analysis_duration_seconds",
			Help:    "Reasoning engine analysis latency",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to 32s
		}),
	}
}
