package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// conversion pipeline.
type Metrics struct {
	RecordingsExtracted  prometheus.Counter
	ExtractionErrors     prometheus.Counter
	ValidationViolations prometheus.Counter
	FilesWritten         prometheus.Counter
	BatchRunning         prometheus.Gauge

	SamplesPerRecording prometheus.Histogram
	JobDuration         prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordingsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smconv",
			Name:      "recordings_extracted_total",
			Help:      "Total logical recordings extracted successfully.",
		}),
		ExtractionErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smconv",
			Name:      "extraction_errors_total",
			Help:      "Total per-recording extraction failures.",
		}),
		ValidationViolations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smconv",
			Name:      "validation_violations_total",
			Help:      "Total configuration validation violations reported.",
		}),
		FilesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "smconv",
			Name:      "files_written_total",
			Help:      "Total converted output files written.",
		}),
		BatchRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "smconv",
			Name:      "batch_running",
			Help:      "1 while a conversion batch is active, 0 otherwise.",
		}),
		SamplesPerRecording: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smconv",
			Name:      "samples_per_recording",
			Help:      "Per-axis sample count of extracted recordings.",
			Buckets:   []float64{1000, 5000, 10000, 30000, 60000, 120000, 360000},
		}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "smconv",
			Name:      "job_duration_seconds",
			Help:      "Wall-clock duration of one conversion job.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.RecordingsExtracted,
		m.ExtractionErrors,
		m.ValidationViolations,
		m.FilesWritten,
		m.BatchRunning,
		m.SamplesPerRecording,
		m.JobDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordingsExtracted:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "smconv", Name: "recordings_extracted_total"}),
		ExtractionErrors:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "smconv", Name: "extraction_errors_total"}),
		ValidationViolations: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "smconv", Name: "validation_violations_total"}),
		FilesWritten:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "smconv", Name: "files_written_total"}),
		BatchRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "smconv", Name: "batch_running"}),
		SamplesPerRecording:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "smconv", Name: "samples_per_recording"}),
		JobDuration:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "smconv", Name: "job_duration_seconds"}),
	}
}
