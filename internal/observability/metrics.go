// Package observability exposes the seed generator's run metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds only the converter metrics so a textfile export does not
// carry Go runtime collectors.
var Registry = prometheus.NewRegistry()

var (
	recordsConverted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exerciseseed",
		Subsystem: "converter",
		Name:      "records_converted_total",
		Help:      "Number of exercise records rendered into seed scripts.",
	})
	conversionFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exerciseseed",
		Subsystem: "converter",
		Name:      "failures_total",
		Help:      "Number of failed conversions grouped by reason.",
	}, []string{"reason"})
	lastSuccessGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "exerciseseed",
		Subsystem: "converter",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful conversion.",
	})
	conversionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "exerciseseed",
		Subsystem: "converter",
		Name:      "duration_seconds",
		Help:      "Wall time spent loading, rendering and writing a seed script.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

func init() {
	Registry.MustRegister(recordsConverted, conversionFailures, lastSuccessGauge, conversionDuration)
}

// RecordConversion tracks a successful run.
func RecordConversion(records int, elapsed time.Duration, ts time.Time) {
	recordsConverted.Add(float64(records))
	conversionDuration.Observe(elapsed.Seconds())
	if !ts.IsZero() {
		lastSuccessGauge.Set(float64(ts.Unix()))
	}
}

// RecordFailure counts a failed run under reason.
func RecordFailure(reason string, elapsed time.Duration) {
	conversionFailures.WithLabelValues(reason).Inc()
	conversionDuration.Observe(elapsed.Seconds())
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
