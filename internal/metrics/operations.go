// Package metrics holds the prometheus collectors of every forensics component.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blockinsight7000"

// operationVecs counts and times named operations of one subsystem.
type operationVecs struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newOperationVecs(subsystem, what string, buckets []float64, labels ...string) operationVecs {
	labels = append(labels, "status")
	return operationVecs{
		total: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Count of " + what + " operations.",
		}, labels),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Duration of " + what + " operations.",
			Buckets:   buckets,
		}, labels),
	}
}

func (v operationVecs) observe(err error, started time.Time, labels ...string) {
	labels = append(labels, status(err))
	v.total.WithLabelValues(labels...).Inc()
	v.duration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
