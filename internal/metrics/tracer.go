package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tracerTraceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracer",
		Name:      "trace_total",
		Help:      "Count of traces by requested depth.",
	}, []string{"max_depth", "status"})

	tracerTraceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "tracer",
		Name:      "trace_duration_seconds",
		Help:      "Duration of a trace.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	tracerGraphSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "tracer",
		Name:      "graph_size",
		Help:      "Nodes and edges of returned trace graphs.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"kind"})

	tracerSkippedReads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tracer",
		Name:      "skipped_reads_total",
		Help:      "Count of index locations skipped during traversal.",
	}, []string{"reason"})
)

type Tracer struct{}

func NewTracer() *Tracer {
	return &Tracer{}
}

func (Tracer) ObserveTrace(err error, maxDepth, nodes, edges int, started time.Time) {
	s := status(err)
	tracerTraceTotal.WithLabelValues(depthLabel(maxDepth), s).Inc()
	tracerTraceDuration.WithLabelValues(s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	tracerGraphSize.WithLabelValues("nodes").Observe(float64(nodes))
	tracerGraphSize.WithLabelValues("edges").Observe(float64(edges))
}

func (Tracer) ObserveSkippedRead(err error) {
	reason := "error"
	if errors.Is(err, model.ErrNotFound) {
		reason = "not_found"
	}
	tracerSkippedReads.WithLabelValues(reason).Inc()
}

// depthLabel keeps the label set bounded.
func depthLabel(depth int) string {
	switch {
	case depth < 0:
		return "invalid"
	case depth > 10:
		return "gt10"
	default:
		return strconv.Itoa(depth)
	}
}
