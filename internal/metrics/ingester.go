package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-forensics/internal/forensics/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingesterFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "fetch_total",
		Help:      "Count of block fetches from the chain source.",
	}, []string{"coin", "network", "status"})

	ingesterFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of fetching one block, retries included.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "block_total",
		Help:      "Count of blocks written to the record store and index.",
	}, []string{"coin", "network", "status"})

	ingesterBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "block_duration_seconds",
		Help:      "Duration of writing one block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	ingesterBlockTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "block_transactions",
		Help:      "Number of transactions appended per block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1..8192
	}, []string{"coin", "network"})

	ingesterHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "height",
		Help:      "Height of the last committed block.",
	}, []string{"coin", "network"})

	ingesterRecoveredTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "recovered_transactions_total",
		Help:      "Count of transaction records re-indexed by recovery or rebuild.",
	}, []string{"coin", "network", "status"})

	ingesterMirrorFlushTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "mirror_flush_total",
		Help:      "Count of batches flushed to the analytics mirror.",
	}, []string{"coin", "network", "status"})

	ingesterMirrorFlushDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ingester",
		Name:      "mirror_flush_duration_seconds",
		Help:      "Duration of flushing a batch to the analytics mirror.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})
)

type Ingester struct {
	coin    string
	network string
}

func NewIngester(coin model.Coin, network model.Network) *Ingester {
	return &Ingester{coin: orUnknown(string(coin)), network: orUnknown(string(network))}
}

func (m Ingester) ObserveFetch(err error, height uint64, started time.Time) {
	s := status(err)
	ingesterFetchTotal.WithLabelValues(m.coin, m.network, s).Inc()
	ingesterFetchDuration.WithLabelValues(m.coin, m.network, s).Observe(time.Since(started).Seconds())
}

func (m Ingester) ObserveBlock(err error, height uint64, transactions int, started time.Time) {
	s := status(err)
	ingesterBlockTotal.WithLabelValues(m.coin, m.network, s).Inc()
	ingesterBlockDuration.WithLabelValues(m.coin, m.network, s).Observe(time.Since(started).Seconds())
	if err != nil {
		return
	}
	ingesterBlockTransactions.WithLabelValues(m.coin, m.network).Observe(float64(transactions))
	ingesterHeight.WithLabelValues(m.coin, m.network).Set(float64(height))
}

func (m Ingester) ObserveRecover(err error, transactions int, started time.Time) {
	ingesterRecoveredTransactions.WithLabelValues(m.coin, m.network, status(err)).Add(float64(transactions))
}

func (m Ingester) ObserveMirrorFlush(err error, blocks int, started time.Time) {
	s := status(err)
	ingesterMirrorFlushTotal.WithLabelValues(m.coin, m.network, s).Inc()
	ingesterMirrorFlushDuration.WithLabelValues(m.coin, m.network, s).Observe(time.Since(started).Seconds())
}
