package ledger

import "github.com/prometheus/client_golang/prometheus"

var (
	persistBlockDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hold_token",
		Subsystem: "ledger",
		Name:      "persist_block_duration_second",
		Help:      "The total latency of block persist",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
	})

	blockHeightMetric = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "hold_token",
		Subsystem: "ledger",
		Name:      "block_height",
		Help:      "the latest block height",
	})

	flushDirtyWorldStateDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hold_token",
		Subsystem: "ledger",
		Name:      "flush_dirty_world_state_duration",
		Help:      "The total latency of flush dirty world state into db",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
	})

	stateReadDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hold_token",
		Subsystem: "ledger",
		Name:      "state_read_duration",
		Help:      "The total latency of read a state from db",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 10),
	})

	getReceiptCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hold_token",
		Subsystem: "ledger",
		Name:      "get_receipt_counter",
		Help:      "the total times of query GetReceipt",
	})
)

func init() {
	prometheus.MustRegister(persistBlockDuration)
	prometheus.MustRegister(blockHeightMetric)
	prometheus.MustRegister(flushDirtyWorldStateDuration)
	prometheus.MustRegister(stateReadDuration)
	prometheus.MustRegister(getReceiptCounter)
}
