package executor

import "github.com/prometheus/client_golang/prometheus"

var (
	applyTxDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hold_token",
		Subsystem: "executor",
		Name:      "apply_tx_duration_seconds",
		Help:      "The total latency of transaction execution",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	txCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hold_token",
		Subsystem: "executor",
		Name:      "tx_total",
		Help:      "the total number of executed transactions",
	}, []string{"status"})

	callCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hold_token",
		Subsystem: "executor",
		Name:      "call_total",
		Help:      "the total number of view calls",
	})
)

func init() {
	prometheus.MustRegister(applyTxDuration)
	prometheus.MustRegister(txCounter)
	prometheus.MustRegister(callCounter)
}
