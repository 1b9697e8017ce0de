package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChainHeight is the current block ID tracked by the node manager.
	ChainHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "warrenchain_height",
			Help: "Current block height (next block ID to be mined)",
		},
	)

	MempoolDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "warrenchain_mempool_depth",
			Help: "Number of transactions currently queued in the mempool",
		},
	)

	MempoolCapacity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "warrenchain_mempool_capacity",
			Help: "Configured mempool capacity",
		},
	)

	BlocksMinedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "warrenchain_blocks_mined_total",
			Help: "Total number of blocks successfully mined",
		},
	)

	TransactionsSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "warrenchain_transactions_submitted_total",
			Help: "Total number of transactions accepted into the mempool",
		},
	)

	TransactionsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "warrenchain_transactions_skipped_total",
			Help: "Total number of transactions skipped during execution (insufficient sender balance or receiver overflow)",
		},
	)

	BlockMineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "warrenchain_block_mine_duration_seconds",
			Help:    "Time taken to process a mempool drain, execute it and mine a block",
			Buckets: prometheus.DefBuckets,
		},
	)

	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warrenchain_commands_total",
			Help: "Total number of dispatcher commands by name and outcome",
		},
		[]string{"command", "status"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "warrenchain_command_duration_seconds",
			Help:    "Dispatcher command latency in seconds by command name",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	RendezvousPeersTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "warrenchain_rendezvous_peers_total",
			Help: "Number of peers currently registered with the rendezvous host",
		},
	)
)

func init() {
	prometheus.MustRegister(ChainHeight)
	prometheus.MustRegister(MempoolDepth)
	prometheus.MustRegister(MempoolCapacity)
	prometheus.MustRegister(BlocksMinedTotal)
	prometheus.MustRegister(TransactionsSubmittedTotal)
	prometheus.MustRegister(TransactionsSkippedTotal)
	prometheus.MustRegister(BlockMineDuration)
	prometheus.MustRegister(CommandsTotal)
	prometheus.MustRegister(CommandDuration)
	prometheus.MustRegister(RendezvousPeersTotal)
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
