package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Pipeline runs by outcome",
		},
		[]string{"outcome"},
	)
	MailSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sent_total",
			Help: "Notification mails by kind and result",
		},
		[]string{"kind", "result"}, // kind: print_order|missing_files; result: ok|error
	)
	StatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Per-order status updates by result",
		},
		[]string{"result"},
	)
	StorageSearches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_searches_total",
			Help: "Actual (non-cached) file storage searches",
		},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations per tier",
		},
		[]string{"tier", "op"}, // op: hit|miss|expired|promoted|corrupt
	)
	CacheSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in a cache tier",
		},
		[]string{"tier"},
	)
)

var (
	TriggerMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trigger_messages_total",
			Help: "Kafka trigger messages by result",
		},
		[]string{"topic", "result"}, // result: processed|deferred|fetch_error
	)
)

func MustRegister() {
	prometheus.MustRegister(
		PipelineRuns, MailSent, StatusUpdates, StorageSearches,
		CacheOps, CacheSize,
		TriggerMessages,
	)
}
