package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Command metrics
	Invocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarybot_invocations_total",
			Help: "Total /summarise invocations by profile and outcome",
		},
		[]string{"profile", "outcome"},
	)

	Rejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarybot_rejections_total",
			Help: "Invocations rejected before any network work",
		},
		[]string{"reason"}, // "dm", "channel", "role", "cooldown"
	)

	InvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarybot_invocation_duration_seconds",
			Help:    "End-to-end /summarise duration",
			Buckets: []float64{1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"profile"},
	)

	// Upstream metrics
	FetchBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "summarybot_fetch_batches_total",
			Help: "Message history batches fetched from Discord",
		},
	)

	MessagesCollected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarybot_messages_collected",
			Help:    "Messages collected per invocation",
			Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000},
		},
	)

	MemberLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarybot_member_lookups_total",
			Help: "Guild member display name lookups",
		},
		[]string{"result"}, // "hit", "cache", "fallback"
	)

	CompletionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "summarybot_completion_latency_seconds",
			Help:    "LLM completion latency",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"provider"},
	)

	ChunksDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarybot_chunks_delivered_total",
			Help: "Summary chunks delivered",
		},
		[]string{"visibility"}, // "private", "public", "dm"
	)
)
