// Package bot – Prometheus instrumentation for update traffic and the two
// core workflows. Label cardinality is kept to a small fixed set.
package bot

import "github.com/prometheus/client_golang/prometheus"

var (
	// updatesTotal counts dispatched updates by kind (command/media/callback).
	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Total number of dispatched Telegram updates.",
		},
		[]string{"type"},
	)

	// uploadsTotal counts upload attempts by outcome.
	uploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_uploads_total",
			Help: "Total number of file upload attempts.",
		},
		[]string{"outcome"},
	)

	// retrievalsTotal counts deep-link retrieval attempts by outcome.
	retrievalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_retrievals_total",
			Help: "Total number of deep-link file retrieval attempts.",
		},
		[]string{"outcome"},
	)

	// broadcastSendsTotal counts individual broadcast sends by result.
	broadcastSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_broadcast_messages_total",
			Help: "Total number of broadcast messages sent, by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(updatesTotal, uploadsTotal, retrievalsTotal, broadcastSendsTotal)
}
