package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(intentsTotal, classifyFallbacksTotal, repliesTotal) }

var (
	intentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intents_classified_total",
			Help: "Classified user messages by intent.",
		},
		[]string{"intent"},
	)

	classifyFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intent_classification_fallbacks_total",
			Help: "Classifications that degraded to chat, by reason.",
		},
		[]string{"reason"}, // 'request', 'parse', 'shape'
	)

	repliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "replies_total",
			Help: "Replies produced, labeled by route and outcome.",
		},
		[]string{"route", "outcome"}, // outcome: 'ok', 'fallback'
	)
)

func IncIntent(intent string) {
	intentsTotal.WithLabelValues(norm(intent)).Inc()
}

func IncClassifyFallback(reason string) {
	classifyFallbacksTotal.WithLabelValues(norm(reason)).Inc()
}

func IncReply(route, outcome string) {
	repliesTotal.WithLabelValues(norm(route), norm(outcome)).Inc()
}
