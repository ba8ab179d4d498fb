// Package metrics exposes Prometheus collectors for the quiz, the
// recommendation store and the catalog views.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuizAnswers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_quiz_answers_total",
			Help: "Total number of accepted quiz option selections",
		},
	)

	QuizCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_quiz_completions_total",
			Help: "Total number of completed quizzes by recommended stream",
		},
		[]string{"stream"},
	)

	QuizRestarts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_quiz_restarts_total",
			Help: "Total number of explicit quiz retakes",
		},
	)

	// StaleAdvances counts auto-advance callbacks discarded because the session moved on.
	StaleAdvances = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_quiz_stale_advances_total",
			Help: "Total number of discarded auto-advance timer callbacks",
		},
	)

	RecommendationUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_recommendation_updates_total",
			Help: "Total number of recommendation store writes",
		},
		[]string{"stream"},
	)

	RecommendationPersistErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_recommendation_persist_errors_total",
			Help: "Total number of failed durable recommendation reads and writes",
		},
		[]string{"operation"},
	)

	RecommendationCorruptValues = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "career_recommendation_corrupt_values_total",
			Help: "Total number of persisted values rejected as outside the stream catalog",
		},
	)

	CatalogRecomputes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_catalog_recomputes_total",
			Help: "Total number of catalog view subset recomputations",
		},
		[]string{"view"},
	)

	ContentCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_content_cache_hits_total",
			Help: "Total number of content cache hits",
		},
		[]string{"backend"},
	)

	ContentCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "career_content_cache_misses_total",
			Help: "Total number of content cache misses",
		},
		[]string{"backend"},
	)

	WSConnectionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "career_websocket_connections_active",
			Help: "Current number of mounted WebSocket views",
		},
		[]string{"view"},
	)
)

// StreamLabel returns the label value used for a possibly-empty stream.
func StreamLabel(stream string) string {
	if stream == "" {
		return "none"
	}
	return stream
}
