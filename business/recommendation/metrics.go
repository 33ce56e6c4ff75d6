package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_lookups_total",
			Help: "Recommendation cache lookups by result (hit, miss).",
		},
		[]string{"result"},
	)

	GenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_generations_total",
			Help: "Recommendation regenerations by outcome.",
		},
		[]string{"outcome"},
	)

	GenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_generation_duration_seconds",
			Help:    "Wall time of one regeneration including the model call.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		},
	)

	SuggestionsReconciledTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_suggestions_reconciled_total",
			Help: "Reconciled suggestions by match kind (catalog, synthetic).",
		},
		[]string{"match"},
	)

	LockWaitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_lock_waits_total",
			Help: "Waits on a peer holding the regeneration lock, by result (served, timeout).",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		CacheLookupsTotal,
		GenerationsTotal,
		GenerationDuration,
		SuggestionsReconciledTotal,
		LockWaitsTotal,
	)
}
