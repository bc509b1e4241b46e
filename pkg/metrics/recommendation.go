package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency per scoring strategy (collaborative / content-based / popularity / fusion)
	ScorerDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reco_scorer_duration_seconds",
		Help:    "Latency of one scorer invocation",
		Buckets: prometheus.DefBuckets,
	}, []string{"scorer"})

	// Candidates produced per scorer invocation
	ScorerCandidates = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reco_scorer_candidates",
		Help:    "Number of candidates produced by one scorer invocation",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
	}, []string{"scorer"})

	// Total recommendations persisted
	GeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_generated_total",
		Help: "Total recommendations generated and persisted",
	})

	// Generate calls served straight from unexpired rows
	CacheHitTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reco_generate_cache_hits_total",
		Help: "Generate calls answered from unexpired recommendations",
	})

	// Per-user refreshes, by outcome
	RefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reco_refresh_total",
		Help: "Per-user recommendation refreshes",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		ScorerDuration,
		ScorerCandidates,
		GeneratedTotal,
		CacheHitTotal,
		RefreshTotal,
	)
}
