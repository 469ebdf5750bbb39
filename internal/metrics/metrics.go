package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CatalogRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marquee",
		Name:      "catalog_requests_total",
		Help:      "Total catalog API requests by endpoint group and outcome.",
	}, []string{"endpoint", "outcome"})

	CatalogRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "marquee",
		Name:      "catalog_request_duration_seconds",
		Help:      "Catalog API request duration in seconds.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	FeedFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marquee",
		Name:      "feed_failures_total",
		Help:      "Dashboard feeds that failed to load, by feed.",
	}, []string{"feed"})

	SuggestionsDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "marquee",
		Name:      "suggestions_dropped_total",
		Help:      "Suggestion responses discarded because a newer query was issued.",
	})

	CacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marquee",
		Name:      "cache_hits_total",
		Help:      "Catalog cache hits by backend.",
	}, []string{"backend"})

	CacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marquee",
		Name:      "cache_misses_total",
		Help:      "Catalog cache misses by backend.",
	}, []string{"backend"})
)

func Register(reg prometheus.Registerer) {
	reg.MustRegister(
		CatalogRequestsTotal,
		CatalogRequestDuration,
		FeedFailuresTotal,
		SuggestionsDroppedTotal,
		CacheHitsTotal,
		CacheMissesTotal,
	)
}
