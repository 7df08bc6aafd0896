package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PageFetchLatency records how long assembling one paginated envelope takes.
	PageFetchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "marketplace_page_fetch_latency_seconds",
		Help:    "Latency of paginated reads by resource and viewer kind",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "viewer"})

	// EmptyPages counts terminal pages returned with no items.
	EmptyPages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_empty_pages_total",
		Help: "Total number of paginated reads that returned no items",
	}, []string{"resource"})

	// SearchQueries counts search requests by kind (posts|people) and whether the query was usable.
	SearchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_search_queries_total",
		Help: "Total number of search queries",
	}, []string{"kind", "outcome"})

	// ConnectionToggles counts follow toggles by outcome (followed|unfollowed|rejected|failed).
	ConnectionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_connection_toggles_total",
		Help: "Total number of follow toggles by outcome",
	}, []string{"outcome"})

	// FeedCacheResults counts anonymous feed cache lookups.
	FeedCacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_feed_cache_results_total",
		Help: "Anonymous feed cache lookups by result (hit|miss|error)",
	}, []string{"result"})

	// AnalyticsPublishFailures counts dropped view events.
	AnalyticsPublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "marketplace_analytics_publish_failures_total",
		Help: "View events that could not be published",
	}, []string{"backend"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// TrackPage returns a function that records page assembly latency and empty results.
func TrackPage(resource, viewer string) func(items int) {
	start := time.Now()
	return func(items int) {
		PageFetchLatency.WithLabelValues(resource, viewer).Observe(time.Since(start).Seconds())
		if items == 0 {
			EmptyPages.WithLabelValues(resource).Inc()
		}
	}
}
