// Package metrics holds the process-wide prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// UpstreamRequestsTotal counts calls issued to the data source, by endpoint.
	UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_upstream_requests_total",
			Help: "Number of requests issued to the balance/activity data source.",
		},
		[]string{"endpoint"},
	)

	// UpstreamFailuresTotal counts failed data source calls, by endpoint.
	UpstreamFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_upstream_failures_total",
			Help: "Number of failed requests to the balance/activity data source.",
		},
		[]string{"endpoint"},
	)

	// UpstreamCacheHitsTotal counts upstream responses served from the short-TTL cache.
	UpstreamCacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_upstream_cache_hits_total",
			Help: "Number of upstream responses served from the response cache.",
		},
		[]string{"endpoint"},
	)

	// AggregateDuration observes end-to-end portfolio aggregation time.
	AggregateDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_aggregate_duration_seconds",
			Help:    "End-to-end duration of portfolio aggregation calls.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// MustRegister registers all collectors with the default registry. Call once
// at startup.
func MustRegister() {
	prometheus.MustRegister(
		UpstreamRequestsTotal,
		UpstreamFailuresTotal,
		UpstreamCacheHitsTotal,
		AggregateDuration,
	)
}
