package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderRequests counts orchestrated requests by provider and outcome
	// ("ok" or one of the fallback reasons).
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_assistant_provider_requests_total",
			Help: "Total number of orchestrated provider requests",
		},
		[]string{"provider", "outcome"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "study_assistant_provider_latency_seconds",
			Help:    "Upstream provider call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "study_assistant_active_sessions",
			Help: "Number of sessions held by the conversation store",
		},
	)

	RetrievalQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "study_assistant_retrieval_queries_total",
			Help: "Queries answered by the local retrieval service",
		},
		[]string{"matched"},
	)
)
