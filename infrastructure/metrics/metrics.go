// Package metrics holds the Prometheus collectors shared by the API handlers,
// the YouTube provider and the offline worker. All names carry the music_hub_ prefix.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts API responses by endpoint and how they were produced.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_hub_requests_total",
			Help: "API responses by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "music_hub_upstream_duration_seconds",
			Help:    "YouTube Data API call latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "status"},
	)

	OfflineCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "music_hub_offline_cache_lookups_total",
			Help: "Offline worker cache lookups by strategy and result",
		},
		[]string{"strategy", "result"},
	)
)

func Handler() http.Handler {
	return promhttp.Handler()
}
