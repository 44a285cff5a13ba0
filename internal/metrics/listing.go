package metrics

import "github.com/prometheus/client_golang/prometheus"

// Listing Prometheus metrics.
var (
	ListingQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "helix",
			Name:      "listing_query_duration_seconds",
			Help:      "Listing query duration in seconds, fetch included",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	ListingFetchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helix",
			Name:      "listing_fetch_failures_total",
			Help:      "Total number of failed record store fetches",
		},
		[]string{"kind"},
	)

	ListingStaleServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helix",
			Name:      "listing_stale_served_total",
			Help:      "Total number of listings served from the last good snapshot",
		},
		[]string{"kind"},
	)

	ListingReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "helix",
			Name:      "listing_reloads_total",
			Help:      "Seed file reloads",
		},
		[]string{"result"}, // "ok" / "error"
	)
)

var listingMetricsRegistered bool

// RegisterListingMetrics registers Prometheus listing metrics. Must be called once from main.
func RegisterListingMetrics() {
	if listingMetricsRegistered {
		return
	}
	prometheus.MustRegister(ListingQueryDuration)
	prometheus.MustRegister(ListingFetchFailuresTotal)
	prometheus.MustRegister(ListingStaleServedTotal)
	prometheus.MustRegister(ListingReloadsTotal)
	listingMetricsRegistered = true
}
