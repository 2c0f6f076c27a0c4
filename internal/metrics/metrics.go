// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_http_requests_total",
		Help: "Total HTTP requests processed, labeled by route and status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})

	QuotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_quotes_total",
		Help: "Quote creation attempts, labeled by quote type and outcome",
	}, []string{"quote_type", "outcome"})

	QuoteThresholdWarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_threshold_warnings_total",
		Help: "Quotes persisted with a threshold or piece limit warning",
	}, []string{"quote_type", "warning"})

	ZipValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_zip_validations_total",
		Help: "ZIP validations, labeled by result reason and cache hit",
	}, []string{"reason", "cached"})

	PlacesRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quote_places_request_duration_seconds",
		Help:    "Latency of Google Places autocomplete requests",
		Buckets: prometheus.DefBuckets,
	})

	CacheInvalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_cache_invalidations_total",
		Help: "Reference data cache invalidations, labeled by cache",
	}, []string{"cache"})

	EmailsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_emails_total",
		Help: "Outbound quote emails, labeled by feature and outcome",
	}, []string{"feature", "outcome"})
)

// Quote outcomes
const (
	OutcomeCreated        = "created"
	OutcomeInvalid        = "invalid"
	OutcomeReferenceError = "reference_error"
	OutcomeFailed         = "failed"
	OutcomeSent           = "sent"
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
