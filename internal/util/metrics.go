package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Total number of orders committed",
	})

	OrdersRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Total number of rejected order requests",
	}, []string{"reason"})

	CatalogResolveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_resolve_latency_seconds",
		Help:    "Latency of catalog item resolution calls",
		Buckets: prometheus.DefBuckets,
	})

	CatalogResolveFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_resolve_failed_total",
		Help: "Total number of failed catalog resolutions",
	}, []string{"reason"})

	TokensIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tokens_issued_total",
		Help: "Total number of tokens issued",
	})

	TokenVerifyFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "token_verify_failed_total",
		Help: "Total number of failed token verifications",
	}, []string{"reason"})

	MenuCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menu_cache_hits_total",
		Help: "Total number of menu list cache hits",
	})

	MenuCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menu_cache_misses_total",
		Help: "Total number of menu list cache misses",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
