// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_queries_routed_total",
			Help: "Total number of queries dispatched to a handler",
		},
		[]string{"intent", "handler"},
	)

	QueriesUnrouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_queries_unrouted_total",
			Help: "Total number of queries that produced a clarification instead of a dispatch",
		},
		[]string{"reason"},
	)

	HandlerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_handler_failures_total",
			Help: "Total number of handler errors and panics degraded by the router",
		},
		[]string{"handler", "error_code"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "router_validation_failures_total",
			Help: "Total number of queries rejected by handler entity validation",
		},
		[]string{"intent"},
	)

	RouteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "router_route_duration_seconds",
			Help: "Duration of end-to-end query routing in seconds",
		},
		[]string{"intent"},
	)
)
