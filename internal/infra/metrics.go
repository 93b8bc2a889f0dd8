package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process-wide collectors, registered on the default registry and served
// at /metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "prodplan_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	QuantityConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prodplan_plan_quantity_conflicts_total",
		Help: "Quantity edits rejected by unit progress or a concurrent write.",
	})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prodplan_import_rows_total",
		Help: "Imported plan rows by outcome (created, updated, invalid, failed).",
	}, []string{"result"})

	DemandShortProducts = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "prodplan_demand_short_products",
		Help: "Component products short of stock in the last analysis of a period.",
	}, []string{"period"})

	UnhandledErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prodplan_http_unhandled_errors_total",
		Help: "Requests answered 500 after an unexpected error or panic, by route.",
	}, []string{"route", "kind"})

	PlanEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "prodplan_plan_events_total",
		Help: "Plan events handed to the event sink by outcome.",
	}, []string{"type", "outcome"})
)
