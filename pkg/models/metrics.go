package models

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors are the Prometheus metrics for the ledger.
// They are registered together with the HTTP metrics by the router.
var Collectors = []prometheus.Collector{
	allocationsTotal,
}

var allocationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pool_allocations_total",
		Help: "How many allocations from project pools were attempted, partitioned by result.",
	},
	[]string{"result"},
)

func allocationResult(err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrInsufficientFunds):
		result = "insufficient_funds"
	case errors.Is(err, ErrPoolConflict):
		result = "conflict"
	case errors.Is(err, ErrResourceNotFound):
		result = "not_found"
	default:
		result = "error"
	}

	allocationsTotal.WithLabelValues(result).Inc()
}
