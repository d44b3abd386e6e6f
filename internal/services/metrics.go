package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_queries_total",
		Help: "Number of filter queries evaluated.",
	})

	emptyViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "delivery_empty_views_total",
		Help: "Number of filter queries that matched no records.",
	})

	queryRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "delivery_query_rows",
		Help:    "Number of records surviving each filter query.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})
)

func observeQuery(matched int) {
	queriesTotal.Inc()
	queryRows.Observe(float64(matched))
	if matched == 0 {
		emptyViewsTotal.Inc()
	}
}
