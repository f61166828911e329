// Package metrics defines the Prometheus collectors for indexing, search and HTTP traffic.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "humansearch"

// Engine Prometheus metrics.
var (
	IndexedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "indexed_documents_total",
			Help:      "Total number of index calls",
		},
		[]string{"status"}, // "ok" / "error"
	)

	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search calls",
		},
		[]string{"status"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search pipeline duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	PassResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "retrieval_pass_results",
			Help:      "Number of results produced by each retrieval pass",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"pass"}, // "text" / "semantic" / "fuzzy"
	)

	Documents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "documents",
			Help:      "Number of documents held by the engine",
		},
	)
)

var registerOnce sync.Once

// Register registers every collector with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			IndexedDocumentsTotal,
			SearchRequestsTotal,
			SearchDuration,
			PassResults,
			Documents,
			httpRequestDuration,
			httpRequestsTotal,
		)
	})
}
