// Package metrics defines the Prometheus collectors exposed by the build
// and query paths, and an HTTP handler for scraping them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors shared across a build or query run.
type Metrics struct {
	DocsIndexedTotal       prometheus.Counter
	ChunksSpilledTotal     prometheus.Counter
	ChunksMergedTotal      prometheus.Counter
	BuildDuration          prometheus.Histogram
	DecodeCacheHitsTotal   prometheus.Counter
	DecodeCacheMissesTotal prometheus.Counter
	QueriesTotal           *prometheus.CounterVec
	QueryLatency           *prometheus.HistogramVec
	ResultsReturned        prometheus.Histogram
}

// New creates and registers the collectors against the default registry.
func New() *Metrics {
	m := &Metrics{
		DocsIndexedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postctl_docs_indexed_total",
			Help: "Total documents written into a postings file during a build.",
		}),
		ChunksSpilledTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postctl_chunks_spilled_total",
			Help: "Total uninversion producer chunks spilled to disk.",
		}),
		ChunksMergedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postctl_chunks_merged_total",
			Help: "Total pairwise chunk merges performed during uninversion.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "postctl_build_duration_seconds",
			Help:    "Wall-clock duration of a full build run.",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}),
		DecodeCacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postctl_decode_cache_hits_total",
			Help: "Total CachedFile.Find calls served from the decode cache.",
		}),
		DecodeCacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "postctl_decode_cache_misses_total",
			Help: "Total CachedFile.Find calls that missed the decode cache.",
		}),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "postctl_queries_total",
			Help: "Total rank queries by ranker kind.",
		}, []string{"ranker"}),
		QueryLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "postctl_query_latency_seconds",
			Help:    "Rank query latency in seconds by ranker kind.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"ranker"}),
		ResultsReturned: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "postctl_results_returned",
			Help:    "Number of hits returned per rank query.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}

	prometheus.MustRegister(
		m.DocsIndexedTotal,
		m.ChunksSpilledTotal,
		m.ChunksMergedTotal,
		m.BuildDuration,
		m.DecodeCacheHitsTotal,
		m.DecodeCacheMissesTotal,
		m.QueriesTotal,
		m.QueryLatency,
		m.ResultsReturned,
	)

	return m
}

// Handler exposes the registered collectors for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
