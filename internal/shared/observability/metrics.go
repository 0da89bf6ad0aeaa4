package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	SignatureAnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tsdocs_signature_analysis_seconds",
		Help:    "Time spent parsing a type-signature string.",
		Buckets: prometheus.DefBuckets,
	})

	CacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tsdocs_cache_hits_total",
		Help: "Total number of bounded-cache hits.",
	}, []string{"cache"})

	CacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tsdocs_cache_misses_total",
		Help: "Total number of bounded-cache misses.",
	}, []string{"cache"})

	ReferenceResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tsdocs_reference_resolutions_total",
		Help: "Total number of reference resolutions by outcome.",
	}, []string{"result"})

	EntitiesRenderedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tsdocs_entities_rendered_total",
		Help: "Total number of documented entities rendered.",
	})

	RenderTruncationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tsdocs_render_truncations_total",
		Help: "Total number of output nodes truncated at the depth ceiling.",
	})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tsdocs_generation_seconds",
		Help:    "Time spent on high-level generation tasks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})
)
