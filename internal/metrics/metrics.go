package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Thumbnail cache metrics
var (
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_browser_thumb_cache_hits_total",
			Help: "Total number of thumbnail cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_browser_thumb_cache_misses_total",
			Help: "Total number of thumbnail cache misses (including unreadable cache entries)",
		},
	)

	CacheWriteBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_browser_thumb_cache_write_bytes_total",
			Help: "Total bytes written to the thumbnail cache",
		},
	)

	CacheWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_browser_thumb_cache_write_failures_total",
			Help: "Total number of failed thumbnail cache writes",
		},
	)
)

// Thumbnail generation metrics
var (
	// GeneratedTotal counts delivered thumbnails by decode source:
	// cache, hifi, generic, video, or placeholder.
	GeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_browser_thumbs_generated_total",
			Help: "Total number of thumbnails delivered, by decode source",
		},
		[]string{"source"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "asset_browser_thumb_generation_duration_seconds",
			Help:    "Thumbnail generation duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "asset_browser_thumb_queue_depth",
			Help: "Number of thumbnail tasks waiting or in flight",
		},
	)

	PoolWorkers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "asset_browser_thumb_pool_workers",
			Help: "Number of workers in the thumbnail pool",
		},
	)
)

// Filesystem resilience metrics. Asset folders commonly live on NFS project
// shares, where stale file handles are routine during server-side changes.
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_browser_fs_retry_attempts_total",
			Help: "Total number of filesystem operation retries, by operation",
		},
		[]string{"operation"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_browser_fs_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_browser_fs_retry_failures_total",
			Help: "Total number of filesystem operations that failed after all retries",
		},
		[]string{"operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_browser_fs_stale_errors_total",
			Help: "Total number of NFS stale file handle errors observed",
		},
		[]string{"operation"},
	)
)

// Memory backpressure metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "asset_browser_memory_usage_ratio",
			Help: "Current heap usage as a fraction of the configured limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "asset_browser_memory_paused",
			Help: "Whether thumbnail decoding is paused for memory pressure (0 or 1)",
		},
	)

	MemoryGCPauses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "asset_browser_memory_gc_pauses_total",
			Help: "Total number of GC cycles forced by memory pressure",
		},
	)
)
