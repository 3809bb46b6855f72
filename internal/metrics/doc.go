// Package metrics defines the Prometheus collectors for the thumbnail
// pipeline: cache effectiveness, decode outcomes, generation latency and
// worker pool state.
//
// Collectors are registered with the default registry via promauto at
// package load.
package metrics
