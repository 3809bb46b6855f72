// Package thumbnail orchestrates thumbnail generation: per-request pipeline
// (cache lookup, decode with ordered fallback, composite, cache write) and
// the bounded worker pool that runs requests concurrently.
//
// Every task delivers exactly one Result, and no failure inside a task can
// abort the pipeline or crash the pool; the worst case is a placeholder
// canvas with explanatory metadata.
package thumbnail
