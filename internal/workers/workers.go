package workers

import (
	"os"
	"runtime"
	"strconv"
)

// Count returns a worker count for the thumbnail pool. It respects container
// CPU limits via GOMAXPROCS (Go 1.19+) and applies a multiplier for the task
// mix:
//
//   - 1.0 for CPU-bound work
//   - 2.0 for I/O-bound work
//   - 1.5 for mixed work (thumbnail decode is mixed: disk reads plus
//     decode/resize CPU)
//
// The limit parameter caps the count; use 0 for no cap. The
// THUMBNAIL_WORKERS environment variable overrides everything.
func Count(multiplier float64, limit int) int {
	if override := os.Getenv("THUMBNAIL_WORKERS"); override != "" {
		if count, err := strconv.Atoi(override); err == nil && count > 0 {
			return capped(count, limit)
		}
	}

	available := runtime.GOMAXPROCS(0)
	count := int(float64(available) * multiplier)
	if count < 1 {
		count = 1
	}
	return capped(count, limit)
}

func capped(count, limit int) int {
	if limit > 0 && count > limit {
		return limit
	}
	return count
}

// ForThumbnails returns the worker count for thumbnail generation, which is
// a mix of CPU-bound decode work and blocking file I/O.
func ForThumbnails(limit int) int {
	return Count(1.5, limit)
}
