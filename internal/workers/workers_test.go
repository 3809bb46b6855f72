package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	t.Setenv("THUMBNAIL_WORKERS", "")
	available := runtime.GOMAXPROCS(0)

	tests := []struct {
		name       string
		multiplier float64
		limit      int
		want       int
	}{
		{"CPU bound", 1.0, 0, available},
		{"Mixed", 1.5, 0, int(float64(available) * 1.5)},
		{"Capped", 8.0, 2, 2},
		{"Minimum one", 0.0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Count(tt.multiplier, tt.limit); got != tt.want {
				t.Errorf("Count(%v, %d) = %d, want %d", tt.multiplier, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCountOverride(t *testing.T) {
	t.Setenv("THUMBNAIL_WORKERS", "7")
	if got := Count(1.0, 0); got != 7 {
		t.Errorf("Count with override = %d, want 7", got)
	}
	if got := Count(1.0, 4); got != 4 {
		t.Errorf("Count with override and limit = %d, want 4", got)
	}

	t.Setenv("THUMBNAIL_WORKERS", "not-a-number")
	if got := Count(1.0, 0); got < 1 {
		t.Errorf("Count with bad override = %d, want >= 1", got)
	}
}

func TestForThumbnails(t *testing.T) {
	t.Setenv("THUMBNAIL_WORKERS", "")
	if got := ForThumbnails(0); got < 1 {
		t.Errorf("ForThumbnails(0) = %d, want >= 1", got)
	}
	if got := ForThumbnails(3); got > 3 {
		t.Errorf("ForThumbnails(3) = %d, want <= 3", got)
	}
}
