package media

import (
	"math"
	"testing"
)

func uniformFrame(w, h int, v float32) *FloatFrame {
	f := NewFloatFrame(w, h, 3)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

// tonemapped value of v under exposure scale s.
func tonemapValue(v, s float64) float64 {
	x := v * s
	x = x / (1 + x)
	return math.Pow(x, 1.0/2.2)
}

func TestTonemapUniform(t *testing.T) {
	f := uniformFrame(4, 4, 0.5)
	Tonemap(f)

	// p95 of a uniform image is its value, so scale = 0.85/0.5.
	want := tonemapValue(0.5, 0.85/0.5)
	for i, got := range f.Pix {
		if math.Abs(float64(got)-want) > 1e-5 {
			t.Fatalf("Pix[%d] = %v, want %v", i, got, want)
		}
	}
}

func TestTonemapOutlierRobust(t *testing.T) {
	// 99 mid-gray pixels and one very bright outlier: the 95th percentile
	// exposure must track the bulk, not the outlier.
	f := uniformFrame(10, 10, 0.5)
	f.Pix[0], f.Pix[1], f.Pix[2] = 1000, 1000, 1000
	Tonemap(f)

	want := tonemapValue(0.5, 0.85/0.5)
	if math.Abs(float64(f.Pix[3])-want) > 1e-5 {
		t.Errorf("bulk pixel = %v, want %v (outlier dominated the exposure)", f.Pix[3], want)
	}
	if f.Pix[0] <= f.Pix[3] || f.Pix[0] > 1 {
		t.Errorf("outlier pixel = %v, want in (%v, 1]", f.Pix[0], f.Pix[3])
	}
}

func TestTonemapNonFinite(t *testing.T) {
	f := uniformFrame(2, 2, 1.0)
	f.Pix[0] = float32(math.NaN())
	f.Pix[1] = float32(math.Inf(1))
	f.Pix[2] = float32(math.Inf(-1))
	Tonemap(f)

	for i, v := range f.Pix {
		v64 := float64(v)
		if math.IsNaN(v64) || math.IsInf(v64, 0) || v64 < 0 || v64 > 1 {
			t.Errorf("Pix[%d] = %v, want finite in [0,1]", i, v)
		}
	}
	if f.Pix[0] != 0 {
		t.Errorf("NaN should map to 0, got %v", f.Pix[0])
	}
}

func TestTonemapAllZero(t *testing.T) {
	f := uniformFrame(3, 3, 0)
	Tonemap(f)
	for i, v := range f.Pix {
		if v != 0 {
			t.Errorf("Pix[%d] = %v, want 0", i, v)
		}
	}
}

func TestTonemapHDRRange(t *testing.T) {
	// Float samples spread across [0, 50], as from an EXR render.
	f := NewFloatFrame(10, 10, 3)
	for i := range f.Pix {
		f.Pix[i] = float32(i) * 50.0 / float32(len(f.Pix)-1)
	}
	Tonemap(f)

	for i, v := range f.Pix {
		v64 := float64(v)
		if math.IsNaN(v64) || math.IsInf(v64, 0) || v64 < 0 || v64 > 1 {
			t.Fatalf("Pix[%d] = %v, want finite in [0,1]", i, v)
		}
	}
}

func TestNeedsTonemap(t *testing.T) {
	tests := []struct {
		name string
		path string
		max  float32
		want bool
	}{
		{"EXR always", "/a/render.exr", 0.5, true},
		{"HDR always", "/a/probe.hdr", 0.5, true},
		{"LDR png", "/a/photo.png", 1.1, false},
		{"Bright png", "/a/scan.png", 5.0, true},
		{"Blown-out highlights", "/a/scan.tiff", float32(math.Inf(1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := uniformFrame(2, 2, tt.max)
			if got := NeedsTonemap(tt.path, f); got != tt.want {
				t.Errorf("NeedsTonemap(%q, max=%v) = %v, want %v", tt.path, tt.max, got, tt.want)
			}
		})
	}

	// A single clipped highlight is enough to trip the heuristic.
	f := uniformFrame(2, 2, 0.5)
	f.Pix[0] = float32(math.Inf(1))
	if !NeedsTonemap("/a/photo.tiff", f) {
		t.Error("frame with a +Inf sample should be tonemapped")
	}

	// An all-NaN frame falls back to the extension check.
	f = uniformFrame(1, 1, float32(math.NaN()))
	if NeedsTonemap("/a/photo.png", f) {
		t.Error("all-NaN frame should not trigger heuristic tonemap")
	}
}

func TestClip(t *testing.T) {
	f := &FloatFrame{W: 1, H: 2, C: 3, Pix: []float32{-1, 0, 0.5, 2, float32(math.NaN()), 1}}
	Clip(f)
	want := []float32{0, 0, 0.5, 1, 0, 1}
	for i, w := range want {
		if f.Pix[i] != w {
			t.Errorf("Pix[%d] = %v, want %v", i, f.Pix[i], w)
		}
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		p      float64
		want   float64
	}{
		{"Single value", []float64{3}, 95, 3},
		{"Interpolated", []float64{1, 2, 3, 4}, 95, 3.85},
		{"Median", []float64{1, 2, 3}, 50, 2},
		{"Top", []float64{1, 2}, 100, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := percentile(tt.values, tt.p); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("percentile(%v, %v) = %v, want %v", tt.values, tt.p, got, tt.want)
			}
		})
	}
}
