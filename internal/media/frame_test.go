package media

import (
	"math"
	"testing"
)

func TestNormalizeChannels(t *testing.T) {
	tests := []struct {
		name string
		c    int
		in   []float32
		want []float32 // first pixel after normalization
	}{
		{"Gray replicated", 1, []float32{0.5}, []float32{0.5, 0.5, 0.5}},
		{"Two channels padded", 2, []float32{0.25, 0.75}, []float32{0.25, 0.75, 0}},
		{"RGB untouched", 3, []float32{0.1, 0.2, 0.3}, []float32{0.1, 0.2, 0.3}},
		{"Alpha dropped", 4, []float32{0.1, 0.2, 0.3, 1.0}, []float32{0.1, 0.2, 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &FloatFrame{W: 1, H: 1, C: tt.c, Pix: tt.in}
			out := f.NormalizeChannels()
			if out.C != 3 {
				t.Fatalf("C = %d, want 3", out.C)
			}
			for i, want := range tt.want {
				if out.Pix[i] != want {
					t.Errorf("Pix[%d] = %v, want %v", i, out.Pix[i], want)
				}
			}
		})
	}
}

func TestMaxSample(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	f := &FloatFrame{W: 2, H: 1, C: 3, Pix: []float32{0.1, nan, 0.9, 0.9, 0.2, 0.3}}
	max, ok := f.MaxSample()
	if !ok || max != 0.9 {
		t.Errorf("MaxSample = (%v, %v), want (0.9, true)", max, ok)
	}

	// +Inf is a real sample, not noise to skip.
	f.Pix[2] = inf
	max, ok = f.MaxSample()
	if !ok || !math.IsInf(float64(max), 1) {
		t.Errorf("MaxSample = (%v, %v), want (+Inf, true)", max, ok)
	}

	empty := &FloatFrame{W: 1, H: 1, C: 3, Pix: []float32{nan, nan, nan}}
	if _, ok := empty.MaxSample(); ok {
		t.Error("expected no usable samples in an all-NaN frame")
	}
}

func TestToNRGBA(t *testing.T) {
	f := &FloatFrame{W: 2, H: 1, C: 3, Pix: []float32{0, 0.5, 1, 1, 0, 0.25}}
	img := f.ToNRGBA()

	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	want := []uint8{0, 128, 255, 255, 255, 0, 64, 255}
	for i, w := range want {
		if img.Pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, img.Pix[i], w)
		}
	}
}

func TestQuantizeClamps(t *testing.T) {
	if quantize(-0.5) != 0 {
		t.Error("negative values should clamp to 0")
	}
	if quantize(2.0) != 255 {
		t.Error("values above 1 should clamp to 255")
	}
}
