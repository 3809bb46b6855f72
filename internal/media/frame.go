package media

import (
	"image"
	"math"
)

// FloatFrame is a decoded floating-point raster in row-major order with
// interleaved channels: len(Pix) == H*W*C. It is produced by the
// high-fidelity reader and exclusively owned by the task that requested it.
type FloatFrame struct {
	W, H, C int
	Pix     []float32
}

// NewFloatFrame allocates a zero-filled frame.
func NewFloatFrame(w, h, c int) *FloatFrame {
	return &FloatFrame{W: w, H: h, C: c, Pix: make([]float32, w*h*c)}
}

// NormalizeChannels converts the frame to exactly three channels:
// one channel is replicated to gray RGB, two channels get a zero third
// channel, and anything beyond three (alpha, extra AOVs) is discarded.
func (f *FloatFrame) NormalizeChannels() *FloatFrame {
	if f.C == 3 {
		return f
	}

	out := NewFloatFrame(f.W, f.H, 3)
	n := f.W * f.H
	for i := 0; i < n; i++ {
		src := i * f.C
		dst := i * 3
		switch {
		case f.C == 1:
			v := f.Pix[src]
			out.Pix[dst], out.Pix[dst+1], out.Pix[dst+2] = v, v, v
		case f.C == 2:
			out.Pix[dst] = f.Pix[src]
			out.Pix[dst+1] = f.Pix[src+1]
		default: // >= 3: keep the first three channels
			out.Pix[dst] = f.Pix[src]
			out.Pix[dst+1] = f.Pix[src+1]
			out.Pix[dst+2] = f.Pix[src+2]
		}
	}
	return out
}

// MaxSample returns the largest sample ignoring NaN, and false if every
// sample is NaN. Infinities are ordinary values here, so a +Inf sample wins
// over any finite one.
func (f *FloatFrame) MaxSample() (float32, bool) {
	max := float32(math.Inf(-1))
	found := false
	for _, v := range f.Pix {
		if math.IsNaN(float64(v)) {
			continue
		}
		if !found || v > max {
			max = v
			found = true
		}
	}
	return max, found
}

// ToNRGBA converts a three-channel frame with samples in [0,1] to an 8-bit
// image, rounding half up.
func (f *FloatFrame) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.W, f.H))
	n := f.W * f.H
	for i := 0; i < n; i++ {
		src := i * 3
		dst := i * 4
		img.Pix[dst] = quantize(f.Pix[src])
		img.Pix[dst+1] = quantize(f.Pix[src+1])
		img.Pix[dst+2] = quantize(f.Pix[src+2])
		img.Pix[dst+3] = 0xff
	}
	return img
}

func quantize(v float32) uint8 {
	x := float64(v)*255.0 + 0.5
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}
