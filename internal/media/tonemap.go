package media

import (
	"math"
	"sort"

	"github.com/VijayPandit2001/Asset-Browser/internal/mediatypes"
)

// hdrDetectThreshold: linear HDR data rarely fits in [0, 1.2], so any sample
// above it marks the image as HDR even without an HDR extension.
const hdrDetectThreshold = 1.2

// NeedsTonemap reports whether a decoded float frame should be tonemapped:
// either the extension is a known HDR format, or some sample exceeds the
// detection threshold. +Inf samples count as exceeding it; Tonemap's
// sanitize pass clamps them to a finite bound afterwards. Only NaN is
// ignored, so an all-NaN frame falls back to the extension check alone.
func NeedsTonemap(path string, f *FloatFrame) bool {
	if mediatypes.IsHDR(path) {
		return true
	}
	if max, ok := f.MaxSample(); ok && float64(max) > hdrDetectThreshold {
		return true
	}
	return false
}

// Tonemap compresses an HDR frame into the [0,1] display range in place.
// The frame must have three channels.
//
// The steps are: sanitize non-finite samples, expose so the 95th percentile
// of positive luminance maps to 0.85, compress with Reinhard x/(1+x), clip,
// and gamma-encode at 1/2.2. The operation is global and single pass, so it
// is independent of pixel order.
func Tonemap(f *FloatFrame) {
	for i, v := range f.Pix {
		f.Pix[i] = sanitize(v)
	}

	n := f.W * f.H
	lum := make([]float64, n)
	for i := 0; i < n; i++ {
		src := i * 3
		lum[i] = 0.2126*float64(f.Pix[src]) + 0.7152*float64(f.Pix[src+1]) + 0.0722*float64(f.Pix[src+2])
	}

	positive := lum[:0:0]
	for _, l := range lum {
		if l > 0 {
			positive = append(positive, l)
		}
	}

	p95 := 1.0
	if len(lum) > 0 {
		if len(positive) > 0 {
			p95 = percentile(positive, 95)
		} else {
			p95 = percentile(lum, 95)
		}
	}

	scale := 0.85 / math.Max(p95, 1e-6)
	for i, v := range f.Pix {
		x := float64(v) * scale
		x = x / (1.0 + x)
		if x < 0 {
			x = 0
		} else if x > 1 {
			x = 1
		}
		f.Pix[i] = float32(math.Pow(x, 1.0/2.2))
	}
}

// Clip clamps all samples to [0,1] in place. It is the non-HDR counterpart
// of Tonemap.
func Clip(f *FloatFrame) {
	for i, v := range f.Pix {
		switch {
		case v < 0 || math.IsNaN(float64(v)):
			f.Pix[i] = 0
		case v > 1:
			f.Pix[i] = 1
		}
	}
}

// sanitize replaces NaN with 0 and clamps infinities to a large finite bound.
func sanitize(v float32) float32 {
	v64 := float64(v)
	switch {
	case math.IsNaN(v64):
		return 0
	case math.IsInf(v64, 1):
		return 1e4
	case math.IsInf(v64, -1):
		return 0
	}
	return v
}

// percentile computes the p-th percentile with linear interpolation between
// the two nearest ranks. values is copied before sorting.
func percentile(values []float64, p float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)

	if len(s) == 1 {
		return s[0]
	}
	rank := p / 100 * float64(len(s)-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	if hi >= len(s) {
		return s[len(s)-1]
	}
	frac := rank - float64(lo)
	return s[lo]*(1-frac) + s[hi]*frac
}
