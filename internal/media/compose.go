package media

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Thumbnails are composited onto a fixed 16:9 canvas regardless of source
// aspect ratio.
const (
	aspectNumerator   = 9
	aspectDenominator = 16
)

// Background is the neutral canvas color behind letterboxed content.
var Background = color.NRGBA{R: 30, G: 28, B: 28, A: 255}

// placeholderInk is the color of placeholder marker glyphs.
var placeholderInk = color.NRGBA{R: 200, G: 200, B: 200, A: 255}

// Placeholder marker labels.
const (
	// ArchiveMarker marks files that live inside a compressed archive.
	ArchiveMarker = "ZIP"
	// UnknownMarker marks files that failed or are unsupported.
	UnknownMarker = "?"
)

// CanvasSize returns the canvas dimensions for a target width.
func CanvasSize(width int) (int, int) {
	return width, width * aspectNumerator / aspectDenominator
}

// Compose scales src to fit a width x floor(width*9/16) canvas, preserving
// its aspect ratio, and pastes it centered on the neutral background.
func Compose(src image.Image, width int) *image.NRGBA {
	canvasW, canvasH := CanvasSize(width)

	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW <= 0 || srcH <= 0 {
		return Placeholder(width, UnknownMarker)
	}

	scale := math.Min(float64(canvasW)/float64(srcW), float64(canvasH)/float64(srcH))
	newW := int(math.Round(float64(srcW) * scale))
	newH := int(math.Round(float64(srcH) * scale))
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	resized := imaging.Resize(src, newW, newH, imaging.Lanczos)
	canvas := imaging.New(canvasW, canvasH, Background)
	return imaging.Paste(canvas, resized, image.Pt((canvasW-newW)/2, (canvasH-newH)/2))
}

// Placeholder renders a canvas with a marker glyph centered on the neutral
// background. The pipeline never returns "no thumbnail": failures get a
// placeholder plus explanatory metadata instead.
func Placeholder(width int, marker string) *image.NRGBA {
	canvasW, canvasH := CanvasSize(width)
	canvas := imaging.New(canvasW, canvasH, Background)

	face := basicfont.Face7x13
	advance := font.MeasureString(face, marker).Ceil()
	x := (canvasW - advance) / 2
	y := (canvasH + face.Metrics().Ascent.Ceil()) / 2

	d := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(placeholderInk),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(marker)
	return canvas
}
