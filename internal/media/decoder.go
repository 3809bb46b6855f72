package media

import (
	"image"
	"path/filepath"
	"strings"

	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
	"github.com/VijayPandit2001/Asset-Browser/internal/mediatypes"
)

// Decoder produces best-effort RGB rasters and metadata strings for
// arbitrary paths. All decode methods fail soft: an unreadable or
// unsupported file yields a nil image, never an error, and the caller
// decides which decoder to try next.
type Decoder struct {
	reader  Reader
	videos  mediatypes.FormatSet
	tonemap bool
}

// NewDecoder builds a Decoder. reader is the high-fidelity capability
// selected at startup; videos is the recognized video format snapshot, used
// to keep video containers away from the image readers; tonemapHDR controls
// whether HDR frames are tonemapped or merely clipped.
func NewDecoder(reader Reader, videos mediatypes.FormatSet, tonemapHDR bool) *Decoder {
	return &Decoder{reader: reader, videos: videos, tonemap: tonemapHDR}
}

// HiFiFrame decodes path with the high-fidelity reader, normalizes the
// channels to RGB, and maps the samples into the display range (tonemapping
// HDR content). Returns nil when the capability is unavailable, the format
// is unsupported, or the path is a recognized video container.
func (d *Decoder) HiFiFrame(path string) image.Image {
	if !d.reader.Available() {
		logging.Debug("High-fidelity reader not available; skipping %s", path)
		return nil
	}
	if d.videos.Contains(path) {
		logging.Debug("Skipping high-fidelity read for video file: %s", path)
		return nil
	}

	frame, err := d.reader.ReadImage(path)
	if err != nil {
		logging.Debug("High-fidelity read failed for %s: %v", path, err)
		return nil
	}
	if frame == nil || len(frame.Pix) == 0 {
		return nil
	}

	frame = frame.NormalizeChannels()
	if d.tonemap && NeedsTonemap(path, frame) {
		logging.Debug("Tonemapping HDR image: %s", path)
		Tonemap(frame)
	} else {
		Clip(frame)
	}
	return frame.ToNRGBA()
}

// GenericFrame decodes path with the general-purpose 8-bit decoders.
// Returns nil on failure.
func (d *Decoder) GenericFrame(path string) image.Image {
	img, err := decodeGeneric(path)
	if err != nil {
		logging.Debug("Generic decode failed for %s: %v", path, err)
		return nil
	}
	return img
}

// VideoFrame extracts one representative frame from a video container.
// Returns nil on failure, including paths inside archives.
func (d *Decoder) VideoFrame(path string) image.Image {
	return extractVideoFrame(path)
}

// ImageMetadata returns the structural metadata for an image path, or "" if
// none could be read. Video containers are reported with a short type label
// instead of being probed as images.
func (d *Decoder) ImageMetadata(path string) string {
	if d.videos.Contains(path) {
		return "Video file: " + strings.ToUpper(filepath.Ext(path))
	}
	if !d.reader.Available() {
		return ""
	}
	meta, err := d.reader.ReadMetadata(path)
	if err != nil {
		logging.Debug("Metadata read failed for %s: %v", path, err)
		return ""
	}
	return meta
}

// VideoMetadata returns the metadata text for a video path. It never fails;
// unreadable files get a descriptive fallback text.
func (d *Decoder) VideoMetadata(path string) string {
	return videoMetadata(path)
}

// IsVideo reports whether path is classified as a video by this decoder's
// format snapshot.
func (d *Decoder) IsVideo(path string) bool {
	return d.videos.Contains(path)
}
