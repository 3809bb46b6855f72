package thumbnail

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"github.com/VijayPandit2001/Asset-Browser/internal/cachekey"
	"github.com/VijayPandit2001/Asset-Browser/internal/filesystem"
	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
	"github.com/VijayPandit2001/Asset-Browser/internal/media"
	"github.com/VijayPandit2001/Asset-Browser/internal/mediatypes"
	"github.com/VijayPandit2001/Asset-Browser/internal/metrics"
)

// Request describes one thumbnail to generate.
type Request struct {
	// Path is the absolute path of the source asset.
	Path string
	// Size is the target thumbnail width in pixels.
	Size int
	// CacheRoot is the cache directory for the folder being browsed, as
	// computed by cachekey.CacheRoot.
	CacheRoot string
}

// Result is the outcome of one request. Image is never nil: failures
// produce a placeholder canvas with explanatory metadata instead. A Result
// is delivered exactly once per request and is immutable afterwards.
type Result struct {
	Path string
	// Image is the composited 16:9 canvas.
	Image *image.NRGBA
	// Meta is the human-readable metadata text for the source file.
	Meta string
}

// Generator runs the thumbnail pipeline for single requests: cache lookup,
// decode with ordered fallback, composite, cache write, all with soft
// failure semantics. A Generator is safe for concurrent use; the only
// shared state between concurrent calls is the filesystem cache.
type Generator struct {
	dec          *media.Decoder
	images       mediatypes.FormatSet
	videos       mediatypes.FormatSet
	cacheEnabled bool
}

// NewGenerator builds a Generator. The format sets are read-only snapshots
// for the lifetime of the Generator.
func NewGenerator(dec *media.Decoder, images, videos mediatypes.FormatSet, cacheEnabled bool) *Generator {
	return &Generator{dec: dec, images: images, videos: videos, cacheEnabled: cacheEnabled}
}

// Generate produces the thumbnail for req. It never returns an error: any
// failure degrades to a placeholder result.
func (g *Generator) Generate(req Request) Result {
	logging.Debug("Thumbnail task start: path=%s size=%d", req.Path, req.Size)
	start := time.Now()

	res := g.makeThumbnail(req)

	metrics.GenerationDuration.Observe(time.Since(start).Seconds())
	logging.Debug("Thumbnail task done: path=%s meta_len=%d", req.Path, len(res.Meta))
	return res
}

func (g *Generator) makeThumbnail(req Request) Result {
	var cachePath string
	if g.cacheEnabled {
		if err := os.MkdirAll(req.CacheRoot, 0755); err != nil {
			logging.Warn("Failed to create cache root %s: %v", req.CacheRoot, err)
		} else {
			var err error
			cachePath, err = cachekey.CachePath(req.CacheRoot, req.Path)
			if err != nil {
				logging.Warn("Failed to resolve cache path for %s: %v", req.Path, err)
				cachePath = ""
			}
		}
	}

	// Cache lookup. An unreadable or partially written entry is exactly a
	// miss: a concurrent first-writer may still be flushing it, and the
	// worst case is one redundant decode.
	if cachePath != "" {
		if img := readCacheEntry(cachePath); img != nil {
			logging.Debug("Cache hit for %s -> %s", req.Path, cachePath)
			metrics.CacheHits.Inc()
			metrics.GeneratedTotal.WithLabelValues("cache").Inc()
			// Pixels are cached; metadata never is. It is cheap and may
			// describe a file whose reader capabilities have changed.
			return Result{Path: req.Path, Image: imaging.Clone(img), Meta: g.freshMetadata(req.Path)}
		}
		metrics.CacheMisses.Inc()
	}

	frame, meta, source := g.decode(req.Path)

	if frame == nil {
		// Placeholders are derived from the failure, not the content, so
		// they are never cached; a later run may have better decoders.
		canvas, fallbackMeta := g.placeholder(req)
		if meta == "" {
			meta = fallbackMeta
		}
		metrics.GeneratedTotal.WithLabelValues("placeholder").Inc()
		return Result{Path: req.Path, Image: canvas, Meta: meta}
	}

	canvas := media.Compose(frame, req.Size)

	if cachePath != "" {
		if err := imaging.Save(canvas, cachePath); err != nil {
			logging.Warn("Failed to write cache %s: %v", cachePath, err)
			metrics.CacheWriteFailures.Inc()
		} else if st, err := os.Stat(cachePath); err == nil {
			logging.Debug("Wrote cache thumbnail: %s", cachePath)
			metrics.CacheWriteBytes.Add(float64(st.Size()))
		}
	}

	metrics.GeneratedTotal.WithLabelValues(source).Inc()
	return Result{Path: req.Path, Image: canvas, Meta: meta}
}

// readCacheEntry loads a cached thumbnail, or nil on any failure. The cache
// lives beside the assets on the same share, so the open retries stale NFS
// handles like every other asset read.
func readCacheEntry(cachePath string) image.Image {
	file, err := filesystem.OpenWithRetry(cachePath, filesystem.DefaultRetryConfig())
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Debug("Cache read failed for %s: %v", cachePath, err)
		}
		return nil
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		logging.Debug("Cache entry undecodable %s: %v", cachePath, err)
		return nil
	}
	return img
}

// decode classifies the source and runs the ordered decoder chain for its
// class. It returns a nil image on soft failure, the metadata text gathered
// along the way, and a label describing which decoder produced the frame.
func (g *Generator) decode(path string) (image.Image, string, string) {
	norm := filepath.Clean(path)

	switch mediatypes.Classify(norm, g.images, g.videos) {
	case mediatypes.FileTypeVideo:
		logging.Debug("Loading video frame for %s", norm)
		return g.dec.VideoFrame(norm), g.dec.VideoMetadata(norm), "video"

	case mediatypes.FileTypeImage:
		logging.Debug("Loading image via high-fidelity reader for %s", norm)
		meta := g.dec.ImageMetadata(norm)
		if frame := g.dec.HiFiFrame(norm); frame != nil {
			return frame, meta, "hifi"
		}
		return g.dec.GenericFrame(norm), meta, "generic"

	default:
		// Unrecognized extension: the generic decoder is the safer first
		// attempt.
		logging.Debug("Unknown extension, trying generic decode for %s", norm)
		meta := g.dec.ImageMetadata(norm)
		if frame := g.dec.GenericFrame(norm); frame != nil {
			return frame, meta, "generic"
		}
		return g.dec.HiFiFrame(norm), meta, "hifi"
	}
}

// freshMetadata recomputes metadata for a cache hit.
func (g *Generator) freshMetadata(path string) string {
	if g.videos.Contains(path) {
		return g.dec.VideoMetadata(path)
	}
	return g.dec.ImageMetadata(path)
}

// placeholder builds the failure canvas and its fallback metadata.
func (g *Generator) placeholder(req Request) (*image.NRGBA, string) {
	if archive := mediatypes.ArchiveName(req.Path); archive != "" {
		logging.Debug("File is inside archive, using archive placeholder: %s", req.Path)
		meta := fmt.Sprintf("File in compressed archive: %s\nExtract archive to view content", archive)
		return media.Placeholder(req.Size, media.ArchiveMarker), meta
	}
	logging.Debug("Failed to load media for thumbnail, using placeholder: %s", req.Path)
	return media.Placeholder(req.Size, media.UnknownMarker), "(unsupported or failed to load)"
}
