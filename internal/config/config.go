package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/VijayPandit2001/Asset-Browser/internal/mediatypes"
	"github.com/VijayPandit2001/Asset-Browser/internal/workers"
)

// Settings holds the thumbnail pipeline configuration. A Settings value is a
// read-only snapshot: it is loaded once, threaded into the tasks it applies
// to, and never mutated. Changing settings affects only tasks submitted
// afterwards.
type Settings struct {
	// ThumbSize is the target thumbnail width in pixels; the height is
	// derived from the fixed 16:9 aspect ratio.
	ThumbSize int `yaml:"thumb_size"`
	// CacheEnabled controls whether generated thumbnails are persisted to
	// and read from the on-disk cache.
	CacheEnabled bool `yaml:"cache_enabled"`
	// HDRTonemap controls whether HDR-classified images are tonemapped.
	// When false they are clipped to the display range instead.
	HDRTonemap bool `yaml:"hdr_tonemap"`
	// UseVips controls whether the libvips high-fidelity reader is used.
	// When false (or when vips is unavailable) only the generic decoder
	// runs.
	UseVips bool `yaml:"use_vips"`
	// ThreadCount is the worker pool size; 0 means auto-detect from the
	// available CPUs.
	ThreadCount int `yaml:"thread_count"`
	// ImageFormats and VideoFormats are the recognized extensions.
	ImageFormats []string `yaml:"image_formats"`
	VideoFormats []string `yaml:"video_formats"`
	// Projects lists registered project root directories. A browsed folder
	// inside a project gets its cache under the project root.
	Projects []string `yaml:"projects"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ThumbSize:    256,
		CacheEnabled: true,
		HDRTonemap:   true,
		UseVips:      true,
		ThreadCount:  0,
		ImageFormats: mediatypes.DefaultImageExtensions,
		VideoFormats: mediatypes.DefaultVideoExtensions,
	}
}

// Load reads settings from a YAML file, filling unset fields with defaults.
// A missing file is not an error; it yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s.normalized(), nil
}

func (s Settings) normalized() Settings {
	if s.ThumbSize < 16 {
		s.ThumbSize = Default().ThumbSize
	}
	if len(s.ImageFormats) == 0 {
		s.ImageFormats = mediatypes.DefaultImageExtensions
	}
	if len(s.VideoFormats) == 0 {
		s.VideoFormats = mediatypes.DefaultVideoExtensions
	}
	return s
}

// ImageSet returns the recognized image extensions as a FormatSet.
func (s Settings) ImageSet() mediatypes.FormatSet {
	return mediatypes.NewFormatSet(s.ImageFormats)
}

// VideoSet returns the recognized video extensions as a FormatSet.
func (s Settings) VideoSet() mediatypes.FormatSet {
	return mediatypes.NewFormatSet(s.VideoFormats)
}

// Workers resolves the worker pool size, falling back to a CPU-based count
// when ThreadCount is unset.
func (s Settings) Workers() int {
	if s.ThreadCount > 0 {
		return s.ThreadCount
	}
	return workers.ForThumbnails(0)
}
