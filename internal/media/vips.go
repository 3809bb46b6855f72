package media

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
)

var (
	vipsInitMutex   sync.Mutex
	vipsInitialized bool
	vipsAvailable   bool
)

// maxMetadataAttrs bounds the number of extra attribute lines reported per
// image; EXR renders can carry hundreds of AOV and camera attributes.
const maxMetadataAttrs = 64

// InitVips initializes the libvips library. It should be called once at
// startup, before any tasks are submitted.
func InitVips() error {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return nil
	}

	// Forward vips diagnostics into our logger, filtered by our level.
	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch {
		case level <= vips.LogLevelError:
			logging.Error("[%s] %s", domain, msg)
		case level == vips.LogLevelWarning:
			logging.Warn("[%s] %s", domain, msg)
		default:
			logging.Debug("[%s] %s", domain, msg)
		}
	}, vips.LogLevelWarning)

	// Conservative memory settings: decode work is parallelized at the
	// task level, not inside vips.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
		ReportLeaks:      false,
	})

	vipsInitialized = true
	vipsAvailable = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
	return nil
}

// ShutdownVips cleans up libvips resources.
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		vipsAvailable = false
	}
}

// IsVipsAvailable returns whether libvips is initialized.
func IsVipsAvailable() bool {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()
	return vipsAvailable
}

// SelectReader picks the high-fidelity Reader for this process: the vips
// reader when enabled and initialized, otherwise the null reader.
func SelectReader(enabled bool) Reader {
	if enabled && IsVipsAvailable() {
		return vipsReader{}
	}
	if enabled {
		logging.Warn("libvips not initialized; high-fidelity decode disabled")
	}
	return UnavailableReader()
}

// vipsReader implements Reader on top of libvips.
type vipsReader struct{}

func (vipsReader) Available() bool { return true }

// ReadImage decodes path into a float frame.
func (vipsReader) ReadImage(path string) (*FloatFrame, error) {
	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips load %s: %w", filepath.Base(path), err)
	}
	defer ref.Close()

	w, h, bands := ref.Width(), ref.Height(), ref.Bands()
	if w <= 0 || h <= 0 || bands <= 0 {
		return nil, fmt.Errorf("vips load %s: empty image", filepath.Base(path))
	}

	// Integer band formats carry their native range; record the divisor
	// before casting so samples land in [0,1] like true float formats.
	divisor := bandDivisor(ref.BandFormat())

	if err := ref.Cast(vips.BandFormatFloat); err != nil {
		return nil, fmt.Errorf("vips cast %s: %w", filepath.Base(path), err)
	}

	raw, err := ref.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("vips read %s: %w", filepath.Base(path), err)
	}

	want := w * h * bands * 4
	if len(raw) < want {
		return nil, fmt.Errorf("vips read %s: short pixel buffer (%d < %d)", filepath.Base(path), len(raw), want)
	}

	frame := NewFloatFrame(w, h, bands)
	for i := range frame.Pix {
		bits := uint32(raw[i*4]) | uint32(raw[i*4+1])<<8 | uint32(raw[i*4+2])<<16 | uint32(raw[i*4+3])<<24
		frame.Pix[i] = math.Float32frombits(bits) / divisor
	}
	return frame, nil
}

// bandDivisor maps an integer band format to its full-scale value so the
// decoded samples normalize to [0,1]. Float formats are returned as-is.
func bandDivisor(format vips.BandFormat) float32 {
	switch format {
	case vips.BandFormatUchar, vips.BandFormatChar:
		return 255
	case vips.BandFormatUshort, vips.BandFormatShort:
		return 65535
	case vips.BandFormatUint, vips.BandFormatInt:
		return float32(math.MaxUint32)
	default:
		return 1
	}
}

// ReadMetadata reports the structural description of an image:
// "WxHxC, format=..." plus bounded extra attribute lines.
func (vipsReader) ReadMetadata(path string) (string, error) {
	ref, err := vips.LoadImageFromFile(path, vips.NewImportParams())
	if err != nil {
		return "", fmt.Errorf("vips load %s: %w", filepath.Base(path), err)
	}
	defer ref.Close()

	base := fmt.Sprintf("%dx%dx%d, format=%s",
		ref.Width(), ref.Height(), ref.Bands(), imageTypeLabel(path, ref.Format()))

	var lines []string
	if pages := ref.Pages(); pages > 1 {
		lines = append(lines, fmt.Sprintf("pages: %d", pages))
	}
	if o := ref.Orientation(); o > 1 {
		lines = append(lines, fmt.Sprintf("orientation: %d", o))
	}
	for _, field := range ref.GetFields() {
		if len(lines) >= maxMetadataAttrs {
			break
		}
		if skipMetadataField(field) {
			continue
		}
		if value := strings.TrimSpace(ref.GetAsString(field)); value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", field, value))
		}
	}

	if len(lines) == 0 {
		return base, nil
	}
	return base + "\n" + strings.Join(lines, "\n"), nil
}

// skipMetadataField filters the header fields already covered by the
// structural line, the page/orientation fields reported explicitly, and the
// raw binary blobs (exif-data, icc-profile-data, ...) that do not render as
// text.
func skipMetadataField(name string) bool {
	switch name {
	case "width", "height", "bands", "format", "coding", "interpretation",
		"xoffset", "yoffset", "xres", "yres", "filename",
		"n-pages", "orientation":
		return true
	}
	return strings.HasSuffix(name, "-data")
}

func imageTypeLabel(path string, t vips.ImageType) string {
	if label, ok := vips.ImageTypes[t]; ok && label != "" {
		return label
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}
