package media

import "errors"

// ErrReaderUnavailable is returned by the null Reader.
var ErrReaderUnavailable = errors.New("high-fidelity reader unavailable")

// Reader is the optional high-fidelity image capability. The real
// implementation is backed by libvips and can decode wide-gamut and
// floating-point formats; when the library is unavailable (or disabled) the
// null implementation stands in and the pipeline falls through to the
// generic decoder. The choice is made once at startup, not per call.
type Reader interface {
	// Available reports whether the capability is usable.
	Available() bool
	// ReadImage decodes path into a floating-point frame. Integer formats
	// are normalized to [0,1]; HDR formats keep their linear range.
	ReadImage(path string) (*FloatFrame, error)
	// ReadMetadata returns a human-readable structural description of the
	// image (dimensions, channels, format, bounded extra attributes).
	ReadMetadata(path string) (string, error)
}

type unavailableReader struct{}

func (unavailableReader) Available() bool { return false }

func (unavailableReader) ReadImage(string) (*FloatFrame, error) {
	return nil, ErrReaderUnavailable
}

func (unavailableReader) ReadMetadata(string) (string, error) {
	return "", ErrReaderUnavailable
}

// UnavailableReader returns the null high-fidelity reader.
func UnavailableReader() Reader { return unavailableReader{} }
