package media

import (
	"image"

	"github.com/disintegration/imaging"

	// Decoders for the generic fallback path.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"  // BMP format support
	_ "golang.org/x/image/tiff" // TIFF format support
	_ "golang.org/x/image/webp" // WebP format support

	"github.com/VijayPandit2001/Asset-Browser/internal/filesystem"
	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
)

// decodeGeneric decodes path with the general-purpose 8-bit decoders:
// imaging (with EXIF auto-orientation) first, then a plain image.Decode for
// formats imaging rejects.
func decodeGeneric(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}
	logging.Debug("imaging.Open failed for %s: %v, trying image.Decode", path, err)

	// Assets usually live on an NFS share, where a handle can go stale
	// between the scan and the decode.
	file, oerr := filesystem.OpenWithRetry(path, filesystem.DefaultRetryConfig())
	if oerr != nil {
		return nil, oerr
	}
	defer file.Close()

	img, format, derr := image.Decode(file)
	if derr != nil {
		return nil, derr
	}
	logging.Debug("Decoded image format: %s for %s", format, path)
	return img, nil
}
