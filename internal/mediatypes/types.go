package mediatypes

import (
	"path/filepath"
	"strings"
)

// FileType represents the classification of a media file. Classification is
// advisory: it selects the decode path to try first, but a decode attempt may
// still succeed or fail regardless of the classified type.
type FileType string

const (
	// FileTypeImage represents a still or HDR image file.
	FileTypeImage FileType = "image"
	// FileTypeVideo represents a video container file.
	FileTypeVideo FileType = "video"
	// FileTypeOther represents an unknown or unsupported file type.
	FileTypeOther FileType = "other"
)

// FormatSet is a set of recognized file extensions (lowercase, with the
// leading dot). It is an explicit value threaded into classification calls
// rather than a mutable global, so a batch of tasks sees one consistent
// snapshot of the recognized formats.
type FormatSet map[string]bool

// NewFormatSet builds a FormatSet from a list of extensions. Extensions are
// normalized to lowercase and given a leading dot if missing.
func NewFormatSet(exts []string) FormatSet {
	s := make(FormatSet, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s[ext] = true
	}
	return s
}

// Contains reports whether the extension of path is in the set.
func (s FormatSet) Contains(path string) bool {
	return s[strings.ToLower(filepath.Ext(path))]
}

// DefaultImageExtensions are the image formats recognized out of the box,
// including HDR-capable containers.
var DefaultImageExtensions = []string{
	".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".gif",
	".exr", ".hdr", ".dpx", ".psd", ".svg", ".jp2", ".webp",
}

// DefaultVideoExtensions are the video formats recognized out of the box.
var DefaultVideoExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm",
}

// HDRExtensions are formats whose pixel data is assumed to be linear
// high-dynamic-range and always tonemapped.
var HDRExtensions = map[string]bool{
	".exr": true,
	".hdr": true,
}

// archiveExtensions are compressed container formats. A path with any
// segment ending in one of these refers to a file that only logically exists
// inside the archive and cannot be opened directly.
var archiveExtensions = []string{
	".7z", ".zip", ".rar", ".tar", ".gz", ".bz2",
}

// Classify returns the FileType for path given the recognized format sets.
func Classify(path string, images, videos FormatSet) FileType {
	if videos.Contains(path) {
		return FileTypeVideo
	}
	if images.Contains(path) {
		return FileTypeImage
	}
	return FileTypeOther
}

// IsHDR reports whether the extension of path is a known HDR-capable format.
func IsHDR(path string) bool {
	return HDRExtensions[strings.ToLower(filepath.Ext(path))]
}

// InArchive reports whether path points inside a compressed archive, detected
// by scanning every path segment for an archive extension.
func InArchive(path string) bool {
	return ArchiveName(path) != ""
}

// ArchiveName returns the name of the archive segment containing path, or ""
// if the path does not traverse an archive.
func ArchiveName(path string) string {
	clean := filepath.Clean(path)
	for _, part := range strings.FieldsFunc(clean, func(r rune) bool {
		return r == '/' || r == '\\'
	}) {
		lower := strings.ToLower(part)
		for _, ext := range archiveExtensions {
			if strings.HasSuffix(lower, ext) {
				return part
			}
		}
	}
	return ""
}
