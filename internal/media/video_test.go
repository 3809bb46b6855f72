package media

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseRational(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"30000/1001", 29.97002997002997},
		{"0/0", 0},
		{"25", 25},
		{"", 0},
		{"abc/def", 0},
	}
	for _, tt := range tests {
		if got := parseRational(tt.in); got != tt.want {
			t.Errorf("parseRational(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatVideoInfo(t *testing.T) {
	info := &VideoInfo{Width: 1920, Height: 1080, FPS: 23.976, Frames: 240, Duration: 240 / 23.976}
	got := formatVideoInfo(info, "MP4")

	for _, want := range []string{"Video: 1920x1080", "FPS: 23.98", "Duration: 10.01s", "Frames: 240", "Codec: MP4"} {
		if !strings.Contains(got, want) {
			t.Errorf("metadata missing %q:\n%s", want, got)
		}
	}
}

func TestFormatVideoInfoUnknowns(t *testing.T) {
	got := formatVideoInfo(&VideoInfo{Width: 640, Height: 480}, "AVI")
	for _, want := range []string{"FPS: Unknown", "Duration: Unknown", "Frames: Unknown"} {
		if !strings.Contains(got, want) {
			t.Errorf("metadata missing %q:\n%s", want, got)
		}
	}
}

func TestVideoMetadataArchive(t *testing.T) {
	got := videoMetadata(filepath.Join("/downloads", "pack.zip", "clip.mp4"))
	if !strings.Contains(got, "Video file in archive: pack.zip") {
		t.Errorf("archive metadata = %q", got)
	}
	if !strings.Contains(got, "Format: MP4") {
		t.Errorf("archive metadata missing format: %q", got)
	}
}

func TestVideoMetadataMissingFile(t *testing.T) {
	got := videoMetadata(filepath.Join(t.TempDir(), "missing.mov"))
	if !strings.Contains(got, "Video file not found") || !strings.Contains(got, "Format: MOV") {
		t.Errorf("missing-file metadata = %q", got)
	}
}

func TestExtractVideoFrameArchivePath(t *testing.T) {
	// Must short-circuit without attempting a real open.
	if img := extractVideoFrame("/downloads/pack.7z/clip.mp4"); img != nil {
		t.Error("expected nil frame for archive-embedded path")
	}
}

func TestExtractVideoFrameMissingFile(t *testing.T) {
	if img := extractVideoFrame(filepath.Join(t.TempDir(), "missing.mp4")); img != nil {
		t.Error("expected nil frame for missing file")
	}
}

func TestCodecLabel(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/a/clip.mp4", "MP4"},
		{"/a/clip.webm", "WEBM"},
		{"/a/noext", "Unknown"},
	}
	for _, tt := range tests {
		if got := codecLabel(tt.path); got != tt.want {
			t.Errorf("codecLabel(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
