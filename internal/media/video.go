package media

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
	"github.com/VijayPandit2001/Asset-Browser/internal/mediatypes"
)

// VideoInfo is the structural metadata of a video container.
type VideoInfo struct {
	Width, Height int
	FPS           float64
	Frames        int64
	Duration      float64 // seconds, Frames/FPS when FPS > 0
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
	Format  ffprobeFormat   `json:"format"`
}

type ffprobeStream struct {
	CodecType  string `json:"codec_type"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
	NbFrames   string `json:"nb_frames"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

// probeVideo runs ffprobe on path and parses the first video stream.
func probeVideo(path string) (*VideoInfo, error) {
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	cmd := exec.Command(ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", path, err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := &VideoInfo{}
	for _, s := range probe.Streams {
		if s.CodecType != "video" {
			continue
		}
		info.Width = s.Width
		info.Height = s.Height
		info.FPS = parseRational(s.RFrameRate)
		if n, err := strconv.ParseInt(s.NbFrames, 10, 64); err == nil {
			info.Frames = n
		}
		break
	}

	// Some containers omit per-stream frame counts; estimate from the
	// container duration.
	if info.Frames == 0 && info.FPS > 0 && probe.Format.Duration != "" {
		if d, err := strconv.ParseFloat(probe.Format.Duration, 64); err == nil {
			info.Frames = int64(d*info.FPS + 0.5)
		}
	}
	if info.FPS > 0 {
		info.Duration = float64(info.Frames) / info.FPS
	}
	return info, nil
}

// parseRational parses an ffprobe rational like "30000/1001"; 0 on failure
// or zero denominator.
func parseRational(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
		return 0
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}

// extractVideoFrame decodes one representative frame from a video file.
// When the container reports a frame rate the extraction seeks to the
// one-second mark first, which skips the black or letterboxed first frames
// many encodes start with; with an unknown frame rate it reads from position
// zero. Returns nil on any failure.
//
// Paths inside compressed archives are refused before any open is attempted.
func extractVideoFrame(path string) image.Image {
	norm := filepath.Clean(path)

	if mediatypes.InArchive(norm) {
		logging.Debug("Video file is inside archive, cannot extract frame: %s", norm)
		return nil
	}
	if _, err := os.Stat(norm); err != nil {
		logging.Debug("Video file does not exist: %s", norm)
		return nil
	}

	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		logging.Warn("ffmpeg not found: %v", err)
		return nil
	}

	seek := false
	if info, perr := probeVideo(norm); perr == nil && info.FPS > 0 {
		seek = true
	}

	frame, err := runFFmpegFrame(ffmpeg, norm, seek)
	if err != nil && seek {
		// Short clips may not reach the one-second mark.
		logging.Debug("FFmpeg seek attempt failed for %s: %v, retrying from start", norm, err)
		frame, err = runFFmpegFrame(ffmpeg, norm, false)
	}
	if err != nil {
		logging.Warn("Could not read frame from video %s: %v", norm, err)
		return nil
	}
	return frame
}

// runFFmpegFrame extracts a single frame as PNG over a pipe.
func runFFmpegFrame(ffmpeg, path string, seek bool) (image.Image, error) {
	args := []string{}
	if seek {
		args = append(args, "-ss", "00:00:01")
	}
	args = append(args,
		"-i", path,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	cmd := exec.Command(ffmpeg, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %v, stderr: %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output")
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode ffmpeg output: %w", err)
	}
	return img, nil
}

// videoMetadata formats the metadata text for a video path. It never fails:
// archive-embedded, missing and unreadable files each get a descriptive
// text instead.
func videoMetadata(path string) string {
	norm := filepath.Clean(path)
	label := codecLabel(path)

	if archive := mediatypes.ArchiveName(norm); archive != "" {
		return fmt.Sprintf("Video file in archive: %s\nFormat: %s\nNote: Extract archive to view video", archive, label)
	}
	if _, err := os.Stat(norm); err != nil {
		return fmt.Sprintf("Video file not found\nFormat: %s", label)
	}

	info, err := probeVideo(norm)
	if err != nil {
		logging.Debug("Failed to get video metadata for %s: %v", path, err)
		return fmt.Sprintf("Cannot open video file\nFormat: %s", label)
	}
	return formatVideoInfo(info, label)
}

func formatVideoInfo(info *VideoInfo, label string) string {
	lines := []string{
		fmt.Sprintf("Video: %dx%d", info.Width, info.Height),
	}
	if info.FPS > 0 {
		lines = append(lines, fmt.Sprintf("FPS: %.2f", info.FPS))
	} else {
		lines = append(lines, "FPS: Unknown")
	}
	if info.Duration > 0 {
		lines = append(lines, fmt.Sprintf("Duration: %.2fs", info.Duration))
	} else {
		lines = append(lines, "Duration: Unknown")
	}
	if info.Frames > 0 {
		lines = append(lines, fmt.Sprintf("Frames: %d", info.Frames))
	} else {
		lines = append(lines, "Frames: Unknown")
	}
	lines = append(lines, fmt.Sprintf("Codec: %s", label))
	return strings.Join(lines, "\n")
}

// codecLabel derives a display codec label from the file extension.
func codecLabel(path string) string {
	ext := strings.ToUpper(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return "Unknown"
	}
	return ext
}
