package startup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/VijayPandit2001/Asset-Browser/internal/config"
	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintBanner prints the startup banner and build information.
func PrintBanner() {
	banner := `
------------------------------------------------------------
    ___                  __     ____
   /   | _____________  / /_   / __ )_________ _      _______ ___  _____
  / /| |/ ___/ ___/ _ \/ __/  / __  / ___/ __ \ | /| / / ___// _ \/ ___/
 / ___ /__  )__  )  __/ /_   / /_/ / /  / /_/ / |/ |/ (__  )  __/ /
/_/  |_/____/____/\___/\__/  /_____/_/   \____/|__/|__/____/\___/_/

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

// LogSystemInfo logs runtime and host details.
func LogSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	if logging.IsDebugEnabled() {
		if wd, err := os.Getwd(); err == nil {
			logging.Debug("  Working dir:     %s", wd)
		}
		if hostname, err := os.Hostname(); err == nil {
			logging.Debug("  Hostname:        %s", hostname)
		}
	}

	logging.Info("")
}

// LogConfig logs the effective settings and where they came from.
func LogConfig(cfg *config.Settings, path string) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	if path != "" {
		logging.Info("  Settings file:     %s", path)
	} else {
		logging.Info("  Settings file:     (defaults)")
	}
	logging.Info("  Thumbnail size:    %d", cfg.ThumbSize)
	logging.Info("  Cache enabled:     %v", cfg.CacheEnabled)
	logging.Info("  HDR tonemap:       %v", cfg.HDRTonemap)
	logging.Info("  High-fi reader:    %v", cfg.UseVips)
	logging.Info("  Workers:           %d", cfg.Workers())
	logging.Info("  Image formats:     %d", len(cfg.ImageFormats))
	logging.Info("  Video formats:     %d", len(cfg.VideoFormats))
	logging.Info("  Projects:          %d", len(cfg.Projects))
	logging.Info("  Log level:         %s", logging.GetLevel())
	logging.Info("")
}

// LogReaderInit logs the outcome of high-fidelity reader selection.
func LogReaderInit(available bool, detail string) {
	logging.Info("------------------------------------------------------------")
	logging.Info("DECODER INITIALIZATION")
	logging.Info("------------------------------------------------------------")
	if available {
		logging.Info("  [OK] High-fidelity reader ready (%s)", detail)
	} else {
		logging.Warn("  High-fidelity reader unavailable; EXR/HDR and deep formats degrade to placeholders")
	}

	if err := checkFFmpeg(); err != nil {
		logging.Warn("  FFmpeg check failed: %v", err)
		logging.Warn("  Video thumbnails will degrade to placeholders")
	} else {
		logging.Info("  [OK] FFmpeg is available")
	}
	logging.Info("")
}

// EnsureDirectory verifies path exists as a directory, creating it if
// needed.
func EnsureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}
	return nil
}

// VerifyWriteAccess verifies dir is writable. Caching degrades to disabled
// when it is not, so the caller decides how hard to fail.
func VerifyWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
	}
	return nil
}

// LogFatal logs a fatal error and exits.
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

func checkFFmpeg() error {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return fmt.Errorf("ffmpeg not found in PATH")
	}
	logging.Debug("  FFmpeg path: %s", path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, "ffmpeg", "-version").Output()
	if err != nil {
		return fmt.Errorf("failed to get ffmpeg version: %w", err)
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		logging.Debug("  FFmpeg version: %s", strings.TrimSpace(lines[0]))
	}
	return nil
}
