package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/VijayPandit2001/Asset-Browser/internal/cachekey"
	"github.com/VijayPandit2001/Asset-Browser/internal/config"
	"github.com/VijayPandit2001/Asset-Browser/internal/filesystem"
	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
	"github.com/VijayPandit2001/Asset-Browser/internal/media"
	"github.com/VijayPandit2001/Asset-Browser/internal/mediatypes"
	"github.com/VijayPandit2001/Asset-Browser/internal/memory"
	"github.com/VijayPandit2001/Asset-Browser/internal/startup"
	"github.com/VijayPandit2001/Asset-Browser/internal/thumbnail"
)

var cli struct {
	Config string `help:"Path to the settings file." type:"path" default:"asset-browser.yaml"`

	Generate generateCmd `cmd:"" help:"Generate thumbnails for every supported asset in a folder."`
	Clear    clearCmd    `cmd:"" help:"Clear thumbnail caches."`
	Version  versionCmd  `cmd:"" help:"Print version information."`
}

type generateCmd struct {
	Folder    string `arg:"" help:"Folder to scan for assets." type:"existingdir"`
	Project   string `help:"Project root the folder belongs to (auto-detected from settings when omitted)." type:"path"`
	Size      int    `help:"Thumbnail width in pixels (overrides settings)." default:"0"`
	Workers   int    `help:"Worker count (overrides settings)." default:"0"`
	Recursive bool   `help:"Descend into subfolders." short:"r"`
	NoCache   bool   `help:"Skip the thumbnail cache for this run."`
}

type clearCmd struct {
	Folder  string `arg:"" optional:"" help:"Folder whose cache root to clear." type:"path"`
	Project string `help:"Project root the folder belongs to." type:"path"`
	All     bool   `help:"Clear every configured project's cache plus legacy per-folder caches."`
}

type versionCmd struct{}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("assetbrowser"),
		kong.Description("Thumbnail generation and caching for visual asset folders."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		startup.LogFatal("%v", err)
	}
}

func loadSettings() config.Settings {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		logging.Warn("Failed to load settings from %s: %v (using defaults)", cli.Config, err)
		cfg = config.Default()
	}
	return cfg
}

func (c *generateCmd) Run() error {
	runStart := time.Now()

	startup.PrintBanner()
	startup.LogSystemInfo()

	cfg := loadSettings()
	if c.NoCache {
		cfg.CacheEnabled = false
	}
	startup.LogConfig(&cfg, cli.Config)

	if cfg.UseVips {
		if err := media.InitVips(); err != nil {
			logging.Warn("libvips initialization failed: %v", err)
		}
		defer media.ShutdownVips()
	}
	reader := media.SelectReader(cfg.UseVips)
	startup.LogReaderInit(reader.Available(), "libvips")

	folder, err := filepath.Abs(c.Folder)
	if err != nil {
		return fmt.Errorf("resolve folder %s: %w", c.Folder, err)
	}
	project := c.Project
	if project == "" {
		project = matchProject(cfg.Projects, folder)
	}

	images, videos := cfg.ImageSet(), cfg.VideoSet()
	requests, err := collectRequests(folder, project, c.size(cfg), images, videos, c.Recursive)
	if err != nil {
		return err
	}
	if len(requests) == 0 {
		logging.Info("No supported assets found in %s", folder)
		return nil
	}
	logging.Info("Found %d assets in %s", len(requests), folder)

	if cfg.CacheEnabled {
		root := cachekey.CacheRoot(project, folder)
		if err := startup.EnsureDirectory(root, "cache"); err != nil {
			logging.Warn("Cache root %s unusable: %v (caching disabled for this run)", root, err)
			cfg.CacheEnabled = false
		} else if err := startup.VerifyWriteAccess(root); err != nil {
			logging.Warn("Cache root %s not writable: %v (caching disabled for this run)", root, err)
			cfg.CacheEnabled = false
		}
	}

	mon := memory.NewMonitor(memory.DefaultConfig())
	mon.Start()
	defer mon.Stop()

	dec := media.NewDecoder(reader, videos, cfg.HDRTonemap)
	gen := thumbnail.NewGenerator(dec, images, videos, cfg.CacheEnabled)

	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.New(int64(len(requests)),
		mpb.BarStyle().Lbound("[").Filler("=").Tip(">").Padding(" ").Rbound("]"),
		mpb.PrependDecorators(
			decor.Name("thumbnails", decor.WCSyncSpaceR),
			decor.CountersNoUnit("%d / %d", decor.WCSyncSpace),
		),
		mpb.AppendDecorators(decor.Percentage(decor.WCSyncSpace)),
	)

	pool := thumbnail.NewPool(gen, c.workers(cfg), len(requests), mon, func(thumbnail.Result) {
		bar.Increment()
	})
	for _, req := range requests {
		pool.Submit(req)
	}
	pool.Wait()
	pool.Close()
	progress.Wait()

	logSummary(requests, project, folder, mon, time.Since(runStart))
	return nil
}

func (c *generateCmd) size(cfg config.Settings) int {
	if c.Size > 0 {
		return c.Size
	}
	return cfg.ThumbSize
}

func (c *generateCmd) workers(cfg config.Settings) int {
	if c.Workers > 0 {
		return c.Workers
	}
	return cfg.Workers()
}

// collectRequests walks folder and builds one request per supported asset.
// Each request carries the cache root of its own directory, so entries land
// beside the project the way the browser expects them.
func collectRequests(folder, project string, size int, images, videos mediatypes.FormatSet, recursive bool) ([]thumbnail.Request, error) {
	var requests []thumbnail.Request

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := filesystem.ReadDirWithRetry(dir, filesystem.DefaultRetryConfig())
		if err != nil {
			return fmt.Errorf("read folder %s: %w", dir, err)
		}
		root := cachekey.CacheRoot(project, dir)

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") || cachekey.IsCacheDir(name) {
				continue
			}
			path := filepath.Join(dir, name)
			if entry.IsDir() {
				if recursive {
					if err := walk(path); err != nil {
						logging.Warn("Skipping subfolder %s: %v", path, err)
					}
				}
				continue
			}
			if mediatypes.Classify(path, images, videos) == mediatypes.FileTypeOther {
				// Unrecognized extensions are only worth a decode attempt
				// when the user asks for a specific file; a bulk scan skips
				// them.
				continue
			}
			requests = append(requests, thumbnail.Request{Path: path, Size: size, CacheRoot: root})
		}
		return nil
	}

	if err := walk(folder); err != nil {
		return nil, err
	}
	return requests, nil
}

// matchProject returns the configured project containing folder, preferring
// the most specific match.
func matchProject(projects []string, folder string) string {
	best := ""
	for _, project := range projects {
		abs, err := filepath.Abs(project)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(abs, folder)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if len(abs) > len(best) {
			best = abs
		}
	}
	return best
}

func logSummary(requests []thumbnail.Request, project, folder string, mon *memory.Monitor, elapsed time.Duration) {
	root := cachekey.CacheRoot(project, folder)
	size := treeSize(root)

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("RUN COMPLETE")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Thumbnails:  %d", len(requests))
	logging.Info("  Elapsed:     %v", elapsed.Round(time.Millisecond))
	logging.Info("  Cache root:  %s", root)
	logging.Info("  Cache size:  %s", humanize.Bytes(uint64(size)))
	if current, limit, usage := mon.GetStats(); limit > 0 {
		logging.Info("  Heap usage:  %s of %s limit (%.0f%%)",
			humanize.Bytes(uint64(current)), humanize.Bytes(uint64(limit)), usage*100)
	}
	logging.Info("")
}

// treeSize sums the regular files under root; 0 when the root is missing.
func treeSize(root string) int64 {
	var size int64
	_ = filepath.WalkDir(root, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			size += info.Size()
		}
		return nil
	})
	return size
}

func (c *clearCmd) Run() error {
	cfg := loadSettings()

	if c.All {
		cleared, freed := cachekey.ClearAll(cfg.Projects)
		fmt.Printf("Cleared %d cache roots, freed %s\n", cleared, humanize.Bytes(uint64(freed)))
		return nil
	}

	if c.Folder == "" {
		return fmt.Errorf("a folder argument or --all is required")
	}
	folder, err := filepath.Abs(c.Folder)
	if err != nil {
		return fmt.Errorf("resolve folder %s: %w", c.Folder, err)
	}
	project := c.Project
	if project == "" {
		project = matchProject(cfg.Projects, folder)
	}

	root := cachekey.CacheRoot(project, folder)
	removed, freed, err := cachekey.ClearRoot(root)
	if err != nil {
		return fmt.Errorf("clear cache root %s: %w", root, err)
	}
	if !removed {
		fmt.Printf("No cache at %s\n", root)
		return nil
	}
	fmt.Printf("Cleared %s, freed %s\n", root, humanize.Bytes(uint64(freed)))
	return nil
}

func (versionCmd) Run() error {
	info := startup.GetBuildInfo()
	fmt.Printf("assetbrowser %s (commit %s, built %s, %s %s/%s)\n",
		info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
	return nil
}

