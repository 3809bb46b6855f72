package cachekey

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/VijayPandit2001/Asset-Browser/internal/logging"
)

// ClearRoot removes the entire cache subtree at root and reports whether a
// directory was removed and how many bytes it held. A missing root is not an
// error.
func ClearRoot(root string) (bool, int64, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return false, 0, nil
	}
	freed := dirSize(root)
	if err := os.RemoveAll(root); err != nil {
		return false, 0, err
	}
	logging.Info("Cleared thumbnail cache: %s", root)
	return true, freed, nil
}

// ClearAll removes the cache directory of every registered project plus any
// legacy per-folder cache directories found beneath each project root. It is
// best effort: individual failures are logged and skipped. It returns the
// number of directories removed and the bytes freed.
func ClearAll(projects []string) (int, int64) {
	var cleared int
	var freed int64

	for _, project := range projects {
		if project == "" {
			continue
		}

		root := filepath.Join(project, filepath.Base(project)+cacheDirSuffix)
		if removed, n, err := ClearRoot(root); err != nil {
			logging.Error("Failed to clear cache at %s: %v", root, err)
		} else if removed {
			cleared++
			freed += n
		}

		// Legacy per-folder caches may exist anywhere under the project.
		err := filepath.WalkDir(project, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() || d.Name() != legacyCacheDir {
				return nil
			}
			if removed, n, cerr := ClearRoot(path); cerr != nil {
				logging.Error("Failed to clear legacy cache at %s: %v", path, cerr)
			} else if removed {
				cleared++
				freed += n
			}
			return filepath.SkipDir
		})
		if err != nil {
			logging.Error("Error walking project %s: %v", project, err)
		}
	}
	return cleared, freed
}

// dirSize sums the file sizes under root; errors are ignored.
func dirSize(root string) int64 {
	var total int64
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, ierr := d.Info(); ierr == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}
