package cachekey

import (
	"crypto/sha1" //nolint:gosec // collision resistance, not authentication
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/VijayPandit2001/Asset-Browser/internal/filesystem"
)

// Version is the cache format version. It is embedded in every cache key, so
// bumping it changes all future keys and silently orphans existing entries;
// that is the sole cache invalidation mechanism.
const Version = "2"

// Ext is the on-disk format of cache entries.
const Ext = ".png"

// cacheDirSuffix names a project-scoped cache directory.
const cacheDirSuffix = "_AssetBrowserCache"

// legacyCacheDir is the per-folder cache directory used when no project is
// active, and by older versions of the browser.
const legacyCacheDir = ".assetbrowser_cache"

// DeriveKey returns the content-addressed cache key for path: the SHA-1 of
// the format version, the path, and the file's mtime and size. Any change to
// the file's content proxy (mtime or size) or to the path itself changes the
// key. If the file is missing the key degrades to version and path only, so
// keys stay defined for transient lookups. A stale NFS handle is retried so
// a flaky share does not flip keys between the degraded and full form.
func DeriveKey(path string) string {
	var payload string
	if st, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig()); err == nil {
		payload = fmt.Sprintf("%s|%s|%d|%d", Version, path, st.ModTime().UnixNano(), st.Size())
	} else {
		payload = fmt.Sprintf("%s|%s", Version, path)
	}
	sum := sha1.Sum([]byte(payload)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// CachePath returns the cache file path for srcPath under root, creating the
// two-character shard directory on demand. Sharding only bounds directory
// fan-out; it has no correctness role.
func CachePath(root, srcPath string) (string, error) {
	key := DeriveKey(srcPath)
	shard := filepath.Join(root, key[:2])
	if err := os.MkdirAll(shard, 0755); err != nil {
		return "", fmt.Errorf("create cache shard %s: %w", shard, err)
	}
	return filepath.Join(shard, key+Ext), nil
}

// CacheRoot returns the cache root directory for folder. With an active
// project the root lives under the project directory as
// <project>/<name>_AssetBrowserCache[/<sanitized relative path>]; a folder
// outside the project drops the relative suffix. Without a project the root
// is a hidden directory inside the browsed folder itself.
//
// CacheRoot is a pure function of its inputs; the directory is only created
// lazily by callers.
func CacheRoot(project, folder string) string {
	if project == "" {
		return filepath.Join(folder, legacyCacheDir)
	}

	root := filepath.Join(project, filepath.Base(project)+cacheDirSuffix)

	rel, err := filepath.Rel(project, folder)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return root
	}
	return filepath.Join(root, sanitizeRelPath(rel))
}

// IsCacheDir reports whether name is a cache directory this package
// creates, in either the project-scoped or the legacy layout. Folder scans
// use it to keep cache trees out of their own input.
func IsCacheDir(name string) bool {
	return name == legacyCacheDir || strings.HasSuffix(name, cacheDirSuffix)
}

// sanitizeRelPath flattens a relative path into a single directory name by
// replacing path separators with underscores.
func sanitizeRelPath(rel string) string {
	rel = strings.ReplaceAll(rel, string(os.PathSeparator), "_")
	rel = strings.ReplaceAll(rel, "/", "_")
	rel = strings.ReplaceAll(rel, "\\", "_")
	return rel
}
