package cachekey

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDeriveKeyDeterministic(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.png", "hello")

	k1 := DeriveKey(path)
	k2 := DeriveKey(path)
	if k1 != k2 {
		t.Errorf("DeriveKey not deterministic: %s != %s", k1, k2)
	}
	if len(k1) != 40 {
		t.Errorf("key length = %d, want 40 hex chars", len(k1))
	}
	for _, c := range k1 {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("key contains non-hex char %q", c)
		}
	}
}

func TestDeriveKeySensitivity(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.png", "hello")
	orig := DeriveKey(path)

	// Same content at a different path yields a different key.
	other := writeFile(t, dir, "b.png", "hello")
	if DeriveKey(other) == orig {
		t.Error("different paths with same content should yield different keys")
	}

	// Changing the content (size) changes the key.
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatal(err)
	}
	if DeriveKey(path) == orig {
		t.Error("content change should change the key")
	}

	// Changing only the mtime changes the key.
	path2 := writeFile(t, dir, "c.png", "hello")
	before := DeriveKey(path2)
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path2, future, future); err != nil {
		t.Fatal(err)
	}
	if DeriveKey(path2) == before {
		t.Error("mtime change should change the key")
	}
}

func TestDeriveKeyMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	k1 := DeriveKey(path)
	k2 := DeriveKey(path)
	if k1 != k2 || len(k1) != 40 {
		t.Errorf("missing-file key should still be stable: %s vs %s", k1, k2)
	}
}

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "cache")
	src := writeFile(t, dir, "a.png", "hello")

	path, err := CachePath(root, src)
	if err != nil {
		t.Fatalf("CachePath: %v", err)
	}

	key := DeriveKey(src)
	want := filepath.Join(root, key[:2], key+Ext)
	if path != want {
		t.Errorf("CachePath = %s, want %s", path, want)
	}

	// Shard directory is created on demand.
	if _, err := os.Stat(filepath.Join(root, key[:2])); err != nil {
		t.Errorf("shard directory not created: %v", err)
	}
}

func TestCacheRoot(t *testing.T) {
	project := filepath.Join("/projects", "alpha")

	tests := []struct {
		name    string
		project string
		folder  string
		want    string
	}{
		{
			name:    "No project",
			project: "",
			folder:  "/media/shots",
			want:    filepath.Join("/media/shots", ".assetbrowser_cache"),
		},
		{
			name:    "Project root itself",
			project: project,
			folder:  project,
			want:    filepath.Join(project, "alpha_AssetBrowserCache"),
		},
		{
			name:    "Subfolder inside project",
			project: project,
			folder:  filepath.Join(project, "assets", "textures"),
			want:    filepath.Join(project, "alpha_AssetBrowserCache", "assets_textures"),
		},
		{
			name:    "Folder outside project",
			project: project,
			folder:  "/somewhere/else",
			want:    filepath.Join(project, "alpha_AssetBrowserCache"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CacheRoot(tt.project, tt.folder); got != tt.want {
				t.Errorf("CacheRoot(%q, %q) = %q, want %q", tt.project, tt.folder, got, tt.want)
			}
			// Referentially transparent: repeated calls agree.
			if again := CacheRoot(tt.project, tt.folder); again != tt.want {
				t.Errorf("CacheRoot not stable: %q", again)
			}
		})
	}
}

func TestClearRoot(t *testing.T) {
	dir := t.TempDir()
	root := filepath.Join(dir, "cache")
	if err := os.MkdirAll(filepath.Join(root, "ab"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "ab"), "deadbeef.png", "xxxx")

	removed, freed, err := ClearRoot(root)
	if err != nil {
		t.Fatalf("ClearRoot: %v", err)
	}
	if !removed || freed != 4 {
		t.Errorf("ClearRoot = (%v, %d), want (true, 4)", removed, freed)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("cache root still exists after ClearRoot")
	}

	// Clearing a missing root is a no-op, not an error.
	removed, freed, err = ClearRoot(root)
	if err != nil || removed || freed != 0 {
		t.Errorf("ClearRoot on missing root = (%v, %d, %v), want (false, 0, nil)", removed, freed, err)
	}
}

func TestClearAll(t *testing.T) {
	project := t.TempDir()

	cacheRoot := filepath.Join(project, filepath.Base(project)+"_AssetBrowserCache")
	if err := os.MkdirAll(cacheRoot, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, cacheRoot, "x.png", "12345678")

	legacy := filepath.Join(project, "shots", ".assetbrowser_cache")
	if err := os.MkdirAll(legacy, 0755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, legacy, "y.png", "1234")

	cleared, freed := ClearAll([]string{project, ""})
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2", cleared)
	}
	if freed != 12 {
		t.Errorf("freed = %d, want 12", freed)
	}
	if _, err := os.Stat(cacheRoot); !os.IsNotExist(err) {
		t.Error("project cache root still exists")
	}
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Error("legacy cache dir still exists")
	}
}

func TestIsCacheDir(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{".assetbrowser_cache", true},
		{"show_AssetBrowserCache", true},
		{"shots", false},
		{"cache", false},
	}
	for _, tt := range tests {
		if got := IsCacheDir(tt.name); got != tt.want {
			t.Errorf("IsCacheDir(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
