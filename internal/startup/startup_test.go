package startup

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if info.OS != runtime.GOOS || info.Arch != runtime.GOARCH {
		t.Errorf("OS/Arch = %s/%s, want %s/%s", info.OS, info.Arch, runtime.GOOS, runtime.GOARCH)
	}
}

func TestEnsureDirectoryCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir")
	if err := EnsureDirectory(path, "test"); err != nil {
		t.Fatalf("EnsureDirectory() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
}

func TestEnsureDirectoryExisting(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureDirectory(dir, "test"); err != nil {
		t.Errorf("EnsureDirectory() on existing dir error = %v", err)
	}
}

func TestEnsureDirectoryFileCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDirectory(path, "test"); err == nil {
		t.Error("EnsureDirectory() on a regular file should fail")
	}
}

func TestWriteAccess(t *testing.T) {
	dir := t.TempDir()
	if err := VerifyWriteAccess(dir); err != nil {
		t.Errorf("VerifyWriteAccess() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("write test file was left behind")
	}
}
