package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".cache", appName)
	if dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, want)
	}
}

func TestCacheLocation(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", custom)

	c := &CLI{}
	if got, want := c.cacheLocation(), filepath.Join(custom, appName); got != want {
		t.Errorf("file cacheLocation() = %q, want %q", got, want)
	}

	c.RedisAddr = "localhost:6379"
	got := c.cacheLocation()
	if !strings.HasPrefix(got, "redis://localhost:6379/") || !strings.Contains(got, redisPrefix) {
		t.Errorf("redis cacheLocation() = %q", got)
	}
}

func TestNewCacheSelectsBackend(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(&strings.Builder{}, LogInfo)
	c.RedisAddr = ""

	store, err := c.newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(interface{ Dir() string }); ok {
		t.Error("--no-cache should not open the file cache")
	}

	store, err = c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := store.(interface{ Dir() string })
	if !ok {
		t.Fatalf("newCache(false) = %T, want file cache", store)
	}
	if !strings.HasSuffix(fc.Dir(), appName) {
		t.Errorf("file cache dir = %q", fc.Dir())
	}
}
