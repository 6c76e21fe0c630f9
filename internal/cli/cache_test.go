package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/matzehuels/pearls/pkg/cache"
)

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	c := New(io.Discard, LogInfo)
	c.RedisAddr = ""
	store, err := c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Set(ctx, "grid:abc", []byte("[]"), time.Hour); err != nil {
		t.Fatal(err)
	}

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	root.SetOut(io.Discard)
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	if _, ok, _ := store.Get(ctx, "grid:abc"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestCacheClearWithoutClearer(t *testing.T) {
	var _ cache.Clearer = (*cache.FileCache)(nil)
	var _ cache.Clearer = (*cache.RedisCache)(nil)
	if _, ok := cache.NewNullCache().(cache.Clearer); ok {
		t.Error("null cache should not advertise Clear")
	}
}

func TestCachePathCommand(t *testing.T) {
	if err := runCLI(t, "cache", "path"); err != nil {
		t.Fatalf("cache path: %v", err)
	}
}
