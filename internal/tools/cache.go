package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is an explicit handle over the shared tool cache directory. Entries
// are append-only: once a tool's entry point is linked it is never removed.
type Cache struct {
	Root string
}

// Open resolves the per-user cache directory, honouring the
// APPFORGE_TOOLS_DIR override.
func Open() (*Cache, error) {
	if override, ok := os.LookupEnv("APPFORGE_TOOLS_DIR"); ok && override != "" {
		abs, err := filepath.Abs(override)
		if err != nil {
			return nil, fmt.Errorf("resolve APPFORGE_TOOLS_DIR: %w", err)
		}
		return &Cache{Root: abs}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("detect user home: %w", err)
	}
	return &Cache{Root: filepath.Join(home, ".local", "share", "appforge", "tools")}, nil
}

// OpenAt returns a cache rooted at an explicit directory.
func OpenAt(root string) *Cache {
	return &Cache{Root: root}
}

// EntryPoint returns the canonical path of a tool inside the cache.
func (c *Cache) EntryPoint(name string) string {
	return filepath.Join(c.Root, name)
}

// Present reports whether the tool's final entry point exists. Intermediate
// downloads and extraction directories do not count; a crash between download
// and link leaves the tool absent and the next ensure retries cleanly.
func (c *Cache) Present(name string) bool {
	_, err := os.Lstat(c.EntryPoint(name))
	return err == nil
}

// lock claims the per-tool acquisition lock so concurrent packaging of
// multiple components cannot race on first-time acquisition. The caller must
// re-check presence after the lock is held.
func (c *Cache) lock(ctx context.Context, name string) (func(), error) {
	if err := os.MkdirAll(c.Root, 0o755); err != nil {
		return nil, fmt.Errorf("prepare cache root: %w", err)
	}

	lockPath := filepath.Join(c.Root, name+".lock")
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("acquire lock for %s: %w", name, err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire lock for %s: %w", name, ctx.Err())
		case <-ticker.C:
		}
	}
}
