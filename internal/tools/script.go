package tools

import (
	"context"
	"os"
	"strings"
)

// EnsureScript makes an executable script tool available in the cache and
// returns its path. Idempotent like EnsureAppImage, but the script is written
// directly to its final path; there is no extraction step.
func (c *Cache) EnsureScript(ctx context.Context, tool Tool) (string, error) {
	entry := c.EntryPoint(tool.Name)
	if c.Present(tool.Name) {
		return entry, nil
	}

	unlock, err := c.lock(ctx, tool.Name)
	if err != nil {
		return "", err
	}
	defer unlock()

	if c.Present(tool.Name) {
		return entry, nil
	}

	if err := download(ctx, entry, tool.URL); err != nil {
		return "", &DownloadError{URL: tool.URL, Err: err}
	}
	if err := os.Chmod(entry, 0o755); err != nil {
		return "", &PermissionError{Path: entry, Err: err}
	}
	return entry, nil
}

// PatchFile replaces every occurrence of a literal substring inside a script.
// Reapplying is a no-op once the substring no longer occurs, so the patch is
// idempotent.
func PatchFile(path, find, replace string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return &PatchError{Path: path, Err: err}
	}

	patched := strings.ReplaceAll(string(contents), find, replace)
	if patched == string(contents) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return &PatchError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte(patched), info.Mode().Perm()); err != nil {
		return &PatchError{Path: path, Err: err}
	}
	return nil
}
