package tools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// squashfsDir is the fixed directory name AppImages extract into.
const squashfsDir = "squashfs-root"

// runExtract invokes the downloaded binary's self-extraction mode inside dir.
// Package-level so tests can substitute a fake. Returns the exit code, -1 when
// the process never started.
var runExtract = func(ctx context.Context, binary, dir string) (int, error) {
	cmd := exec.CommandContext(ctx, binary, "--appimage-extract")
	cmd.Dir = dir
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), err
		}
		return -1, err
	}
	return 0, nil
}

// EnsureAppImage makes a self-contained AppImage tool available in the cache
// and returns its entry point. The call is idempotent: when the entry point
// already exists nothing is downloaded. Otherwise the binary is downloaded to
// a temporary path, marked executable, self-extracted into a fresh scratch
// directory, committed under a tool-specific name, and linked.
func (c *Cache) EnsureAppImage(ctx context.Context, tool Tool) (string, error) {
	entry := c.EntryPoint(tool.Name)
	if c.Present(tool.Name) {
		return entry, nil
	}

	unlock, err := c.lock(ctx, tool.Name)
	if err != nil {
		return "", err
	}
	defer unlock()

	// Another component may have finished the acquisition while we waited.
	if c.Present(tool.Name) {
		return entry, nil
	}

	tmp := filepath.Join(c.Root, tool.Name+".download")
	if err := download(ctx, tmp, tool.URL); err != nil {
		return "", &DownloadError{URL: tool.URL, Err: err}
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := os.Chmod(tmp, 0o755); err != nil {
		return "", &PermissionError{Path: tmp, Err: err}
	}

	scratch, err := os.MkdirTemp(c.Root, tool.Name+"-extract-")
	if err != nil {
		return "", fmt.Errorf("create extract dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	if code, err := runExtract(ctx, tmp, scratch); err != nil {
		return "", &ExtractionError{Tool: tool.Name, ExitCode: code, Err: err}
	}

	// The extraction output is always named squashfs-root; rename it to a
	// tool-specific directory so tools sharing the cache never collide.
	extracted := filepath.Join(c.Root, tool.Name+".extracted")
	if err := os.RemoveAll(extracted); err != nil {
		return "", fmt.Errorf("clear stale extraction: %w", err)
	}
	if err := os.Rename(filepath.Join(scratch, squashfsDir), extracted); err != nil {
		return "", &ExtractionError{Tool: tool.Name, ExitCode: -1, Err: err}
	}

	if err := os.Symlink(filepath.Join(tool.Name+".extracted", "AppRun"), entry); err != nil {
		return "", fmt.Errorf("link %s entry point: %w", tool.Name, err)
	}
	return entry, nil
}
