package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func fakeExtract(t *testing.T) {
	t.Helper()
	orig := runExtract
	t.Cleanup(func() { runExtract = orig })
	runExtract = func(_ context.Context, binary, dir string) (int, error) {
		if _, err := os.Stat(binary); err != nil {
			return -1, err
		}
		root := filepath.Join(dir, squashfsDir)
		if err := os.MkdirAll(root, 0o755); err != nil {
			return -1, err
		}
		return 0, os.WriteFile(filepath.Join(root, "AppRun"), []byte("#!/bin/sh\n"), 0o755)
	}
}

func TestEnsureAppImageDownloadsOnce(t *testing.T) {
	fakeExtract(t)

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("fake appimage"))
	}))
	defer srv.Close()

	cache := OpenAt(t.TempDir())
	tool := Tool{Name: Linuxdeploy, URL: srv.URL}

	entry, err := cache.EnsureAppImage(context.Background(), tool)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	if entry != cache.EntryPoint(Linuxdeploy) {
		t.Errorf("entry point: got %q, want %q", entry, cache.EntryPoint(Linuxdeploy))
	}
	if _, err := os.Lstat(entry); err != nil {
		t.Fatalf("entry point missing after ensure: %v", err)
	}
	target, err := os.Readlink(entry)
	if err != nil {
		t.Fatalf("entry point is not a symlink: %v", err)
	}
	if want := filepath.Join(Linuxdeploy+".extracted", "AppRun"); target != want {
		t.Errorf("link target: got %q, want %q", target, want)
	}

	if _, err := cache.EnsureAppImage(context.Background(), tool); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("expected exactly one download, got %d", got)
	}
}

func TestEnsureAppImageRetriesAfterCrash(t *testing.T) {
	fakeExtract(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fake appimage"))
	}))
	defer srv.Close()

	cache := OpenAt(t.TempDir())

	// Simulate a crash between extraction and link: the extracted tree exists
	// but the entry point was never created.
	stale := filepath.Join(cache.Root, Linuxdeploy+".extracted")
	if err := os.MkdirAll(stale, 0o755); err != nil {
		t.Fatal(err)
	}

	entry, err := cache.EnsureAppImage(context.Background(), Tool{Name: Linuxdeploy, URL: srv.URL})
	if err != nil {
		t.Fatalf("ensure after crash: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(entry), Linuxdeploy+".extracted", "AppRun")); err != nil {
		t.Errorf("extracted AppRun missing: %v", err)
	}
}

func TestEnsureAppImageDownloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := OpenAt(t.TempDir())
	_, err := cache.EnsureAppImage(context.Background(), Tool{Name: Linuxdeploy, URL: srv.URL})

	var dlErr *DownloadError
	if !errors.As(err, &dlErr) {
		t.Fatalf("expected DownloadError, got %v", err)
	}
	if cache.Present(Linuxdeploy) {
		t.Error("tool must not be present after failed download")
	}
}

func TestEnsureAppImageExtractionError(t *testing.T) {
	orig := runExtract
	t.Cleanup(func() { runExtract = orig })
	runExtract = func(_ context.Context, _, _ string) (int, error) {
		return 2, errors.New("exit status 2")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("fake appimage"))
	}))
	defer srv.Close()

	cache := OpenAt(t.TempDir())
	_, err := cache.EnsureAppImage(context.Background(), Tool{Name: Linuxdeploy, URL: srv.URL})

	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if exErr.ExitCode != 2 {
		t.Errorf("exit code: got %d, want 2", exErr.ExitCode)
	}
	if _, err := os.Stat(filepath.Join(cache.Root, Linuxdeploy+".download")); !os.IsNotExist(err) {
		t.Error("temporary download should be removed after failure")
	}
}

func TestLockSerializesAcquisition(t *testing.T) {
	cache := OpenAt(t.TempDir())
	ctx := context.Background()

	unlock, err := cache.lock(ctx, Linuxdeploy)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}

	acquired := make(chan struct{})
	go func() {
		second, err := cache.lock(ctx, Linuxdeploy)
		if err == nil {
			second()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first still held")
	default:
	}

	unlock()
	<-acquired
}
