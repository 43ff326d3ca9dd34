package tools

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestEnsureScriptDownloadsOnce(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("#!/bin/bash\necho plugin\n"))
	}))
	defer srv.Close()

	cache := OpenAt(t.TempDir())
	tool := Tool{Name: GtkPluginName, URL: srv.URL}

	entry, err := cache.EnsureScript(context.Background(), tool)
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}

	info, err := os.Stat(entry)
	if err != nil {
		t.Fatalf("script missing: %v", err)
	}
	if info.Mode().Perm()&0o111 == 0 {
		t.Errorf("script not executable: mode %v", info.Mode())
	}

	if _, err := cache.EnsureScript(context.Background(), tool); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("expected exactly one download, got %d", got)
	}
}

func TestPatchFileIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.sh")
	original := "#!/bin/bash\ncopy_lib librsvg-2.so.2\n"
	if err := os.WriteFile(path, []byte(original), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := PatchFile(path, "librsvg-2.so.2", "librsvg-2.so"); err != nil {
		t.Fatalf("first patch: %v", err)
	}
	once, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(once, []byte("librsvg-2.so\n")) {
		t.Fatalf("substring not replaced: %q", once)
	}

	if err := PatchFile(path, "librsvg-2.so.2", "librsvg-2.so"); err != nil {
		t.Fatalf("second patch: %v", err)
	}
	twice, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(once, twice) {
		t.Errorf("patch is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestPatchFilePreservesMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plugin.sh")
	if err := os.WriteFile(path, []byte("find me"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := PatchFile(path, "find", "found"); err != nil {
		t.Fatalf("patch: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode changed: got %v, want 0755", info.Mode().Perm())
	}
}

func TestPatchFileMissing(t *testing.T) {
	err := PatchFile(filepath.Join(t.TempDir(), "absent.sh"), "a", "b")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, ok := err.(*PatchError); !ok {
		t.Errorf("expected PatchError, got %T", err)
	}
}
