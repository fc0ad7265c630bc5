package prefabs

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func waitForPath(t *testing.T, w *Watcher, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if slices.Contains(w.Poll(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("no event for %s", want)
}

func TestWatcherReportsCatalogAndScripts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	catalog := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(catalog, []byte("types: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForPath(t, w, catalog)
	if !IsCatalog(catalog) {
		t.Fatalf("expected %s to be the catalog", catalog)
	}

	script := filepath.Join(dir, "ramp.tengo")
	if err := os.WriteFile(script, []byte("place(0, 0, 2)\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitForPath(t, w, script)
	if IsCatalog(script) {
		t.Fatalf("a script is not the catalog")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(200 * time.Millisecond)
	if got := w.Poll(); len(got) != 0 {
		t.Fatalf("expected no events, got %v", got)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if got := w.Poll(); len(got) != 0 {
		t.Fatalf("expected no events after close, got %v", got)
	}
}
