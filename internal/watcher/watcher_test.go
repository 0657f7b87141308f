// watcher_test.go covers pattern matching, delivery of newly created files,
// and single-delivery semantics under create+write event storms.

package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T, dir string, patterns []string) *Watcher {
	t.Helper()
	w, err := New(dir, patterns)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

// waitFile waits for one delivery or fails the test.
func waitFile(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case p := <-w.Files():
		return p
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for file event")
		return ""
	}
}

func TestNewRejectsMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestNewRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := New(path, nil); err == nil {
		t.Error("expected error for non-directory")
	}
}

func TestMatches(t *testing.T) {
	w := &Watcher{patterns: []string{"*.{mkv,mp4}", "*.flac"}}
	cases := []struct {
		path string
		want bool
	}{
		{"/downloads/a.mkv", true},
		{"/downloads/a.mp4", true},
		{"/downloads/b.flac", true},
		{"/downloads/a.txt", false},
		{"/downloads/a.mkv.part", false},
	}
	for _, c := range cases {
		if got := w.matches(c.path); got != c.want {
			t.Errorf("matches(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestDeliversMatchingFile(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, []string{"*.mkv"})

	path := filepath.Join(dir, "new.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got := waitFile(t, w)
	if got != path {
		t.Errorf("delivered %q, want %q", got, path)
	}
}

func TestIgnoresNonMatchingFile(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, []string{"*.mkv"})

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case p := <-w.Files():
		t.Errorf("unexpected delivery of %q", p)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestDeliversOncePerFile(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir, []string{"*.mkv"})

	path := filepath.Join(dir, "grow.mkv")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := waitFile(t, w); got != path {
		t.Fatalf("delivered %q, want %q", got, path)
	}

	// Keep appending, as a download in progress would.
	if err := os.WriteFile(path, []byte("xy"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case p := <-w.Files():
		t.Errorf("file delivered twice: %q", p)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestCloseIdempotent(t *testing.T) {
	w := newTestWatcher(t, t.TempDir(), []string{"*.mkv"})
	if err := w.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
