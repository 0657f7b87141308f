// args_test.go covers URL classification and path normalization, including
// the rule that existence on disk is never consulted.

package args

import (
	"path/filepath"
	"testing"
)

func TestIsURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"http://example.com/a.mkv", true},
		{"https://example.com", true},
		{"rtmp://host/stream", true},
		{"a:", true},
		// Single-letter schemes match the pattern, so a Windows-style
		// drive-prefixed path classifies as a URL and passes through.
		{"c:stuff", true},
		{"a.mkv", false},
		{"/abs/path.mkv", false},
		{"./rel/path.mkv", false},
		{"-not-a-flag.mkv", false},
		{"1http://nope", false},
		{"ht tp://nope", false},
		{":", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsURL(c.in); got != c.want {
			t.Errorf("IsURL(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeURLUnchanged(t *testing.T) {
	in := "https://example.com/watch?v=abc"
	got, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if got != in {
		t.Errorf("Normalize(%q) = %q, want unchanged", in, got)
	}
}

func TestNormalizeRelativePath(t *testing.T) {
	got, err := Normalize("a.mkv")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want, err := filepath.Abs("a.mkv")
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if got != want {
		t.Errorf("Normalize(\"a.mkv\") = %q, want %q", got, want)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Normalize returned non-absolute path %q", got)
	}
}

func TestNormalizeMissingFile(t *testing.T) {
	// The file does not exist; normalization must still succeed.
	got, err := Normalize("does/not/exist.mkv")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Normalize returned non-absolute path %q", got)
	}
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	got, err := NormalizeAll([]string{"b.mkv", "http://x/y", "a.mkv"})
	if err != nil {
		t.Fatalf("NormalizeAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[1] != "http://x/y" {
		t.Errorf("URL moved or changed: %q", got[1])
	}
	wantB, _ := filepath.Abs("b.mkv")
	wantA, _ := filepath.Abs("a.mkv")
	if got[0] != wantB || got[2] != wantA {
		t.Errorf("order not preserved: %v", got)
	}
}

func TestNormalizeAllEmpty(t *testing.T) {
	got, err := NormalizeAll(nil)
	if err != nil {
		t.Fatalf("NormalizeAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
