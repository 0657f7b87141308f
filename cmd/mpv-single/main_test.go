// main_test.go covers invocation-level helpers: data directory resolution
// and first-run config seeding.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	rootpkg "github.com/jpalus/mpv"
	"github.com/jpalus/mpv/internal/paths"
)

func TestResolveDataDirEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvHome, dir)
	if got := resolveDataDir(); got != dir {
		t.Errorf("resolveDataDir = %q, want %q", got, dir)
	}
}

func TestResolveDataDirDefault(t *testing.T) {
	t.Setenv(paths.EnvHome, "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	want := filepath.Join(home, paths.DataDirRel)
	if got := resolveDataDir(); got != want {
		t.Errorf("resolveDataDir = %q, want %q", got, want)
	}
}

func TestSeedDefaultConfigFirstRun(t *testing.T) {
	dp := DataPaths{Root: t.TempDir()}
	seedDefaultConfig(dp)

	got, err := os.ReadFile(dp.Config())
	if err != nil {
		t.Fatalf("seeded config unreadable: %v", err)
	}
	if !bytes.Equal(got, rootpkg.DefaultConfigTOML) {
		t.Error("seeded config differs from embedded default")
	}
}

func TestSeedDefaultConfigKeepsExisting(t *testing.T) {
	dp := DataPaths{Root: t.TempDir()}
	want := []byte("version = 1\n[player]\nbinary = \"custom\"\n")
	if err := os.WriteFile(dp.Config(), want, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	seedDefaultConfig(dp)

	got, err := os.ReadFile(dp.Config())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Error("existing config was overwritten")
	}
}

func TestResolveVersion(t *testing.T) {
	if resolveVersion() == "" {
		t.Error("resolveVersion returned empty string")
	}
}
