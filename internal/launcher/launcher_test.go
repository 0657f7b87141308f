// launcher_test.go checks startup argument construction, in particular the
// mandatory "--" separator that keeps file entries from being reinterpreted
// as player options.

package launcher

import (
	"slices"
	"testing"
)

func TestArgsOrdering(t *testing.T) {
	argv := Args(Options{
		Channel: "/tmp/mpv-single-alice",
		Extra:   []string{"--fs", "--volume=50"},
		Files:   []string{"/videos/a.mkv", "/videos/b.mkv"},
	})

	if argv[0] != "--no-terminal" || argv[1] != "--force-window" {
		t.Errorf("built-in flags missing or reordered: %v", argv[:2])
	}

	sep := slices.Index(argv, "--")
	if sep < 0 {
		t.Fatalf("no -- separator in %v", argv)
	}
	if got := argv[sep+1:]; !slices.Equal(got, []string{"/videos/a.mkv", "/videos/b.mkv"}) {
		t.Errorf("files after separator = %v", got)
	}

	extra := argv[3:sep]
	if !slices.Equal(extra, []string{"--fs", "--volume=50"}) {
		t.Errorf("extra options = %v, want configured order", extra)
	}
}

func TestArgsSeparatorAlwaysPresent(t *testing.T) {
	argv := Args(Options{Channel: "/tmp/mpv-single-alice"})
	if argv[len(argv)-1] != "--" {
		t.Errorf("missing trailing -- with no files: %v", argv)
	}
}

func TestArgsDashFileStaysFile(t *testing.T) {
	argv := Args(Options{
		Channel: "/tmp/mpv-single-alice",
		Files:   []string{"/videos/-weird.mkv"},
	})
	sep := slices.Index(argv, "--")
	if sep < 0 || sep+1 >= len(argv) {
		t.Fatalf("separator misplaced in %v", argv)
	}
	if argv[sep+1] != "/videos/-weird.mkv" {
		t.Errorf("dash-prefixed file not after separator: %v", argv)
	}
}

func TestExitCodeNil(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", got)
	}
}
