// Package args normalizes raw command line arguments into the form handed to
// the player: URLs pass through untouched, everything else becomes an
// absolute filesystem path.
//
// Absolute-path conversion serves two purposes: a bare filename can never be
// misparsed as a player option, and the path stays valid even though a
// running player's working directory has nothing to do with the invoker's.
package args

import (
	"fmt"
	"path/filepath"
	"regexp"
)

// ///////////////////////////////////////////////
// URL Detection
// ///////////////////////////////////////////////

// urlRe matches arguments with a URL scheme: one or more alphabetic
// characters followed by a colon. Anything shorter (":", "c:foo" still
// matches — single-letter schemes are valid per the pattern) is a file path.
var urlRe = regexp.MustCompile(`^[A-Za-z]+:`)

// IsURL reports whether s looks like a URL rather than a file path.
// Existence on disk is never consulted.
func IsURL(s string) bool {
	return urlRe.MatchString(s)
}

// ///////////////////////////////////////////////
// Normalization
// ///////////////////////////////////////////////

// Normalize converts a single raw argument into its player-facing form.
// URLs are returned unchanged; paths are resolved against the current
// working directory without checking that they exist.
func Normalize(s string) (string, error) {
	if IsURL(s) {
		return s, nil
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", s, err)
	}
	return abs, nil
}

// NormalizeAll maps [Normalize] over a full argument list, preserving order.
func NormalizeAll(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		n, err := Normalize(s)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
