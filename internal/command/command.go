// Package command encodes file entries into the line-oriented control
// protocol a running player reads from its channel.
//
// Wire format, one self-contained line per file:
//
//	raw loadfile "<escaped-path>" append\n
//
// The "raw" prefix stops the player from expanding property references
// inside the path.
package command

import (
	"bytes"
	"strings"
)

// ///////////////////////////////////////////////
// Escaping
// ///////////////////////////////////////////////

// Escape prepares a path for embedding in a double-quoted command argument.
// The replacement order is load-bearing: backslashes must be doubled first,
// otherwise the escape characters inserted for quotes and line feeds would
// themselves get doubled.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// ///////////////////////////////////////////////
// Encoding
// ///////////////////////////////////////////////

// LoadFile returns the complete command line, terminated by a line feed,
// that appends one file to the receiver's playlist.
func LoadFile(path string) string {
	return `raw loadfile "` + Escape(path) + "\" append\n"
}

// Batch encodes a list of files into a single buffer, one command line each.
// Callers write the whole buffer in one call so the receiver never observes
// a partial command.
func Batch(paths []string) []byte {
	var buf bytes.Buffer
	for _, p := range paths {
		buf.WriteString(LoadFile(p))
	}
	return buf.Bytes()
}
