// Windows channel implementation backed by a named pipe in the NT pipe
// namespace, dialed via the go-winio package.
//
// The ownership/permission validation performed on Unix has no direct
// equivalent here: \\.\pipe\ objects are created by the player itself with
// the session's default DACL and vanish with their server process, so there
// is no stale filesystem object to inspect or replace. Liveness and trust
// collapse into whether the dial succeeds.

//go:build windows

package channel

import (
	"time"

	"github.com/Microsoft/go-winio"

	"github.com/jpalus/mpv/internal/paths"
)

// dialTimeout bounds the liveness probe. A pipe server that exists but never
// accepts within this window is treated the same as no receiver; writes to
// an accepted connection remain unbounded, matching the blocking FIFO write
// on Unix.
const dialTimeout = 250 * time.Millisecond

// ///////////////////////////////////////////////
// Locator
// ///////////////////////////////////////////////

// Locate returns the per-user channel name, \\.\pipe\mpv-single-<username>.
// It fails with [ErrNoIdentity] when the invoking user cannot be determined.
func Locate() (string, error) {
	name, err := username()
	if err != nil {
		return "", err
	}
	return `\\.\pipe\` + paths.ChannelPrefix + name, nil
}

// ///////////////////////////////////////////////
// Probe
// ///////////////////////////////////////////////

// Open dials the named pipe. Any dial failure — no such pipe, or no free
// pipe instance within the timeout — classifies as [ErrNoReceiver]: the
// pipe namespace guarantees the object disappears with its owning process,
// so a failed dial means no live player is serving it.
func Open(path string) (*Channel, error) {
	timeout := dialTimeout
	conn, err := winio.DialPipe(path, &timeout)
	if err != nil {
		return nil, ErrNoReceiver
	}
	return &Channel{wc: conn}, nil
}

// ///////////////////////////////////////////////
// Provisioner
// ///////////////////////////////////////////////

// Provision is a no-op on Windows: the player creates the pipe server itself
// when started with --input-ipc-server, and the namespace cleans it up when
// the player exits.
func Provision(path string) error {
	return nil
}
