// Package channel manages the per-user control channel shared between
// unrelated launcher invocations and a running player instance.
//
// The channel is a named pipe at a well-known per-user path. Invocations
// coordinate through it without any central lock: a non-blocking open for
// writing either reaches a live reader or it does not, atomically, at the
// instant of the call. A channel that fails trust validation is never
// written to — a spoofed object at the well-known path would otherwise let
// any local user inject commands into the player.
package channel

import (
	"errors"
	"fmt"
	"io"
	"os/user"
	"strings"
)

// ///////////////////////////////////////////////
// Errors
// ///////////////////////////////////////////////

var (
	// ErrNoIdentity is returned by [Locate] when the invoking user cannot be
	// determined. There is no fallback to a shared or guessable name.
	ErrNoIdentity = errors.New("cannot determine invoking user")

	// ErrNoReceiver is returned by [Open] when the channel is absent or no
	// reader is attached to it. The caller is expected to provision a fresh
	// channel and launch a new player.
	ErrNoReceiver = errors.New("no receiver is reading the channel")

	// Trust validation failures. All three match [IsUntrusted].
	ErrNotPipe    = errors.New("channel object is not a named pipe")
	ErrWrongOwner = errors.New("channel is not owned by the invoking user")
	ErrPermissive = errors.New("channel is accessible to other users")
)

// IsUntrusted reports whether err is a trust validation failure, meaning an
// object exists at the channel path but must not receive commands.
func IsUntrusted(err error) bool {
	return errors.Is(err, ErrNotPipe) ||
		errors.Is(err, ErrWrongOwner) ||
		errors.Is(err, ErrPermissive)
}

// ///////////////////////////////////////////////
// Channel
// ///////////////////////////////////////////////

// Channel is an open, validated, blocking write handle to a live receiver.
type Channel struct {
	wc io.WriteCloser
}

// Write delivers an encoded command batch in a single blocking write. The
// protocol is fire-and-forget: no response is read, and a receiver that died
// between open and write surfaces here as a plain write error.
func (c *Channel) Write(b []byte) error {
	if _, err := c.wc.Write(b); err != nil {
		return fmt.Errorf("write to channel: %w", err)
	}
	return nil
}

// Close releases the write handle.
func (c *Channel) Close() error {
	return c.wc.Close()
}

// ///////////////////////////////////////////////
// Identity
// ///////////////////////////////////////////////

// username returns the invoking user's bare name, with any Windows
// DOMAIN\ prefix stripped so the channel name stays a single path component.
func username() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoIdentity, err)
	}
	name := u.Username
	if i := strings.LastIndexByte(name, '\\'); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "", ErrNoIdentity
	}
	return name, nil
}
