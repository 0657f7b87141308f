// Unix channel implementation backed by a FIFO in /tmp.
//
// This file is compiled on all non-Windows platforms (Linux, macOS, *BSD).
// The liveness probe, trust validation, and provisioning all operate on the
// FIFO through [golang.org/x/sys/unix] so the open/stat/fcntl sequence works
// on the raw descriptor.

//go:build !windows

package channel

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/jpalus/mpv/internal/paths"
)

// ///////////////////////////////////////////////
// Locator
// ///////////////////////////////////////////////

// Locate returns the per-user channel path, /tmp/mpv-single-<username>.
// It fails with [ErrNoIdentity] when the invoking user cannot be determined.
func Locate() (string, error) {
	name, err := username()
	if err != nil {
		return "", err
	}
	return "/tmp/" + paths.ChannelPrefix + name, nil
}

// ///////////////////////////////////////////////
// Probe + Trust Validation
// ///////////////////////////////////////////////

// Open probes the channel for a live receiver and validates it before
// returning a blocking write handle.
//
// The probe is a non-blocking open for writing: it succeeds only while a
// reader holds the other end. ENXIO (pipe with no reader) and ENOENT
// (path absent) both classify as [ErrNoReceiver]; any other open failure is
// fatal.
//
// A successful open proves nothing about what was opened, so the descriptor
// is validated before use: it must be a named pipe, owned by the invoking
// user, with no group or other read/write permission. Only after validation
// passes is the descriptor switched to blocking mode for the actual write.
func Open(path string) (*Channel, error) {
	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		switch err {
		case unix.ENXIO, unix.ENOENT:
			return nil, ErrNoReceiver
		}
		return nil, fmt.Errorf("open channel %s: %w", path, err)
	}

	if err := validate(fd); err != nil {
		unix.Close(fd)
		return nil, err
	}

	if err := setBlocking(fd); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &Channel{wc: os.NewFile(uintptr(fd), path)}, nil
}

// validate fstats an open channel descriptor and rejects anything that is
// not an owner-only named pipe belonging to the current user. Stat-ing the
// descriptor rather than the path closes the window where an attacker swaps
// the object between check and use.
func validate(fd int) error {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return fmt.Errorf("stat channel: %w", err)
	}
	if st.Mode&unix.S_IFMT != unix.S_IFIFO {
		return ErrNotPipe
	}
	if int(st.Uid) != os.Getuid() {
		return ErrWrongOwner
	}
	if st.Mode&0o066 != 0 {
		return ErrPermissive
	}
	return nil
}

// setBlocking clears O_NONBLOCK on fd. The probe needed non-blocking mode
// only to test for a reader; the command write itself must block.
func setBlocking(fd int) error {
	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		return fmt.Errorf("get channel flags: %w", err)
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags&^unix.O_NONBLOCK); err != nil {
		return fmt.Errorf("set channel blocking: %w", err)
	}
	return nil
}

// ///////////////////////////////////////////////
// Provisioner
// ///////////////////////////////////////////////

// Provision replaces whatever sits at the channel path with a fresh FIFO
// restricted to owner read+write. An object left over from a dead receiver
// is always recreated rather than reused — its type and permissions cannot
// be trusted without re-deriving them from a controlled creation call.
func Provision(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stale channel %s: %w", path, err)
	}
	if err := unix.Mkfifo(path, 0o600); err != nil {
		return fmt.Errorf("create channel %s: %w", path, err)
	}
	return nil
}
