// Package paths centralizes file and directory names used across the project.
// All data directory file names and the control channel naming convention are
// defined here as the single source of truth.
package paths

import "path/filepath"

// ///////////////////////////////////////////////
// Constants
// ///////////////////////////////////////////////

// Data directory file names.
const (
	ConfigFile = "config.toml"
	LogFile    = "launcher.log"
)

const (
	BinaryName = "mpv-single"
	DataDirRel = ".mpv-single" // relative to $HOME

	// ChannelPrefix is the fixed per-user channel name prefix. The full
	// channel identifier is ChannelPrefix + username; it must stay stable so
	// repeat invocations by the same user locate the same channel.
	ChannelPrefix = "mpv-single-"
)

// Environment variables read by the launcher.
const (
	// EnvHome overrides the data directory (default ~/.mpv-single).
	EnvHome = "MPV_SINGLE_HOME"
	// EnvOpts supplies whitespace-separated extra player startup options,
	// consulted only when a new player instance is launched.
	EnvOpts = "MPV_SINGLE_OPTS"
	// EnvWatch names a directory to watch for new media files after the
	// invocation has a live player to hand files to.
	EnvWatch = "MPV_SINGLE_WATCH"
)

// ///////////////////////////////////////////////
// DataDir
// ///////////////////////////////////////////////

// DataDir provides path construction methods rooted at a data directory.
type DataDir struct {
	Root string
}

// Config returns the full path to the config file.
func (d DataDir) Config() string { return filepath.Join(d.Root, ConfigFile) }

// Log returns the full path to the log file.
func (d DataDir) Log() string { return filepath.Join(d.Root, LogFile) }
