// Package config provides configuration loading and defaults for the
// mpv-single launcher.
//
// Configuration is loaded from a TOML file in the user's data directory.
// A missing file yields built-in defaults; cmd/mpv-single seeds the data
// directory with the embedded commented default config on first run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/jpalus/mpv/internal/paths"
)

// ///////////////////////////////////////////////
// Configuration Types
// ///////////////////////////////////////////////

// Config represents the top-level launcher configuration.
type Config struct {
	// Version is the config schema version.
	Version int `toml:"version"`
	// Player holds player binary and startup option settings.
	Player PlayerConfig `toml:"player"`
	// Watch holds watch-mode settings.
	Watch WatchConfig `toml:"watch"`
	// Update holds release check settings.
	Update UpdateConfig `toml:"update"`
	// Log holds logging settings.
	Log LogConfig `toml:"log"`
}

// PlayerConfig holds player binary and startup option settings.
type PlayerConfig struct {
	// Binary is the player executable, resolved through PATH unless absolute.
	Binary string `toml:"binary"`
	// ExtraOptions are startup options appended after the built-in ones,
	// consulted only when a new player instance is launched.
	ExtraOptions []string `toml:"extra_options"`
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	// Patterns are doublestar globs a newly created file name must match to
	// be enqueued in watch mode.
	Patterns []string `toml:"patterns"`
}

// UpdateConfig holds release check settings.
type UpdateConfig struct {
	// Check enables the background GitHub release check on the launch path.
	Check bool `toml:"check"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `toml:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation.
	MaxSizeMB int `toml:"max_size_mb"`
}

// ///////////////////////////////////////////////
// Defaults
// ///////////////////////////////////////////////

// DefaultConfig returns the built-in configuration defaults, matching the
// embedded config.default.toml.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Player: PlayerConfig{
			Binary:       "mpv",
			ExtraOptions: []string{},
		},
		Watch: WatchConfig{
			Patterns: []string{"*.{mkv,mp4,webm,avi,mov,mp3,flac,ogg,opus,m4a,wav}"},
		},
		Update: UpdateConfig{Check: true},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 5,
		},
	}
}

// ///////////////////////////////////////////////
// Loading
// ///////////////////////////////////////////////

// Load reads and parses the configuration file from dataDir/config.toml.
// If the file doesn't exist, returns [DefaultConfig].
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, paths.ConfigFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail far from their cause.
func (c *Config) Validate() error {
	if c.Player.Binary == "" {
		return fmt.Errorf("player.binary must not be empty")
	}
	if c.Log.MaxSizeMB <= 0 {
		return fmt.Errorf("log.max_size_mb must be positive, got %d", c.Log.MaxSizeMB)
	}
	for _, p := range c.Watch.Patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("watch.patterns: invalid pattern %q", p)
		}
	}
	return nil
}

// ///////////////////////////////////////////////
// Startup Options
// ///////////////////////////////////////////////

// StartupOptions returns the configured extra player options followed by any
// whitespace-split tokens from the MPV_SINGLE_OPTS environment variable.
// Only the launch path consults this; a hand-off to a running player never
// applies options.
func (c *Config) StartupOptions() []string {
	opts := make([]string, 0, len(c.Player.ExtraOptions))
	opts = append(opts, c.Player.ExtraOptions...)
	opts = append(opts, strings.Fields(os.Getenv(paths.EnvOpts))...)
	return opts
}
