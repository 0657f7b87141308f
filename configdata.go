// Package mpv provides embedded assets for the mpv-single launcher.
//
// The root package exists solely to embed [config.default.toml] via
// [DefaultConfigTOML]. The launcher copies it into the data directory on
// first run so users always have a commented config file to edit.
package mpv

import _ "embed"

// DefaultConfigTOML holds the raw bytes of config.default.toml, embedded at
// build time. cmd/mpv-single writes this file to the data directory when no
// config.toml exists yet.
//
//go:embed config.default.toml
var DefaultConfigTOML []byte
