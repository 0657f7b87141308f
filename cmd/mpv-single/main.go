// Package main implements mpv-single, a single-instance launcher for the
// mpv media player.
//
// Given a list of files or URLs, it either hands them off to an already
// running player through the per-user control channel, or launches a new
// player that owns a freshly provisioned channel. Arguments are never
// parsed as options — every argument is a file entry, including ones that
// start with "-".
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	rootpkg "github.com/jpalus/mpv"
	"github.com/jpalus/mpv/internal/args"
	"github.com/jpalus/mpv/internal/channel"
	"github.com/jpalus/mpv/internal/command"
	"github.com/jpalus/mpv/internal/config"
	"github.com/jpalus/mpv/internal/launcher"
	"github.com/jpalus/mpv/internal/logger"
	"github.com/jpalus/mpv/internal/paths"
	"github.com/jpalus/mpv/internal/update"
	"github.com/jpalus/mpv/internal/watcher"
)

// ///////////////////////////////////////////////
// Version
// ///////////////////////////////////////////////

// version is set at build time via ldflags (-X main.version=...). When not
// set, resolveVersion reads the VCS info that Go embeds automatically, so
// dev builds get a useful version string without needing git at runtime.
var version = "dev"

// resolveVersion returns the build version string. If [version] was set via
// ldflags at build time it is returned as-is; otherwise VCS revision and
// dirty state embedded by the Go toolchain are used to construct a
// "dev+<hash>" tag.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}

// ///////////////////////////////////////////////
// Data Directory
// ///////////////////////////////////////////////

// resolveDataDir returns the launcher data directory: $MPV_SINGLE_HOME when
// set, otherwise ~/.mpv-single, falling back to ./.mpv-single if the home
// directory cannot be determined.
func resolveDataDir() string {
	if dir := os.Getenv(paths.EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", paths.DataDirRel)
	}
	return filepath.Join(home, paths.DataDirRel)
}

// seedDefaultConfig writes the embedded commented config to the data
// directory on first run. Failure is a warning, not fatal — [config.Load]
// falls back to built-in defaults.
func seedDefaultConfig(dp DataPaths) {
	if _, err := os.Stat(dp.Config()); os.IsNotExist(err) {
		if writeErr := os.WriteFile(dp.Config(), rootpkg.DefaultConfigTOML, 0o644); writeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write default config: %v\n", writeErr)
		}
	}
}

// ///////////////////////////////////////////////
// Main
// ///////////////////////////////////////////////

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one launcher invocation and returns its exit code: 0 on a
// successful hand-off or clean player exit, 1 on identity, IO, or
// validation failure, and the player's own code when a launched player
// exits non-zero.
func run(rawArgs []string) int {
	dataDir := resolveDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mpv-single: create data dir: %v\n", err)
		return 1
	}
	dp := DataPaths{Root: dataDir}
	seedDefaultConfig(dp)

	cfg, err := config.Load(dp.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mpv-single: load config: %v\n", err)
		return 1
	}

	log, logCloser, err := logger.NewLogger(dp.Log(), logger.ParseLevel(cfg.Log.Level), cfg.Log.MaxSizeMB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mpv-single: init logger: %v\n", err)
		return 1
	}
	defer logCloser.Close()
	slog.SetDefault(log)
	slog.Debug("mpv-single starting", "version", resolveVersion(), "args", len(rawArgs))

	files, err := args.NormalizeAll(rawArgs)
	if err != nil {
		fail("normalize arguments", err)
		return 1
	}

	chPath, err := channel.Locate()
	if err != nil {
		fail("locate control channel", err)
		return 1
	}

	ch, err := channel.Open(chPath)
	switch {
	case err == nil:
		return handOff(ch, chPath, cfg, files)
	case errors.Is(err, channel.ErrNoReceiver):
		return launch(chPath, cfg, files)
	case channel.IsUntrusted(err):
		// Deliberately terse: no metadata of the offending object is echoed
		// back where an attacker iterating on a spoofed channel could see it.
		slog.Error("control channel failed validation", "path", chPath)
		fmt.Fprintln(os.Stderr, "mpv-single: control channel failed validation, refusing hand-off")
		return 1
	default:
		fail("probe control channel", err)
		return 1
	}
}

// fail reports a fatal error to both the log file and stderr.
func fail(msg string, err error) {
	slog.Error(msg, "error", err)
	fmt.Fprintf(os.Stderr, "mpv-single: %s: %v\n", msg, err)
}

// ///////////////////////////////////////////////
// Hand-off Path
// ///////////////////////////////////////////////

// handOff appends files to the already running player over the validated
// channel and exits without spawning anything. With MPV_SINGLE_WATCH set the
// invocation stays alive afterwards, feeding newly created files to the same
// player.
func handOff(ch *channel.Channel, chPath string, cfg *config.Config, files []string) int {
	if len(files) > 0 {
		if err := ch.Write(command.Batch(files)); err != nil {
			ch.Close()
			fail("hand-off write", err)
			return 1
		}
		slog.Info("handed off to running player", "files", len(files))
	}
	if err := ch.Close(); err != nil {
		slog.Warn("closing channel", "error", err)
	}

	if dir := os.Getenv(paths.EnvWatch); dir != "" {
		watchLoop(chPath, cfg, dir, nil)
	}
	return 0
}

// ///////////////////////////////////////////////
// Launch Path
// ///////////////////////////////////////////////

// launch provisions a fresh channel and starts a new player that owns it,
// passing the files as startup arguments. It blocks until the player exits
// and propagates the player's exit code.
func launch(chPath string, cfg *config.Config, files []string) int {
	if err := channel.Provision(chPath); err != nil {
		fail("provision control channel", err)
		return 1
	}

	if cfg.Update.Check {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("update check panic", "error", r)
				}
			}()
			update.Check(resolveVersion())
		}()
	}

	player, err := launcher.Start(launcher.Options{
		Player:  cfg.Player.Binary,
		Channel: chPath,
		Extra:   cfg.StartupOptions(),
		Files:   files,
	})
	if err != nil {
		fail("launch player", err)
		return 1
	}
	slog.Info("launched new player", "channel", chPath, "files", len(files))

	// The player owns the terminal now; Ctrl+C is its signal to handle, the
	// launcher just collects the exit status.
	ignoreTerminalInterrupt()

	playerDone := make(chan struct{})
	if dir := os.Getenv(paths.EnvWatch); dir != "" {
		go watchLoop(chPath, cfg, dir, playerDone)
	}

	waitErr := player.Wait()
	close(playerDone)
	code := launcher.ExitCode(waitErr)
	if code != 0 {
		slog.Warn("player exited non-zero", "code", code)
	}
	return code
}

// ///////////////////////////////////////////////
// Watch Mode
// ///////////////////////////////////////////////

// watchLoop feeds newly created files from dir to the running player until
// a signal arrives, stop closes, or the player disappears. Each append is an
// independent probe+validate+write, so the loop re-derives channel state
// from scratch every time, like any other invocation would.
func watchLoop(chPath string, cfg *config.Config, dir string, stop <-chan struct{}) {
	w, err := watcher.New(dir, cfg.Watch.Patterns)
	if err != nil {
		fail("watch mode", err)
		return
	}
	defer w.Close()

	if w.Polling() {
		slog.Info("using polling mode for watch directory")
	}
	slog.Info("watching for new media", "dir", dir)

	sig := signalChannel()
	for {
		select {
		case <-stop:
			return
		case <-sig:
			slog.Info("received shutdown signal")
			return
		case file := <-w.Files():
			if !appendWatched(chPath, file) {
				return
			}
		}
	}
}

// appendWatched hands one watched file to the player. It reports false when
// the loop should stop: the player is gone or the channel can no longer be
// trusted or written.
func appendWatched(chPath, file string) bool {
	ch, err := channel.Open(chPath)
	if err != nil {
		if errors.Is(err, channel.ErrNoReceiver) {
			slog.Info("player gone, stopping watch")
		} else {
			slog.Error("watch hand-off failed", "path", chPath)
		}
		return false
	}
	defer ch.Close()

	if err := ch.Write(command.Batch([]string{file})); err != nil {
		slog.Error("watch hand-off write failed", "error", err)
		return false
	}
	slog.Info("appended watched file", "file", file)
	return true
}
