// Unix/Darwin signal handling.
//
// This file is compiled on all non-Windows platforms (Linux, macOS, *BSD).
// The launcher shares the foreground process group with the player it
// spawns, so terminal-generated SIGINT reaches both; the launcher ignores
// it and lets the player decide when to exit.

//go:build !windows

package main

import (
	"os"
	"os/signal"
	"syscall"
)

// ///////////////////////////////////////////////
// Signal Handling
// ///////////////////////////////////////////////

// signalChannel returns a buffered channel that receives SIGINT and SIGTERM.
// The buffer size of 1 ensures the signal is not lost if the receiver is
// briefly busy when the signal arrives.
func signalChannel() <-chan os.Signal {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return ch
}

// ignoreTerminalInterrupt stops SIGINT from killing the launcher while it
// waits on the player, which receives the same terminal-generated signal
// and handles it itself.
func ignoreTerminalInterrupt() {
	signal.Ignore(os.Interrupt)
}
