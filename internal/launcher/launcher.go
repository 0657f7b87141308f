// Package launcher spawns a new player instance as the sole owner of a
// freshly provisioned control channel.
//
// The player inherits the invoker's standard streams and environment so it
// can take over the controlling terminal. The invocation then blocks until
// the player exits and propagates its exit code.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// ///////////////////////////////////////////////
// Options
// ///////////////////////////////////////////////

// Options describes a single player launch.
type Options struct {
	// Player is the player binary, resolved through PATH unless absolute.
	Player string
	// Channel is the control channel path the player will read commands from.
	Channel string
	// Extra holds configured startup options inserted before the "--"
	// separator, in order.
	Extra []string
	// Files holds normalized file entries passed as positional arguments
	// after "--".
	Files []string
}

// Args builds the player argument list:
//
//	--no-terminal --force-window <channel-arg> <extra...> -- <files...>
//
// The "--" separator is mandatory even with no files: nothing after it can
// be reinterpreted as an option, so a file named "-foo" stays a file.
func Args(o Options) []string {
	argv := make([]string, 0, 4+len(o.Extra)+len(o.Files))
	argv = append(argv, "--no-terminal", "--force-window", channelArg(o.Channel))
	argv = append(argv, o.Extra...)
	argv = append(argv, "--")
	argv = append(argv, o.Files...)
	return argv
}

// ///////////////////////////////////////////////
// Player Process
// ///////////////////////////////////////////////

// Player is a started player process.
type Player struct {
	cmd *exec.Cmd
}

// Start spawns the player with the invoker's stdin/stdout/stderr and
// environment. The returned [Player] must be waited on.
func Start(o Options) (*Player, error) {
	cmd := exec.Command(o.Player, Args(o)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start player %s: %w", o.Player, err)
	}
	return &Player{cmd: cmd}, nil
}

// Wait blocks until the player exits. A non-zero exit surfaces as an
// [*exec.ExitError]; pass it to [ExitCode] to recover the code.
func (p *Player) Wait() error {
	return p.cmd.Wait()
}

// Run is [Start] followed by [Wait].
func Run(o Options) error {
	p, err := Start(o)
	if err != nil {
		return err
	}
	return p.Wait()
}

// ExitCode maps a [Player.Wait] error to the invocation's exit code: 0 for
// nil, the player's own code for a non-zero exit, and 1 for anything else
// (startup failure, signal death with no code).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() >= 0 {
		return ee.ExitCode()
	}
	return 1
}
