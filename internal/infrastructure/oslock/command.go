package oslock

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/logging"
)

// ErrNoLockCommand is returned when no lock command is configured or known for the OS.
var ErrNoLockCommand = errors.New("no lock command available")

// DefaultCommand returns the stock lock command for goos, or nil.
func DefaultCommand(goos string) []string {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"loginctl", "lock-session"}
	case "darwin":
		return []string{"pmset", "displaysleepnow"}
	default:
		return nil
	}
}

// CommandLocker runs an external program to lock the screen.
type CommandLocker struct {
	argv []string
}

// NewCommandLocker splits command on whitespace. An empty command selects the
// default for the running OS.
func NewCommandLocker(command string) (*CommandLocker, error) {
	argv := strings.Fields(command)
	if len(argv) == 0 {
		argv = DefaultCommand(runtime.GOOS)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w on %s", ErrNoLockCommand, runtime.GOOS)
	}
	return &CommandLocker{argv: argv}, nil
}

func (c *CommandLocker) Name() string {
	return "command"
}

// Argv returns the command line.
func (c *CommandLocker) Argv() []string {
	return append([]string(nil), c.argv...)
}

// Lock starts the command and returns without waiting for it. Locker programs
// such as swaylock keep running until the session is unlocked.
func (c *CommandLocker) Lock(ctx context.Context) error {
	log := logging.FromContext(ctx)

	path, err := exec.LookPath(c.argv[0])
	if err != nil {
		return fmt.Errorf("lock command %q: %w", c.argv[0], err)
	}

	// Not bound to ctx: stopping the timer must not kill a running screen locker.
	cmd := exec.Command(path, c.argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start lock command: %w", err)
	}
	log.Debug().Strs("argv", c.argv).Int("pid", cmd.Process.Pid).Msg("lock command started")

	go func() {
		if err := cmd.Wait(); err != nil {
			log.Warn().Err(err).Strs("argv", c.argv).Msg("lock command exited with error")
			return
		}
		log.Debug().Strs("argv", c.argv).Msg("lock command exited")
	}()
	return nil
}

var _ port.ScreenLocker = (*CommandLocker)(nil)
