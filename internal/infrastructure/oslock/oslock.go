// Package oslock invokes the operating system's native screen lock.
package oslock

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/logging"
)

// Backend names accepted by New.
const (
	BackendAuto    = "auto"
	BackendLogind  = "logind"
	BackendCommand = "command"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Command overrides the per-OS default of the command backend.
	Command string
	// SessionID defaults to $XDG_SESSION_ID.
	SessionID string
}

// Result holds the chosen locker and, when the backend supports it, a lock
// state watcher. Close releases the backend.
type Result struct {
	Locker  port.ScreenLocker
	Watcher port.LockStateWatcher
}

func (r *Result) Close() error {
	if r == nil || r.Watcher == nil {
		return nil
	}
	return r.Watcher.Close()
}

// New builds the screen locker for opts.Backend.
//
// auto prefers an explicit command, then the in-process Windows call, then
// logind, and finally the OS default command.
func New(ctx context.Context, opts Options) (*Result, error) {
	log := logging.FromContext(ctx)
	if opts.SessionID == "" {
		opts.SessionID = os.Getenv("XDG_SESSION_ID")
	}

	switch opts.Backend {
	case BackendLogind:
		locker, err := NewLogindLocker(ctx, opts.SessionID)
		if err != nil {
			return nil, err
		}
		return &Result{Locker: locker, Watcher: locker}, nil

	case BackendCommand:
		locker, err := NewCommandLocker(opts.Command)
		if err != nil {
			return nil, err
		}
		return &Result{Locker: locker}, nil

	case BackendAuto, "":
		if opts.Command != "" {
			locker, err := NewCommandLocker(opts.Command)
			if err != nil {
				return nil, err
			}
			return &Result{Locker: locker}, nil
		}
		if locker, ok := newPlatformLocker(); ok {
			return &Result{Locker: locker}, nil
		}
		if runtime.GOOS == "linux" {
			locker, err := NewLogindLocker(ctx, opts.SessionID)
			if err == nil {
				return &Result{Locker: locker, Watcher: locker}, nil
			}
			log.Info().Err(err).Msg("logind unavailable, using lock command")
		}
		locker, err := NewCommandLocker("")
		if err != nil {
			return nil, err
		}
		return &Result{Locker: locker}, nil

	default:
		return nil, fmt.Errorf("unknown lock backend %q", opts.Backend)
	}
}
