// Package diagnostics implements the doctor checks.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/infrastructure/oslock"
	"github.com/bnema/lockbreak/internal/infrastructure/persistence/sqlite"
)

// Getenv reads an environment variable. Tests replace it.
type Getenv func(string) string

// DisplayCheck reports whether a graphical session is reachable for the overlay.
type DisplayCheck struct {
	Getenv Getenv
	GOOS   string
}

func (DisplayCheck) Name() string { return "display" }

func (c DisplayCheck) Check(context.Context) (string, error) {
	getenv := c.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	goos := c.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "windows" || goos == "darwin" {
		return goos + " desktop", nil
	}
	if d := getenv("WAYLAND_DISPLAY"); d != "" {
		return "wayland " + d, nil
	}
	if d := getenv("DISPLAY"); d != "" {
		return "x11 " + d, nil
	}
	return "", errors.New("neither WAYLAND_DISPLAY nor DISPLAY is set; only the tui front-end will work")
}

// LockBackendCheck builds the configured system lock backend without locking.
type LockBackendCheck struct {
	Options oslock.Options
	// Build defaults to oslock.New.
	Build func(context.Context, oslock.Options) (*oslock.Result, error)
}

func (LockBackendCheck) Name() string { return "lock backend" }

func (c LockBackendCheck) Check(ctx context.Context) (string, error) {
	build := c.Build
	if build == nil {
		build = oslock.New
	}
	res, err := build(ctx, c.Options)
	if err != nil {
		return "", err
	}
	defer func() { _ = res.Close() }()

	detail := res.Locker.Name()
	if cl, ok := res.Locker.(*oslock.CommandLocker); ok {
		detail += ": " + strings.Join(cl.Argv(), " ")
	}
	if res.Watcher == nil {
		return detail, fmt.Errorf("%w: %s cannot report unlocks, resume_on_unlock falls back to the confirm timeout",
			usecase.ErrDiagnosticWarning, res.Locker.Name())
	}
	return detail + " (unlock tracking)", nil
}

// LockCommandCheck verifies the lock command is on PATH.
type LockCommandCheck struct {
	Command string
	GOOS    string
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

func (LockCommandCheck) Name() string { return "lock command" }

func (c LockCommandCheck) Check(context.Context) (string, error) {
	argv := strings.Fields(c.Command)
	if len(argv) == 0 {
		goos := c.GOOS
		if goos == "" {
			goos = runtime.GOOS
		}
		argv = oslock.DefaultCommand(goos)
	}
	if len(argv) == 0 {
		return "", fmt.Errorf("%w: %w", usecase.ErrDiagnosticWarning, oslock.ErrNoLockCommand)
	}
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(argv[0])
	if err != nil {
		return "", fmt.Errorf("%w: %s not found", usecase.ErrDiagnosticWarning, argv[0])
	}
	return path, nil
}

// DatabaseCheck opens the history database and reports its schema version.
type DatabaseCheck struct {
	Path    string
	Enabled bool
}

func (DatabaseCheck) Name() string { return "history database" }

func (c DatabaseCheck) Check(ctx context.Context) (string, error) {
	if !c.Enabled {
		return "disabled", nil
	}
	db, err := sqlite.NewConnection(ctx, c.Path)
	if err != nil {
		return "", err
	}
	defer func() { _ = sqlite.Close(db) }()

	version, err := sqlite.GetMigrationStatus(ctx, db)
	if err != nil {
		return "", fmt.Errorf("read schema version: %w", err)
	}
	return fmt.Sprintf("%s (schema v%d)", c.Path, version), nil
}

var (
	_ port.DiagnosticCheck = DisplayCheck{}
	_ port.DiagnosticCheck = LockBackendCheck{}
	_ port.DiagnosticCheck = LockCommandCheck{}
	_ port.DiagnosticCheck = DatabaseCheck{}
)
