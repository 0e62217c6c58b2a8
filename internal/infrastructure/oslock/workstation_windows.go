//go:build windows

package oslock

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/bnema/lockbreak/internal/application/port"
)

var ErrLockWorkStation = errors.New("LockWorkStation failed")

var procLockWorkStation = windows.NewLazySystemDLL("user32.dll").NewProc("LockWorkStation")

// WorkstationLocker calls user32!LockWorkStation.
type WorkstationLocker struct{}

func newPlatformLocker() (port.ScreenLocker, bool) {
	return WorkstationLocker{}, true
}

func (WorkstationLocker) Name() string {
	return "workstation"
}

func (WorkstationLocker) Lock(context.Context) error {
	if err := procLockWorkStation.Find(); err != nil {
		return fmt.Errorf("%w: %w", ErrLockWorkStation, err)
	}
	// LockWorkStation returns 0 on failure.
	ret, _, err := procLockWorkStation.Call()
	if ret == 0 {
		return fmt.Errorf("%w: %w", ErrLockWorkStation, err)
	}
	return nil
}

var _ port.ScreenLocker = WorkstationLocker{}
