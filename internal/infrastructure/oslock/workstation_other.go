//go:build !windows

package oslock

import "github.com/bnema/lockbreak/internal/application/port"

// newPlatformLocker reports that the OS has no in-process lock call.
func newPlatformLocker() (port.ScreenLocker, bool) {
	return nil, false
}
