package port

import (
	"context"
	"io"
)

// ScreenLocker invokes the operating system's lock-workstation facility.
// Lock is fire-and-forget: it returns once the request was issued, not when the
// session is unlocked again.
type ScreenLocker interface {
	Lock(ctx context.Context) error
	// Name identifies the backend in logs and diagnostics.
	Name() string
}

// LockStateWatcher reports changes of the session lock state.
// It is safe to call its methods concurrently.
type LockStateWatcher interface {
	// AddLockedSignal registers a channel that is notified with true when the session
	// becomes locked and false when it is unlocked.
	// Writing to this channel does not block; use a buffered channel.
	AddLockedSignal(c chan<- bool) error

	// RemoveLockedSignal unregisters a channel previously registered with AddLockedSignal.
	// It can be safely called with an unregistered channel.
	RemoveLockedSignal(c chan<- bool) error

	io.Closer
}
