package port

import "errors"

// ErrOverlayUnavailable is returned when the front-end cannot display an overlay.
var ErrOverlayUnavailable = errors.New("lock overlay unavailable")

// OverlaySpec describes the texts shown on the lock overlay.
type OverlaySpec struct {
	Title       string
	Countdown   string
	UnlockLabel string
	Hint        string
}

// OverlayPresenter renders the full-screen lock overlay.
// All methods, including those of the returned handle, must be called on the UI thread.
type OverlayPresenter interface {
	// ShowOverlay displays a full-screen, topmost, undecorated overlay.
	// onUnlock is called on the UI thread when the user presses the unlock control.
	// Closing through window chrome must be refused.
	ShowOverlay(spec OverlaySpec, onUnlock func()) (OverlayHandle, error)
}

// OverlayHandle controls a displayed overlay.
type OverlayHandle interface {
	SetCountdown(text string) error
	// Close destroys the overlay. Calling it more than once is a no-op.
	Close() error
}
