// Package component provides GTK widgets of the front-end.
package component

import (
	"context"
	"errors"

	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/rs/zerolog"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui/theme"
)

// ErrOverlayClosed is returned when updating an overlay that was already closed.
var ErrOverlayClosed = errors.New("overlay closed")

const overlaySpacing = 24

// LockOverlay shows the lock overlay as a fullscreen undecorated GTK window.
type LockOverlay struct {
	app    *gtk.Application
	logger *zerolog.Logger
}

// NewLockOverlay creates the presenter. app may be nil; when set, overlays are
// registered with it so the application stays alive while one is shown.
func NewLockOverlay(ctx context.Context, app *gtk.Application) *LockOverlay {
	return &LockOverlay{
		app:    app,
		logger: logging.FromContext(logging.WithComponent(ctx, "lock-overlay")),
	}
}

// ShowOverlay implements port.OverlayPresenter. Must run on the GTK thread.
func (o *LockOverlay) ShowOverlay(spec port.OverlaySpec, onUnlock func()) (port.OverlayHandle, error) {
	if gdk.DisplayGetDefault() == nil {
		return nil, port.ErrOverlayUnavailable
	}

	h := &overlayHandle{logger: o.logger}
	h.window = gtk.NewWindow()
	if h.window == nil {
		return nil, port.ErrOverlayUnavailable
	}
	if o.app != nil {
		h.window.SetApplication(o.app)
	}

	h.window.SetTitle(spec.Title)
	h.window.SetDecorated(false)
	h.window.SetModal(true)
	h.window.SetDeletable(false)
	h.window.AddCSSClass(theme.ClassOverlay)

	content := gtk.NewBox(gtk.OrientationVertical, overlaySpacing)
	content.SetHAlign(gtk.AlignCenter)
	content.SetVAlign(gtk.AlignCenter)

	title := gtk.NewLabel(spec.Title)
	title.AddCSSClass(theme.ClassOverlayTitle)
	content.Append(title)

	h.countdown = gtk.NewLabel(spec.Countdown)
	h.countdown.AddCSSClass(theme.ClassCountdown)
	content.Append(h.countdown)

	unlock := gtk.NewButtonWithLabel(spec.UnlockLabel)
	unlock.AddCSSClass(theme.ClassUnlockButton)
	unlock.SetHAlign(gtk.AlignCenter)
	unlock.ConnectClicked(func() {
		if h.state.closed || onUnlock == nil {
			return
		}
		onUnlock()
	})
	content.Append(unlock)

	hint := gtk.NewLabel(spec.Hint)
	hint.AddCSSClass(theme.ClassOverlayHint)
	content.Append(hint)

	h.window.SetChild(content)

	// Window-manager close requests are refused; only Close destroys the overlay.
	h.window.ConnectCloseRequest(func() bool {
		refuse := !h.state.allowClose()
		if refuse {
			h.logger.Debug().Msg("refused overlay close request")
		}
		return refuse
	})

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, _ uint, _ gdk.ModifierType) bool {
		return keyval == gdk.KEY_Escape
	})
	h.window.AddController(keys)

	h.window.Fullscreen()
	h.window.Present()
	unlock.GrabFocus()

	h.logger.Debug().Str("countdown", spec.Countdown).Msg("overlay shown")
	return h, nil
}

type overlayHandle struct {
	window    *gtk.Window
	countdown *gtk.Label
	state     overlayState
	logger    *zerolog.Logger
}

// SetCountdown implements port.OverlayHandle.
func (h *overlayHandle) SetCountdown(text string) error {
	if h.state.closed {
		return ErrOverlayClosed
	}
	h.countdown.SetText(text)
	return nil
}

// Close implements port.OverlayHandle.
func (h *overlayHandle) Close() error {
	if !h.state.beginClose() {
		return nil
	}
	h.window.Destroy()
	h.state.closed = true
	h.logger.Debug().Msg("overlay closed")
	return nil
}

// overlayState is only touched on the GTK thread.
type overlayState struct {
	closing bool
	closed  bool
}

// beginClose marks a programmatic close. It reports false if one already happened.
func (s *overlayState) beginClose() bool {
	if s.closing || s.closed {
		return false
	}
	s.closing = true
	return true
}

// allowClose reports whether a close-request should proceed.
func (s *overlayState) allowClose() bool {
	return s.closing
}

var _ port.OverlayPresenter = (*LockOverlay)(nil)
