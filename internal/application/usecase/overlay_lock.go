package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/logging"
)

const countdownKey = "overlay-countdown"

// DefaultOverlayTexts are the labels shown on the lock overlay.
var DefaultOverlayTexts = port.OverlaySpec{
	Title:       "Screen locked",
	UnlockLabel: "Unlock now",
	Hint:        "or wait for the countdown to unlock automatically",
}

// OverlayLockAction shows a full-screen overlay with a countdown and an unlock control.
// The countdown runs on the caller's goroutine; every widget update is posted to the
// UI dispatcher.
type OverlayLockAction struct {
	presenter  port.OverlayPresenter
	dispatcher port.UIDispatcher
	clock      port.Clock
	texts      port.OverlaySpec

	// Tick is the countdown granularity.
	Tick time.Duration
}

// NewOverlayLockAction creates an overlay action with a one-second countdown.
func NewOverlayLockAction(
	presenter port.OverlayPresenter,
	dispatcher port.UIDispatcher,
	clock port.Clock,
) *OverlayLockAction {
	return &OverlayLockAction{
		presenter:  presenter,
		dispatcher: dispatcher,
		clock:      clock,
		texts:      DefaultOverlayTexts,
		Tick:       time.Second,
	}
}

func (a *OverlayLockAction) Mode() entity.LockMode {
	return entity.LockModeOverlay
}

type overlayShown struct {
	handle port.OverlayHandle
	err    error
}

// Lock displays the overlay and blocks until it expires, is unlocked, or ctx is cancelled.
func (a *OverlayLockAction) Lock(ctx context.Context, duration time.Duration) (entity.EndReason, error) {
	log := logging.FromContext(ctx)

	unlocked := make(chan struct{})
	var unlockOnce sync.Once
	onUnlock := func() {
		unlockOnce.Do(func() { close(unlocked) })
	}

	spec := a.texts
	spec.Countdown = entity.FormatCountdown(duration)

	shown := make(chan overlayShown, 1)
	a.dispatcher.Post(func() {
		handle, err := a.presenter.ShowOverlay(spec, onUnlock)
		shown <- overlayShown{handle: handle, err: err}
	})

	var handle port.OverlayHandle
	select {
	case <-ctx.Done():
		// The show task may still run; close whatever it produces.
		go func() {
			if r := <-shown; r.err == nil && r.handle != nil {
				a.closeOverlay(ctx, r.handle)
			}
		}()
		return entity.EndReasonStopped, nil
	case r := <-shown:
		if r.err != nil {
			return entity.EndReasonFailed, fmt.Errorf("show overlay: %w", r.err)
		}
		if r.handle == nil {
			return entity.EndReasonFailed, port.ErrOverlayUnavailable
		}
		handle = r.handle
	}
	defer a.closeOverlay(ctx, handle)

	log.Debug().Dur("duration", duration).Msg("overlay shown")

	tick := a.Tick
	if tick <= 0 {
		tick = time.Second
	}

	remaining := duration
	for remaining > 0 {
		step := min(tick, remaining)
		select {
		case <-ctx.Done():
			return entity.EndReasonStopped, nil
		case <-unlocked:
			log.Info().Str("remaining", entity.FormatCountdown(remaining)).Msg("overlay unlocked by user")
			return entity.EndReasonUnlocked, nil
		case <-a.clock.After(step):
		}
		remaining -= step
		a.setCountdown(ctx, handle, entity.FormatCountdown(remaining))
	}

	return entity.EndReasonExpired, nil
}

func (a *OverlayLockAction) setCountdown(ctx context.Context, handle port.OverlayHandle, text string) {
	a.dispatcher.PostCoalesced(countdownKey, func() {
		if err := handle.SetCountdown(text); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("overlay countdown update failed")
		}
	})
}

func (a *OverlayLockAction) closeOverlay(ctx context.Context, handle port.OverlayHandle) {
	a.dispatcher.Post(func() {
		if err := handle.Close(); err != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("overlay close failed")
		}
	})
}

var _ LockAction = (*OverlayLockAction)(nil)
