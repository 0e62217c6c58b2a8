package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/infrastructure/clock/clocktest"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui/mainloop"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// fastClock makes one second last one millisecond.
func fastClock() *clocktest.Scaled {
	return clocktest.NewScaled(time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC), 1000)
}

// startUIPump drains a queue on a dedicated goroutine, standing in for the UI thread.
func startUIPump(t *testing.T) *mainloop.Queue {
	t.Helper()
	wake := make(chan struct{}, 1)
	q := mainloop.NewQueue(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		for {
			select {
			case <-done:
				return
			case <-wake:
				q.Drain()
			}
		}
	}()
	t.Cleanup(func() {
		close(done)
		<-stopped
		q.Close()
	})
	return q
}

type statusRecorder struct {
	mu     sync.Mutex
	events []entity.StatusEvent
}

func (r *statusRecorder) observe(e entity.StatusEvent) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *statusRecorder) statuses() []entity.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Status, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Status)
	}
	return out
}

func (r *statusRecorder) count(s entity.Status) int {
	n := 0
	for _, got := range r.statuses() {
		if got == s {
			n++
		}
	}
	return n
}

func (r *statusRecorder) find(s entity.Status) (entity.StatusEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.Status == s {
			return e, true
		}
	}
	return entity.StatusEvent{}, false
}

// funcAction adapts a function to usecase.LockAction.
type funcAction struct {
	mode entity.LockMode
	fn   func(ctx context.Context, d time.Duration) (entity.EndReason, error)

	mu        sync.Mutex
	calls     int
	durations []time.Duration
}

func (a *funcAction) Mode() entity.LockMode { return a.mode }

func (a *funcAction) Lock(ctx context.Context, d time.Duration) (entity.EndReason, error) {
	a.mu.Lock()
	a.calls++
	a.durations = append(a.durations, d)
	a.mu.Unlock()
	return a.fn(ctx, d)
}

func (a *funcAction) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

// fakeOverlay records what the lock action asks the UI to do.
type fakeOverlay struct {
	mu         sync.Mutex
	spec       port.OverlaySpec
	shows      int
	countdowns []string
	closed     int
	onUnlock   func()

	showErr    error
	nilHandle  bool
	unlockOnUp bool
}

func (f *fakeOverlay) ShowOverlay(spec port.OverlaySpec, onUnlock func()) (port.OverlayHandle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shows++
	f.spec = spec
	f.onUnlock = onUnlock
	if f.showErr != nil {
		return nil, f.showErr
	}
	if f.nilHandle {
		return nil, nil
	}
	if f.unlockOnUp {
		go onUnlock()
	}
	return &fakeHandle{owner: f}, nil
}

func (f *fakeOverlay) snapshot() (shows int, countdowns []string, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shows, append([]string(nil), f.countdowns...), f.closed
}

func (f *fakeOverlay) closeCount() int {
	_, _, closed := f.snapshot()
	return closed
}

type fakeHandle struct {
	owner  *fakeOverlay
	closed bool
}

func (h *fakeHandle) SetCountdown(text string) error {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	if h.closed {
		return errors.New("overlay already closed")
	}
	h.owner.countdowns = append(h.owner.countdowns, text)
	return nil
}

func (h *fakeHandle) Close() error {
	h.owner.mu.Lock()
	defer h.owner.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.owner.closed++
	return nil
}

// fakeWatcher fans lock state changes out to registered channels.
type fakeWatcher struct {
	mu      sync.Mutex
	chans   []chan<- bool
	addErr  error
	removed int
}

func (w *fakeWatcher) AddLockedSignal(c chan<- bool) error {
	if w.addErr != nil {
		return w.addErr
	}
	w.mu.Lock()
	w.chans = append(w.chans, c)
	w.mu.Unlock()
	return nil
}

func (w *fakeWatcher) RemoveLockedSignal(c chan<- bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, ch := range w.chans {
		if ch == c {
			w.chans = append(w.chans[:i], w.chans[i+1:]...)
			w.removed++
			break
		}
	}
	return nil
}

func (w *fakeWatcher) Close() error { return nil }

func (w *fakeWatcher) emit(locked bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.chans {
		select {
		case c <- locked:
		default:
		}
	}
}

func (w *fakeWatcher) removedCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removed
}
