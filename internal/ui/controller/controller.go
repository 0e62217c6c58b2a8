// Package controller bridges the settings form and the lock timer.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/lockbreak/internal/application/port"
	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/logging"
)

// ErrAlreadyRunning is returned by Start while a session is active.
var ErrAlreadyRunning = errors.New("lock timer already running")

const (
	InvalidInputTitle   = "Invalid input"
	InvalidInputMessage = "Please enter a positive number of minutes (e.g. 30)"

	// ConfirmExitMessage is the question front-ends ask before closing.
	ConfirmExitMessage = "Exit the program? The lock timer will be stopped."

	defaultStopWait = time.Second
)

// TimerFactory builds the lock timer for a new session. It is called on every
// Start so configuration changes apply to the next session.
type TimerFactory func() (*usecase.LockTimer, error)

// Controller owns the current session and keeps the status view in sync.
// Start, Stop and RequestClose must be called on the UI thread; worker events
// reach the view through the dispatcher.
type Controller struct {
	ctx        context.Context
	logger     *zerolog.Logger
	view       port.StatusView
	dispatcher port.UIDispatcher
	newTimer   TimerFactory

	session *usecase.Session
	// generation identifies the current session; events of older sessions are dropped.
	generation uint64

	// StopWait bounds how long RequestClose waits for the worker.
	StopWait time.Duration
}

func New(
	ctx context.Context,
	view port.StatusView,
	dispatcher port.UIDispatcher,
	newTimer TimerFactory,
) *Controller {
	ctx = logging.WithComponent(ctx, "controller")
	return &Controller{
		ctx:        ctx,
		logger:     logging.FromContext(ctx),
		view:       view,
		dispatcher: dispatcher,
		newTimer:   newTimer,
		StopWait:   defaultStopWait,
	}
}

// Init shows the idle state.
func (c *Controller) Init() {
	c.view.ShowStatus(entity.StatusEvent{Status: entity.StatusIdle})
	c.view.SetRunning(false)
}

// Running reports whether a session is active.
func (c *Controller) Running() bool {
	return c.session != nil && c.session.Running()
}

// Session returns the current session or nil.
func (c *Controller) Session() *usecase.Session {
	return c.session
}

// Start parses the interval and starts a session. Invalid input is reported with
// a modal error and leaves the state untouched. Start while running is a no-op.
func (c *Controller) Start(input string) error {
	interval, err := entity.ParseIntervalMinutes(input)
	if err != nil {
		c.logger.Debug().Str("input", input).Err(err).Msg("rejected interval")
		c.view.ShowError(InvalidInputTitle, InvalidInputMessage)
		return err
	}

	if c.Running() {
		c.logger.Debug().Msg("start ignored, already running")
		return ErrAlreadyRunning
	}

	timer, err := c.newTimer()
	if err != nil {
		c.view.ShowError("Cannot start", err.Error())
		return err
	}

	c.generation++
	gen := c.generation
	session, err := timer.Start(c.ctx, interval, func(event entity.StatusEvent) {
		c.dispatcher.Post(func() { c.apply(gen, event) })
	})
	if err != nil {
		c.view.ShowError("Cannot start", err.Error())
		return err
	}
	c.session = session

	c.view.ShowStatus(entity.StatusEvent{Status: entity.StatusRunning, Interval: interval})
	c.view.SetRunning(true)
	return nil
}

// Stop ends the current session. The view switches to stopped immediately, even
// if the worker is still finishing a lock. Stop while idle is a no-op.
func (c *Controller) Stop() {
	if c.session == nil {
		return
	}
	c.session.Stop()
	c.session = nil
	c.generation++

	c.view.ShowStatus(entity.StatusEvent{Status: entity.StatusStopped})
	c.view.SetRunning(false)
}

// RequestClose asks confirm (when non-nil) whether to exit. On yes it stops the
// session, waits up to StopWait for the worker, and returns true.
func (c *Controller) RequestClose(confirm func() bool) bool {
	if confirm != nil && !confirm() {
		return false
	}

	session := c.session
	c.Stop()
	if session != nil && !session.Wait(c.StopWait) {
		c.logger.Warn().Dur("waited", c.StopWait).Msg("lock timer did not stop in time")
	}
	return true
}

// apply runs on the UI thread.
func (c *Controller) apply(gen uint64, event entity.StatusEvent) {
	if gen != c.generation {
		return
	}

	c.view.ShowStatus(event)
	if event.Status == entity.StatusStopped {
		// The session ended on its own, e.g. its parent context was cancelled.
		c.session = nil
		c.view.SetRunning(false)
	}
}
