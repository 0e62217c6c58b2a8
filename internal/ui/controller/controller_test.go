package controller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/lockbreak/internal/application/port/mocks"
	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/domain/entity"
	"github.com/bnema/lockbreak/internal/infrastructure/clock/clocktest"
	"github.com/bnema/lockbreak/internal/logging"
	"github.com/bnema/lockbreak/internal/ui/controller"
	"github.com/bnema/lockbreak/internal/ui/mainloop"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// blockingAction holds the lock until the session is cancelled.
type blockingAction struct {
	calls atomic.Int32
}

func (a *blockingAction) Mode() entity.LockMode { return entity.LockModeOverlay }

func (a *blockingAction) Lock(ctx context.Context, _ time.Duration) (entity.EndReason, error) {
	a.calls.Add(1)
	<-ctx.Done()
	return entity.EndReasonStopped, nil
}

func newTimerFactory(action usecase.LockAction, built *atomic.Int32) controller.TimerFactory {
	return func() (*usecase.LockTimer, error) {
		if built != nil {
			built.Add(1)
		}
		c := clocktest.NewScaled(time.Time{}, 1000)
		return usecase.NewLockTimer(action, c, nil, usecase.LockTimerConfig{LockDuration: time.Minute}), nil
	}
}

func statusIs(s entity.Status) any {
	return mock.MatchedBy(func(e entity.StatusEvent) bool { return e.Status == s })
}

func TestController_StartRejectsInvalidInput(t *testing.T) {
	view := portmocks.NewMockStatusView(t)
	view.On("ShowError", controller.InvalidInputTitle, controller.InvalidInputMessage).Times(3)

	var built atomic.Int32
	c := controller.New(testContext(), view, mainloop.NewQueue(nil), newTimerFactory(&blockingAction{}, &built))

	for _, input := range []string{"", "abc", "-5"} {
		err := c.Start(input)
		assert.ErrorIs(t, err, entity.ErrInvalidInterval)
	}

	assert.False(t, c.Running())
	assert.Zero(t, built.Load())
}

func TestController_StartStop(t *testing.T) {
	view := portmocks.NewMockStatusView(t)
	view.On("ShowStatus", statusIs(entity.StatusIdle)).Once()
	view.On("SetRunning", false).Twice()
	view.On("ShowStatus", mock.MatchedBy(func(e entity.StatusEvent) bool {
		return e.Status == entity.StatusRunning && e.Interval == 30*time.Minute
	})).Once()
	view.On("SetRunning", true).Once()
	view.On("ShowStatus", statusIs(entity.StatusStopped)).Once()

	queue := mainloop.NewQueue(nil)
	c := controller.New(testContext(), view, queue, newTimerFactory(&blockingAction{}, nil))
	c.Init()

	require.NoError(t, c.Start("30"))
	assert.True(t, c.Running())
	session := c.Session()
	require.NotNil(t, session)

	c.Stop()
	assert.False(t, c.Running())
	require.True(t, session.Wait(time.Second))

	// Worker events of the stopped session are dropped.
	queue.Drain()

	// Stop while idle is a no-op.
	c.Stop()
}

func TestController_StartWhileRunningIsNoop(t *testing.T) {
	view := portmocks.NewMockStatusView(t)
	view.On("ShowStatus", mock.Anything).Maybe()
	view.On("SetRunning", mock.Anything).Maybe()

	var built atomic.Int32
	c := controller.New(testContext(), view, mainloop.NewQueue(nil), newTimerFactory(&blockingAction{}, &built))

	require.NoError(t, c.Start("1"))
	first := c.Session()

	assert.ErrorIs(t, c.Start("2"), controller.ErrAlreadyRunning)
	assert.Same(t, first, c.Session())
	assert.Equal(t, int32(1), built.Load())

	c.Stop()
}

func TestController_WorkerEventsReachView(t *testing.T) {
	view := portmocks.NewMockStatusView(t)
	view.On("ShowStatus", mock.Anything).Maybe()
	view.On("SetRunning", mock.Anything).Maybe()

	action := &blockingAction{}
	queue := mainloop.NewQueue(nil)
	c := controller.New(testContext(), view, queue, newTimerFactory(action, nil))

	// One second of scaled time elapses in a millisecond.
	require.NoError(t, c.Start("0.02"))

	require.Eventually(t, func() bool {
		queue.Drain()
		for _, call := range view.Calls {
			if call.Method == "ShowStatus" && call.Arguments.Get(0).(entity.StatusEvent).Status == entity.StatusLocking {
				return true
			}
		}
		return false
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), action.calls.Load())
	c.Stop()
}

func TestController_SessionEndingOnItsOwnResetsControls(t *testing.T) {
	view := portmocks.NewMockStatusView(t)
	view.On("ShowStatus", mock.Anything).Maybe()
	view.On("SetRunning", true).Once()
	view.On("SetRunning", false).Once()

	ctx, cancel := context.WithCancel(testContext())
	queue := mainloop.NewQueue(nil)
	c := controller.New(ctx, view, queue, newTimerFactory(&blockingAction{}, nil))

	require.NoError(t, c.Start("10"))
	session := c.Session()
	cancel()
	require.True(t, session.Wait(time.Second))

	queue.Drain()
	assert.Nil(t, c.Session())
	assert.False(t, c.Running())
}

func TestController_RequestClose(t *testing.T) {
	view := portmocks.NewMockStatusView(t)
	view.On("ShowStatus", mock.Anything).Maybe()
	view.On("SetRunning", mock.Anything).Maybe()

	c := controller.New(testContext(), view, mainloop.NewQueue(nil), newTimerFactory(&blockingAction{}, nil))
	require.NoError(t, c.Start("5"))
	session := c.Session()

	assert.False(t, c.RequestClose(func() bool { return false }))
	assert.True(t, c.Running())

	assert.True(t, c.RequestClose(func() bool { return true }))
	assert.False(t, c.Running())

	select {
	case <-session.Done():
	default:
		t.Fatal("worker still running after close")
	}

	// Without a confirmation callback the close proceeds.
	assert.True(t, c.RequestClose(nil))
}
