package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/lockbreak/internal/application/usecase"
	"github.com/bnema/lockbreak/internal/domain/entity"
	repomocks "github.com/bnema/lockbreak/internal/domain/repository/mocks"
	"github.com/bnema/lockbreak/internal/logging"
)

func expiringAction() *funcAction {
	return &funcAction{
		mode: entity.LockModeOverlay,
		fn: func(context.Context, time.Duration) (entity.EndReason, error) {
			return entity.EndReasonExpired, nil
		},
	}
}

func TestLockTimer_Start_RejectsShortInterval(t *testing.T) {
	timer := usecase.NewLockTimer(expiringAction(), fastClock(), nil, usecase.LockTimerConfig{})

	_, err := timer.Start(testContext(), 500*time.Millisecond, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidInterval)
}

func TestLockTimer_Start_RejectsShortLockDuration(t *testing.T) {
	timer := usecase.NewLockTimer(expiringAction(), fastClock(), nil, usecase.LockTimerConfig{
		LockDuration: 10 * time.Millisecond,
	})

	_, err := timer.Start(testContext(), time.Minute, nil)
	assert.ErrorIs(t, err, usecase.ErrInvalidLockDuration)
}

func TestLockTimer_DefaultLockDuration(t *testing.T) {
	timer := usecase.NewLockTimer(expiringAction(), fastClock(), nil, usecase.LockTimerConfig{})

	assert.Equal(t, usecase.DefaultLockDuration, timer.LockDuration())
	assert.Equal(t, entity.LockModeOverlay, timer.Mode())
}

func TestLockTimer_SessionLogsCarryLockMode(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: "json", Output: &buf})
	ctx := logging.WithContext(context.Background(), logger)

	action := &funcAction{
		mode: entity.LockModeSystem,
		fn: func(context.Context, time.Duration) (entity.EndReason, error) {
			return entity.EndReasonExpired, nil
		},
	}
	timer := usecase.NewLockTimer(action, fastClock(), nil, usecase.LockTimerConfig{})

	session, err := timer.Start(ctx, time.Minute, nil)
	require.NoError(t, err)
	session.Stop()
	require.True(t, session.Wait(time.Second))

	out := buf.String()
	assert.Contains(t, out, `"component":"lock-timer"`)
	assert.Contains(t, out, `"lock_mode":"system"`)
	assert.Contains(t, out, `"message":"session stopped"`)
}

func TestLockTimer_CyclesUntilStopped(t *testing.T) {
	action := expiringAction()
	rec := &statusRecorder{}
	timer := usecase.NewLockTimer(action, fastClock(), nil, usecase.LockTimerConfig{
		LockDuration: 5 * time.Minute,
	})

	session, err := timer.Start(testContext(), 30*time.Second, rec.observe)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, session.Interval())

	require.Eventually(t, func() bool { return action.callCount() >= 3 }, 2*time.Second, time.Millisecond)
	session.Stop()
	require.True(t, session.Wait(time.Second))

	assert.False(t, session.Running())
	assert.Equal(t, entity.StatusStopped, session.Status())
	assert.GreaterOrEqual(t, session.LockCount(), 3)

	statuses := rec.statuses()
	require.NotEmpty(t, statuses)
	assert.Equal(t, entity.StatusRunning, statuses[0])
	assert.Equal(t, entity.StatusStopped, statuses[len(statuses)-1])
	assert.Equal(t, 1, rec.count(entity.StatusStopped))
	assert.GreaterOrEqual(t, rec.count(entity.StatusLocking), 3)
	assert.GreaterOrEqual(t, rec.count(entity.StatusWaiting), 2)

	running, ok := rec.find(entity.StatusRunning)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, running.Interval)

	locking, ok := rec.find(entity.StatusLocking)
	require.True(t, ok)
	assert.Equal(t, entity.LockModeOverlay, locking.Mode)

	action.mu.Lock()
	defer action.mu.Unlock()
	for _, d := range action.durations {
		assert.Equal(t, 5*time.Minute, d)
	}
}

func TestLockTimer_StopDuringWaitExitsPromptly(t *testing.T) {
	action := expiringAction()
	timer := usecase.NewLockTimer(action, fastClock(), nil, usecase.LockTimerConfig{})

	// One hour of scaled time is 3.6s of wall time.
	session, err := timer.Start(testContext(), time.Hour, nil)
	require.NoError(t, err)
	require.True(t, session.Running())

	session.Stop()
	session.Stop()

	require.True(t, session.Wait(200*time.Millisecond))
	assert.Equal(t, 0, action.callCount())
	assert.Equal(t, 0, session.LockCount())
}

func TestLockTimer_ParentContextCancelStopsSession(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	timer := usecase.NewLockTimer(expiringAction(), fastClock(), nil, usecase.LockTimerConfig{})

	session, err := timer.Start(ctx, time.Hour, nil)
	require.NoError(t, err)

	cancel()
	select {
	case <-session.Done():
	case <-time.After(time.Second):
		t.Fatal("session did not exit on parent cancel")
	}
}

func TestLockTimer_LockFailureKeepsLooping(t *testing.T) {
	lockErr := errors.New("no lock command available")
	action := &funcAction{
		mode: entity.LockModeSystem,
		fn: func(context.Context, time.Duration) (entity.EndReason, error) {
			return entity.EndReasonFailed, lockErr
		},
	}
	rec := &statusRecorder{}
	timer := usecase.NewLockTimer(action, fastClock(), nil, usecase.LockTimerConfig{LockDuration: time.Second})

	session, err := timer.Start(testContext(), time.Second, rec.observe)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return action.callCount() >= 2 }, 2*time.Second, time.Millisecond)
	session.Stop()
	require.True(t, session.Wait(time.Second))

	failed, ok := rec.find(entity.StatusLockFailed)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Err, lockErr)
	assert.Equal(t, entity.LockModeSystem, failed.Mode)
	assert.Zero(t, rec.count(entity.StatusWaiting))
}

func TestLockTimer_StopDuringLockRecordsHistory(t *testing.T) {
	ctx := testContext()
	entered := make(chan struct{})
	action := &funcAction{
		mode: entity.LockModeOverlay,
		fn: func(ctx context.Context, _ time.Duration) (entity.EndReason, error) {
			close(entered)
			<-ctx.Done()
			return entity.EndReasonStopped, nil
		},
	}

	repo := repomocks.NewMockLockHistoryRepository(t)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(e *entity.LockEvent) bool {
		return e.ID != "" && e.Mode == entity.LockModeOverlay && e.EndedAt == nil
	})).Return(nil).Once()
	repo.On("Finish", mock.Anything, mock.MatchedBy(func(e *entity.LockEvent) bool {
		return e.Reason == entity.EndReasonStopped && e.EndedAt != nil
	})).Return(nil).Once()
	repo.On("Prune", mock.Anything, 100).Return(int64(0), nil).Once()

	rec := &statusRecorder{}
	timer := usecase.NewLockTimer(action, fastClock(), repo, usecase.LockTimerConfig{HistoryLimit: 100})

	session, err := timer.Start(ctx, time.Second, rec.observe)
	require.NoError(t, err)

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("lock action never ran")
	}
	assert.Equal(t, entity.StatusLocking, session.Status())

	session.Stop()
	require.True(t, session.Wait(time.Second))

	assert.Equal(t, 1, action.callCount())
	assert.Zero(t, rec.count(entity.StatusWaiting))
	assert.Equal(t, entity.StatusStopped, session.Status())
}

func TestLockTimer_HistoryErrorsDoNotStopLoop(t *testing.T) {
	action := expiringAction()
	repo := repomocks.NewMockLockHistoryRepository(t)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("database is locked"))

	timer := usecase.NewLockTimer(action, fastClock(), repo, usecase.LockTimerConfig{LockDuration: time.Second})
	session, err := timer.Start(testContext(), time.Second, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return action.callCount() >= 2 }, 2*time.Second, time.Millisecond)
	session.Stop()
	require.True(t, session.Wait(time.Second))

	repo.AssertNotCalled(t, "Finish", mock.Anything, mock.Anything)
}
