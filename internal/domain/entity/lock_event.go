package entity

import (
	"errors"
	"strings"
	"time"
)

// LockMode selects which lock action runs when the interval elapses.
type LockMode string

const (
	LockModeOverlay LockMode = "overlay"
	LockModeSystem  LockMode = "system"
)

// ParseLockMode maps a config or flag value to a LockMode.
func ParseLockMode(value string) (LockMode, error) {
	switch LockMode(strings.ToLower(strings.TrimSpace(value))) {
	case LockModeOverlay:
		return LockModeOverlay, nil
	case LockModeSystem:
		return LockModeSystem, nil
	default:
		return "", ErrInvalidLockMode
	}
}

// EndReason records why a lock ended.
type EndReason string

const (
	EndReasonExpired  EndReason = "expired"
	EndReasonUnlocked EndReason = "unlocked"
	EndReasonStopped  EndReason = "stopped"
	EndReasonFailed   EndReason = "failed"
)

// LockEventID uniquely identifies a recorded lock.
type LockEventID string

// LockEvent is one entry of the break history.
type LockEvent struct {
	ID        LockEventID
	Mode      LockMode
	StartedAt time.Time
	EndedAt   *time.Time
	Reason    EndReason
	Error     string
}

var (
	ErrInvalidLockMode  = errors.New("lock mode must be overlay or system")
	ErrInvalidLockEvent = errors.New("invalid lock event")
)

// End marks the event finished.
func (e *LockEvent) End(at time.Time, reason EndReason, err error) {
	at = at.UTC()
	e.EndedAt = &at
	e.Reason = reason
	if err != nil {
		e.Error = err.Error()
	}
}

// Duration returns how long the lock lasted, or zero while it is still active.
func (e *LockEvent) Duration() time.Duration {
	if e == nil || e.EndedAt == nil {
		return 0
	}
	return e.EndedAt.Sub(e.StartedAt)
}

func (e *LockEvent) Validate() error {
	if e == nil || e.ID == "" || e.StartedAt.IsZero() {
		return ErrInvalidLockEvent
	}
	if e.Mode != LockModeOverlay && e.Mode != LockModeSystem {
		return ErrInvalidLockEvent
	}
	return nil
}

// LockStats summarizes the recorded history.
type LockStats struct {
	Total     int
	Expired   int
	Unlocked  int
	Stopped   int
	Failed    int
	TotalTime time.Duration
}
