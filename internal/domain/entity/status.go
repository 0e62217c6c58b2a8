// Package entity holds the lock timer domain types: intervals, statuses and lock events.
package entity

import (
	"fmt"
	"time"
)

// Status is the state shown in the status label.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusRunning    Status = "running"
	StatusWaiting    Status = "waiting"
	StatusLocking    Status = "locking"
	StatusLockFailed Status = "lock_failed"
	StatusStopped    Status = "stopped"
)

// IsActive reports whether the status belongs to a running session.
func (s Status) IsActive() bool {
	switch s {
	case StatusRunning, StatusWaiting, StatusLocking, StatusLockFailed:
		return true
	default:
		return false
	}
}

// CSSClass returns the style class front-ends use to color the status label.
func (s Status) CSSClass() string {
	switch s {
	case StatusIdle:
		return "status-idle"
	case StatusRunning, StatusWaiting:
		return "status-running"
	case StatusLocking:
		return "status-locking"
	default:
		return "status-stopped"
	}
}

// StatusEvent is emitted by a session worker whenever its state changes.
type StatusEvent struct {
	Status Status
	// Interval is set for running events.
	Interval time.Duration
	// Mode is set for locking events.
	Mode LockMode
	// Err is set for lock_failed events.
	Err error
	At  time.Time
}

// Text renders the event for the status label.
func (e StatusEvent) Text() string {
	switch e.Status {
	case StatusIdle:
		return "Status: not running"
	case StatusRunning:
		return fmt.Sprintf("Status: running (every %s minutes)", FormatMinutes(e.Interval))
	case StatusWaiting:
		return "Status: waiting for next cycle"
	case StatusLocking:
		if e.Mode == LockModeSystem {
			return "Status: lock triggered (system lock)"
		}
		return "Status: lock triggered (overlay)"
	case StatusLockFailed:
		if e.Err != nil {
			return fmt.Sprintf("Status: lock failed (%v)", e.Err)
		}
		return "Status: lock failed"
	case StatusStopped:
		return "Status: stopped"
	default:
		return "Status: " + string(e.Status)
	}
}
