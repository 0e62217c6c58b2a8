package controller

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bnema/lockbreak/internal/domain/entity"
)

// InfoText renders the info line for the configured lock mode and duration.
func InfoText(mode entity.LockMode, lockDuration time.Duration) string {
	switch mode {
	case entity.LockModeSystem:
		return "Uses the system lock. Unlock with your password; the timer resumes afterwards."
	default:
		return fmt.Sprintf("Locks with a full-screen overlay for %s minutes. Press \"Unlock now\" to end a break early.",
			entity.FormatMinutes(lockDuration))
	}
}

// FormatDefaultMinutes renders the entry pre-fill ("30", "0.5").
func FormatDefaultMinutes(minutes float64) string {
	if minutes <= 0 {
		return ""
	}
	return strconv.FormatFloat(minutes, 'f', -1, 64)
}
