package entity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidInterval is returned when the user-entered interval is not a positive number of minutes.
var ErrInvalidInterval = errors.New("interval must be a positive number of minutes")

// MinInterval is the shortest interval a session accepts.
const MinInterval = time.Second

// ParseIntervalMinutes converts user input in minutes to a whole-second interval.
// Fractional minutes are allowed ("0.5" is 30s); anything that rounds down below
// MinInterval is rejected.
func ParseIntervalMinutes(input string) (time.Duration, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidInterval)
	}

	minutes, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, trimmed)
	}
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInterval, trimmed)
	}

	seconds := int64(minutes * 60)
	interval := time.Duration(seconds) * time.Second
	if interval < MinInterval {
		return 0, fmt.Errorf("%w: %q is shorter than %s", ErrInvalidInterval, trimmed, MinInterval)
	}
	return interval, nil
}

// FormatMinutes renders an interval as minutes for status text ("30", "0.5", "90").
func FormatMinutes(d time.Duration) string {
	return strconv.FormatFloat(d.Minutes(), 'f', -1, 64)
}

// FormatCountdown renders a remaining duration as MM:SS.
// Negative durations clamp to 00:00; minutes are not wrapped at 60.
func FormatCountdown(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	total := int64(remaining / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
