// Package clocktest provides a fast port.Clock for tests that drive the timer
// loop and countdowns without sleeping through real intervals.
package clocktest

import (
	"sync"
	"time"

	"github.com/bnema/lockbreak/internal/application/port"
)

// Scaled runs time Factor times faster than the wall clock.
// A one-minute wait with Factor 600 elapses in 100ms.
type Scaled struct {
	Factor int64

	once   sync.Once
	origin time.Time
	start  time.Time
}

// NewScaled creates a Scaled clock starting at start.
func NewScaled(start time.Time, factor int64) *Scaled {
	if factor <= 0 {
		factor = 1
	}
	return &Scaled{Factor: factor, origin: time.Now(), start: start}
}

func (s *Scaled) init() {
	s.once.Do(func() {
		if s.Factor <= 0 {
			s.Factor = 1
		}
		if s.origin.IsZero() {
			s.origin = time.Now()
		}
		if s.start.IsZero() {
			s.start = s.origin
		}
	})
}

// Now returns the scaled current time.
func (s *Scaled) Now() time.Time {
	s.init()
	elapsed := time.Since(s.origin)
	return s.start.Add(elapsed * time.Duration(s.Factor))
}

// After fires once d of scaled time has passed.
func (s *Scaled) After(d time.Duration) <-chan time.Time {
	s.init()
	if d < 0 {
		d = 0
	}
	out := make(chan time.Time, 1)
	time.AfterFunc(d/time.Duration(s.Factor), func() {
		out <- s.Now()
	})
	return out
}

var _ port.Clock = (*Scaled)(nil)
