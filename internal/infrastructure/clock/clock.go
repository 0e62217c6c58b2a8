// Package clock provides port.Clock implementations.
package clock

import (
	"time"

	"github.com/bnema/lockbreak/internal/application/port"
)

// Real uses the system time.
type Real struct{}

func (Real) Now() time.Time {
	return time.Now()
}

func (Real) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

var _ port.Clock = Real{}
