// Package port defines the interfaces between use cases and adapters.
package port

import "time"

// Clock abstracts time for the timer loop.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}
