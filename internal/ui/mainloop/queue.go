// Package mainloop hands work from background goroutines to the UI thread.
//
// Workers post closures to a Queue; only the UI thread drains it. The wake
// function tells the UI toolkit that work is waiting (glib.IdleAdd for GTK,
// a tea.Msg for the terminal UI).
package mainloop

import (
	"sync"

	"github.com/bnema/lockbreak/internal/application/port"
)

// Queue is an unbounded FIFO of UI tasks.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	wake   func()
	closed bool

	coalescer *Coalescer
}

// NewQueue creates a queue. wake is called, outside the lock, whenever the queue
// goes from empty to non-empty. It may be nil when the owner polls Drain.
func NewQueue(wake func()) *Queue {
	q := &Queue{wake: wake}
	q.coalescer = NewCoalescer(q.Post)
	return q
}

// Post appends fn. Safe from any goroutine. Posts after Close are dropped.
func (q *Queue) Post(fn func()) {
	if fn == nil {
		return
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.tasks = append(q.tasks, fn)
	first := len(q.tasks) == 1
	wake := q.wake
	q.mu.Unlock()

	if first && wake != nil {
		wake()
	}
}

// PostCoalesced posts fn, replacing any not yet drained task with the same key.
func (q *Queue) PostCoalesced(key string, fn func()) {
	q.coalescer.Post(key, fn)
}

// Drain runs every queued task in order and returns how many ran.
// Tasks posted while draining run in the same call. Must be called on the UI thread.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		batch := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		if len(batch) == 0 {
			return ran
		}
		for _, fn := range batch {
			fn()
			ran++
		}
	}
}

// Len returns the number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Close drops queued tasks and rejects later posts.
func (q *Queue) Close() {
	q.coalescer.Close()
	q.mu.Lock()
	q.closed = true
	q.tasks = nil
	q.mu.Unlock()
}

var _ port.UIDispatcher = (*Queue)(nil)
