package mainloop

import "sync"

// Coalescer keeps at most one scheduled task per key. Posting a key that is
// already scheduled replaces its function, so a burst of countdown updates
// renders only the newest text.
type Coalescer struct {
	mu     sync.Mutex
	latest map[string]func()
	post   func(func())
	closed bool
}

func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post schedules fn under key, or replaces the function of a pending task.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()

	if !scheduled {
		c.post(func() { c.run(key) })
	}
}

func (c *Coalescer) run(key string) {
	c.mu.Lock()
	fn, ok := c.latest[key]
	delete(c.latest, key)
	closed := c.closed
	c.mu.Unlock()

	if ok && !closed {
		fn()
	}
}

// Pending returns the number of keys waiting to run.
func (c *Coalescer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latest)
}

// Close drops pending work; later posts are ignored.
func (c *Coalescer) Close() {
	c.mu.Lock()
	c.closed = true
	clear(c.latest)
	c.mu.Unlock()
}
