package port

// UIDispatcher schedules work on the thread that owns the UI.
// Worker goroutines never touch widgets directly; they post closures here.
type UIDispatcher interface {
	// Post queues fn to run on the UI thread. Safe to call from any goroutine.
	Post(fn func())

	// PostCoalesced queues fn under key. If a task with the same key is still
	// pending, it is replaced instead of queued twice.
	PostCoalesced(key string, fn func())
}
