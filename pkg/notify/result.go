package notify

import (
	"sync"
)

// PendingResult is the completion handle of a delivered notification.
// Whoever ends up handling the notification must call Finish exactly when
// the work is done, on success and failure alike.
type PendingResult struct {
	once sync.Once
	done chan struct{}
}

// NewPendingResult returns an unfinished result.
func NewPendingResult() *PendingResult {
	return &PendingResult{
		done: make(chan struct{}),
	}
}

// Finish marks the result as finished. Calling it more than once is fine.
func (r *PendingResult) Finish() {
	r.once.Do(func() {
		close(r.done)
	})
}

// Done returns a channel that is closed once Finish has been called.
func (r *PendingResult) Done() <-chan struct{} {
	return r.done
}

// Finished reports whether Finish has been called.
func (r *PendingResult) Finished() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
