// Package queue carries dispatcher callback results into the TUI's
// update loop. Callbacks fire while a mouse event is still being
// handled; the update loop drains the queued requests once the event
// settles.
package queue

import "sync"

// Queue is a thread-safe FIFO. Producers push from dispatcher
// callbacks; the single consumer drains it between frames.
type Queue[T any] struct {
	mu      sync.Mutex
	pending []T
}

// New creates an empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push appends requests in arrival order.
func (q *Queue[T]) Push(items ...T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, items...)
}

// Len reports the number of pending requests.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain returns every pending request in order and empties the queue.
// The caller owns the returned slice.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}
