package cwaudio

import "sync"

// DropOldest is a bounded FIFO whose Push never blocks: when the queue is
// full the oldest entry is discarded to make room. Under sustained input the
// most recent entries win over backlog.
type DropOldest[T any] struct {
	mu sync.Mutex
	ch chan T
}

// NewDropOldest creates a queue holding at most capacity entries.
func NewDropOldest[T any](capacity int) *DropOldest[T] {
	return &DropOldest[T]{ch: make(chan T, max(capacity, 1))}
}

// Push appends v and returns how many old entries were discarded.
func (q *DropOldest[T]) Push(v T) (dropped int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for {
		select {
		case q.ch <- v:
			return dropped
		default:
		}
		select {
		case <-q.ch:
			dropped++
		default:
		}
	}
}

// C is the receive side, for consumers that select on it.
func (q *DropOldest[T]) C() <-chan T {
	return q.ch
}

// Drain removes and returns all pending entries in FIFO order.
func (q *DropOldest[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []T
	for {
		select {
		case v := <-q.ch:
			out = append(out, v)
		default:
			return out
		}
	}
}

func (q *DropOldest[T]) Len() int {
	return len(q.ch)
}

func (q *DropOldest[T]) Cap() int {
	return cap(q.ch)
}
