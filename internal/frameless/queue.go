package frameless

import "sync"

// Queue is an unbounded FIFO of events with a single blocking consumer.
// Producers never block; events are tiny and arrive at human pointer rates.
type Queue struct {
	mu       sync.Mutex
	cond     *sync.Cond
	items    []Event
	shutdown bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends ev and wakes the consumer. It returns false, discarding ev,
// once the queue has been shut down.
func (q *Queue) Push(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown {
		return false
	}
	q.items = append(q.items, ev)
	q.cond.Signal()
	return true
}

// Pop blocks until an event is available or the queue is shut down. The
// second result is false on shutdown; anything still queued is left for Drain.
func (q *Queue) Pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.shutdown {
		q.cond.Wait()
	}
	if q.shutdown {
		return Event{}, false
	}

	ev := q.items[0]
	q.items[0] = Event{}
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return ev, true
}

// TryPop returns the next event without blocking.
func (q *Queue) TryPop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown || len(q.items) == 0 {
		return Event{}, false
	}
	ev := q.items[0]
	q.items[0] = Event{}
	q.items = q.items[1:]
	return ev, true
}

// Shutdown marks the queue closed and wakes a blocked consumer. Safe to call
// more than once.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shutdown {
		return
	}
	q.shutdown = true
	q.cond.Broadcast()
}

// Drain discards every queued event and returns how many were dropped.
func (q *Queue) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	q.items = nil
	return n
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Closed reports whether Shutdown has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.shutdown
}
