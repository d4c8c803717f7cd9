// Package scheduler is a single-threaded queue of fire-once callbacks keyed by
// elapsed game time. Callbacks run from Advance, at the start of the tick in
// which their deadline has passed.
package scheduler

import (
	"container/heap"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle never refers to a
// pending callback.
type Handle struct {
	id uint64
}

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool {
	return h.id == 0
}

type timer struct {
	id       uint64
	deadline time.Duration
	fn       func()
	index    int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline == h[j].deadline {
		return h[i].id < h[j].id
	}
	return h[i].deadline < h[j].deadline
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler owns the pending callbacks and the current game time.
type Scheduler struct {
	now     time.Duration
	nextID  uint64
	queue   timerHeap
	pending map[uint64]*timer
}

func New() *Scheduler {
	return &Scheduler{
		pending: make(map[uint64]*timer),
	}
}

// Now returns the time passed to the last Advance call.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending callbacks.
func (s *Scheduler) Len() int {
	return len(s.pending)
}

// Schedule registers fn to run once delay has elapsed from Now. A negative
// delay is treated as zero.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	t := &timer{
		id:       s.nextID,
		deadline: s.now + delay,
		fn:       fn,
	}
	heap.Push(&s.queue, t)
	s.pending[t.id] = t
	return Handle{id: t.id}
}

// Cancel revokes a pending callback. It returns false when the handle has
// already fired, was already cancelled or is the zero Handle.
func (s *Scheduler) Cancel(h Handle) bool {
	t, ok := s.pending[h.id]
	if !ok {
		return false
	}
	delete(s.pending, h.id)
	heap.Remove(&s.queue, t.index)
	return true
}

// Pending reports whether h is still waiting to fire.
func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.pending[h.id]
	return ok
}

// Advance moves game time forward to now and runs every callback whose
// deadline is at or before it, earliest first. While a callback runs, Now
// reports its deadline, so chained steps keep their spacing regardless of the
// tick length. Callbacks scheduled from inside a callback run in the same
// call when they are already due. Time never moves backwards. It returns the
// number of callbacks run.
func (s *Scheduler) Advance(now time.Duration) int {
	target := max(now, s.now)
	ran := 0
	for len(s.queue) > 0 && s.queue[0].deadline <= target {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.pending, t.id)
		ran++
		s.now = max(t.deadline, s.now)
		if t.fn != nil {
			t.fn()
		}
	}
	s.now = target
	return ran
}

// Reset drops every pending callback without running it.
func (s *Scheduler) Reset() {
	s.queue = s.queue[:0]
	clear(s.pending)
}
