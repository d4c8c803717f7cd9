package scheduler

import "time"

// Timer is an owned slot holding at most one pending action. Starting a new
// action always revokes the one it supersedes.
type Timer struct {
	handle Handle
}

// Start cancels any pending action held by t and schedules fn after delay.
func (t *Timer) Start(s *Scheduler, delay time.Duration, fn func()) {
	t.Stop(s)
	t.handle = s.Schedule(delay, fn)
}

// Stop cancels the pending action, if any. Stopping an idle Timer is a no-op.
func (t *Timer) Stop(s *Scheduler) bool {
	h := t.handle
	t.handle = Handle{}
	return s.Cancel(h)
}

// Active reports whether t holds an action that has not fired yet.
func (t *Timer) Active(s *Scheduler) bool {
	return s.Pending(t.handle)
}
