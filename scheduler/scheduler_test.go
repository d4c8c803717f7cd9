package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceRunsDueCallbacksInDeadlineOrder(t *testing.T) {
	s := New()
	var order []string

	s.Schedule(30*time.Millisecond, func() { order = append(order, "c") })
	s.Schedule(10*time.Millisecond, func() { order = append(order, "a") })
	s.Schedule(20*time.Millisecond, func() { order = append(order, "b1") })
	s.Schedule(20*time.Millisecond, func() { order = append(order, "b2") })

	assert.Equal(t, 0, s.Advance(5*time.Millisecond))
	assert.Empty(t, order)

	assert.Equal(t, 3, s.Advance(20*time.Millisecond))
	assert.Equal(t, []string{"a", "b1", "b2"}, order)
	assert.Equal(t, 1, s.Len())

	s.Advance(time.Second)
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
	assert.Zero(t, s.Len())
}

func TestCancel(t *testing.T) {
	s := New()
	fired := false
	h := s.Schedule(time.Millisecond, func() { fired = true })

	require.True(t, s.Pending(h))
	assert.True(t, s.Cancel(h))
	assert.False(t, s.Cancel(h), "second cancel is a no-op")
	assert.False(t, s.Pending(h))

	s.Advance(time.Second)
	assert.False(t, fired)

	assert.False(t, s.Cancel(Handle{}), "zero handle")
}

func TestCancelAfterFire(t *testing.T) {
	s := New()
	h := s.Schedule(0, func() {})
	s.Advance(0)
	assert.False(t, s.Cancel(h))
}

func TestScheduleFromCallback(t *testing.T) {
	s := New()
	var order []int

	s.Schedule(10*time.Millisecond, func() {
		order = append(order, 1)
		s.Schedule(0, func() { order = append(order, 2) })
		s.Schedule(time.Second, func() { order = append(order, 3) })
	})

	s.Advance(10 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 1, s.Len())
}

func TestCancelFromCallback(t *testing.T) {
	s := New()
	var second Handle
	ran := false

	s.Schedule(time.Millisecond, func() { s.Cancel(second) })
	second = s.Schedule(time.Millisecond, func() { ran = true })

	s.Advance(time.Millisecond)
	assert.False(t, ran)
}

func TestTimeNeverMovesBackwards(t *testing.T) {
	s := New()
	s.Advance(time.Second)
	s.Advance(time.Millisecond)
	assert.Equal(t, time.Second, s.Now())

	fired := false
	s.Schedule(-time.Second, func() { fired = true })
	s.Advance(s.Now())
	assert.True(t, fired)
}

func TestReset(t *testing.T) {
	s := New()
	h := s.Schedule(time.Millisecond, func() { t.Fatal("should not run") })
	s.Reset()
	assert.False(t, s.Pending(h))
	assert.Zero(t, s.Advance(time.Second))
}

func TestTimer(t *testing.T) {
	s := New()
	var tm Timer
	var fired []string

	assert.False(t, tm.Active(s))
	assert.False(t, tm.Stop(s), "idle stop is a no-op")

	tm.Start(s, 10*time.Millisecond, func() { fired = append(fired, "first") })
	tm.Start(s, 20*time.Millisecond, func() { fired = append(fired, "second") })
	assert.Equal(t, 1, s.Len(), "restarting revokes the superseded action")

	s.Advance(15 * time.Millisecond)
	assert.Empty(t, fired)
	assert.True(t, tm.Active(s))

	s.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"second"}, fired)
	assert.False(t, tm.Active(s))

	tm.Start(s, time.Millisecond, func() { fired = append(fired, "third") })
	assert.True(t, tm.Stop(s))
	s.Advance(time.Second)
	assert.Equal(t, []string{"second"}, fired)
}

func TestChainedCallbacksKeepSpacing(t *testing.T) {
	s := New()
	var fired []time.Duration

	var step func()
	step = func() {
		fired = append(fired, s.Now())
		if len(fired) < 3 {
			s.Schedule(100*time.Millisecond, step)
		}
	}
	s.Schedule(100*time.Millisecond, step)

	// ticks that never land exactly on a deadline
	for now := time.Duration(0); now <= time.Second; now += 70 * time.Millisecond {
		s.Advance(now)
	}
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}, fired)
}
