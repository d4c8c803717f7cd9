package components

import (
	"time"

	"github.com/automoto/popstrike/scheduler"
	"github.com/yohamta/donburi"
)

// ClockData is the session's game time. Delta is the length of the current
// tick in seconds.
type ClockData struct {
	Now   time.Duration
	Delta float64
	Frame int
}

var Clock = donburi.NewComponentType[ClockData]()

type SchedulerData struct {
	*scheduler.Scheduler
}

var Scheduler = donburi.NewComponentType[SchedulerData]()

// Instant is an optional point in game time.
type Instant struct {
	At    time.Duration
	Valid bool
}

// At returns a set Instant.
func At(t time.Duration) Instant {
	return Instant{At: t, Valid: true}
}

// Within reports whether the instant is set and no more than window before now.
func (i Instant) Within(now, window time.Duration) bool {
	return i.Valid && now >= i.At && now-i.At <= window
}

// Ahead reports whether the instant is set and still in the future. Used for
// expiry deadlines.
func (i Instant) Ahead(now time.Duration) bool {
	return i.Valid && now < i.At
}

// Remaining returns the time left until the instant, or zero.
func (i Instant) Remaining(now time.Duration) time.Duration {
	if !i.Ahead(now) {
		return 0
	}
	return i.At - now
}
