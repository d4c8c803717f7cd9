package systems

import (
	"time"

	"github.com/automoto/popstrike/components"
	"github.com/automoto/popstrike/scheduler"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// The game entity holds the session singletons. Systems look them up per
// call and treat a missing one as nothing to do.

func gameEntry(w donburi.World) (*donburi.Entry, bool) {
	return components.Clock.First(w)
}

func clockOf(w donburi.World) *components.ClockData {
	if e, ok := gameEntry(w); ok {
		return components.Clock.Get(e)
	}
	return &components.ClockData{}
}

func now(w donburi.World) time.Duration {
	return clockOf(w).Now
}

func schedulerOf(w donburi.World) *scheduler.Scheduler {
	if e, ok := components.Scheduler.First(w); ok {
		return components.Scheduler.Get(e).Scheduler
	}
	return nil
}

func spaceOf(w donburi.World) *resolv.Space {
	if e, ok := components.Space.First(w); ok {
		return components.Space.Get(e).Space
	}
	return nil
}

func levelOf(w donburi.World) *components.LevelData {
	if e, ok := components.Level.First(w); ok {
		return components.Level.Get(e)
	}
	return nil
}

func intentOf(w donburi.World) *components.IntentData {
	if e, ok := components.Intent.First(w); ok {
		return components.Intent.Get(e)
	}
	return &components.IntentData{}
}

func bossOf(w donburi.World) *components.BossData {
	if e, ok := components.Boss.First(w); ok {
		return components.Boss.Get(e)
	}
	return nil
}

// bossPhase returns the current encounter phase and whether an encounter is
// running at all.
func bossPhase(w donburi.World) (components.BossPhase, bool) {
	if b := bossOf(w); b != nil {
		return b.Phase, true
	}
	return 0, false
}

// destroy removes entry and its collision volume and cancels the pending
// actions it owns. Destroying an entry that is already gone is a no-op.
func destroy(w donburi.World, entry *donburi.Entry) {
	if entry == nil || !entry.Valid() {
		return
	}
	if sched := schedulerOf(w); sched != nil {
		if entry.HasComponent(components.Marker) {
			components.Marker.Get(entry).Expiry.Stop(sched)
		}
		if entry.HasComponent(components.Jet) {
			components.Jet.Get(entry).Resume.Stop(sched)
		}
	}
	if entry.HasComponent(components.Object) {
		if obj := components.Object.Get(entry); obj.Object != nil && obj.Space != nil {
			obj.Space.Remove(obj.Object)
		}
	}
	w.Remove(entry.Entity())
}
