package systems

import (
	"time"

	"github.com/automoto/popstrike/components"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func slowMoOf(w donburi.World) *components.SlowMoData {
	if e, ok := components.SlowMo.First(w); ok {
		return components.SlowMo.Get(e)
	}
	return nil
}

// StartSlowMo slows every target by factor for duration. Velocity scales by
// factor and gravity by its square: the apex height v²/2g is then unchanged
// and only the time base stretches. Scaling gravity by factor alone would
// raise every apex by 1/factor. Targets already slowed are left alone;
// restarting only extends the expiry.
func StartSlowMo(ecs *ecs.ECS, factor float64, duration time.Duration) {
	sm := slowMoOf(ecs.World)
	sched := schedulerOf(ecs.World)
	if sm == nil || sched == nil || factor <= 0 {
		return
	}
	if !sm.Active {
		sm.Active = true
		sm.Factor = factor
		log.Info("slow motion", "factor", factor, "for", duration)
	}

	tags.Target.Each(ecs.World, func(e *donburi.Entry) {
		applySlowMo(e, sm.Factor)
	})

	sm.Expiry.Start(sched, duration, func() {
		EndSlowMo(ecs)
	})
}

// EndSlowMo restores every slowed target to its stored values.
func EndSlowMo(ecs *ecs.ECS) {
	sm := slowMoOf(ecs.World)
	if sm == nil || !sm.Active {
		return
	}
	if sched := schedulerOf(ecs.World); sched != nil {
		sm.Expiry.Stop(sched)
	}
	sm.Active = false
	sm.Factor = 1

	tags.Target.Each(ecs.World, func(e *donburi.Entry) {
		revertSlowMo(e)
	})
}

func applySlowMo(e *donburi.Entry, factor float64) {
	target := components.Target.Get(e)
	if target.Slowed {
		return
	}
	physics := components.Physics.Get(e)
	target.Slowed = true
	target.SlowFactor = factor
	target.BaseGravity = physics.Gravity
	physics.SpeedX *= factor
	physics.SpeedY *= factor
	physics.Gravity = target.BaseGravity * factor * factor
}

func revertSlowMo(e *donburi.Entry) {
	target := components.Target.Get(e)
	if !target.Slowed {
		return
	}
	physics := components.Physics.Get(e)
	physics.SpeedX /= target.SlowFactor
	physics.SpeedY /= target.SlowFactor
	physics.Gravity = target.BaseGravity
	target.Slowed = false
	target.SlowFactor = 1
}
