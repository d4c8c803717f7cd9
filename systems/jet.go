package systems

import (
	"math"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// updateJet runs the strafing passes. A pass ends once the jet is fully past
// the far edge; it then pauses, turns, speeds up and after enough passes
// flies lower.
func updateJet(ecs *ecs.ECS, e *donburi.Entry) {
	jet := components.Jet.Get(e)
	physics := components.Physics.Get(e)
	obj := components.Object.Get(e).Object

	if jet.Paused {
		physics.SpeedX = 0
		return
	}
	physics.SpeedX = jet.Direction * jet.Speed

	past := jet.Direction > 0 && obj.X >= cfg.Arena.Width+cfg.Boss.JetMargin ||
		jet.Direction < 0 && obj.X+obj.W <= -cfg.Boss.JetMargin
	if !past {
		return
	}

	jet.Passes++
	jet.IndicatorShown = false
	jet.Direction = -jet.Direction
	jet.Speed = math.Min(jet.Speed+cfg.Boss.JetSpeedStep, cfg.Boss.JetMaxSpeed)
	if cfg.Boss.JetDescendAfter > 0 && jet.Passes >= cfg.Boss.JetDescendAfter {
		jet.Altitude = math.Min(jet.Altitude+cfg.Boss.JetDescent, cfg.Boss.JetLowest)
	}
	obj.Y = jet.Altitude
	obj.Update()

	physics.SpeedX = 0
	jet.Paused = true

	sched := schedulerOf(ecs.World)
	if sched == nil {
		jet.Paused = false
		return
	}
	ent := e.Entity()
	jet.Resume.Start(sched, cfg.Boss.JetEdgePause, func() {
		if !ecs.World.Valid(ent) {
			return
		}
		components.Jet.Get(ecs.World.Entry(ent)).Paused = false
	})
}

// showJetHit drops one hit indicator per pass at the jet's position.
func showJetHit(ecs *ecs.ECS, e *donburi.Entry) {
	jet := components.Jet.Get(e)
	if jet.IndicatorShown {
		return
	}
	jet.IndicatorShown = true
	x, y := center(components.Object.Get(e).Object)
	spawnHitIndicator(ecs, x, y)
}

func spawnHitIndicator(ecs *ecs.ECS, x, y float64) {
	sched := schedulerOf(ecs.World)
	if sched == nil {
		return
	}
	marker := factory.CreateMarker(ecs, components.MarkerHit, x, y, sched.Now()+cfg.Boss.IndicatorLife)
	ent := marker.Entity()
	components.Marker.Get(marker).Expiry.Start(sched, cfg.Boss.IndicatorLife, func() {
		// the id may belong to another entity by now
		if ecs.World.Valid(ent) {
			destroy(ecs.World, ecs.World.Entry(ent))
		}
	})
}
