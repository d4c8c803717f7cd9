package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/signals"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// startDeath suspends the player and every other body and runs the
// damaged-visual steps on the scheduler, raising PlayerDied at the end.
func startDeath(ecs *ecs.ECS, entry *donburi.Entry) {
	sched := schedulerOf(ecs.World)
	player := components.Player.Get(entry)
	physics := components.Physics.Get(entry)
	obj := components.Object.Get(entry)

	player.Pose = components.PoseDead
	player.DamageStep = 0
	player.ReleaseQueued = false
	player.BufferedJump = components.Instant{}
	if sched != nil {
		player.Settle.Stop(sched)
		player.Throw.Stop(sched)
		player.AutoFire.Stop(sched)
	}

	physics.SpeedX, physics.SpeedY = 0, 0
	physics.Frozen = true
	if obj.Space != nil {
		obj.Space.Remove(obj.Object)
	}

	suspendField(ecs.World, true)
	log.Info("player died", "x", obj.X, "y", obj.Y)

	if sched == nil {
		return
	}
	stepDeath(ecs, entry)
}

func stepDeath(ecs *ecs.ECS, entry *donburi.Entry) {
	sched := schedulerOf(ecs.World)
	player := components.Player.Get(entry)

	if player.DamageStep >= cfg.Player.DeathSteps {
		obj := components.Object.Get(entry)
		signals.PlayerDied.Publish(ecs.World, signals.PlayerDiedEvent{
			X: obj.X + obj.W/2,
			Y: obj.Y + obj.H,
		})
		return
	}

	player.Death.Start(sched, cfg.Player.DeathStepInterval, func() {
		if !entry.Valid() {
			return
		}
		p := components.Player.Get(entry)
		if p.Pose != components.PoseDead {
			return
		}
		p.DamageStep++
		stepDeath(ecs, entry)
	})
}

// suspended reports whether a death sequence is holding the field still.
func suspended(w donburi.World) bool {
	entry, ok := tags.Player.First(w)
	return ok && components.Player.Get(entry).Pose == components.PoseDead
}

// suspendField freezes or releases every body except the player's.
func suspendField(w donburi.World, frozen bool) {
	components.Physics.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(tags.Player) {
			components.Physics.Get(e).Frozen = frozen
		}
	})
}

// holdIfSuspended freezes a body spawned while the field is suspended.
func holdIfSuspended(w donburi.World, e *donburi.Entry) {
	if e != nil && suspended(w) {
		components.Physics.Get(e).Frozen = true
	}
}

// ResetPlayer restores the player in place with its feet at (x, feetY). The
// entity is reused, never destroyed.
func ResetPlayer(ecs *ecs.ECS, x, feetY float64) {
	entry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	sched := schedulerOf(ecs.World)
	player := components.Player.Get(entry)
	if sched != nil {
		player.Settle.Stop(sched)
		player.Throw.Stop(sched)
		player.AutoFire.Stop(sched)
		player.Death.Stop(sched)
	}

	wasDead := player.Pose == components.PoseDead
	*player = components.PlayerData{
		Pose:   components.PoseIdle,
		Facing: cfg.DirectionRight,
		Lives:  cfg.Player.StartingLives,
	}
	*components.PowerUp.Get(entry) = components.PowerUpData{}
	*components.Physics.Get(entry) = components.PhysicsData{
		Gravity:   cfg.Player.GroundGravity,
		GravityOn: true,
	}

	obj := components.Object.Get(entry)
	obj.W, obj.H = cfg.Player.Width, cfg.Player.Height
	obj.X, obj.Y = x-obj.W/2, feetY-obj.H
	if obj.Space == nil {
		if space := spaceOf(ecs.World); space != nil {
			space.Add(obj.Object)
		}
	}
	obj.Update()

	visual := components.Visual.Get(entry)
	*visual = components.VisualData{X: x, Y: feetY - obj.H/2, ScaleX: 1, ScaleY: 1}

	if wasDead {
		suspendField(ecs.World, false)
	}
}
