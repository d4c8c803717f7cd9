package systems

import (
	"math"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics integrates every body by the tick delta. Motion under
// constant gravity is integrated exactly so apex heights do not depend on
// the frame rate.
func UpdatePhysics(ecs *ecs.ECS) {
	dt := clockOf(ecs.World).Delta
	if dt <= 0 {
		return
	}
	dt = math.Min(dt, cfg.Physics.MaxStep)

	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(components.Object) {
			return
		}
		physics := components.Physics.Get(e)
		physics.Blocked = components.Contacts{}
		if physics.Frozen {
			return
		}
		obj := components.Object.Get(e)
		if obj.Object == nil {
			return
		}
		Step(obj.Object, physics, dt)
	})
}

// Step advances one body by dt seconds and resolves solid contacts.
func Step(obj *resolv.Object, physics *components.PhysicsData, dt float64) {
	g := 0.0
	if physics.GravityOn {
		g = physics.Gravity
	}

	dx := physics.SpeedX * dt
	dy := physics.SpeedY*dt + 0.5*g*dt*dt
	physics.SpeedY += g * dt

	if physics.PassThrough {
		obj.X += dx
		obj.Y += dy
		obj.Update()
		return
	}

	resolveHorizontal(obj, physics, dx)
	resolveVertical(obj, physics, dy)
	obj.Update()
}
