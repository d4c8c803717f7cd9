package factory

import (
	"github.com/automoto/popstrike/archetypes"
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// TargetSpawn describes a target to create. X and Y are the center.
type TargetSpawn struct {
	Size           int
	X, Y           float64
	SpeedX, SpeedY float64
	Spin           float64
	Brand          string
}

// CreateTarget spawns a target of the given size class. It returns nil for
// an unknown size.
func CreateTarget(ecs *ecs.ECS, spawn TargetSpawn) *donburi.Entry {
	size, ok := cfg.Size(spawn.Size)
	if !ok {
		return nil
	}
	target := archetypes.Target.Spawn(ecs)

	r := size.Radius
	obj := resolv.NewObject(spawn.X-r, spawn.Y-r, 2*r, 2*r, tags.ResolvTarget)
	obj.Data = target
	components.Object.SetValue(target, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	components.Target.SetValue(target, components.TargetData{
		Size:       spawn.Size,
		Radius:     r,
		Brand:      spawn.Brand,
		Spin:       spawn.Spin,
		SlowFactor: 1,
	})
	components.Physics.SetValue(target, components.PhysicsData{
		SpeedX:    spawn.SpeedX,
		SpeedY:    spawn.SpeedY,
		Gravity:   cfg.Target.Gravity,
		GravityOn: true,
	})

	return target
}
