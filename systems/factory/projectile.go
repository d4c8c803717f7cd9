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

// CreateProjectile spawns a projectile centered on (x, y) travelling
// vertically. direction is -1 for up and 1 for down.
func CreateProjectile(ecs *ecs.ECS, x, y, direction float64, heavy bool) *donburi.Entry {
	projectile := archetypes.Projectile.Spawn(ecs)

	r := cfg.Projectile.Radius
	if heavy {
		r = cfg.Projectile.HeavyRadius
	}
	obj := resolv.NewObject(x-r, y-r, 2*r, 2*r, tags.ResolvProjectile)
	obj.Data = projectile
	components.Object.SetValue(projectile, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	data := components.ProjectileData{
		Radius: r,
		Heavy:  heavy,
	}
	if heavy {
		data.Struck = make(map[donburi.Entity]struct{})
	}
	components.Projectile.SetValue(projectile, data)
	components.Physics.SetValue(projectile, components.PhysicsData{
		SpeedY:      direction * cfg.Projectile.Speed,
		PassThrough: true,
	})

	return projectile
}
