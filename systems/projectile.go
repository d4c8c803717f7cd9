package systems

import (
	"math"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/systems/factory"
	"github.com/automoto/popstrike/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func spawnProjectile(ecs *ecs.ECS, x, y, direction float64, heavy bool) *donburi.Entry {
	return factory.CreateProjectile(ecs, x, y, direction, heavy)
}

// UpdateProjectiles drops projectiles that left the vertical range and
// resolves their hits on targets and on the active boss enemy.
func UpdateProjectiles(ecs *ecs.ECS) {
	if suspended(ecs.World) {
		return
	}
	var gone []*donburi.Entry
	var live []donburi.Entity
	tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		obj := components.Object.Get(e)
		if obj.Y+obj.H < 0 || obj.Y > cfg.Arena.Height {
			gone = append(gone, e)
			return
		}
		live = append(live, e.Entity())
	})
	for _, e := range gone {
		destroy(ecs.World, e)
	}

	// Hits spawn and destroy entities, so they are resolved one projectile
	// at a time outside the query. Ids freed by a hit are reused at once,
	// so liveness is checked on the entity value.
	for _, ent := range live {
		if !ecs.World.Valid(ent) {
			continue
		}
		resolveProjectileHits(ecs, ecs.World.Entry(ent))
	}
}

func resolveProjectileHits(ecs *ecs.ECS, e *donburi.Entry) {
	obj := components.Object.Get(e).Object
	if obj.Space == nil {
		return
	}
	check := obj.Check(0, 0, tags.ResolvTarget, tags.ResolvEnemy)
	if check == nil {
		return
	}

	px, py := center(obj)
	proj := components.Projectile.Get(e)
	radius, heavy := proj.Radius, proj.Heavy

	var struckTargets, struckEnemies []*donburi.Entry
	for _, other := range check.Objects {
		otherEntry, ok := other.Data.(*donburi.Entry)
		if !ok || !otherEntry.Valid() {
			continue
		}
		if heavy {
			if _, seen := proj.Struck[otherEntry.Entity()]; seen {
				continue
			}
		}
		switch {
		case otherEntry.HasComponent(tags.Target):
			tx, ty := center(other)
			r := components.Target.Get(otherEntry).Radius
			if math.Hypot(px-tx, py-ty) <= radius+r {
				struckTargets = append(struckTargets, otherEntry)
			}
		case otherEntry.HasComponent(tags.Jet), otherEntry.HasComponent(tags.Tank):
			if isActiveEnemy(ecs.World, otherEntry) && circleRect(px, py, radius, other) {
				struckEnemies = append(struckEnemies, otherEntry)
			}
		}
	}

	if !heavy {
		// A normal projectile is spent on the first thing it touches.
		switch {
		case len(struckTargets) > 0:
			destroy(ecs.World, e)
			SplitTarget(ecs, struckTargets[0])
		case len(struckEnemies) > 0:
			destroy(ecs.World, e)
			DamageEnemy(ecs, struckEnemies[0])
		}
		return
	}

	var spared []donburi.Entity
	for _, t := range struckTargets {
		spared = append(spared, t.Entity())
		for _, child := range SplitTarget(ecs, t) {
			spared = append(spared, child.Entity())
		}
	}
	for _, enemy := range struckEnemies {
		spared = append(spared, enemy.Entity())
		DamageEnemy(ecs, enemy)
	}
	if len(spared) > 0 && e.Valid() {
		proj := components.Projectile.Get(e)
		for _, id := range spared {
			proj.Struck[id] = struct{}{}
		}
	}
}
