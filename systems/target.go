package systems

import (
	"math"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/systems/factory"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

// UpdateTargets turns the contacts reported by the physics step into bounces.
// A floor contact always relaunches at the size class's canonical speed, so
// the apex never depends on how far the target fell.
func UpdateTargets(ecs *ecs.ECS) {
	clock := clockOf(ecs.World)
	now := clock.Now

	tags.Target.Each(ecs.World, func(e *donburi.Entry) {
		target := components.Target.Get(e)
		physics := components.Physics.Get(e)
		if physics.Frozen {
			return
		}
		size, ok := cfg.Size(target.Size)
		if !ok {
			return
		}
		bounce := size.BounceSpeed * target.SlowFactor

		switch {
		case physics.Blocked.Down:
			physics.SpeedY = -bounce
			target.HasBounced = true
			target.GraceUntil = components.At(now + cfg.Target.Grace)
		case target.GraceUntil.Ahead(now) && physics.SpeedY > -bounce:
			obj := components.Object.Get(e).Object
			if GroundGap(obj, cfg.Target.GraceDistance) <= cfg.Target.GraceDistance {
				physics.SpeedY = -bounce
			}
		case physics.Blocked.Up:
			physics.SpeedY = math.Abs(physics.Impact.Y) * cfg.Target.CeilingRestitution
			target.Spin *= cfg.Target.SpinFriction
		}

		if physics.Blocked.Left || physics.Blocked.Right {
			speed := math.Abs(physics.Impact.X) * cfg.Target.WallRestitution
			speed = math.Max(speed, size.DriftMin*target.SlowFactor)
			if physics.Blocked.Right {
				speed = -speed
			}
			physics.SpeedX = speed
			target.Spin = -target.Spin * cfg.Target.SpinFriction
		}

		target.Rotation += target.Spin * target.SlowFactor * clock.Delta
	})
}

// SplitTarget destroys a target and, when its size class has a next size,
// spawns two children of that size. The children are returned. A stale
// entry is a no-op.
func SplitTarget(ecs *ecs.ECS, entry *donburi.Entry) []*donburi.Entry {
	if entry == nil || !entry.Valid() || !entry.HasComponent(tags.Target) {
		return nil
	}

	// Copy what the children need before the parent storage goes away.
	parent := *components.Target.Get(entry)
	cx, cy := center(components.Object.Get(entry).Object)
	destroy(ecs.World, entry)

	size, ok := cfg.Size(parent.Size)
	if !ok || size.Next < 0 {
		log.Debug("target popped", "size", size.Name)
		return nil
	}
	next, ok := cfg.Size(size.Next)
	if !ok {
		return nil
	}

	level := levelOf(ecs.World)
	var brands [2]string
	if level != nil {
		brands = ChildBrands(level.Brands, parent.Brand, size.Next)
	}

	// Keep the children high enough that their first bounce is a real drop.
	floor := floorBelow(ecs.World, cx-next.Radius, cx+next.Radius, cy)
	cy = math.Min(cy, floor-cfg.Target.MinClearance-next.Radius)

	slow := 1.0
	if sm := slowMoOf(ecs.World); sm != nil && sm.Active {
		slow = sm.Factor
	}

	children := make([]*donburi.Entry, 0, 2)
	for i, dir := range [2]float64{-1, 1} {
		x := cx + dir*cfg.Target.SplitOffset
		x = math.Max(cfg.Arena.Wall+next.Radius, math.Min(x, cfg.Arena.Width-cfg.Arena.Wall-next.Radius))
		child := factory.CreateTarget(ecs, factory.TargetSpawn{
			Size:   size.Next,
			X:      x,
			Y:      cy,
			SpeedX: dir * driftSpeed(level, next),
			SpeedY: -next.BounceSpeed,
			Spin:   dir * cfg.Target.MaxSpin * 0.5,
			Brand:  brands[i],
		})
		if child == nil {
			continue
		}
		if slow != 1 {
			applySlowMo(child, slow)
		}
		holdIfSuspended(ecs.World, child)
		children = append(children, child)
	}
	log.Debug("target split", "size", size.Name, "into", next.Name, "brands", brands)
	return children
}

// driftSpeed picks a horizontal drift within the size's range.
func driftSpeed(level *components.LevelData, size cfg.TargetSizeConfig) float64 {
	if level == nil || level.Rand == nil || size.DriftMax <= size.DriftMin {
		return size.DriftMin
	}
	return size.DriftMin + level.Rand.Float64()*(size.DriftMax-size.DriftMin)
}

// SpawnTarget creates a level target of the given size at center (x, y)
// using the level's brand for that size slot. drift is the signed horizontal
// speed.
func SpawnTarget(ecs *ecs.ECS, size int, x, y, drift float64) *donburi.Entry {
	brand := ""
	if level := levelOf(ecs.World); level != nil && size >= 0 && size < len(level.Brands) {
		brand = level.Brands[size]
	}
	t := factory.CreateTarget(ecs, factory.TargetSpawn{
		Size:   size,
		X:      x,
		Y:      y,
		SpeedX: drift,
		Brand:  brand,
	})
	if t == nil {
		return nil
	}
	if sm := slowMoOf(ecs.World); sm != nil && sm.Active {
		applySlowMo(t, sm.Factor)
	}
	holdIfSuspended(ecs.World, t)
	return t
}

// CountTargets returns the number of live targets.
func CountTargets(ecs *ecs.ECS) int {
	return donburi.NewQuery(filter.Contains(tags.Target)).Count(ecs.World)
}
