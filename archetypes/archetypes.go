package archetypes

import (
	"github.com/automoto/popstrike/components"
	"github.com/automoto/popstrike/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Game = newArchetype(
		components.Clock,
		components.Scheduler,
		components.Space,
		components.Intent,
		components.Level,
		components.SlowMo,
	)
	Solid = newArchetype(
		tags.Solid,
		components.Object,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Physics,
		components.Visual,
		components.PowerUp,
	)
	Target = newArchetype(
		tags.Target,
		components.Target,
		components.Object,
		components.Physics,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.Object,
		components.Physics,
	)
	Boss = newArchetype(
		components.Boss,
		components.Backdrop,
	)
	Jet = newArchetype(
		tags.Jet,
		components.Jet,
		components.Object,
		components.Physics,
		components.Health,
	)
	Tank = newArchetype(
		tags.Tank,
		components.Tank,
		components.Object,
		components.Physics,
		components.Health,
	)
	Marker = newArchetype(
		tags.Marker,
		components.Marker,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(e *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	return e.World.Entry(e.Create(
		ecs.LayerDefault,
		append(a.components, cs...)...,
	))
}
