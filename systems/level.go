package systems

import (
	"github.com/automoto/popstrike/assets"
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/systems/factory"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

// ClearLevel removes everything a level or encounter created and cancels
// their pending actions. The player and the game singleton stay.
func ClearLevel(ecs *ecs.ECS) {
	EndSlowMo(ecs)

	if sched := schedulerOf(ecs.World); sched != nil {
		if boss := bossOf(ecs.World); boss != nil {
			boss.Transition.Stop(sched)
			boss.Backdrop.Stop(sched)
		}
	}

	var doomed []*donburi.Entry
	query := donburi.NewQuery(filter.Or(
		filter.Contains(tags.Target),
		filter.Contains(tags.Projectile),
		filter.Contains(tags.Marker),
		filter.Contains(tags.Solid),
		filter.Contains(tags.Jet),
		filter.Contains(tags.Tank),
		filter.Contains(components.Boss),
	))
	query.Each(ecs.World, func(e *donburi.Entry) {
		doomed = append(doomed, e)
	})
	for _, e := range doomed {
		destroy(ecs.World, e)
	}
}

// LoadLevel replaces the running level with level. Brands are assigned
// preferring ones the previous level did not use. Boss levels start the
// encounter instead of spawning targets.
func LoadLevel(ecs *ecs.ECS, level assets.Level, index int) {
	ClearLevel(ecs)

	data := levelOf(ecs.World)
	if data != nil {
		data.Previous = data.Brands
		data.Brands = AssignBrands(data.Rand, cfg.Target.Brands, data.Previous, cfg.SizeCount())
		data.Name = level.Name
		data.Index = index
		data.Boss = level.Boss
		data.Cleared = false
	}

	solids := factory.CreateLevelSolids(ecs, level)

	spawned := 0
	for _, t := range level.Targets {
		size, ok := cfg.SizeIndex(t.Size)
		if !ok {
			log.Warn("unknown target size", "level", level.Name, "size", t.Size)
			continue
		}
		if SpawnTarget(ecs, size, t.X, t.Y, t.Drift) != nil {
			spawned++
		}
	}

	ResetPlayer(ecs, level.PlayerSpawn.X, level.PlayerSpawn.Y)

	if level.Boss {
		StartBossEncounter(ecs)
	}
	log.Info("level loaded", "level", level.Name, "solids", solids, "targets", spawned, "boss", level.Boss)
}
