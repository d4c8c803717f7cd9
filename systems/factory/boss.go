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

func CreateBoss(ecs *ecs.ECS) *donburi.Entry {
	boss := archetypes.Boss.Spawn(ecs)
	components.Boss.SetValue(boss, components.BossData{Phase: components.PhaseJet})
	components.Backdrop.SetValue(boss, components.BackdropData{Alpha: 1})
	return boss
}

// CreateJet spawns the jet just past the left edge of the arena, heading
// right on its first pass.
func CreateJet(ecs *ecs.ECS) *donburi.Entry {
	jet := archetypes.Jet.Spawn(ecs)

	w, h := cfg.Boss.JetWidth, cfg.Boss.JetHeight
	obj := resolv.NewObject(-cfg.Boss.JetMargin-w, cfg.Boss.JetAltitude, w, h, tags.ResolvEnemy)
	obj.Data = jet
	components.Object.SetValue(jet, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	components.Jet.SetValue(jet, components.JetData{
		Speed:     cfg.Boss.JetSpeed,
		Altitude:  cfg.Boss.JetAltitude,
		Direction: 1,
	})
	components.Physics.SetValue(jet, components.PhysicsData{
		SpeedX:      cfg.Boss.JetSpeed,
		PassThrough: true,
	})
	components.Health.SetValue(jet, components.HealthData{
		Current: cfg.Boss.JetHealth,
		Max:     cfg.Boss.JetHealth,
	})

	return jet
}

// CreateTank spawns tank index (0..2) on the ground at the side of the
// arena away from x, facing towards it.
func CreateTank(ecs *ecs.ECS, index int, awayFromX float64) *donburi.Entry {
	tank := archetypes.Tank.Spawn(ecs)

	w, h := cfg.Boss.TankWidth, cfg.Boss.TankHeight
	x, dir := cfg.Arena.Wall, 1.0
	if awayFromX < cfg.Arena.Width/2 {
		x, dir = cfg.Arena.Width-cfg.Arena.Wall-w, -1.0
	}
	obj := resolv.NewObject(x, cfg.Arena.GroundY-h, w, h, tags.ResolvEnemy)
	obj.Data = tank
	components.Object.SetValue(tank, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	components.Tank.SetValue(tank, components.TankData{
		Index:     index,
		Direction: dir,
	})
	components.Physics.SetValue(tank, components.PhysicsData{
		SpeedX:      dir * cfg.Boss.TankSpeed,
		PassThrough: true,
	})
	components.Health.SetValue(tank, components.HealthData{
		Current: cfg.Boss.TankHealth,
		Max:     cfg.Boss.TankHealth,
	})

	return tank
}
