package factory

import (
	"math/rand/v2"

	"github.com/automoto/popstrike/archetypes"
	"github.com/automoto/popstrike/components"
	"github.com/automoto/popstrike/scheduler"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateGame spawns the session singleton holding the clock, the scheduler,
// the collision space and the per-level state.
func CreateGame(ecs *ecs.ECS, sched *scheduler.Scheduler, space *resolv.Space, seed uint64) *donburi.Entry {
	game := archetypes.Game.Spawn(ecs)

	components.Space.SetValue(game, components.SpaceData{Space: space})
	components.Scheduler.SetValue(game, components.SchedulerData{Scheduler: sched})
	components.Clock.SetValue(game, components.ClockData{})
	components.Intent.SetValue(game, components.IntentData{})
	components.Level.SetValue(game, components.LevelData{
		Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	})
	components.SlowMo.SetValue(game, components.SlowMoData{Factor: 1})

	return game
}
