package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/signals"
	"github.com/automoto/popstrike/systems/factory"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// StartBossEncounter creates the encounter and launches the jet. Starting
// an encounter that already exists is a no-op.
func StartBossEncounter(ecs *ecs.ECS) *donburi.Entry {
	if e, ok := components.Boss.First(ecs.World); ok {
		return e
	}
	boss := factory.CreateBoss(ecs)
	jet := factory.CreateJet(ecs)
	components.Boss.Get(boss).Active = jet.Entity()
	log.Info("boss encounter started", "phase", components.PhaseJet)
	return boss
}

// isActiveEnemy reports whether e is the one enemy currently taking part in
// the encounter.
func isActiveEnemy(w donburi.World, e *donburi.Entry) bool {
	active, ok := activeEnemy(w)
	return ok && active.Entity() == e.Entity()
}

// activeEnemy returns the live entry of the encounter's current enemy.
func activeEnemy(w donburi.World) (*donburi.Entry, bool) {
	boss := bossOf(w)
	if boss == nil || !w.Valid(boss.Active) {
		return nil, false
	}
	return w.Entry(boss.Active), true
}

// UpdateBoss drives the active enemy's movement.
func UpdateBoss(ecs *ecs.ECS) {
	active, ok := activeEnemy(ecs.World)
	if !ok || suspended(ecs.World) {
		return
	}
	switch {
	case active.HasComponent(tags.Jet):
		updateJet(ecs, active)
	case active.HasComponent(tags.Tank):
		updateTank(ecs, active)
	}
}

// DamageEnemy takes one health from the active enemy. Hits on anything else
// are ignored. Reaching zero destroys the enemy and advances the encounter.
func DamageEnemy(ecs *ecs.ECS, e *donburi.Entry) {
	if !e.Valid() || !isActiveEnemy(ecs.World, e) {
		return
	}
	health := components.Health.Get(e)
	if !health.Hit() {
		return
	}

	if e.HasComponent(tags.Jet) {
		showJetHit(ecs, e)
	}
	log.Debug("boss enemy hit", "health", health.Current)
	if !health.Depleted() {
		return
	}

	boss := bossOf(ecs.World)
	wasJet := e.HasComponent(tags.Jet)
	boss.Active = donburi.Null
	destroy(ecs.World, e)

	if !wasJet {
		AdvanceBossPhase(ecs)
		return
	}

	sched := schedulerOf(ecs.World)
	if sched == nil {
		AdvanceBossPhase(ecs)
		return
	}
	startTransitionFade(ecs)
	boss.Transition.Start(sched, cfg.Boss.TransitionDelay, func() {
		AdvanceBossPhase(ecs)
	})
}

// AdvanceBossPhase moves the encounter to the next phase and spawns its
// enemy. Phases only ever move forward; past Victory the encounter is simply
// completed.
func AdvanceBossPhase(ecs *ecs.ECS) {
	boss := bossOf(ecs.World)
	if boss == nil {
		return
	}
	if ecs.World.Valid(boss.Active) {
		// the current enemy is still alive
		return
	}

	from := boss.Phase
	to, ok := from.Next()
	if !ok {
		completeEncounter(ecs)
		return
	}
	boss.Phase = to
	signals.BossPhaseAdvanced.Publish(ecs.World, signals.BossPhaseAdvancedEvent{From: from, To: to})
	log.Info("boss phase advanced", "from", from, "to", to)

	if to.IsTank() {
		px := cfg.Arena.Width / 2
		if player, ok := tags.Player.First(ecs.World); ok {
			obj := components.Object.Get(player)
			px = obj.X + obj.W/2
		}
		tank := factory.CreateTank(ecs, int(to-components.PhaseTank1), px)
		// storage may have moved while spawning
		bossOf(ecs.World).Active = tank.Entity()
		holdIfSuspended(ecs.World, tank)
		return
	}
	startVictory(ecs)
}
