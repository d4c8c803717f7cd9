package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/signals"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCombat applies damage to the player from overlapping targets and the
// active boss enemy.
func UpdateCombat(ecs *ecs.ECS) {
	entry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	if components.Player.Get(entry).Pose == components.PoseDead {
		return
	}
	obj := components.Object.Get(entry).Object
	if obj.Space == nil {
		return
	}

	check := obj.Check(0, 0, tags.ResolvTarget, tags.ResolvEnemy)
	if check == nil {
		return
	}

	lethal, hit := false, false
	for _, other := range check.Objects {
		otherEntry, ok := other.Data.(*donburi.Entry)
		if !ok || !otherEntry.Valid() {
			continue
		}
		switch {
		case otherEntry.HasComponent(tags.Target):
			cx, cy := center(other)
			if circleRect(cx, cy, components.Target.Get(otherEntry).Radius, obj) {
				hit = true
			}
		case otherEntry.HasComponent(tags.Jet):
			if isActiveEnemy(ecs.World, otherEntry) && overlaps(obj, other) {
				lethal = true
			}
		case otherEntry.HasComponent(tags.Tank):
			if isActiveEnemy(ecs.World, otherEntry) && overlaps(obj, other) {
				hit = true
			}
		}
	}

	switch {
	case lethal:
		DamagePlayer(ecs, entry, true)
	case hit:
		DamagePlayer(ecs, entry, false)
	}
}

// DamagePlayer applies one hit. A lethal hit zeroes the lives regardless of
// invulnerability. A normal hit is ignored while invulnerable and is absorbed
// by an active shield.
func DamagePlayer(ecs *ecs.ECS, entry *donburi.Entry, lethal bool) {
	if !entry.Valid() {
		return
	}
	player := components.Player.Get(entry)
	if player.Pose == components.PoseDead {
		return
	}
	now := now(ecs.World)

	if lethal {
		player.Lives = 0
		signals.PlayerHit.Publish(ecs.World, signals.PlayerHitEvent{Lethal: true})
		log.Info("player struck down", "by", "jet")
		startDeath(ecs, entry)
		return
	}

	if player.InvulnUntil.Ahead(now) {
		return
	}
	player.InvulnUntil = components.At(now + cfg.Player.InvulnDuration)

	powerUp := components.PowerUp.Get(entry)
	if powerUp.Shield.Ahead(now) {
		powerUp.Shield = components.Instant{}
		signals.PlayerHit.Publish(ecs.World, signals.PlayerHitEvent{Absorbed: true, Lives: player.Lives})
		return
	}

	player.Lives--
	signals.PlayerHit.Publish(ecs.World, signals.PlayerHitEvent{Lives: player.Lives})
	log.Debug("player hit", "lives", player.Lives)
	if player.Lives <= 0 {
		player.Lives = 0
		startDeath(ecs, entry)
	}
}

// AddLife grants one life up to the configured maximum.
func AddLife(ecs *ecs.ECS) {
	entry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	player := components.Player.Get(entry)
	if player.Pose == components.PoseDead {
		return
	}
	player.Lives = min(player.Lives+1, cfg.Player.MaxLives)
}
