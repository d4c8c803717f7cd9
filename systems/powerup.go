package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi/ecs"
)

type PowerUpKind int

const (
	PowerUpAutoFire PowerUpKind = iota
	PowerUpHeavy
	PowerUpShield
	PowerUpExtraLife
	PowerUpSlowMo
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpAutoFire:
		return "auto-fire"
	case PowerUpHeavy:
		return "heavy"
	case PowerUpShield:
		return "shield"
	case PowerUpExtraLife:
		return "extra-life"
	case PowerUpSlowMo:
		return "slow-motion"
	}
	return "unknown"
}

// GrantPowerUp applies a collected power-up. Timed ones restart their
// window when granted again.
func GrantPowerUp(ecs *ecs.ECS, kind PowerUpKind) {
	now := now(ecs.World)
	log.Debug("power-up granted", "kind", kind)

	switch kind {
	case PowerUpExtraLife:
		AddLife(ecs)
		return
	case PowerUpSlowMo:
		StartSlowMo(ecs, cfg.PowerUp.SlowMoFactor, cfg.PowerUp.SlowMoDuration)
		return
	}

	entry, ok := tags.Player.First(ecs.World)
	if !ok || components.Player.Get(entry).Pose == components.PoseDead {
		return
	}
	powerUp := components.PowerUp.Get(entry)
	switch kind {
	case PowerUpAutoFire:
		powerUp.AutoFire = components.At(now + cfg.PowerUp.AutoFireDuration)
	case PowerUpHeavy:
		powerUp.Heavy = components.At(now + cfg.PowerUp.HeavyDuration)
	case PowerUpShield:
		powerUp.Shield = components.At(now + cfg.PowerUp.ShieldDuration)
	}
}
