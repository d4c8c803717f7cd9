package systems

import (
	"math"
	"time"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// updateTank seeks the player's horizontal position. Direction changes are
// locked out for a short window so the tank does not flicker around the
// player, and the arena walls always turn it around.
func updateTank(ecs *ecs.ECS, e *donburi.Entry) {
	tank := components.Tank.Get(e)
	physics := components.Physics.Get(e)
	obj := components.Object.Get(e).Object
	now := now(ecs.World)

	left := cfg.Arena.Wall
	right := cfg.Arena.Width - cfg.Arena.Wall

	switch {
	case obj.X <= left && tank.Direction < 0:
		obj.X = left
		turnTank(tank, 1, now)
	case obj.X+obj.W >= right && tank.Direction > 0:
		obj.X = right - obj.W
		turnTank(tank, -1, now)
	default:
		if player, ok := tags.Player.First(ecs.World); ok && !tank.FlipLock.Ahead(now) {
			pobj := components.Object.Get(player)
			tx, _ := center(obj)
			diff := pobj.X + pobj.W/2 - tx
			if math.Abs(diff) > cfg.Boss.TankDeadband {
				if want := math.Copysign(1, diff); want != tank.Direction {
					turnTank(tank, want, now)
				}
			}
		}
	}
	obj.Update()

	physics.SpeedX = tank.Direction * cfg.Boss.TankSpeed
}

func turnTank(tank *components.TankData, dir float64, now time.Duration) {
	tank.Direction = dir
	tank.FlipLock = components.At(now + cfg.Boss.TankFlipLock)
}
