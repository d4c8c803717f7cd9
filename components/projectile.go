package components

import "github.com/yohamta/donburi"

type ProjectileData struct {
	Radius float64
	Heavy  bool
	// Struck lists entities a heavy projectile has already hit or spawned.
	Struck map[donburi.Entity]struct{}
}

var Projectile = donburi.NewComponentType[ProjectileData]()
