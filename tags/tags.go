package tags

import "github.com/yohamta/donburi"

var (
	Player     = donburi.NewTag().SetName("Player")
	Solid      = donburi.NewTag().SetName("Solid")
	Target     = donburi.NewTag().SetName("Target")
	Projectile = donburi.NewTag().SetName("Projectile")
	Jet        = donburi.NewTag().SetName("Jet")
	Tank       = donburi.NewTag().SetName("Tank")
	Marker     = donburi.NewTag().SetName("Marker")
)

// Resolv tags for physics collision
const (
	ResolvSolid      = "solid"
	ResolvPlayer     = "Player"
	ResolvTarget     = "Target"
	ResolvProjectile = "Projectile"
	ResolvEnemy      = "Enemy"
)
