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

// CreatePlayer spawns the player standing with its feet at (x, feetY).
func CreatePlayer(ecs *ecs.ECS, x, feetY float64) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	w, h := cfg.Player.Width, cfg.Player.Height
	obj := resolv.NewObject(x-w/2, feetY-h, w, h, tags.ResolvPlayer)
	obj.Data = player
	components.Object.SetValue(player, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	components.Player.SetValue(player, components.PlayerData{
		Pose:   components.PoseIdle,
		Facing: cfg.DirectionRight,
		Lives:  cfg.Player.StartingLives,
	})
	components.Physics.SetValue(player, components.PhysicsData{
		Gravity:   cfg.Player.GroundGravity,
		GravityOn: true,
	})
	components.Visual.SetValue(player, components.VisualData{
		X:      x,
		Y:      feetY - h/2,
		ScaleX: 1,
		ScaleY: 1,
	})
	components.PowerUp.SetValue(player, components.PowerUpData{})

	return player
}
