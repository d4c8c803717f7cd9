package factory

import (
	"github.com/automoto/popstrike/assets"
	cfg "github.com/automoto/popstrike/config"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevelSolids builds the level's static geometry. Levels without any
// solids get the default arena bounds.
func CreateLevelSolids(ecs *ecs.ECS, level assets.Level) int {
	if len(level.Solids) == 0 {
		CreateArenaBounds(ecs, cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.GroundY, cfg.Arena.Wall)
		return 4
	}
	for _, s := range level.Solids {
		CreateWall(ecs, s.X, s.Y, s.Width, s.Height)
	}
	return len(level.Solids)
}
