package factory

import (
	"github.com/automoto/popstrike/archetypes"
	"github.com/automoto/popstrike/components"
	"github.com/automoto/popstrike/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateWall(ecs *ecs.ECS, x, y, w, h float64) *donburi.Entry {
	wall := archetypes.Solid.Spawn(ecs)

	obj := resolv.NewObject(x, y, w, h, tags.ResolvSolid)
	obj.Data = wall // Link for O(1) lookup

	components.Object.SetValue(wall, components.ObjectData{Object: obj})
	addToSpace(ecs, obj)

	return wall
}

// CreateArenaBounds adds the floor, the ceiling and both side walls.
func CreateArenaBounds(ecs *ecs.ECS, width, height, groundY, thickness float64) {
	CreateWall(ecs, 0, groundY, width, height-groundY)
	CreateWall(ecs, 0, 0, width, thickness)
	CreateWall(ecs, 0, thickness, thickness, groundY-thickness)
	CreateWall(ecs, width-thickness, thickness, thickness, groundY-thickness)
}

func addToSpace(ecs *ecs.ECS, obj *resolv.Object) {
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}
