package factory

import (
	"time"

	"github.com/automoto/popstrike/archetypes"
	"github.com/automoto/popstrike/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateMarker(ecs *ecs.ECS, kind components.MarkerKind, x, y float64, expires time.Duration) *donburi.Entry {
	marker := archetypes.Marker.Spawn(ecs)
	components.Marker.SetValue(marker, components.MarkerData{
		Kind:    kind,
		X:       x,
		Y:       y,
		Expires: expires,
	})
	return marker
}
