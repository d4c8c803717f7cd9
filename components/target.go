package components

import "github.com/yohamta/donburi"

type TargetData struct {
	Size   int
	Radius float64
	Brand  string

	HasBounced bool
	GraceUntil Instant

	Spin     float64 // radians per second
	Rotation float64

	// Slow motion scaling. BaseGravity is the gravity the target had before
	// it was slowed.
	Slowed      bool
	SlowFactor  float64
	BaseGravity float64

	// Predicted is set while an in-flight projectile is expected to hit it.
	Predicted bool
}

var Target = donburi.NewComponentType[TargetData]()
