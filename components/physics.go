package components

import (
	"github.com/yohamta/donburi"
)

// Vector represents a 2D vector.
type Vector struct {
	X, Y float64
}

// Contacts records which sides of a body touched a solid during the last
// physics step.
type Contacts struct {
	Down, Left, Right, Up bool
}

// Any reports whether any side is blocked.
func (c Contacts) Any() bool {
	return c.Down || c.Left || c.Right || c.Up
}

// PhysicsData is the integrator state of a body. Velocities are in units per
// second and gravity in units per second squared, y pointing down.
type PhysicsData struct {
	SpeedX    float64
	SpeedY    float64
	Gravity   float64
	GravityOn bool

	// Frozen bodies keep their velocity but are not integrated.
	Frozen bool
	// PassThrough bodies move without solid contact resolution.
	PassThrough bool

	Blocked Contacts
	// Impact holds the velocity a body had when it was stopped by a solid.
	Impact Vector
}

var Physics = donburi.NewComponentType[PhysicsData]()
