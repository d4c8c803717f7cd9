package components

import (
	"github.com/automoto/popstrike/scheduler"
	"github.com/yohamta/donburi"
)

// Pose is the player's single exclusive state. Modifiers that can overlap a
// pose (settle lock, invulnerability, shield) live in their own fields.
type Pose int

const (
	PoseIdle Pose = iota
	PoseRunning
	PoseCrouching
	PoseJumping
	PoseAiming
	PoseThrowing
	PoseTaunting
	PoseDead
)

func (p Pose) String() string {
	switch p {
	case PoseIdle:
		return "idle"
	case PoseRunning:
		return "running"
	case PoseCrouching:
		return "crouching"
	case PoseJumping:
		return "jumping"
	case PoseAiming:
		return "aiming"
	case PoseThrowing:
		return "throwing"
	case PoseTaunting:
		return "taunting"
	case PoseDead:
		return "dead"
	}
	return "unknown"
}

type PlayerData struct {
	Pose   Pose
	Facing float64
	Lives  int

	InvulnUntil  Instant
	BufferedJump Instant
	LastCrouch   Instant
	LastThrow    Instant

	DoubleJumpUsed bool
	LandingFrames  int
	ReleaseQueued  bool // act released while the throw cooldown was running

	// Feet position held during the crouch-exit settle.
	AnchorX, AnchorY float64

	Settle   scheduler.Timer
	Throw    scheduler.Timer
	AutoFire scheduler.Timer
	Death    scheduler.Timer

	// DamageStep is the damaged visual shown during the death sequence.
	DamageStep int
}

var Player = donburi.NewComponentType[PlayerData]()

// VisualData is the transform a renderer draws the player with. It is
// derived from the collision volume after every physics step.
type VisualData struct {
	X, Y           float64
	ScaleX, ScaleY float64
}

var Visual = donburi.NewComponentType[VisualData]()

// PowerUpData holds the timed player modifiers.
type PowerUpData struct {
	AutoFire Instant
	Heavy    Instant
	Shield   Instant
}

var PowerUp = donburi.NewComponentType[PowerUpData]()
