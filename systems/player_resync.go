package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/yohamta/donburi/ecs"
)

// ResyncPlayer is the post-physics pass. It resolves landings and take-offs
// reported by the physics step, then rebuilds the visual transform from the
// collision volume. It must run immediately after UpdatePhysics.
func ResyncPlayer(ecs *ecs.ECS) {
	f, ok := newPlayerFrame(ecs)
	if !ok {
		return
	}
	f.resync()
}

func (f *playerFrame) resync() {
	p := f.player
	if p.Pose != components.PoseDead && !p.Settle.Active(f.sched) {
		f.resolveGrounding()
	}
	f.syncVisual()
}

func (f *playerFrame) resolveGrounding() {
	p := f.player
	ph := f.physics

	switch p.Pose {
	case components.PoseJumping:
		if ph.Blocked.Down && ph.SpeedY >= 0 {
			f.land()
		}
	case components.PoseIdle, components.PoseRunning:
		if ph.GravityOn && !ph.Blocked.Down && !f.grounded() {
			// walked off an edge
			ph.Gravity = cfg.Player.AirGravity
			f.setPose(components.PoseJumping)
		}
	case components.PoseAiming, components.PoseThrowing:
		if ph.Blocked.Down {
			ph.Gravity = cfg.Player.GroundGravity
		} else {
			ph.Gravity = cfg.Player.AirGravity
		}
	}
}

// land ends a jump. A jump pressed shortly before touching down fires right
// away without an idle frame.
func (f *playerFrame) land() {
	p := f.player
	ph := f.physics

	ph.Gravity = cfg.Player.GroundGravity
	p.DoubleJumpUsed = false
	p.LandingFrames = cfg.Player.LandingFrames

	if p.BufferedJump.Within(f.clock.Now, cfg.Player.JumpBuffer) {
		f.jump()
		return
	}
	p.BufferedJump = components.Instant{}

	if ph.SpeedX != 0 {
		f.setPose(components.PoseRunning)
	} else {
		f.setPose(components.PoseIdle)
	}
}

// syncVisual derives the drawn transform from the volume. Mid-jump the visual
// follows the volume center directly; otherwise a pose offset is added.
func (f *playerFrame) syncVisual() {
	p := f.player
	visual := components.Visual.Get(f.entry)

	cx, cy := center(f.obj)
	visual.X = cx
	visual.Y = cy
	visual.ScaleX, visual.ScaleY = 1, 1

	switch p.Pose {
	case components.PoseJumping:
	case components.PoseCrouching:
		visual.Y += cfg.Player.CrouchOffset
		visual.ScaleY = cfg.Player.CrouchScaleY
	case components.PoseThrowing, components.PoseAiming:
		visual.Y += cfg.Player.ThrowOffset
	case components.PoseTaunting:
		visual.Y += cfg.Player.TauntOffset
	}
	if p.Facing < 0 {
		visual.ScaleX = -visual.ScaleX
	}
}
