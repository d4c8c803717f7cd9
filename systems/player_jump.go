package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
)

// tryJump handles a jump press. It returns true when the player took off.
// A press that cannot jump right now is buffered.
func (f *playerFrame) tryJump(grounded bool) bool {
	p := f.player
	phase, inBoss := bossPhase(f.ecs.World)

	if p.Pose == components.PoseCrouching || grounded && p.Pose != components.PoseJumping {
		f.jump()
		p.DoubleJumpUsed = false
		return true
	}

	if p.Pose == components.PoseJumping && !grounded && inBoss && phase == components.PhaseJet && !p.DoubleJumpUsed {
		f.jump()
		p.DoubleJumpUsed = true
		return true
	}

	// Airborne, or grounded while the landing is still being resolved.
	p.BufferedJump = components.At(f.clock.Now)
	return false
}

// jump launches the player. The crouch boost is consumed here.
func (f *playerFrame) jump() {
	p := f.player
	speed := cfg.Player.JumpSpeed

	boosted := false
	if phase, ok := bossPhase(f.ecs.World); ok && phase.IsTank() {
		boosted = true
	}
	if p.LastCrouch.Within(f.clock.Now, cfg.Player.CrouchBoostWindow) {
		boosted = true
		p.LastCrouch = components.Instant{}
	}
	if boosted {
		speed *= cfg.Player.JumpBoost
	}

	if f.obj.H != cfg.Player.Height {
		f.resizeVolume(cfg.Player.Height)
	}
	p.Settle.Stop(f.sched)
	p.BufferedJump = components.Instant{}
	p.LandingFrames = 0

	f.physics.SpeedY = -speed
	f.physics.GravityOn = true
	f.physics.Gravity = cfg.Player.AirGravity
	f.setPose(components.PoseJumping)
}

// Aim and throw

func (f *playerFrame) enterAiming() {
	p := f.player
	if p.Pose == components.PoseCrouching {
		f.resizeVolume(cfg.Player.Height)
		f.physics.GravityOn = true
	}
	f.physics.SpeedX = 0
	p.ReleaseQueued = false
	f.setPose(components.PoseAiming)

	if f.powerUp.AutoFire.Ahead(f.clock.Now) {
		f.startAutoFire()
	}
}

// startAutoFire schedules a release that stands in for the player letting go.
func (f *playerFrame) startAutoFire() {
	entry := f.entry
	f.player.AutoFire.Start(f.sched, cfg.Player.AutoFireInterval, func() {
		if !entry.Valid() {
			return
		}
		p := components.Player.Get(entry)
		if p.Pose == components.PoseAiming {
			p.ReleaseQueued = true
		}
	})
}

func (f *playerFrame) updateAiming() {
	p := f.player
	f.face()
	f.physics.SpeedX = 0
	if f.intent.ActReleased {
		p.ReleaseQueued = true
	}
	if !p.ReleaseQueued {
		return
	}
	if p.LastThrow.Within(f.clock.Now, cfg.Player.ThrowCooldown) {
		return
	}
	f.release()
}

// release fires one projectile and plays the throw, which cannot be
// interrupted.
func (f *playerFrame) release() {
	p := f.player
	now := f.clock.Now
	p.ReleaseQueued = false
	p.AutoFire.Stop(f.sched)
	p.LastThrow = components.At(now)

	heavy := f.powerUp.Heavy.Ahead(now)
	direction := -1.0
	if phase, ok := bossPhase(f.ecs.World); ok && phase.IsTank() && !heavy {
		direction = 1.0
	}
	x := f.obj.X + f.obj.W/2
	y := f.obj.Y + f.obj.H - cfg.Player.HandOffset
	spawnProjectile(f.ecs, x, y, direction, heavy)

	f.setPose(components.PoseThrowing)

	entry := f.entry
	p.Throw.Start(f.sched, cfg.Player.ThrowDuration, func() {
		if !entry.Valid() {
			return
		}
		pl := components.Player.Get(entry)
		if pl.Pose == components.PoseThrowing {
			pl.Pose = components.PoseIdle
		}
	})
}
