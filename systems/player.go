package systems

import (
	"math"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/scheduler"
	"github.com/automoto/popstrike/tags"
	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// playerFrame bundles what the player passes read and write during one tick.
type playerFrame struct {
	ecs     *ecs.ECS
	entry   *donburi.Entry
	player  *components.PlayerData
	physics *components.PhysicsData
	powerUp *components.PowerUpData
	obj     *resolv.Object
	intent  *components.IntentData
	sched   *scheduler.Scheduler
	clock   *components.ClockData
}

func newPlayerFrame(ecs *ecs.ECS) (*playerFrame, bool) {
	entry, ok := tags.Player.First(ecs.World)
	if !ok {
		return nil, false
	}
	sched := schedulerOf(ecs.World)
	if sched == nil {
		return nil, false
	}
	return &playerFrame{
		ecs:     ecs,
		entry:   entry,
		player:  components.Player.Get(entry),
		physics: components.Physics.Get(entry),
		powerUp: components.PowerUp.Get(entry),
		obj:     components.Object.Get(entry).Object,
		intent:  intentOf(ecs.World),
		sched:   sched,
		clock:   clockOf(ecs.World),
	}, true
}

// UpdatePlayer is the pre-physics pass. It resolves intents into a pose and
// may pin the collision volume before the physics step runs.
func UpdatePlayer(ecs *ecs.ECS) {
	f, ok := newPlayerFrame(ecs)
	if !ok {
		return
	}
	f.update()
}

func (f *playerFrame) update() {
	p := f.player
	if p.Pose == components.PoseDead {
		return
	}
	if p.LandingFrames > 0 {
		p.LandingFrames--
	}

	if phase, ok := bossPhase(f.ecs.World); ok && phase == components.PhaseVictory {
		f.face()
		f.physics.SpeedX = 0
		return
	}

	if p.Settle.Active(f.sched) {
		if !f.settleInterrupted() {
			f.holdSettle()
			return
		}
		f.endSettle()
	}

	if f.intent.TauntPressed && f.handleTauntToggle() {
		return
	}

	switch p.Pose {
	case components.PoseTaunting:
		if !(f.intent.MoveDown || f.intent.JumpPressed || f.intent.ActPressed) {
			f.face()
			f.physics.SpeedX, f.physics.SpeedY = 0, 0
			return
		}
		f.exitTaunt()
	case components.PoseThrowing:
		return
	case components.PoseAiming:
		f.updateAiming()
		return
	}

	if f.intent.ActPressed || f.intent.Act && f.powerUp.AutoFire.Ahead(f.clock.Now) {
		f.enterAiming()
		return
	}

	grounded := f.grounded()

	// Jump is resolved before crouch so both in one frame take off.
	if f.intent.JumpPressed && f.tryJump(grounded) {
		return
	}

	if p.Pose == components.PoseCrouching {
		if f.intent.MoveDown {
			f.physics.SpeedX = 0
			return
		}
		f.beginSettle()
		return
	}

	if f.intent.MoveDown && grounded && (p.Pose == components.PoseIdle || p.Pose == components.PoseRunning) {
		f.enterCrouch()
		return
	}

	f.move(grounded)
}

// grounded reports whether the player stands on a solid, counting the small
// tolerance band above it.
func (f *playerFrame) grounded() bool {
	if f.physics.Blocked.Down {
		return true
	}
	if math.Abs(f.physics.SpeedY) > cfg.Player.GroundSpeedTolerance {
		return false
	}
	return GroundGap(f.obj, cfg.Player.GroundTolerance) <= cfg.Player.GroundTolerance
}

func (f *playerFrame) face() {
	if dir := horizontalIntent(f.intent); dir != 0 {
		f.player.Facing = dir
	}
}

func (f *playerFrame) setPose(pose components.Pose) {
	if f.player.Pose == pose {
		return
	}
	log.Debug("player pose", "from", f.player.Pose, "to", pose)
	f.player.Pose = pose
}

// move handles running, idling and air steering.
func (f *playerFrame) move(grounded bool) {
	p := f.player
	dir := horizontalIntent(f.intent)
	if dir != 0 {
		p.Facing = dir
	}

	if p.Pose == components.PoseJumping {
		if dir != 0 {
			f.physics.SpeedX = dir * cfg.Player.RunSpeed
		}
		return
	}

	f.physics.SpeedX = dir * cfg.Player.RunSpeed
	if dir != 0 {
		f.setPose(components.PoseRunning)
	} else {
		f.setPose(components.PoseIdle)
	}

	if grounded && !f.physics.Blocked.Down && p.LandingFrames == 0 {
		f.snapToGround()
	}
}

// snapToGround settles a player hovering inside the tolerance band onto the
// floor.
func (f *playerFrame) snapToGround() {
	gap := GroundGap(f.obj, cfg.Player.GroundTolerance)
	if math.IsInf(gap, 1) || gap == 0 {
		return
	}
	f.obj.Y += gap
	f.obj.Update()
	f.physics.SpeedY = 0
}

// Crouch

func (f *playerFrame) enterCrouch() {
	f.resizeVolume(cfg.Player.CrouchHeight)
	f.physics.SpeedX, f.physics.SpeedY = 0, 0
	f.physics.GravityOn = false
	f.player.LastCrouch = components.At(f.clock.Now)
	f.setPose(components.PoseCrouching)
}

// resizeVolume changes the volume height keeping the feet in place.
func (f *playerFrame) resizeVolume(h float64) {
	feet := f.obj.Y + f.obj.H
	f.obj.H = h
	f.obj.Y = feet - h
	f.obj.Update()
}

// beginSettle starts the crouch exit. The volume is restored and pinned at
// the current feet position until the settle delay elapses.
func (f *playerFrame) beginSettle() {
	p := f.player
	f.resizeVolume(cfg.Player.Height)
	p.AnchorX = f.obj.X + f.obj.W/2
	p.AnchorY = f.obj.Y + f.obj.H
	f.physics.SpeedX, f.physics.SpeedY = 0, 0
	f.physics.GravityOn = false
	f.setPose(components.PoseIdle)

	entry := f.entry
	p.Settle.Start(f.sched, cfg.Player.SettleDelay, func() {
		if !entry.Valid() {
			return
		}
		physics := components.Physics.Get(entry)
		if components.Player.Get(entry).Pose != components.PoseDead {
			physics.GravityOn = true
			physics.Gravity = cfg.Player.GroundGravity
		}
	})
}

func (f *playerFrame) holdSettle() {
	p := f.player
	f.obj.X = p.AnchorX - f.obj.W/2
	f.obj.Y = p.AnchorY - f.obj.H
	f.obj.Update()
	f.physics.SpeedX, f.physics.SpeedY = 0, 0
	f.physics.GravityOn = false
}

func (f *playerFrame) settleInterrupted() bool {
	i := f.intent
	return i.MoveLeft || i.MoveRight || i.MoveDown || i.JumpPressed || i.ActPressed || i.TauntPressed
}

// endSettle aborts a pending settle and hands control back to normal
// processing.
func (f *playerFrame) endSettle() {
	f.player.Settle.Stop(f.sched)
	f.physics.GravityOn = true
	f.physics.Gravity = cfg.Player.GroundGravity
}

// Taunt

// handleTauntToggle enters or leaves the taunt. It returns true when the
// toggle consumed the frame.
func (f *playerFrame) handleTauntToggle() bool {
	switch f.player.Pose {
	case components.PoseTaunting:
		f.exitTaunt()
		f.physics.SpeedX = 0
		return true
	case components.PoseIdle, components.PoseRunning:
		if !f.grounded() {
			return false
		}
		f.physics.SpeedX, f.physics.SpeedY = 0, 0
		f.physics.GravityOn = false
		f.setPose(components.PoseTaunting)
		return true
	}
	return false
}

func (f *playerFrame) exitTaunt() {
	f.physics.GravityOn = true
	f.physics.Gravity = cfg.Player.GroundGravity
	f.setPose(components.PoseIdle)
}
