package session

import (
	"math"
	"testing"
	"time"

	"github.com/automoto/popstrike/assets"
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/signals"
	"github.com/automoto/popstrike/systems"
	"github.com/automoto/popstrike/tags"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"github.com/yohamta/donburi/filter"
)

const frame = time.Second / 60

var none components.RawInput

func press(actions ...cfg.ActionID) components.RawInput {
	var raw components.RawInput
	raw.Press(actions...)
	return raw
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg.Reset()
	s, err := New(Options{Seed: 7})
	require.NoError(t, err)
	s.StartLevel(assets.Level{
		PlayerSpawn: assets.PlayerSpawn{X: cfg.Arena.Width / 2, Y: cfg.Arena.GroundY},
	})
	return s
}

func (s *Session) run(d time.Duration, raw components.RawInput) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frame {
		s.Tick(frame, raw)
	}
}

func (s *Session) playerState() (*components.PlayerData, *components.PhysicsData, *resolv.Object) {
	return components.Player.Get(s.player),
		components.Physics.Get(s.player),
		components.Object.Get(s.player).Object
}

func (s *Session) bossData(t *testing.T) *components.BossData {
	t.Helper()
	e, ok := components.Boss.First(s.ecs.World)
	require.True(t, ok)
	return components.Boss.Get(e)
}

// enemy returns the encounter's live enemy and its entity. Entries are
// shared per id, so anything outliving the enemy must hold the entity.
func (s *Session) enemy(t *testing.T) (*donburi.Entry, donburi.Entity) {
	t.Helper()
	ent := s.bossData(t).Active
	require.True(t, s.ecs.World.Valid(ent), "no live enemy")
	return s.ecs.World.Entry(ent), ent
}

func (s *Session) count(tag component.IComponentType) int {
	return donburi.NewQuery(filter.Contains(tag)).Count(s.ecs.World)
}

func airSpeedAfterTakeoff(jumpSpeed float64) float64 {
	return -jumpSpeed + cfg.Player.AirGravity*frame.Seconds()
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg.Reset()
	defer cfg.Reset()
	cfg.Target.Gravity = 0

	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewRejectsEmptySpace(t *testing.T) {
	cfg.Reset()
	_, err := New(Options{Space: resolv.NewSpace(0, 0, 32, 32)})
	assert.ErrorIs(t, err, ErrNoPhysics)
}

// measureApex lets a target fall onto the floor and returns how high above
// the floor it climbs after that first bounce.
func measureApex(t *testing.T, s *Session, entry *donburi.Entry) float64 {
	t.Helper()
	for i := 0; i < 2000 && !components.Target.Get(entry).HasBounced; i++ {
		s.Tick(frame, none)
	}
	require.True(t, components.Target.Get(entry).HasBounced, "target never reached the floor")

	lowest := math.Inf(1)
	for i := 0; i < 2000; i++ {
		s.Tick(frame, none)
		obj := components.Object.Get(entry).Object
		lowest = math.Min(lowest, obj.Y+obj.H)
		if components.Physics.Get(entry).SpeedY > 0 {
			break
		}
	}
	return cfg.Arena.GroundY - lowest
}

func TestTargetApexIndependentOfDropHeight(t *testing.T) {
	cfg.Reset()
	for size := 0; size < cfg.SizeCount(); size++ {
		sz, _ := cfg.Size(size)
		for _, drop := range []float64{cfg.Target.MinClearance, 400, 800} {
			t.Run(sz.Name, func(t *testing.T) {
				s := newTestSession(t)
				bottom := cfg.Arena.GroundY - drop
				entry := systems.SpawnTarget(s.ecs, size, 500, bottom-sz.Radius, 0)
				require.NotNil(t, entry)

				assert.InDelta(t, cfg.Apex(size), measureApex(t, s, entry), 1.0, "drop %v", drop)
			})
		}
	}
}

func TestLargeTargetApexScenario(t *testing.T) {
	s := newTestSession(t)
	large, _ := cfg.Size(cfg.SizeLarge)
	y := cfg.Arena.GroundY - cfg.Target.MinClearance - large.Radius
	entry := systems.SpawnTarget(s.ecs, cfg.SizeLarge, 700, y, 0)
	require.NotNil(t, entry)

	apex := measureApex(t, s, entry)
	assert.InDelta(t, 746.0*746.0/(2*240), apex, 1.0)
	assert.InDelta(t, 1160, apex, 1.0)
}

func TestSlowMotionKeepsApex(t *testing.T) {
	s := newTestSession(t)
	entry := systems.SpawnTarget(s.ecs, cfg.SizeSmall, 500, 900, 0)
	require.NotNil(t, entry)
	systems.StartSlowMo(s.ecs, 0.5, time.Minute)

	assert.InDelta(t, cfg.Apex(cfg.SizeSmall), measureApex(t, s, entry), 1.0)

	// restarting does not compound
	systems.StartSlowMo(s.ecs, 0.5, time.Minute)
	assert.InDelta(t, cfg.Target.Gravity*0.25, components.Physics.Get(entry).Gravity, 1e-9)

	systems.EndSlowMo(s.ecs)
	assert.InDelta(t, cfg.Target.Gravity, components.Physics.Get(entry).Gravity, 1e-9)
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		wantSize int
		children int
	}{
		{"large", cfg.SizeLarge, cfg.SizeMedium, 2},
		{"medium", cfg.SizeMedium, cfg.SizeSmall, 2},
		{"small", cfg.SizeSmall, cfg.SizeMini, 2},
		{"mini", cfg.SizeMini, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			sz, _ := cfg.Size(tt.size)
			// hit just above the floor so the clearance clamp kicks in
			entry := systems.SpawnTarget(s.ecs, tt.size, 800, cfg.Arena.GroundY-sz.Radius-4, 0)
			require.NotNil(t, entry)
			parentBrand := components.Target.Get(entry).Brand
			parent := entry.Entity()

			children := systems.SplitTarget(s.ecs, entry)
			require.Len(t, children, tt.children)
			assert.False(t, s.ecs.World.Valid(parent))
			assert.Equal(t, tt.children, systems.CountTargets(s.ecs))
			if tt.children == 0 {
				return
			}

			next, _ := cfg.Size(tt.wantSize)
			for _, child := range children {
				target := components.Target.Get(child)
				obj := components.Object.Get(child).Object
				assert.Equal(t, tt.wantSize, target.Size)
				assert.LessOrEqual(t, obj.Y+obj.H, cfg.Arena.GroundY-cfg.Target.MinClearance+1e-9)
				assert.Equal(t, -next.BounceSpeed, components.Physics.Get(child).SpeedY)
				assert.NotEqual(t, parentBrand, target.Brand)
			}
			a, b := components.Target.Get(children[0]), components.Target.Get(children[1])
			assert.NotEqual(t, a.Brand, b.Brand)
			assert.Less(t, components.Physics.Get(children[0]).SpeedX*components.Physics.Get(children[1]).SpeedX, 0.0)
		})
	}
}

func TestSplitStaleTargetIsNoop(t *testing.T) {
	s := newTestSession(t)
	entry := systems.SpawnTarget(s.ecs, cfg.SizeLarge, 800, 900, 0)
	parent := entry.Entity()
	require.Len(t, systems.SplitTarget(s.ecs, entry), 2)
	require.False(t, s.ecs.World.Valid(parent))

	// the freed id now belongs to a child; the old entity must not split it
	assert.Nil(t, systems.SplitTarget(s.ecs, s.ecs.World.Entry(parent)))
	assert.Equal(t, 2, systems.CountTargets(s.ecs))
}

func TestSiblingBrandsNeverMatch(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		cfg.Reset()
		s, err := New(Options{Seed: seed})
		require.NoError(t, err)
		s.StartLevel(assets.Level{PlayerSpawn: assets.PlayerSpawn{X: 1200, Y: cfg.Arena.GroundY}})

		queue := []*donburi.Entry{systems.SpawnTarget(s.ecs, cfg.SizeLarge, 1000, 600, 0)}
		for len(queue) > 0 {
			e := queue[0]
			queue = queue[1:]
			children := systems.SplitTarget(s.ecs, e)
			if len(children) == 2 {
				assert.NotEqual(t, components.Target.Get(children[0]).Brand, components.Target.Get(children[1]).Brand)
			}
			queue = append(queue, children...)
		}
	}
}

func TestLevelBrandsPreferFreshOnes(t *testing.T) {
	s := newTestSession(t)
	level := components.Level.Get(s.game)
	first := append([]string(nil), level.Brands...)
	require.Len(t, first, cfg.SizeCount())

	s.StartLevel(assets.Level{Name: "next", PlayerSpawn: assets.PlayerSpawn{X: 1200, Y: cfg.Arena.GroundY}})
	level = components.Level.Get(s.game)
	assert.Equal(t, first, level.Previous)
	for _, b := range level.Brands {
		assert.NotContains(t, first, b)
	}
}

func TestJumpTakeoffSpeed(t *testing.T) {
	base := cfg.Player.JumpSpeed
	boosted := base * cfg.Player.JumpBoost

	t.Run("plain", func(t *testing.T) {
		s := newTestSession(t)
		s.Tick(frame, none)
		s.Tick(frame, press(cfg.ActionMoveUp))

		p, ph, _ := s.playerState()
		assert.Equal(t, components.PoseJumping, p.Pose)
		assert.InDelta(t, airSpeedAfterTakeoff(base), ph.SpeedY, 1e-6)
	})

	t.Run("from crouch", func(t *testing.T) {
		s := newTestSession(t)
		s.run(3*frame, press(cfg.ActionMoveDown))
		p, _, _ := s.playerState()
		require.Equal(t, components.PoseCrouching, p.Pose)

		s.Tick(frame, press(cfg.ActionMoveDown, cfg.ActionMoveUp))
		p, ph, obj := s.playerState()
		assert.Equal(t, components.PoseJumping, p.Pose)
		assert.InDelta(t, airSpeedAfterTakeoff(boosted), ph.SpeedY, 1e-6)
		assert.Equal(t, cfg.Player.Height, obj.H)
		assert.False(t, p.LastCrouch.Valid, "boost is consumed")
	})

	t.Run("shortly after crouch", func(t *testing.T) {
		s := newTestSession(t)
		s.run(3*frame, press(cfg.ActionMoveDown))
		s.run(500*time.Millisecond, none)
		s.Tick(frame, press(cfg.ActionMoveUp))

		_, ph, _ := s.playerState()
		assert.InDelta(t, airSpeedAfterTakeoff(boosted), ph.SpeedY, 1e-6)
	})

	t.Run("crouch too long ago", func(t *testing.T) {
		s := newTestSession(t)
		s.run(3*frame, press(cfg.ActionMoveDown))
		s.run(1200*time.Millisecond, none)
		s.Tick(frame, press(cfg.ActionMoveUp))

		_, ph, _ := s.playerState()
		assert.InDelta(t, airSpeedAfterTakeoff(base), ph.SpeedY, 1e-6)
	})

	t.Run("tank phase", func(t *testing.T) {
		s := newTestSession(t)
		s.StartBossEncounter()
		defeatJet(t, s)
		require.Equal(t, components.PhaseTank1, s.bossData(t).Phase)

		s.Tick(frame, none)
		s.Tick(frame, press(cfg.ActionMoveUp))
		_, ph, _ := s.playerState()
		assert.InDelta(t, airSpeedAfterTakeoff(boosted), ph.SpeedY, 1e-6)
	})
}

func TestJumpAndCrouchSameFrame(t *testing.T) {
	s := newTestSession(t)
	s.Tick(frame, none)
	s.Tick(frame, press(cfg.ActionMoveUp, cfg.ActionMoveDown))

	p, _, obj := s.playerState()
	assert.Equal(t, components.PoseJumping, p.Pose)
	assert.Equal(t, cfg.Player.Height, obj.H)

	s.Tick(frame, press(cfg.ActionMoveDown))
	p, _, obj = s.playerState()
	assert.Equal(t, components.PoseJumping, p.Pose)
	assert.Less(t, obj.Y+obj.H, cfg.Arena.GroundY)
}

// landingTick jumps once and returns the tick, counted from take-off, on
// which the player lands.
func landingTick(t *testing.T) int {
	t.Helper()
	s := newTestSession(t)
	s.Tick(frame, none)
	s.Tick(frame, press(cfg.ActionMoveUp))
	for i := 1; i < 600; i++ {
		s.Tick(frame, none)
		if p, _, _ := s.playerState(); p.Pose != components.PoseJumping {
			return i
		}
	}
	t.Fatal("player never landed")
	return 0
}

func TestJumpBuffer(t *testing.T) {
	landing := landingTick(t)
	require.Greater(t, landing, 30)

	tests := []struct {
		name       string
		earlyTicks int
		rejump     bool
	}{
		{"within window", 10, true},
		{"window edge", 17, true},
		{"too early", 25, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			s.Tick(frame, none)
			s.Tick(frame, press(cfg.ActionMoveUp))

			for i := 1; i <= landing; i++ {
				raw := none
				if i == landing-tt.earlyTicks {
					raw = press(cfg.ActionMoveUp)
				}
				s.Tick(frame, raw)
				if i < landing {
					p, _, _ := s.playerState()
					require.Equal(t, components.PoseJumping, p.Pose, "tick %d", i)
				}
			}

			p, ph, _ := s.playerState()
			if tt.rejump {
				assert.Equal(t, components.PoseJumping, p.Pose)
				assert.Equal(t, -cfg.Player.JumpSpeed, ph.SpeedY)
			} else {
				assert.Equal(t, components.PoseIdle, p.Pose)
				assert.False(t, p.BufferedJump.Valid)
			}
		})
	}
}

func TestDoubleJumpOnlyDuringJetPhase(t *testing.T) {
	midAirPress := func(s *Session) {
		s.Tick(frame, none)
		s.Tick(frame, press(cfg.ActionMoveUp))
		s.run(10*frame, none)
		s.Tick(frame, press(cfg.ActionMoveUp))
	}

	t.Run("no encounter", func(t *testing.T) {
		s := newTestSession(t)
		midAirPress(s)
		p, ph, _ := s.playerState()
		assert.False(t, p.DoubleJumpUsed)
		assert.True(t, p.BufferedJump.Valid)
		assert.Greater(t, ph.SpeedY, airSpeedAfterTakeoff(cfg.Player.JumpSpeed))
	})

	t.Run("jet phase", func(t *testing.T) {
		s := newTestSession(t)
		s.StartBossEncounter()
		midAirPress(s)
		p, ph, _ := s.playerState()
		assert.True(t, p.DoubleJumpUsed)
		assert.InDelta(t, airSpeedAfterTakeoff(cfg.Player.JumpSpeed), ph.SpeedY, 1e-6)

		// only once per jump
		s.run(5*frame, none)
		s.Tick(frame, press(cfg.ActionMoveUp))
		p, _, _ = s.playerState()
		assert.True(t, p.BufferedJump.Valid)
	})
}

func TestCrouch(t *testing.T) {
	s := newTestSession(t)
	s.Tick(frame, press(cfg.ActionMoveDown, cfg.ActionMoveRight))

	p, ph, obj := s.playerState()
	assert.Equal(t, components.PoseCrouching, p.Pose)
	assert.Equal(t, cfg.Player.CrouchHeight, obj.H)
	assert.InDelta(t, cfg.Arena.GroundY, obj.Y+obj.H, 1e-6)
	assert.False(t, ph.GravityOn)

	s.run(10*frame, press(cfg.ActionMoveDown, cfg.ActionMoveRight))
	p, ph, _ = s.playerState()
	assert.Equal(t, components.PoseCrouching, p.Pose)
	assert.Zero(t, ph.SpeedX)
}

func TestCrouchExitSettle(t *testing.T) {
	t.Run("completes", func(t *testing.T) {
		s := newTestSession(t)
		s.run(3*frame, press(cfg.ActionMoveDown))
		s.Tick(frame, none)

		p, ph, obj := s.playerState()
		assert.Equal(t, components.PoseIdle, p.Pose)
		assert.True(t, p.Settle.Active(s.sched))
		assert.False(t, ph.GravityOn)
		assert.Equal(t, cfg.Player.Height, obj.H)

		s.run(cfg.Player.SettleDelay+frame, none)
		p, ph, obj = s.playerState()
		assert.False(t, p.Settle.Active(s.sched))
		assert.True(t, ph.GravityOn)
		assert.InDelta(t, cfg.Arena.GroundY, obj.Y+obj.H, 1e-6)
	})

	t.Run("interrupted by movement", func(t *testing.T) {
		s := newTestSession(t)
		s.run(3*frame, press(cfg.ActionMoveDown))
		s.Tick(frame, none)
		s.Tick(frame, press(cfg.ActionMoveRight))

		p, ph, _ := s.playerState()
		assert.False(t, p.Settle.Active(s.sched))
		assert.Equal(t, components.PoseRunning, p.Pose)
		assert.True(t, ph.GravityOn)
		assert.Equal(t, cfg.Player.RunSpeed, ph.SpeedX)
	})

	t.Run("crouch again", func(t *testing.T) {
		s := newTestSession(t)
		s.run(3*frame, press(cfg.ActionMoveDown))
		s.Tick(frame, none)
		s.Tick(frame, press(cfg.ActionMoveDown))

		p, _, _ := s.playerState()
		assert.False(t, p.Settle.Active(s.sched))
		assert.Equal(t, components.PoseCrouching, p.Pose)
		assert.Equal(t, 0, s.sched.Len())
	})
}

func TestRunAndFace(t *testing.T) {
	s := newTestSession(t)
	s.run(10*frame, press(cfg.ActionMoveLeft))

	p, ph, _ := s.playerState()
	assert.Equal(t, components.PoseRunning, p.Pose)
	assert.Equal(t, -cfg.Player.RunSpeed, ph.SpeedX)
	assert.Equal(t, cfg.DirectionLeft, p.Facing)
	assert.Less(t, components.Visual.Get(s.player).ScaleX, 0.0)

	s.Tick(frame, none)
	p, ph, _ = s.playerState()
	assert.Equal(t, components.PoseIdle, p.Pose)
	assert.Zero(t, ph.SpeedX)
}

func TestTaunt(t *testing.T) {
	s := newTestSession(t)
	s.Tick(frame, none)
	s.Tick(frame, press(cfg.ActionTaunt))

	p, ph, _ := s.playerState()
	require.Equal(t, components.PoseTaunting, p.Pose)
	assert.False(t, ph.GravityOn)

	s.run(5*frame, press(cfg.ActionMoveLeft))
	p, ph, obj := s.playerState()
	assert.Equal(t, components.PoseTaunting, p.Pose)
	assert.Equal(t, cfg.DirectionLeft, p.Facing)
	assert.Zero(t, ph.SpeedX)
	assert.InDelta(t, cfg.Arena.Width/2, obj.X+obj.W/2, 1e-6)

	s.Tick(frame, none)
	s.Tick(frame, press(cfg.ActionMoveUp))
	p, _, _ = s.playerState()
	assert.Equal(t, components.PoseJumping, p.Pose)
}

func TestTauntToggle(t *testing.T) {
	s := newTestSession(t)
	s.Tick(frame, press(cfg.ActionTaunt))
	s.Tick(frame, none)
	s.Tick(frame, press(cfg.ActionTaunt))

	p, ph, _ := s.playerState()
	assert.Equal(t, components.PoseIdle, p.Pose)
	assert.True(t, ph.GravityOn)
}

func TestAimAndThrow(t *testing.T) {
	s := newTestSession(t)
	s.Tick(frame, press(cfg.ActionAct))

	p, _, _ := s.playerState()
	require.Equal(t, components.PoseAiming, p.Pose)
	assert.Zero(t, s.count(tags.Projectile))

	s.Tick(frame, none)
	p, _, _ = s.playerState()
	assert.Equal(t, components.PoseThrowing, p.Pose)
	require.Equal(t, 1, s.count(tags.Projectile))
	view := s.View()
	require.Len(t, view.Projectiles, 1)
	assert.False(t, view.Projectiles[0].Heavy)

	s.run(cfg.Player.ThrowDuration+frame, none)
	p, _, _ = s.playerState()
	assert.Equal(t, components.PoseIdle, p.Pose)

	// projectiles leave the arena and are dropped
	s.run(2*time.Second, none)
	assert.Zero(t, s.count(tags.Projectile))
}

func TestProjectileSplitsTarget(t *testing.T) {
	s := newTestSession(t)
	_, _, obj := s.playerState()
	x := obj.X + obj.W/2
	target := systems.SpawnTarget(s.ecs, cfg.SizeLarge, x, 600, 0)
	require.NotNil(t, target)
	components.Physics.Get(target).GravityOn = false
	ent := target.Entity()

	s.Tick(frame, press(cfg.ActionAct))
	s.Tick(frame, none)
	s.run(time.Second, none)

	assert.False(t, s.ecs.World.Valid(ent))
	assert.Equal(t, 2, systems.CountTargets(s.ecs))
	assert.Zero(t, s.count(tags.Projectile))
}

func TestHeavyProjectilePassesThrough(t *testing.T) {
	s := newTestSession(t)
	s.GrantPowerUp(systems.PowerUpHeavy)
	_, _, obj := s.playerState()
	x := obj.X + obj.W/2
	target := systems.SpawnTarget(s.ecs, cfg.SizeMini, x, 900, 0)
	require.NotNil(t, target)
	components.Physics.Get(target).GravityOn = false
	ent := target.Entity()

	s.Tick(frame, press(cfg.ActionAct))
	s.Tick(frame, none)
	require.Equal(t, 1, s.count(tags.Projectile))
	s.run(500*time.Millisecond, none)

	assert.False(t, s.ecs.World.Valid(ent))
	assert.Equal(t, 1, s.count(tags.Projectile), "heavy projectile survives the hit")
}

func TestDamagePlayer(t *testing.T) {
	s := newTestSession(t)
	var hits []signals.PlayerHitEvent
	s.OnPlayerHit(func(ev signals.PlayerHitEvent) { hits = append(hits, ev) })

	systems.DamagePlayer(s.ecs, s.player, false)
	systems.DamagePlayer(s.ecs, s.player, false)
	s.Tick(frame, none)

	p, _, _ := s.playerState()
	assert.Equal(t, cfg.Player.StartingLives-1, p.Lives)
	require.Len(t, hits, 1, "second hit lands inside the invulnerability window")

	s.run(cfg.Player.InvulnDuration+frame, none)
	s.GrantPowerUp(systems.PowerUpShield)
	systems.DamagePlayer(s.ecs, s.player, false)
	s.Tick(frame, none)

	p, _, _ = s.playerState()
	assert.Equal(t, cfg.Player.StartingLives-1, p.Lives)
	require.Len(t, hits, 2)
	assert.True(t, hits[1].Absorbed)
}

func TestExtraLifeIsCapped(t *testing.T) {
	s := newTestSession(t)
	for range 10 {
		s.GrantPowerUp(systems.PowerUpExtraLife)
	}
	p, _, _ := s.playerState()
	assert.Equal(t, cfg.Player.MaxLives, p.Lives)
}

func TestDeathSequence(t *testing.T) {
	s := newTestSession(t)
	target := systems.SpawnTarget(s.ecs, cfg.SizeSmall, 500, 900, 50)
	require.NotNil(t, target)

	died := 0
	s.OnPlayerDied(func(signals.PlayerDiedEvent) { died++ })

	systems.DamagePlayer(s.ecs, s.player, true)
	p, ph, obj := s.playerState()
	assert.Equal(t, components.PoseDead, p.Pose)
	assert.Zero(t, p.Lives)
	assert.True(t, ph.Frozen)
	assert.Nil(t, obj.Space)
	assert.True(t, components.Physics.Get(target).Frozen)

	// input is ignored while dead
	s.Tick(frame, press(cfg.ActionMoveUp))
	p, _, _ = s.playerState()
	assert.Equal(t, components.PoseDead, p.Pose)

	total := time.Duration(cfg.Player.DeathSteps) * cfg.Player.DeathStepInterval
	s.run(total-5*frame, none)
	assert.Zero(t, died)

	s.run(10*frame, none)
	assert.Equal(t, 1, died)
	p, _, _ = s.playerState()
	assert.Equal(t, cfg.Player.DeathSteps, p.DamageStep)

	s.ResetPlayer(1000, cfg.Arena.GroundY)
	p, ph, obj = s.playerState()
	assert.Equal(t, components.PoseIdle, p.Pose)
	assert.Equal(t, cfg.Player.StartingLives, p.Lives)
	assert.False(t, ph.Frozen)
	assert.NotNil(t, obj.Space)
	assert.False(t, components.Physics.Get(target).Frozen)
	assert.True(t, s.player.Valid())

	s.run(time.Second, none)
	assert.Equal(t, 1, died)
}

func TestTargetOverlapHitsPlayer(t *testing.T) {
	s := newTestSession(t)
	_, _, obj := s.playerState()
	target := systems.SpawnTarget(s.ecs, cfg.SizeMedium, obj.X+obj.W/2, obj.Y+obj.H/2, 0)
	require.NotNil(t, target)

	s.Tick(frame, none)
	p, _, _ := s.playerState()
	assert.Equal(t, cfg.Player.StartingLives-1, p.Lives)
	assert.True(t, s.View().Player.Invulnerable)
}

// defeatJet shoots the jet down and waits out the transition.
func defeatJet(t *testing.T, s *Session) {
	t.Helper()
	jet, ent := s.enemy(t)
	require.True(t, jet.HasComponent(tags.Jet))
	for range cfg.Boss.JetHealth {
		systems.DamageEnemy(s.ecs, jet)
	}
	require.False(t, s.ecs.World.Valid(ent))
	assert.Equal(t, components.PhaseJet, s.bossData(t).Phase, "tank waits for the transition")
	s.run(cfg.Boss.TransitionDelay+frame, none)
}

func TestBossPhaseSequence(t *testing.T) {
	s := newTestSession(t)
	var advanced []signals.BossPhaseAdvancedEvent
	completed := 0
	s.OnBossPhaseAdvanced(func(ev signals.BossPhaseAdvancedEvent) { advanced = append(advanced, ev) })
	s.OnEncounterCompleted(func(signals.EncounterCompletedEvent) { completed++ })

	s.StartBossEncounter()
	s.StartBossEncounter()
	s.Tick(frame, none)
	assert.Equal(t, 1, s.count(tags.Jet))
	assert.Equal(t, components.PhaseJet, s.bossData(t).Phase)

	defeatJet(t, s)
	assert.Equal(t, components.PhaseTank1, s.bossData(t).Phase)
	assert.Zero(t, s.count(tags.Jet))

	for _, phase := range []components.BossPhase{components.PhaseTank1, components.PhaseTank2, components.PhaseTank3} {
		boss := s.bossData(t)
		require.Equal(t, phase, boss.Phase)
		require.Equal(t, 1, s.count(tags.Tank))
		tank, ent := s.enemy(t)
		require.True(t, tank.HasComponent(tags.Tank))

		for range cfg.Boss.TankHealth - 1 {
			systems.DamageEnemy(s.ecs, tank)
		}
		s.Tick(frame, none)
		assert.Equal(t, phase, s.bossData(t).Phase, "phase holds until health reaches zero")

		tank, _ = s.enemy(t)
		systems.DamageEnemy(s.ecs, tank)
		assert.False(t, s.ecs.World.Valid(ent))
		assert.LessOrEqual(t, s.count(tags.Tank), 1)
		s.Tick(frame, none)
	}

	assert.Equal(t, components.PhaseVictory, s.bossData(t).Phase)
	assert.Zero(t, s.count(tags.Tank))
	assert.Zero(t, s.count(tags.Jet))

	want := []signals.BossPhaseAdvancedEvent{
		{From: components.PhaseJet, To: components.PhaseTank1},
		{From: components.PhaseTank1, To: components.PhaseTank2},
		{From: components.PhaseTank2, To: components.PhaseTank3},
		{From: components.PhaseTank3, To: components.PhaseVictory},
	}
	assert.Equal(t, want, advanced)

	s.run(time.Duration(cfg.Boss.VictorySteps)*cfg.Boss.VictoryInterval+cfg.Boss.FadeDuration, none)
	assert.Equal(t, 1, completed)
	view := s.View()
	require.NotNil(t, view.Boss)
	assert.True(t, view.Boss.Completed)
	assert.Equal(t, cfg.Boss.VictorySteps, view.Boss.Backdrop)
	assert.Empty(t, view.Boss.Enemies)

	// further advances are terminal
	systems.AdvanceBossPhase(s.ecs)
	s.Tick(frame, none)
	assert.Equal(t, 1, completed)
	assert.Len(t, advanced, 4)
}

func TestVictoryLocksMovement(t *testing.T) {
	s := newTestSession(t)
	s.StartBossEncounter()
	defeatJet(t, s)
	for range 3 {
		tank, _ := s.enemy(t)
		for range cfg.Boss.TankHealth {
			systems.DamageEnemy(s.ecs, tank)
		}
	}
	require.Equal(t, components.PhaseVictory, s.bossData(t).Phase)

	_, _, obj := s.playerState()
	x := obj.X
	s.run(10*frame, press(cfg.ActionMoveLeft, cfg.ActionMoveUp))
	p, _, obj := s.playerState()
	assert.Equal(t, x, obj.X)
	assert.Equal(t, cfg.DirectionLeft, p.Facing)
	assert.NotEqual(t, components.PoseJumping, p.Pose)
}

func TestProjectileHitsOnlyActiveEnemy(t *testing.T) {
	s := newTestSession(t)
	s.StartBossEncounter()
	_, jet := s.enemy(t)
	defeatJet(t, s)
	require.False(t, s.ecs.World.Valid(jet))

	// the destroyed jet does nothing, even if the tank took over its id
	systems.DamageEnemy(s.ecs, s.ecs.World.Entry(jet))
	tank, _ := s.enemy(t)
	assert.Equal(t, cfg.Boss.TankHealth, components.Health.Get(tank).Current)
	assert.Equal(t, components.PhaseTank1, s.bossData(t).Phase)

	// neither does a body that is not the active enemy
	target := systems.SpawnTarget(s.ecs, cfg.SizeMini, 600, 900, 0)
	systems.DamageEnemy(s.ecs, target)
	tank, _ = s.enemy(t)
	assert.Equal(t, cfg.Boss.TankHealth, components.Health.Get(tank).Current)

	systems.DamageEnemy(s.ecs, tank)
	assert.Equal(t, cfg.Boss.TankHealth-1, components.Health.Get(tank).Current)
}

func TestTankSeeksPlayer(t *testing.T) {
	s := newTestSession(t)
	s.StartBossEncounter()
	defeatJet(t, s)

	tank, _ := s.enemy(t)
	obj := components.Object.Get(tank).Object
	_, _, pobj := s.playerState()
	startGap := math.Abs(obj.X + obj.W/2 - (pobj.X + pobj.W/2))

	s.run(time.Second, none)
	gap := math.Abs(obj.X + obj.W/2 - (pobj.X + pobj.W/2))
	assert.Less(t, gap, startGap)
}

// moveOnto places e so that it stands over the player's feet.
func (s *Session) moveOnto(e *donburi.Entry) {
	_, _, pobj := s.playerState()
	obj := components.Object.Get(e).Object
	obj.X = pobj.X + pobj.W/2 - obj.W/2
	obj.Y = pobj.Y + pobj.H - obj.H
	obj.Update()
}

func TestJetPasses(t *testing.T) {
	s := newTestSession(t)
	s.StartBossEncounter()
	s.Tick(frame, none)

	b := cfg.Boss
	tests := []struct {
		pass      int
		direction float64
		speed     float64
		altitude  float64
	}{
		{1, -1, b.JetSpeed + b.JetSpeedStep, b.JetAltitude},
		{2, 1, b.JetSpeed + 2*b.JetSpeedStep, b.JetAltitude + b.JetDescent},
		{3, -1, b.JetSpeed + 3*b.JetSpeedStep, b.JetAltitude + 2*b.JetDescent},
	}
	require.Equal(t, 2, b.JetDescendAfter)

	for _, tt := range tests {
		jet, _ := s.enemy(t)
		obj := components.Object.Get(jet).Object
		// just short of the far edge
		if components.Jet.Get(jet).Direction > 0 {
			obj.X = cfg.Arena.Width + b.JetMargin - 1
		} else {
			obj.X = -b.JetMargin - obj.W + 1
		}
		obj.Update()
		s.Tick(frame, none)

		jet, _ = s.enemy(t)
		data := components.Jet.Get(jet)
		assert.Equal(t, tt.pass, data.Passes, "pass %d", tt.pass)
		assert.Equal(t, tt.direction, data.Direction, "pass %d", tt.pass)
		assert.InDelta(t, tt.speed, data.Speed, 1e-9, "pass %d", tt.pass)
		assert.InDelta(t, tt.altitude, obj.Y, 1e-9, "pass %d", tt.pass)
		require.True(t, data.Paused, "pass %d", tt.pass)

		// the jet holds at the edge for the pause, then flies back
		x := obj.X
		s.run(b.JetEdgePause-3*frame, none)
		assert.InDelta(t, x, obj.X, 1e-9, "pass %d", tt.pass)
		s.run(6*frame, none)
		jet, _ = s.enemy(t)
		assert.False(t, components.Jet.Get(jet).Paused, "pass %d", tt.pass)
		assert.Equal(t, tt.direction > 0, obj.X > x, "pass %d", tt.pass)
	}
}

func TestTankFlipLock(t *testing.T) {
	s := newTestSession(t)
	// spawns the tank at the left wall heading right
	s.ResetPlayer(1600, cfg.Arena.GroundY)
	s.StartBossEncounter()
	defeatJet(t, s)
	direction := func() float64 {
		tank, _ := s.enemy(t)
		return components.Tank.Get(tank).Direction
	}

	s.run(2*time.Second, none)
	require.Equal(t, 1.0, direction())

	// the player gets behind the tank: it turns at once
	s.ResetPlayer(cfg.Arena.Wall+100, cfg.Arena.GroundY)
	s.Tick(frame, none)
	require.Equal(t, -1.0, direction())

	// and ignores the player switching back until the lock runs out
	s.ResetPlayer(cfg.Arena.Width-cfg.Arena.Wall-100, cfg.Arena.GroundY)
	s.run(cfg.Boss.TankFlipLock-2*frame, none)
	assert.Equal(t, -1.0, direction())
	s.run(4*frame, none)
	assert.Equal(t, 1.0, direction())
}

func TestEnemyContactDamage(t *testing.T) {
	invulnerable := func(s *Session) {
		p, _, _ := s.playerState()
		p.InvulnUntil = components.At(s.Now() + time.Second)
	}
	shielded := func(s *Session) {
		s.GrantPowerUp(systems.PowerUpShield)
	}
	lives := cfg.Player.StartingLives

	tests := []struct {
		name      string
		tank      bool
		prepare   func(s *Session)
		wantLives int
		wantHits  []signals.PlayerHitEvent
	}{
		{"jet", false, nil, 0, []signals.PlayerHitEvent{{Lethal: true}}},
		{"jet ignores invulnerability", false, invulnerable, 0, []signals.PlayerHitEvent{{Lethal: true}}},
		{"jet ignores shield", false, shielded, 0, []signals.PlayerHitEvent{{Lethal: true}}},
		{"tank", true, nil, lives - 1, []signals.PlayerHitEvent{{Lives: lives - 1}}},
		{"tank while invulnerable", true, invulnerable, lives, nil},
		{"tank against shield", true, shielded, lives, []signals.PlayerHitEvent{{Absorbed: true, Lives: lives}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			s.StartBossEncounter()
			if tt.tank {
				defeatJet(t, s)
			}
			var hits []signals.PlayerHitEvent
			s.OnPlayerHit(func(ev signals.PlayerHitEvent) { hits = append(hits, ev) })
			if tt.prepare != nil {
				tt.prepare(s)
			}

			enemy, _ := s.enemy(t)
			s.moveOnto(enemy)
			s.Tick(frame, none)

			p, _, _ := s.playerState()
			assert.Equal(t, tt.wantLives, p.Lives)
			assert.Equal(t, tt.wantLives == 0, p.Pose == components.PoseDead)
			assert.Equal(t, tt.wantHits, hits)
		})
	}
}

func TestHitIndicatorExpires(t *testing.T) {
	s := newTestSession(t)
	s.StartBossEncounter()
	jet, _ := s.enemy(t)
	systems.DamageEnemy(s.ecs, jet)
	require.Equal(t, 1, s.count(tags.Marker))

	// one indicator per pass
	jet, _ = s.enemy(t)
	systems.DamageEnemy(s.ecs, jet)
	assert.Equal(t, 1, s.count(tags.Marker))

	s.run(cfg.Boss.IndicatorLife-5*frame, none)
	assert.Equal(t, 1, s.count(tags.Marker))
	s.run(10*frame, none)
	assert.Zero(t, s.count(tags.Marker))
}

func TestClearedIndicatorLeavesNextLevelAlone(t *testing.T) {
	s := newTestSession(t)
	s.StartBossEncounter()
	jet, _ := s.enemy(t)
	systems.DamageEnemy(s.ecs, jet)
	require.Equal(t, 1, s.count(tags.Marker))

	s.StartLevel(assets.Level{
		Name:        "wave",
		PlayerSpawn: assets.PlayerSpawn{X: 1200, Y: cfg.Arena.GroundY},
		Targets: []assets.TargetSpawn{
			{X: 400, Y: 900, Size: "small"},
			{X: 700, Y: 900, Size: "small"},
			{X: 2000, Y: 900, Size: "small"},
		},
	})
	assert.Zero(t, s.count(tags.Marker))
	assert.Zero(t, s.sched.Len(), "clearing the level cancels every pending action")

	entities := s.ecs.World.Len()
	solids := s.count(tags.Solid)
	s.run(cfg.Boss.IndicatorLife+5*frame, none)

	assert.Equal(t, 3, systems.CountTargets(s.ecs))
	assert.Equal(t, solids, s.count(tags.Solid))
	assert.Equal(t, entities, s.ecs.World.Len())
}

func TestDeathSuspendsField(t *testing.T) {
	s := newTestSession(t)
	_, _, obj := s.playerState()
	target := systems.SpawnTarget(s.ecs, cfg.SizeLarge, obj.X+obj.W/2, 600, 0)
	require.NotNil(t, target)
	components.Physics.Get(target).GravityOn = false
	parent := target.Entity()

	s.Tick(frame, press(cfg.ActionAct))
	s.Tick(frame, none)
	require.Equal(t, 1, s.count(tags.Projectile))

	systems.DamagePlayer(s.ecs, s.player, true)
	s.run(1500*time.Millisecond, none)

	// the projectile in flight is held and never reaches the target
	assert.True(t, s.ecs.World.Valid(parent))
	assert.Equal(t, 1, systems.CountTargets(s.ecs))
	require.Equal(t, 1, s.count(tags.Projectile))
	tags.Projectile.Each(s.ecs.World, func(e *donburi.Entry) {
		assert.True(t, components.Physics.Get(e).Frozen)
	})

	// bodies created during the sequence are held as well
	children := systems.SplitTarget(s.ecs, s.ecs.World.Entry(parent))
	require.Len(t, children, 2)
	spawned := systems.SpawnTarget(s.ecs, cfg.SizeMini, 500, 900, 80)
	require.NotNil(t, spawned)

	held := append(children, spawned)
	var ids []donburi.Entity
	var before []float64
	for _, e := range held {
		assert.True(t, components.Physics.Get(e).Frozen)
		ids = append(ids, e.Entity())
		before = append(before, components.Object.Get(e).X)
	}
	s.run(500*time.Millisecond, none)
	for i, ent := range ids {
		require.True(t, s.ecs.World.Valid(ent))
		assert.InDelta(t, before[i], components.Object.Get(s.ecs.World.Entry(ent)).X, 1e-9)
	}

	s.ResetPlayer(1200, cfg.Arena.GroundY)
	for _, ent := range ids {
		assert.False(t, components.Physics.Get(s.ecs.World.Entry(ent)).Frozen)
	}
	tags.Projectile.Each(s.ecs.World, func(e *donburi.Entry) {
		assert.False(t, components.Physics.Get(e).Frozen)
	})
}

func TestWaveClearedOnce(t *testing.T) {
	s := newTestSession(t)
	cleared := 0
	s.OnWaveCleared(func(ev signals.WaveClearedEvent) {
		assert.Equal(t, "wave", ev.Level)
		cleared++
	})

	s.StartLevel(assets.Level{
		Name:        "wave",
		PlayerSpawn: assets.PlayerSpawn{X: 1200, Y: cfg.Arena.GroundY},
		Targets:     []assets.TargetSpawn{{X: 500, Y: 1000, Size: "mini"}},
	})
	s.Tick(frame, none)
	assert.Zero(t, cleared)

	var target *donburi.Entry
	tags.Target.Each(s.ecs.World, func(e *donburi.Entry) { target = e })
	require.NotNil(t, target)
	assert.Empty(t, systems.SplitTarget(s.ecs, target))

	s.Tick(frame, none)
	s.run(time.Second, none)
	assert.Equal(t, 1, cleared)
}

func TestStartEmbeddedLevel(t *testing.T) {
	s := newTestSession(t)
	level, err := assets.NewLevelLoader().LoadLevel("02_double")
	require.NoError(t, err)

	s.StartLevel(level)
	assert.Equal(t, 2, systems.CountTargets(s.ecs))
	assert.Equal(t, len(level.Solids), s.count(tags.Solid))

	s.run(2*time.Second, none)
	p, _, obj := s.playerState()
	assert.Equal(t, components.PoseIdle, p.Pose)
	assert.InDelta(t, level.PlayerSpawn.Y, obj.Y+obj.H, 1e-6)

	// loading again replaces everything the level created
	s.StartLevel(level)
	assert.Equal(t, 2, systems.CountTargets(s.ecs))
	assert.Equal(t, len(level.Solids), s.count(tags.Solid))
}

func TestViewSnapshot(t *testing.T) {
	s := newTestSession(t)
	systems.SpawnTarget(s.ecs, cfg.SizeLarge, 600, 900, 0)
	s.Tick(frame, none)

	view := s.View()
	assert.True(t, view.Player.Present)
	assert.Equal(t, components.PoseIdle, view.Player.Pose)
	assert.InDelta(t, cfg.Arena.GroundY, view.Player.Y, 1e-6)
	require.Len(t, view.Targets, 1)
	assert.Equal(t, cfg.SizeLarge, view.Targets[0].Size)
	assert.NotEmpty(t, view.Targets[0].Brand)
	assert.Nil(t, view.Boss)
}
