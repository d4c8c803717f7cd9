// Package session wires the simulation systems into one ECS and drives them
// one tick at a time in a fixed order.
package session

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/automoto/popstrike/assets"
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/scheduler"
	"github.com/automoto/popstrike/signals"
	"github.com/automoto/popstrike/systems"
	"github.com/automoto/popstrike/systems/factory"
	"github.com/charmbracelet/log"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

var (
	// ErrNoPhysics is returned when no usable collision space is available.
	ErrNoPhysics = errors.New("physics space unavailable")
	// ErrInvalidConfig is returned when the tuning fails validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Options configures a new Session.
type Options struct {
	Seed uint64

	// Space is the collision space to simulate in. Nil builds one covering
	// the configured arena.
	Space *resolv.Space
}

// Session owns one running simulation and its scheduler.
type Session struct {
	ecs    *ecs.ECS
	sched  *scheduler.Scheduler
	game   *donburi.Entry
	player *donburi.Entry

	levelIndex int
}

// New builds a session with the default arena and a standing player. It
// refuses to start on invalid tuning or without a collision space.
func New(opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	space := opts.Space
	if space == nil {
		cell := cfg.Arena.CellSize
		space = resolv.NewSpace(
			int(math.Ceil(cfg.Arena.Width)),
			int(math.Ceil(cfg.Arena.Height)),
			cell, cell,
		)
	}
	if space == nil || space.Height() == 0 || space.Width() == 0 {
		return nil, ErrNoPhysics
	}

	e := ecs.NewECS(donburi.NewWorld())

	// Order matters: intents before the player's pre-physics pass, the
	// physics step, then the resync pass.
	e.AddSystem(systems.UpdateIntents)
	e.AddSystem(systems.UpdatePlayer)
	e.AddSystem(systems.UpdatePhysics)
	e.AddSystem(systems.ResyncPlayer)
	e.AddSystem(systems.UpdateTargets)
	e.AddSystem(systems.UpdateProjectiles)
	e.AddSystem(systems.UpdateAim)
	e.AddSystem(systems.UpdateCombat)
	e.AddSystem(systems.UpdateBoss)
	e.AddSystem(systems.UpdateBackdrop)
	e.AddSystem(systems.UpdateWave)

	sched := scheduler.New()
	s := &Session{ecs: e, sched: sched, levelIndex: -1}
	s.game = factory.CreateGame(e, sched, space, opts.Seed)

	factory.CreateArenaBounds(e, cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.GroundY, cfg.Arena.Wall)
	s.player = factory.CreatePlayer(e, cfg.Arena.Width/2, cfg.Arena.GroundY)

	log.Debug("session created", "seed", opts.Seed, "cells", space.Width()*space.Height())
	return s, nil
}

// Tick advances the simulation by dt with the given held buttons. Scheduled
// actions that came due run first, then every system once, then the raised
// signals are delivered.
func (s *Session) Tick(dt time.Duration, raw components.RawInput) {
	if dt < 0 {
		dt = 0
	}
	clock := components.Clock.Get(s.game)
	clock.Now += dt
	clock.Delta = dt.Seconds()
	clock.Frame++
	now := clock.Now

	components.Intent.Get(s.game).Raw = raw

	s.sched.Advance(now)
	s.ecs.Update()
	events.ProcessAllEvents(s.ecs.World)
}

// Now returns the session's game time.
func (s *Session) Now() time.Duration {
	return components.Clock.Get(s.game).Now
}

// StartLevel replaces the running level with level.
func (s *Session) StartLevel(level assets.Level) {
	s.levelIndex++
	systems.LoadLevel(s.ecs, level, s.levelIndex)
}

// StartBossEncounter launches the boss encounter in the current arena.
func (s *Session) StartBossEncounter() {
	systems.StartBossEncounter(s.ecs)
}

// GrantPowerUp applies a power-up to the player.
func (s *Session) GrantPowerUp(kind systems.PowerUpKind) {
	systems.GrantPowerUp(s.ecs, kind)
}

// ResetPlayer restores the player with its feet at (x, feetY).
func (s *Session) ResetPlayer(x, feetY float64) {
	systems.ResetPlayer(s.ecs, x, feetY)
}

// View returns a read-only snapshot for rendering.
func (s *Session) View() systems.View {
	return systems.BuildView(s.ecs)
}

// OnWaveCleared calls fn once each time a level's last target is gone.
func (s *Session) OnWaveCleared(fn func(signals.WaveClearedEvent)) {
	signals.WaveCleared.Subscribe(s.ecs.World, func(_ donburi.World, ev signals.WaveClearedEvent) {
		fn(ev)
	})
}

// OnBossPhaseAdvanced calls fn on every boss phase change.
func (s *Session) OnBossPhaseAdvanced(fn func(signals.BossPhaseAdvancedEvent)) {
	signals.BossPhaseAdvanced.Subscribe(s.ecs.World, func(_ donburi.World, ev signals.BossPhaseAdvancedEvent) {
		fn(ev)
	})
}

// OnPlayerDied calls fn when a death sequence finishes.
func (s *Session) OnPlayerDied(fn func(signals.PlayerDiedEvent)) {
	signals.PlayerDied.Subscribe(s.ecs.World, func(_ donburi.World, ev signals.PlayerDiedEvent) {
		fn(ev)
	})
}

// OnEncounterCompleted calls fn when the victory backdrop sequence ends.
func (s *Session) OnEncounterCompleted(fn func(signals.EncounterCompletedEvent)) {
	signals.EncounterCompleted.Subscribe(s.ecs.World, func(_ donburi.World, ev signals.EncounterCompletedEvent) {
		fn(ev)
	})
}

// OnPlayerHit calls fn for every hit the player takes, absorbed ones included.
func (s *Session) OnPlayerHit(fn func(signals.PlayerHitEvent)) {
	signals.PlayerHit.Subscribe(s.ecs.World, func(_ donburi.World, ev signals.PlayerHitEvent) {
		fn(ev)
	})
}
