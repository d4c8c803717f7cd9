package config

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// overrides mirrors the globals so a YAML document can patch any subset of
// them. Sections absent from the document keep their current values.
type overrides struct {
	Arena      *ArenaConfig      `yaml:"arena"`
	Physics    *PhysicsConfig    `yaml:"physics"`
	Player     *PlayerConfig     `yaml:"player"`
	Target     *TargetConfig     `yaml:"target"`
	Projectile *ProjectileConfig `yaml:"projectile"`
	Aim        *AimConfig        `yaml:"aim"`
	PowerUp    *PowerUpConfig    `yaml:"powerUp"`
	Boss       *BossConfig       `yaml:"boss"`
}

// LoadOverrides reads name from fsys and overlays it onto the current
// configuration. The result is validated; on any error the previous values
// are restored.
func LoadOverrides(fsys fs.FS, name string) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return ApplyOverrides(data)
}

// ApplyOverrides overlays a YAML document onto the current configuration.
func ApplyOverrides(data []byte) error {
	saved := snapshot()

	doc := overrides{
		Arena:      &Arena,
		Physics:    &Physics,
		Player:     &Player,
		Target:     &Target,
		Projectile: &Projectile,
		Aim:        &Aim,
		PowerUp:    &PowerUp,
		Boss:       &Boss,
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		saved.restore()
		return fmt.Errorf("failed to parse overrides: %w", err)
	}
	if err := Validate(); err != nil {
		saved.restore()
		return err
	}
	return nil
}

type saved struct {
	arena      ArenaConfig
	physics    PhysicsConfig
	player     PlayerConfig
	target     TargetConfig
	projectile ProjectileConfig
	aim        AimConfig
	powerUp    PowerUpConfig
	boss       BossConfig
}

func snapshot() saved {
	t := Target
	t.Sizes = append([]TargetSizeConfig(nil), Target.Sizes...)
	t.Brands = append([]string(nil), Target.Brands...)
	return saved{
		arena:      Arena,
		physics:    Physics,
		player:     Player,
		target:     t,
		projectile: Projectile,
		aim:        Aim,
		powerUp:    PowerUp,
		boss:       Boss,
	}
}

func (s saved) restore() {
	Arena = s.arena
	Physics = s.physics
	Player = s.player
	Target = s.target
	Projectile = s.projectile
	Aim = s.aim
	PowerUp = s.powerUp
	Boss = s.boss
}

// Validate reports tuning that the simulation cannot run with.
func Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(Arena.Width > 0 && Arena.Height > 0, "arena size must be positive, got %vx%v", Arena.Width, Arena.Height)
	check(Arena.GroundY > 0 && Arena.GroundY < Arena.Height, "arena ground %v outside (0, %v)", Arena.GroundY, Arena.Height)
	check(Arena.CellSize > 0, "arena cell size must be positive")
	check(Physics.MaxStep > 0, "physics max step must be positive")

	check(Player.Width > 0 && Player.Height > 0, "player size must be positive")
	check(Player.CrouchHeight > 0 && Player.CrouchHeight <= Player.Height, "crouch height %v must be in (0, %v]", Player.CrouchHeight, Player.Height)
	check(Player.GroundGravity > 0 && Player.AirGravity > 0, "player gravity must be positive")
	check(Player.JumpSpeed > 0, "jump speed must be positive")
	check(Player.StartingLives > 0 && Player.StartingLives <= Player.MaxLives, "starting lives %d must be in [1, %d]", Player.StartingLives, Player.MaxLives)
	check(Player.DeathSteps >= 0, "death steps must not be negative")

	check(Target.Gravity > 0, "target gravity must be positive, got %v", Target.Gravity)
	check(Target.MinClearance >= 0, "minimum clearance must not be negative")
	check(len(Target.Sizes) > 0, "at least one target size is required")
	for i, s := range Target.Sizes {
		check(s.BounceSpeed > 0, "size %q: bounce speed must be positive", s.Name)
		check(s.Radius > 0, "size %q: radius must be positive", s.Name)
		check(s.DriftMin <= s.DriftMax, "size %q: drift range is inverted", s.Name)
		if i > 0 {
			prev := Target.Sizes[i-1]
			check(prev.Radius > s.Radius && prev.BounceSpeed > s.BounceSpeed,
				"size %q must be strictly smaller than %q", s.Name, prev.Name)
		}
		check(s.Next == -1 || s.Next == i+1, "size %q: next size must be the following class or -1", s.Name)
	}
	check(len(Target.Sizes) == 0 || Target.Sizes[len(Target.Sizes)-1].Next == -1, "the smallest size must not split")
	check(len(Target.Brands) >= len(Target.Sizes), "need at least %d brands, got %d", len(Target.Sizes), len(Target.Brands))

	check(PowerUp.SlowMoFactor > 0 && PowerUp.SlowMoFactor <= 1, "slow motion factor %v must be in (0, 1]", PowerUp.SlowMoFactor)
	check(Boss.JetHealth > 0 && Boss.TankHealth > 0, "boss health must be positive")
	check(Boss.JetSpeed > 0 && Boss.TankSpeed > 0, "boss speed must be positive")

	return errors.Join(errs...)
}
