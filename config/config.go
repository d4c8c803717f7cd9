package config

import (
	"image/color"
	"time"
)

// ArenaConfig describes the playfield. The floor surface sits at GroundY and
// everything in world space is y-down.
type ArenaConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	GroundY  float64 `yaml:"groundY"`
	Wall     float64 `yaml:"wall"`     // thickness of the side walls and ceiling
	CellSize int     `yaml:"cellSize"` // resolv broad-phase cell size
}

// PhysicsConfig contains the physics step tuning.
type PhysicsConfig struct {
	ContactEpsilon float64 `yaml:"contactEpsilon"` // distance still counted as touching
	MaxStep        float64 `yaml:"maxStep"`        // longest dt integrated in one tick, seconds
}

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Dimensions
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	CrouchHeight float64 `yaml:"crouchHeight"`

	// Movement
	RunSpeed      float64 `yaml:"runSpeed"`
	JumpSpeed     float64 `yaml:"jumpSpeed"`
	JumpBoost     float64 `yaml:"jumpBoost"`
	GroundGravity float64 `yaml:"groundGravity"`
	AirGravity    float64 `yaml:"airGravity"`

	// Grounding. Within GroundTolerance of the floor and slower than
	// GroundSpeedTolerance the player counts as standing.
	GroundTolerance      float64 `yaml:"groundTolerance"`
	GroundSpeedTolerance float64 `yaml:"groundSpeedTolerance"`
	LandingFrames        int     `yaml:"landingFrames"`

	// Timing windows
	JumpBuffer        time.Duration `yaml:"jumpBuffer"`
	CrouchBoostWindow time.Duration `yaml:"crouchBoostWindow"`
	SettleDelay       time.Duration `yaml:"settleDelay"`
	ThrowDuration     time.Duration `yaml:"throwDuration"`
	ThrowCooldown     time.Duration `yaml:"throwCooldown"`
	AutoFireInterval  time.Duration `yaml:"autoFireInterval"`

	// Lives
	StartingLives  int           `yaml:"startingLives"`
	MaxLives       int           `yaml:"maxLives"`
	InvulnDuration time.Duration `yaml:"invulnDuration"`

	// Death sequence
	DeathSteps        int           `yaml:"deathSteps"`
	DeathStepInterval time.Duration `yaml:"deathStepInterval"`

	// Visual transform
	CrouchScaleY float64 `yaml:"crouchScaleY"`
	CrouchOffset float64 `yaml:"crouchOffset"`
	ThrowOffset  float64 `yaml:"throwOffset"`
	TauntOffset  float64 `yaml:"tauntOffset"`
	HandOffset   float64 `yaml:"handOffset"` // projectile spawn height above the feet
}

// TargetSizeConfig is one size class. Next is the index of the class a split
// produces, or -1 when the class does not split.
type TargetSizeConfig struct {
	Name        string  `yaml:"name"`
	BounceSpeed float64 `yaml:"bounceSpeed"`
	DriftMin    float64 `yaml:"driftMin"`
	DriftMax    float64 `yaml:"driftMax"`
	Radius      float64 `yaml:"radius"`
	Scale       float64 `yaml:"scale"`
	Next        int     `yaml:"next"`
}

// TargetConfig contains target bounce and split tuning.
type TargetConfig struct {
	Gravity            float64            `yaml:"gravity"`
	MinClearance       float64            `yaml:"minClearance"`
	SplitOffset        float64            `yaml:"splitOffset"`
	WallRestitution    float64            `yaml:"wallRestitution"`
	CeilingRestitution float64            `yaml:"ceilingRestitution"`
	SpinFriction       float64            `yaml:"spinFriction"`
	MaxSpin            float64            `yaml:"maxSpin"`
	Grace              time.Duration      `yaml:"grace"`
	GraceDistance      float64            `yaml:"graceDistance"`
	Sizes              []TargetSizeConfig `yaml:"sizes"`
	Brands             []string           `yaml:"brands"`
}

// ProjectileConfig contains thrown projectile tuning.
type ProjectileConfig struct {
	Speed       float64 `yaml:"speed"`
	Radius      float64 `yaml:"radius"`
	HeavyRadius float64 `yaml:"heavyRadius"`
}

// AimConfig tunes the intercept prediction.
type AimConfig struct {
	Horizon time.Duration `yaml:"horizon"`
	Slack   float64       `yaml:"slack"` // extra distance accepted when validating a root
}

// PowerUpConfig contains power-up durations.
type PowerUpConfig struct {
	AutoFireDuration time.Duration `yaml:"autoFireDuration"`
	HeavyDuration    time.Duration `yaml:"heavyDuration"`
	ShieldDuration   time.Duration `yaml:"shieldDuration"`
	SlowMoDuration   time.Duration `yaml:"slowMoDuration"`
	SlowMoFactor     float64       `yaml:"slowMoFactor"`
}

// BossConfig contains the jet, tank and victory tuning.
type BossConfig struct {
	// Jet
	JetHealth       int           `yaml:"jetHealth"`
	JetWidth        float64       `yaml:"jetWidth"`
	JetHeight       float64       `yaml:"jetHeight"`
	JetSpeed        float64       `yaml:"jetSpeed"`
	JetSpeedStep    float64       `yaml:"jetSpeedStep"`
	JetMaxSpeed     float64       `yaml:"jetMaxSpeed"`
	JetAltitude     float64       `yaml:"jetAltitude"` // top edge of the first pass
	JetDescent      float64       `yaml:"jetDescent"`
	JetLowest       float64       `yaml:"jetLowest"`
	JetDescendAfter int           `yaml:"jetDescendAfter"`
	JetEdgePause    time.Duration `yaml:"jetEdgePause"`
	JetMargin       float64       `yaml:"jetMargin"` // how far past the arena edge a pass ends

	// Tanks
	TankHealth   int           `yaml:"tankHealth"`
	TankWidth    float64       `yaml:"tankWidth"`
	TankHeight   float64       `yaml:"tankHeight"`
	TankSpeed    float64       `yaml:"tankSpeed"`
	TankFlipLock time.Duration `yaml:"tankFlipLock"`
	TankDeadband float64       `yaml:"tankDeadband"`

	// Flow
	TransitionDelay time.Duration `yaml:"transitionDelay"`
	IndicatorLife   time.Duration `yaml:"indicatorLife"`
	VictorySteps    int           `yaml:"victorySteps"`
	VictoryInterval time.Duration `yaml:"victoryInterval"`
	FadeDuration    time.Duration `yaml:"fadeDuration"`
}

// DebugConfig contains debug drawing colors for the demo runner.
type DebugConfig struct {
	PlayerColor     color.RGBA
	TargetColor     color.RGBA
	PredictedColor  color.RGBA
	ProjectileColor color.RGBA
	EnemyColor      color.RGBA
	SolidColor      color.RGBA
	MarkerColor     color.RGBA
	Backdrop        []color.RGBA
}

// Global configuration instances
var Arena ArenaConfig
var Physics PhysicsConfig
var Player PlayerConfig
var Target TargetConfig
var Projectile ProjectileConfig
var Aim AimConfig
var PowerUp PowerUpConfig
var Boss BossConfig
var Debug DebugConfig

// Size class indices in the default table.
const (
	SizeLarge = iota
	SizeMedium
	SizeSmall
	SizeMini
)

// Direction constants for player facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

func init() {
	Reset()
}

// Reset restores every global to its tuned default.
func Reset() {
	Arena = ArenaConfig{
		Width:    2400,
		Height:   1600,
		GroundY:  1480,
		Wall:     64,
		CellSize: 32,
	}

	Physics = PhysicsConfig{
		ContactEpsilon: 0.001,
		MaxStep:        0.05,
	}

	Player = PlayerConfig{
		// Dimensions
		Width:        60,
		Height:       140,
		CrouchHeight: 84,

		// Movement
		RunSpeed:      420,
		JumpSpeed:     820,
		JumpBoost:     1.6,
		GroundGravity: 2600,
		AirGravity:    1700,

		// Grounding
		GroundTolerance:      6,
		GroundSpeedTolerance: 60,
		LandingFrames:        3,

		// Timing windows
		JumpBuffer:        300 * time.Millisecond,
		CrouchBoostWindow: time.Second,
		SettleDelay:       120 * time.Millisecond,
		ThrowDuration:     250 * time.Millisecond,
		ThrowCooldown:     350 * time.Millisecond,
		AutoFireInterval:  180 * time.Millisecond,

		// Lives
		StartingLives:  3,
		MaxLives:       5,
		InvulnDuration: 2 * time.Second,

		// Death sequence
		DeathSteps:        4,
		DeathStepInterval: 600 * time.Millisecond,

		// Visual transform
		CrouchScaleY: 0.6,
		CrouchOffset: 8,
		ThrowOffset:  -4,
		TauntOffset:  2,
		HandOffset:   120,
	}

	Target = TargetConfig{
		Gravity:            240,
		MinClearance:       160,
		SplitOffset:        24,
		WallRestitution:    0.9,
		CeilingRestitution: 0.3,
		SpinFriction:       0.8,
		MaxSpin:            6,
		Grace:              100 * time.Millisecond,
		GraceDistance:      2,
		Sizes: []TargetSizeConfig{
			{Name: "large", BounceSpeed: 746, DriftMin: 60, DriftMax: 110, Radius: 96, Scale: 1.0, Next: SizeMedium},
			{Name: "medium", BounceSpeed: 640, DriftMin: 80, DriftMax: 140, Radius: 64, Scale: 0.67, Next: SizeSmall},
			{Name: "small", BounceSpeed: 540, DriftMin: 100, DriftMax: 170, Radius: 40, Scale: 0.42, Next: SizeMini},
			{Name: "mini", BounceSpeed: 440, DriftMin: 120, DriftMax: 200, Radius: 24, Scale: 0.25, Next: -1},
		},
		Brands: []string{"fizz", "zest", "crunch", "bloop", "snap", "glow", "whirl", "pop"},
	}

	Projectile = ProjectileConfig{
		Speed:       1100,
		Radius:      10,
		HeavyRadius: 18,
	}

	Aim = AimConfig{
		Horizon: 1500 * time.Millisecond,
		Slack:   0.5,
	}

	PowerUp = PowerUpConfig{
		AutoFireDuration: 8 * time.Second,
		HeavyDuration:    8 * time.Second,
		ShieldDuration:   15 * time.Second,
		SlowMoDuration:   5 * time.Second,
		SlowMoFactor:     0.5,
	}

	Boss = BossConfig{
		// Jet
		JetHealth:       5,
		JetWidth:        240,
		JetHeight:       80,
		JetSpeed:        520,
		JetSpeedStep:    90,
		JetMaxSpeed:     1100,
		JetAltitude:     260,
		JetDescent:      120,
		JetLowest:       1160,
		JetDescendAfter: 2,
		JetEdgePause:    1200 * time.Millisecond,
		JetMargin:       320,

		// Tanks
		TankHealth:   2,
		TankWidth:    220,
		TankHeight:   110,
		TankSpeed:    240,
		TankFlipLock: 400 * time.Millisecond,
		TankDeadband: 8,

		// Flow
		TransitionDelay: 1500 * time.Millisecond,
		IndicatorLife:   700 * time.Millisecond,
		VictorySteps:    3,
		VictoryInterval: time.Second,
		FadeDuration:    400 * time.Millisecond,
	}

	Debug = DebugConfig{
		PlayerColor:     color.RGBA{R: 100, G: 180, B: 255, A: 255},
		TargetColor:     color.RGBA{R: 255, G: 140, B: 0, A: 255},
		PredictedColor:  color.RGBA{R: 255, G: 255, B: 100, A: 255},
		ProjectileColor: color.RGBA{R: 255, G: 255, B: 255, A: 255},
		EnemyColor:      color.RGBA{R: 255, G: 60, B: 60, A: 255},
		SolidColor:      color.RGBA{R: 60, G: 100, B: 160, A: 255},
		MarkerColor:     color.RGBA{R: 0, G: 255, B: 60, A: 255},
		Backdrop: []color.RGBA{
			{R: 20, G: 20, B: 40, A: 255},
			{R: 40, G: 30, B: 70, A: 255},
			{R: 90, G: 50, B: 90, A: 255},
			{R: 200, G: 120, B: 80, A: 255},
		},
	}
}

// SizeCount returns the number of configured size classes.
func SizeCount() int {
	return len(Target.Sizes)
}

// Size returns the tuning of size class i and whether it exists.
func Size(i int) (TargetSizeConfig, bool) {
	if i < 0 || i >= len(Target.Sizes) {
		return TargetSizeConfig{}, false
	}
	return Target.Sizes[i], true
}

// Apex returns the height a target of size class i reaches above the floor
// after a bounce, given the current gravity scale.
func Apex(i int) float64 {
	s, ok := Size(i)
	if !ok || Target.Gravity <= 0 {
		return 0
	}
	return s.BounceSpeed * s.BounceSpeed / (2 * Target.Gravity)
}

// SizeIndex returns the size class with the given name.
func SizeIndex(name string) (int, bool) {
	for i, s := range Target.Sizes {
		if s.Name == name {
			return i, true
		}
	}
	return -1, false
}
