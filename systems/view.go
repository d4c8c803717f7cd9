package systems

import (
	"time"

	"github.com/automoto/popstrike/components"
	"github.com/automoto/popstrike/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// View is a read-only snapshot of everything a renderer draws in one frame.
type View struct {
	Player      PlayerView
	Targets     []TargetView
	Projectiles []ProjectileView
	Boss        *BossView
	Markers     []MarkerView
}

type PlayerView struct {
	Present bool
	Pose    components.Pose

	// Feet position
	X, Y float64

	Visual       components.VisualData
	Facing       float64
	Lives        int
	DamageStep   int
	Invulnerable bool
	Shielded     bool
	Box          Rect
}

type Rect struct {
	X, Y, W, H float64
}

type TargetView struct {
	X, Y      float64 // center
	Radius    float64
	Size      int
	Brand     string
	Rotation  float64
	Predicted bool
}

type ProjectileView struct {
	X, Y   float64
	Radius float64
	Heavy  bool
}

type EnemyView struct {
	Box    Rect
	Health int
	Max    int
	Jet    bool
}

type BossView struct {
	Phase     components.BossPhase
	Enemies   []EnemyView
	Backdrop  int
	Alpha     float64
	Completed bool
}

type MarkerView struct {
	Kind      components.MarkerKind
	X, Y      float64
	Remaining time.Duration
}

// BuildView snapshots the world. It never mutates anything.
func BuildView(ecs *ecs.ECS) View {
	w := ecs.World
	now := now(w)
	var v View

	if e, ok := tags.Player.First(w); ok {
		p := components.Player.Get(e)
		obj := components.Object.Get(e)
		pu := components.PowerUp.Get(e)
		v.Player = PlayerView{
			Present:      true,
			Pose:         p.Pose,
			X:            obj.X + obj.W/2,
			Y:            obj.Y + obj.H,
			Visual:       *components.Visual.Get(e),
			Facing:       p.Facing,
			Lives:        p.Lives,
			DamageStep:   p.DamageStep,
			Invulnerable: p.InvulnUntil.Ahead(now),
			Shielded:     pu.Shield.Ahead(now),
			Box:          Rect{obj.X, obj.Y, obj.W, obj.H},
		}
	}

	tags.Target.Each(w, func(e *donburi.Entry) {
		t := components.Target.Get(e)
		x, y := center(components.Object.Get(e).Object)
		v.Targets = append(v.Targets, TargetView{
			X: x, Y: y,
			Radius:    t.Radius,
			Size:      t.Size,
			Brand:     t.Brand,
			Rotation:  t.Rotation,
			Predicted: t.Predicted,
		})
	})

	tags.Projectile.Each(w, func(e *donburi.Entry) {
		p := components.Projectile.Get(e)
		x, y := center(components.Object.Get(e).Object)
		v.Projectiles = append(v.Projectiles, ProjectileView{X: x, Y: y, Radius: p.Radius, Heavy: p.Heavy})
	})

	if boss := bossOf(w); boss != nil {
		bv := &BossView{Phase: boss.Phase, Completed: boss.Completed}
		if bd := backdropOf(w); bd != nil {
			bv.Backdrop, bv.Alpha = bd.Step, bd.Alpha
		}
		if a, ok := activeEnemy(w); ok {
			obj := components.Object.Get(a)
			h := components.Health.Get(a)
			bv.Enemies = append(bv.Enemies, EnemyView{
				Box:    Rect{obj.X, obj.Y, obj.W, obj.H},
				Health: h.Current,
				Max:    h.Max,
				Jet:    a.HasComponent(tags.Jet),
			})
		}
		v.Boss = bv
	}

	tags.Marker.Each(w, func(e *donburi.Entry) {
		m := components.Marker.Get(e)
		remaining := m.Expires - now
		if remaining < 0 {
			remaining = 0
		}
		v.Markers = append(v.Markers, MarkerView{Kind: m.Kind, X: m.X, Y: m.Y, Remaining: remaining})
	})

	return v
}
