package scenes

import (
	"fmt"
	"image/color"
	"time"

	"github.com/automoto/popstrike/assets"
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

func drawArena(screen *ebiten.Image, view systems.View, level *assets.Level) {
	drawBackdrop(screen, view.Boss)

	solid := cfg.Debug.SolidColor
	if level != nil && len(level.Solids) > 0 {
		for _, s := range level.Solids {
			vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.Width), float32(s.Height), solid, false)
		}
	} else {
		a := cfg.Arena
		vector.FillRect(screen, 0, float32(a.GroundY), float32(a.Width), float32(a.Height-a.GroundY), solid, false)
		vector.FillRect(screen, 0, 0, float32(a.Width), float32(a.Wall), solid, false)
		vector.FillRect(screen, 0, 0, float32(a.Wall), float32(a.GroundY), solid, false)
		vector.FillRect(screen, float32(a.Width-a.Wall), 0, float32(a.Wall), float32(a.GroundY), solid, false)
	}

	for _, t := range view.Targets {
		c := cfg.Debug.TargetColor
		if t.Predicted {
			c = cfg.Debug.PredictedColor
		}
		vector.FillCircle(screen, float32(t.X), float32(t.Y), float32(t.Radius), c, true)
	}

	for _, p := range view.Projectiles {
		vector.FillCircle(screen, float32(p.X), float32(p.Y), float32(p.Radius), cfg.Debug.ProjectileColor, true)
	}

	if view.Boss != nil {
		for _, e := range view.Boss.Enemies {
			vector.FillRect(screen, float32(e.Box.X), float32(e.Box.Y), float32(e.Box.W), float32(e.Box.H), cfg.Debug.EnemyColor, false)
		}
	}

	for _, m := range view.Markers {
		vector.StrokeCircle(screen, float32(m.X), float32(m.Y), 30, 4, cfg.Debug.MarkerColor, true)
	}

	drawPlayer(screen, view.Player)
}

// drawBackdrop fills the background with the victory backdrop step, faded
// in by the backdrop alpha.
func drawBackdrop(screen *ebiten.Image, boss *systems.BossView) {
	steps := cfg.Debug.Backdrop
	if len(steps) == 0 {
		return
	}
	c := steps[0]
	alpha := 1.0
	if boss != nil {
		i := min(boss.Backdrop, len(steps)-1)
		c = steps[i]
		alpha = boss.Alpha
	}
	screen.Fill(color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: 255,
	})
}

func drawPlayer(screen *ebiten.Image, p systems.PlayerView) {
	if !p.Present {
		return
	}
	c := cfg.Debug.PlayerColor
	if p.Invulnerable {
		c.A = 128
	}
	if p.Pose == components.PoseDead {
		// fade out one step at a time
		c.A = uint8(255 * max(cfg.Player.DeathSteps-p.DamageStep, 0) / max(cfg.Player.DeathSteps, 1))
	}

	w := cfg.Player.Width * p.Visual.ScaleX
	h := cfg.Player.Height * p.Visual.ScaleY
	vector.FillRect(screen, float32(p.Visual.X-w/2), float32(p.Visual.Y-h/2), float32(w), float32(h), c, false)

	// facing marker
	fx := p.Visual.X + p.Facing*w/2
	vector.FillRect(screen, float32(fx-4), float32(p.Visual.Y-h/2+10), 8, 8, color.White, false)

	if p.Shielded {
		vector.StrokeCircle(screen, float32(p.Visual.X), float32(p.Visual.Y), float32(h*0.7), 3, cfg.Debug.MarkerColor, true)
	}
}

func drawTouchButtons(screen *ebiten.Image, buttons []TouchButton) {
	c := color.RGBA{R: 255, G: 255, B: 255, A: 40}
	for _, b := range buttons {
		r := b.Bounds
		vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 3, c, false)
		ebitenutil.DebugPrintAt(screen, b.Action.String(), r.Min.X+8, r.Min.Y+8)
	}
}

func drawDebug(screen *ebiten.Image, view systems.View, now time.Duration) {
	p := view.Player
	lines := fmt.Sprintf("t=%v\npose=%v lives=%d facing=%v\nfeet=(%.0f, %.0f)\ntargets=%d projectiles=%d markers=%d",
		now.Truncate(time.Millisecond), p.Pose, p.Lives, p.Facing, p.X, p.Y,
		len(view.Targets), len(view.Projectiles), len(view.Markers))
	if view.Boss != nil {
		lines += fmt.Sprintf("\nboss=%v backdrop=%d alpha=%.2f", view.Boss.Phase, view.Boss.Backdrop, view.Boss.Alpha)
		for _, e := range view.Boss.Enemies {
			lines += fmt.Sprintf("\n  enemy health=%d/%d", e.Health, e.Max)
		}
	}
	ebitenutil.DebugPrintAt(screen, lines, int(cfg.Arena.Wall)+16, int(cfg.Arena.Wall)+16)

	// collision volume outline
	b := p.Box
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, cfg.Debug.EnemyColor, false)

	for _, m := range view.Markers {
		if m.Kind == components.MarkerIntercept {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.2fs", m.Remaining.Seconds()), int(m.X)+34, int(m.Y))
		}
	}
}
