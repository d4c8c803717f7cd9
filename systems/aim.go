package systems

import (
	"math"
	"time"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/systems/factory"
	"github.com/automoto/popstrike/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// PredictIntercept returns the earliest time in [0, horizon] at which two
// bodies moving at constant velocity come within radius of each other. p and
// q are positions, pv and qv velocities. A root is only accepted when the
// projected distance at that time really is within radius+slack.
func PredictIntercept(p, pv, q, qv dmath.Vec2, radius, horizon, slack float64) (float64, bool) {
	d := sub(q, p)
	w := sub(qv, pv)

	c := dot(d, d) - radius*radius
	if c <= 0 {
		return 0, true
	}
	a := dot(w, w)
	if a == 0 {
		return 0, false
	}
	b := 2 * dot(d, w)
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sq := math.Sqrt(disc)
	t := math.Inf(1)
	for _, root := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
		if root >= 0 && root < t {
			t = root
		}
	}
	if t > horizon {
		return 0, false
	}

	at := add(d, scale(w, t))
	if math.Sqrt(dot(at, at)) > radius+slack {
		return 0, false
	}
	return t, true
}

// UpdateAim flags, for every in-flight projectile, the target it will reach
// first and drops an intercept marker where they meet. It never changes the
// outcome of a collision.
func UpdateAim(ecs *ecs.ECS) {
	now := now(ecs.World)

	var stale []*donburi.Entry
	tags.Marker.Each(ecs.World, func(e *donburi.Entry) {
		if components.Marker.Get(e).Kind == components.MarkerIntercept {
			stale = append(stale, e)
		}
	})
	for _, e := range stale {
		destroy(ecs.World, e)
	}

	type body struct {
		entry  *donburi.Entry
		pos    dmath.Vec2
		vel    dmath.Vec2
		radius float64
	}
	var targets []body
	tags.Target.Each(ecs.World, func(e *donburi.Entry) {
		target := components.Target.Get(e)
		target.Predicted = false
		obj := components.Object.Get(e).Object
		ph := components.Physics.Get(e)
		if ph.Frozen {
			return
		}
		x, y := center(obj)
		targets = append(targets, body{e, dmath.Vec2{X: x, Y: y}, dmath.Vec2{X: ph.SpeedX, Y: ph.SpeedY}, target.Radius})
	})
	if len(targets) == 0 {
		return
	}

	type hit struct {
		target *donburi.Entry
		at     dmath.Vec2
		eta    float64
	}
	var hits []hit
	horizon := cfg.Aim.Horizon.Seconds()
	tags.Projectile.Each(ecs.World, func(e *donburi.Entry) {
		obj := components.Object.Get(e).Object
		ph := components.Physics.Get(e)
		proj := components.Projectile.Get(e)
		x, y := center(obj)
		pos, vel := dmath.Vec2{X: x, Y: y}, dmath.Vec2{X: ph.SpeedX, Y: ph.SpeedY}

		best := hit{eta: math.Inf(1)}
		for _, t := range targets {
			eta, ok := PredictIntercept(pos, vel, t.pos, t.vel, proj.Radius+t.radius, horizon, cfg.Aim.Slack)
			if ok && eta < best.eta {
				best = hit{target: t.entry, at: add(pos, scale(vel, eta)), eta: eta}
			}
		}
		if best.target != nil {
			hits = append(hits, best)
		}
	})

	for _, h := range hits {
		components.Target.Get(h.target).Predicted = true
		eta := time.Duration(h.eta * float64(time.Second))
		factory.CreateMarker(ecs, components.MarkerIntercept, h.at.X, h.at.Y, now+eta)
	}
}

func add(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X + b.X, Y: a.Y + b.Y}
}

func sub(a, b dmath.Vec2) dmath.Vec2 {
	return dmath.Vec2{X: a.X - b.X, Y: a.Y - b.Y}
}

func scale(v dmath.Vec2, s float64) dmath.Vec2 {
	return dmath.Vec2{X: v.X * s, Y: v.Y * s}
}

func dot(a, b dmath.Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}
