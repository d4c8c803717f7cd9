package systems

import (
	"math"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// resolveHorizontal moves object by dx, stopping flush against the first
// solid in the way.
func resolveHorizontal(object *resolv.Object, physics *components.PhysicsData, dx float64) {
	if dx == 0 {
		return
	}
	eps := cfg.Physics.ContactEpsilon

	for _, solid := range nearbySolids(object, dx, 0) {
		if !spans(object.Y, object.Y+object.H, solid.Y, solid.Y+solid.H) {
			continue
		}
		if dx > 0 {
			gap := solid.X - (object.X + object.W)
			if gap >= -eps && gap <= dx {
				dx = math.Max(gap, 0)
				physics.Blocked.Right = true
			}
		} else {
			gap := solid.X + solid.W - object.X
			if gap <= eps && gap >= dx {
				dx = math.Min(gap, 0)
				physics.Blocked.Left = true
			}
		}
	}

	if physics.Blocked.Left || physics.Blocked.Right {
		physics.Impact.X = physics.SpeedX
		physics.SpeedX = 0
	}
	object.X += dx
}

// resolveVertical moves object by dy. A body resting on a solid reports
// Blocked.Down even when it does not move.
func resolveVertical(object *resolv.Object, physics *components.PhysicsData, dy float64) {
	eps := cfg.Physics.ContactEpsilon

	probe := dy
	if dy >= 0 {
		probe++
	}

	for _, solid := range nearbySolids(object, 0, probe) {
		if !spans(object.X, object.X+object.W, solid.X, solid.X+solid.W) {
			continue
		}
		if dy >= 0 {
			gap := solid.Y - (object.Y + object.H)
			if gap >= -eps && gap <= dy+eps {
				dy = math.Max(gap, 0)
				physics.Blocked.Down = true
			}
		} else {
			gap := solid.Y + solid.H - object.Y
			if gap <= eps && gap >= dy {
				dy = math.Min(gap, 0)
				physics.Blocked.Up = true
			}
		}
	}

	if physics.Blocked.Down && physics.SpeedY > 0 || physics.Blocked.Up && physics.SpeedY < 0 {
		physics.Impact.Y = physics.SpeedY
		physics.SpeedY = 0
	}
	object.Y += dy
}

func nearbySolids(object *resolv.Object, dx, dy float64) []*resolv.Object {
	check := object.Check(dx, dy, tags.ResolvSolid)
	if check == nil {
		return nil
	}
	return check.ObjectsByTags(tags.ResolvSolid)
}

// spans reports whether the open intervals (a0, a1) and (b0, b1) overlap.
func spans(a0, a1, b0, b1 float64) bool {
	return a0 < b1 && b0 < a1
}

// overlaps is an exact AABB test between two volumes.
func overlaps(a, b *resolv.Object) bool {
	return spans(a.X, a.X+a.W, b.X, b.X+b.W) && spans(a.Y, a.Y+a.H, b.Y, b.Y+b.H)
}

// circleRect reports whether a circle touches a rectangle volume.
func circleRect(cx, cy, r float64, rect *resolv.Object) bool {
	nx := math.Max(rect.X, math.Min(cx, rect.X+rect.W))
	ny := math.Max(rect.Y, math.Min(cy, rect.Y+rect.H))
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= r*r
}

func center(obj *resolv.Object) (float64, float64) {
	return obj.X + obj.W/2, obj.Y + obj.H/2
}

// GroundGap returns the distance from the bottom of object to the top of the
// solid directly below it, looking no further than limit. It returns +Inf
// when there is none in range.
func GroundGap(object *resolv.Object, limit float64) float64 {
	eps := cfg.Physics.ContactEpsilon
	best := math.Inf(1)
	for _, solid := range nearbySolids(object, 0, limit+1) {
		if !spans(object.X, object.X+object.W, solid.X, solid.X+solid.W) {
			continue
		}
		gap := solid.Y - (object.Y + object.H)
		if gap >= -eps && gap <= limit && gap < best {
			best = math.Max(gap, 0)
		}
	}
	return best
}

// floorBelow returns the top of the highest solid under the horizontal span
// [x0, x1] whose surface is at or below y. It falls back to the arena ground.
func floorBelow(w donburi.World, x0, x1, y float64) float64 {
	floor := math.Inf(1)
	tags.Solid.Each(w, func(e *donburi.Entry) {
		solid := components.Object.Get(e)
		if !spans(x0, x1, solid.X, solid.X+solid.W) {
			return
		}
		if solid.Y >= y && solid.Y < floor {
			floor = solid.Y
		}
	})
	if math.IsInf(floor, 1) {
		return cfg.Arena.GroundY
	}
	return floor
}
