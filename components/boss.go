package components

import (
	"github.com/automoto/popstrike/scheduler"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type BossPhase int

const (
	PhaseJet BossPhase = iota
	PhaseTank1
	PhaseTank2
	PhaseTank3
	PhaseVictory
)

func (p BossPhase) String() string {
	switch p {
	case PhaseJet:
		return "jet"
	case PhaseTank1:
		return "tank1"
	case PhaseTank2:
		return "tank2"
	case PhaseTank3:
		return "tank3"
	case PhaseVictory:
		return "victory"
	}
	return "unknown"
}

// IsTank reports whether p is one of the three tank phases.
func (p BossPhase) IsTank() bool {
	return p >= PhaseTank1 && p <= PhaseTank3
}

// Next returns the phase that follows p. Victory has no successor.
func (p BossPhase) Next() (BossPhase, bool) {
	if p >= PhaseVictory {
		return p, false
	}
	return p + 1, true
}

// BossData is the encounter singleton. Active is the one enemy currently
// spawned, or donburi.Null between phases.
type BossData struct {
	Phase  BossPhase
	Active donburi.Entity

	Transition scheduler.Timer
	Backdrop   scheduler.Timer
	Completed  bool
}

var Boss = donburi.NewComponentType[BossData]()

type JetData struct {
	Speed     float64
	Altitude  float64
	Direction float64
	Passes    int

	Paused bool
	Resume scheduler.Timer

	// IndicatorShown is set once a hit indicator has been shown this pass.
	IndicatorShown bool
}

var Jet = donburi.NewComponentType[JetData]()

type TankData struct {
	Index     int
	Direction float64
	FlipLock  Instant
}

var Tank = donburi.NewComponentType[TankData]()

// BackdropData is the backdrop the renderer fades between. Alpha is the
// blend towards Step; Fade drives it when a fade is running.
type BackdropData struct {
	Step  int
	Alpha float64
	Fade  *gween.Sequence
}

var Backdrop = donburi.NewComponentType[BackdropData]()
