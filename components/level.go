package components

import (
	"math/rand/v2"

	"github.com/automoto/popstrike/scheduler"
	"github.com/yohamta/donburi"
)

// LevelData tracks the running level: its brand assignment per size slot,
// the assignment of the level before it and whether the wave was cleared.
type LevelData struct {
	Name     string
	Index    int
	Brands   []string
	Previous []string
	Rand     *rand.Rand

	Cleared bool
	Boss    bool
}

var Level = donburi.NewComponentType[LevelData]()

// SlowMoData is the global slow motion modifier.
type SlowMoData struct {
	Factor float64
	Active bool
	Expiry scheduler.Timer
}

var SlowMo = donburi.NewComponentType[SlowMoData]()
