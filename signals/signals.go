// Package signals holds the events the simulation raises for the level and
// flow orchestrator. The core never decides what happens next; it only
// publishes these.
package signals

import (
	"github.com/automoto/popstrike/components"
	"github.com/yohamta/donburi/features/events"
)

// WaveClearedEvent is raised once when the last target of a level is gone.
type WaveClearedEvent struct {
	Level string
}

// BossPhaseAdvancedEvent is raised when the encounter moves to its next phase.
type BossPhaseAdvancedEvent struct {
	From components.BossPhase
	To   components.BossPhase
}

// PlayerDiedEvent is raised when the death sequence has finished.
type PlayerDiedEvent struct {
	X, Y float64
}

// EncounterCompletedEvent is raised after the victory sequence.
type EncounterCompletedEvent struct{}

// PlayerHitEvent is raised for every hit the player takes, absorbed or not.
type PlayerHitEvent struct {
	Lethal   bool
	Absorbed bool
	Lives    int
}

var (
	WaveCleared        = events.NewEventType[WaveClearedEvent]()
	BossPhaseAdvanced  = events.NewEventType[BossPhaseAdvancedEvent]()
	PlayerDied         = events.NewEventType[PlayerDiedEvent]()
	EncounterCompleted = events.NewEventType[EncounterCompletedEvent]()
	PlayerHit          = events.NewEventType[PlayerHitEvent]()
)
