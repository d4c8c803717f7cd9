package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/signals"
	"github.com/charmbracelet/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func backdropOf(w donburi.World) *components.BackdropData {
	if e, ok := components.Backdrop.First(w); ok {
		return components.Backdrop.Get(e)
	}
	return nil
}

// startVictory steps the backdrop through its victory sequence and then
// completes the encounter.
func startVictory(ecs *ecs.ECS) {
	log.Info("boss defeated")
	stepVictory(ecs)
}

func stepVictory(ecs *ecs.ECS) {
	boss := bossOf(ecs.World)
	backdrop := backdropOf(ecs.World)
	sched := schedulerOf(ecs.World)
	if boss == nil || backdrop == nil || sched == nil {
		completeEncounter(ecs)
		return
	}
	if backdrop.Step >= cfg.Boss.VictorySteps {
		completeEncounter(ecs)
		return
	}

	boss.Backdrop.Start(sched, cfg.Boss.VictoryInterval, func() {
		bd := backdropOf(ecs.World)
		if bd == nil {
			return
		}
		bd.Step++
		bd.Alpha = 0
		bd.Fade = gween.NewSequence(
			gween.New(0, 1, float32(cfg.Boss.FadeDuration.Seconds()), ease.OutQuad),
		)
		stepVictory(ecs)
	})
}

// completeEncounter raises EncounterCompleted once.
func completeEncounter(ecs *ecs.ECS) {
	boss := bossOf(ecs.World)
	if boss == nil || boss.Completed {
		return
	}
	boss.Completed = true
	signals.EncounterCompleted.Publish(ecs.World, signals.EncounterCompletedEvent{})
	log.Info("encounter completed")
}

// startTransitionFade dims the backdrop and brings it back while the
// encounter waits between the jet and the first tank.
func startTransitionFade(ecs *ecs.ECS) {
	backdrop := backdropOf(ecs.World)
	if backdrop == nil {
		return
	}
	half := float32(cfg.Boss.TransitionDelay.Seconds() / 2)
	backdrop.Fade = gween.NewSequence(
		gween.New(1, 0.4, half, ease.InOutSine),
		gween.New(0.4, 1, half, ease.InOutSine),
	)
}

// UpdateBackdrop advances a running backdrop fade.
func UpdateBackdrop(ecs *ecs.ECS) {
	backdrop := backdropOf(ecs.World)
	if backdrop == nil || backdrop.Fade == nil {
		return
	}
	value, _, done := backdrop.Fade.Update(float32(clockOf(ecs.World).Delta))
	backdrop.Alpha = float64(value)
	if done {
		backdrop.Fade = nil
	}
}
