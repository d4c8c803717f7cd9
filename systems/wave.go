package systems

import (
	"github.com/automoto/popstrike/signals"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi/ecs"
)

// UpdateWave raises WaveCleared once when the last target of a level is gone.
func UpdateWave(ecs *ecs.ECS) {
	level := levelOf(ecs.World)
	if level == nil || level.Cleared || level.Boss || level.Name == "" {
		return
	}
	if CountTargets(ecs) > 0 {
		return
	}
	level.Cleared = true
	signals.WaveCleared.Publish(ecs.World, signals.WaveClearedEvent{Level: level.Name})
	log.Info("wave cleared", "level", level.Name)
}
