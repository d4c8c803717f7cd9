package systems

import (
	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdateIntents reduces the raw input of this tick into motion intents.
// Must run BEFORE UpdatePlayer in the system order.
func UpdateIntents(ecs *ecs.ECS) {
	entry, ok := components.Intent.First(ecs.World)
	if !ok {
		return
	}
	intent := components.Intent.Get(entry)
	CollectIntent(intent)
}

// CollectIntent swaps the frame buffers and derives held and edge intents.
func CollectIntent(intent *components.IntentData) {
	intent.Previous = intent.Current
	intent.Current = intent.Raw.Merged()

	held := func(a cfg.ActionID) bool { return intent.Current[a] }
	pressed := func(a cfg.ActionID) bool { return intent.Current[a] && !intent.Previous[a] }
	released := func(a cfg.ActionID) bool { return !intent.Current[a] && intent.Previous[a] }

	intent.MoveLeft = held(cfg.ActionMoveLeft)
	intent.MoveRight = held(cfg.ActionMoveRight)
	intent.MoveDown = held(cfg.ActionMoveDown)
	intent.MoveUp = held(cfg.ActionMoveUp)
	intent.Act = held(cfg.ActionAct)

	intent.JumpPressed = pressed(cfg.ActionMoveUp)
	intent.DownPressed = pressed(cfg.ActionMoveDown)
	intent.ActPressed = pressed(cfg.ActionAct)
	intent.ActReleased = released(cfg.ActionAct)
	intent.TauntPressed = pressed(cfg.ActionTaunt)
}

// horizontalIntent returns -1, 0 or 1. Opposing directions cancel.
func horizontalIntent(intent *components.IntentData) float64 {
	switch {
	case intent.MoveLeft && !intent.MoveRight:
		return cfg.DirectionLeft
	case intent.MoveRight && !intent.MoveLeft:
		return cfg.DirectionRight
	}
	return 0
}
