package scenes

import (
	"image"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputBinding represents the keys and buttons bound to one action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps every action to its keyboard and gamepad inputs.
var Bindings = map[cfg.ActionID]InputBinding{
	cfg.ActionMoveLeft: {
		Keys:                   []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftLeft},
	},
	cfg.ActionMoveRight: {
		Keys:                   []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftRight},
	},
	cfg.ActionMoveDown: {
		Keys:                   []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonLeftBottom},
	},
	cfg.ActionMoveUp: {
		Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW, ebiten.KeyX},
		// A / Cross button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftTop,
			ebiten.StandardGamepadButtonRightBottom,
		},
	},
	cfg.ActionAct: {
		Keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyZ},
		// X / Square button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightLeft},
	},
	cfg.ActionTaunt: {
		Keys:                   []ebiten.Key{ebiten.KeyT},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{ebiten.StandardGamepadButtonRightTop},
	},
}

// AnalogDeadzone is the stick travel below which the left stick is ignored.
const AnalogDeadzone = 0.25

// TouchButton is an on-screen button in layout coordinates.
type TouchButton struct {
	Action cfg.ActionID
	Bounds image.Rectangle
}

// DefaultTouchButtons lays out the on-screen controls along the bottom edge
// of a screen of the given size.
func DefaultTouchButtons(width, height int) []TouchButton {
	size := height / 8
	y := height - size - size/4
	return []TouchButton{
		{cfg.ActionMoveLeft, image.Rect(size/4, y, size/4+size, y+size)},
		{cfg.ActionMoveRight, image.Rect(size*3/2, y, size*5/2, y+size)},
		{cfg.ActionMoveDown, image.Rect(size*11/4, y, size*15/4, y+size)},
		{cfg.ActionTaunt, image.Rect(width-size*15/4, y, width-size*11/4, y+size)},
		{cfg.ActionAct, image.Rect(width-size*5/2, y, width-size*3/2, y+size)},
		{cfg.ActionMoveUp, image.Rect(width-size*5/4, y, width-size/4, y+size)},
	}
}

// Reusable slices to avoid allocations every frame
var (
	gamepadIDs []ebiten.GamepadID
	touchIDs   []ebiten.TouchID
)

// ReadInput polls the keyboard, gamepads and touches into one frame of raw
// input. Keyboard and gamepad go to Keys, touches on buttons to Touch.
func ReadInput(buttons []TouchButton) components.RawInput {
	var raw components.RawInput

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	for action, binding := range Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				raw.Keys[action] = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					raw.Keys[action] = true
				}
			}
		}
	}

	for _, gpID := range gamepadIDs {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		x := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickVertical)
		if x < -AnalogDeadzone {
			raw.Keys[cfg.ActionMoveLeft] = true
		}
		if x > AnalogDeadzone {
			raw.Keys[cfg.ActionMoveRight] = true
		}
		if y > AnalogDeadzone {
			raw.Keys[cfg.ActionMoveDown] = true
		}
	}

	touchIDs = ebiten.AppendTouchIDs(touchIDs[:0])
	for _, id := range touchIDs {
		p := image.Pt(ebiten.TouchPosition(id))
		for _, b := range buttons {
			if p.In(b.Bounds) {
				raw.Touch[b.Action] = true
			}
		}
	}

	return raw
}
