package components

import (
	cfg "github.com/automoto/popstrike/config"
	"github.com/yohamta/donburi"
)

// RawInput is one frame of held buttons from the keyboard and from the
// on-screen buttons.
type RawInput struct {
	Keys  [cfg.ActionCount]bool
	Touch [cfg.ActionCount]bool
}

// Press marks action as held on the keyboard.
func (r *RawInput) Press(actions ...cfg.ActionID) {
	for _, a := range actions {
		r.Keys[a] = true
	}
}

// Merged returns the union of both sources.
func (r RawInput) Merged() [cfg.ActionCount]bool {
	var out [cfg.ActionCount]bool
	for i := range out {
		out[i] = r.Keys[i] || r.Touch[i]
	}
	return out
}

// IntentData is the per-frame motion intent the player state machine reads.
type IntentData struct {
	Raw      RawInput
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool

	MoveLeft  bool
	MoveRight bool
	MoveDown  bool
	MoveUp    bool
	Act       bool

	JumpPressed  bool
	DownPressed  bool
	ActPressed   bool
	ActReleased  bool
	TauntPressed bool
}

var Intent = donburi.NewComponentType[IntentData]()
