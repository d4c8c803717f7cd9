package systems

import (
	"testing"

	"github.com/automoto/popstrike/components"
	cfg "github.com/automoto/popstrike/config"
	"github.com/stretchr/testify/assert"
)

func TestCollectIntentEdges(t *testing.T) {
	var intent components.IntentData

	intent.Raw.Press(cfg.ActionMoveUp, cfg.ActionAct)
	CollectIntent(&intent)
	assert.True(t, intent.MoveUp)
	assert.True(t, intent.JumpPressed)
	assert.True(t, intent.ActPressed)
	assert.False(t, intent.ActReleased)

	CollectIntent(&intent)
	assert.True(t, intent.MoveUp, "still held")
	assert.False(t, intent.JumpPressed, "edge only on the first frame")
	assert.False(t, intent.ActPressed)

	intent.Raw = components.RawInput{}
	CollectIntent(&intent)
	assert.False(t, intent.MoveUp)
	assert.True(t, intent.ActReleased)
}

func TestCollectIntentMergesSources(t *testing.T) {
	var intent components.IntentData
	intent.Raw.Keys[cfg.ActionMoveLeft] = true
	intent.Raw.Touch[cfg.ActionTaunt] = true
	CollectIntent(&intent)

	assert.True(t, intent.MoveLeft)
	assert.True(t, intent.TauntPressed)

	// a button held on both sources and released on one stays held
	intent.Raw.Touch[cfg.ActionMoveLeft] = true
	CollectIntent(&intent)
	intent.Raw.Keys[cfg.ActionMoveLeft] = false
	CollectIntent(&intent)
	assert.True(t, intent.MoveLeft)
}

func TestHorizontalIntent(t *testing.T) {
	tests := []struct {
		name        string
		left, right bool
		want        float64
	}{
		{"none", false, false, 0},
		{"left", true, false, cfg.DirectionLeft},
		{"right", false, true, cfg.DirectionRight},
		{"both cancel", true, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := &components.IntentData{MoveLeft: tt.left, MoveRight: tt.right}
			assert.Equal(t, tt.want, horizontalIntent(intent))
		})
	}
}
