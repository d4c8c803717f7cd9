package scenes

import (
	"image/color"

	cfg "github.com/automoto/popstrike/config"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GameOverScene waits for the act button and restarts the arena on the
// level the player fell on.
type GameOverScene struct {
	sceneChanger SceneChanger
	config       ArenaConfig
}

// NewGameOverScene creates a new game over scene
func NewGameOverScene(sc SceneChanger, config ArenaConfig) *GameOverScene {
	return &GameOverScene{sceneChanger: sc, config: config}
}

func (gs *GameOverScene) Update() {
	if !actJustPressed() {
		return
	}
	config := gs.config
	config.Seed++
	arena, err := NewArenaScene(gs.sceneChanger, config)
	if err != nil {
		log.Error("restart failed", "err", err)
		return
	}
	gs.sceneChanger.ChangeScene(arena)
}

func (gs *GameOverScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	x := int(cfg.Arena.Width)/2 - 60
	y := int(cfg.Arena.Height)/2 - 20
	ebitenutil.DebugPrintAt(screen, "GAME OVER", x, y)
	ebitenutil.DebugPrintAt(screen, "press act to retry", x-24, y+24)
}

func actJustPressed() bool {
	b := Bindings[cfg.ActionAct]
	for _, k := range b.Keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		for _, btn := range b.StandardGamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, btn) {
				return true
			}
		}
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}
