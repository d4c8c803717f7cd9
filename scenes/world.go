package scenes

import (
	"image/color"
	"time"

	"github.com/automoto/popstrike/assets"
	cfg "github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/session"
	"github.com/automoto/popstrike/signals"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SceneChanger switches the running scene.
type SceneChanger interface {
	ChangeScene(scene interface{})
}

// ArenaConfig is what an arena run needs to start.
type ArenaConfig struct {
	Levels []assets.Level
	Start  int
	Seed   uint64
	Debug  bool
}

// ArenaScene plays the levels in order on one session and acts as the flow
// orchestrator for the signals the session raises.
type ArenaScene struct {
	sceneChanger SceneChanger
	config       ArenaConfig
	session      *session.Session
	current      int
	buttons      []TouchButton
	debug        bool

	// flow changes requested by signal handlers, applied after the tick
	pending func()
}

func NewArenaScene(sc SceneChanger, config ArenaConfig) (*ArenaScene, error) {
	s, err := session.New(session.Options{Seed: config.Seed})
	if err != nil {
		return nil, err
	}
	as := &ArenaScene{
		sceneChanger: sc,
		config:       config,
		session:      s,
		buttons:      DefaultTouchButtons(int(cfg.Arena.Width), int(cfg.Arena.Height)),
		debug:        config.Debug,
	}

	s.OnWaveCleared(func(ev signals.WaveClearedEvent) {
		as.pending = as.nextLevel
	})
	s.OnBossPhaseAdvanced(func(ev signals.BossPhaseAdvancedEvent) {
		log.Info("phase", "from", ev.From, "to", ev.To)
	})
	s.OnPlayerDied(func(ev signals.PlayerDiedEvent) {
		as.pending = as.gameOver
	})
	s.OnEncounterCompleted(func(signals.EncounterCompletedEvent) {
		as.pending = func() { as.startLevel(0) }
	})

	as.startLevel(config.Start)
	return as, nil
}

func (as *ArenaScene) startLevel(index int) {
	if len(as.config.Levels) == 0 {
		return
	}
	if index < 0 || index >= len(as.config.Levels) {
		index = 0
	}
	as.current = index
	level := as.config.Levels[index]
	as.session.StartLevel(level)
	log.Info("level started", "level", level.Name, "title", level.Title)
}

func (as *ArenaScene) nextLevel() {
	as.startLevel((as.current + 1) % len(as.config.Levels))
}

func (as *ArenaScene) gameOver() {
	config := as.config
	config.Start = as.current
	as.sceneChanger.ChangeScene(NewGameOverScene(as.sceneChanger, config))
}

func (as *ArenaScene) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		as.debug = !as.debug
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	as.session.Tick(dt, ReadInput(as.buttons))

	if as.pending != nil {
		next := as.pending
		as.pending = nil
		next()
	}
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	view := as.session.View()
	var level *assets.Level
	if as.current < len(as.config.Levels) {
		level = &as.config.Levels[as.current]
	}
	drawArena(screen, view, level)
	drawTouchButtons(screen, as.buttons)
	if as.debug {
		drawDebug(screen, view, as.session.Now())
	}
}
