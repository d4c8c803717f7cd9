package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/automoto/popstrike/assets"
	"github.com/automoto/popstrike/config"
	"github.com/automoto/popstrike/scenes"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene interface{}) {
	g.scene = scene.(Scene)
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return int(config.Arena.Width), int(config.Arena.Height)
}

func main() {
	levelName := flag.String("level", "", "level to start on (default: first)")
	boss := flag.Bool("boss", false, "start on the first boss level")
	configPath := flag.String("config", "", "YAML file with config overrides")
	logLevel := flag.String("log", "info", "log level (debug, info, warn, error)")
	seed := flag.Uint64("seed", 1, "random seed for brand assignment")
	debug := flag.Bool("debug", false, "start with the debug overlay on")
	flag.Parse()

	if lvl, err := log.ParseLevel(*logLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.Warn("unknown log level, using info", "level", *logLevel)
	}

	if *configPath != "" {
		dir, name := filepath.Split(*configPath)
		if dir == "" {
			dir = "."
		}
		if err := config.LoadOverrides(os.DirFS(dir), name); err != nil {
			log.Fatal("failed to load config", "err", err)
		}
	}

	levels, err := assets.NewLevelLoader().LoadLevels()
	if err != nil {
		log.Fatal("failed to load levels", "err", err)
	}

	start := 0
	for i, l := range levels {
		if (*levelName != "" && l.Name == *levelName) || (*boss && l.Boss) {
			start = i
			break
		}
	}

	g := &Game{}
	arena, err := scenes.NewArenaScene(g, scenes.ArenaConfig{
		Levels: levels,
		Start:  start,
		Seed:   *seed,
		Debug:  *debug,
	})
	if err != nil {
		log.Fatal("failed to start arena", "err", err)
	}
	g.scene = arena

	ebiten.SetWindowTitle("popstrike")
	ebiten.SetWindowSize(int(config.Arena.Width)/2, int(config.Arena.Height)/2)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
