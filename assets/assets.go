package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// ErrLevelNotFound is returned when no level matches a requested name.
var ErrLevelNotFound = errors.New("level not found")

// Object group names read from the Tiled maps.
const (
	groupSolids      = "Solids"
	groupPlayerSpawn = "PlayerSpawn"
	groupTargets     = "Targets"
)

type Level struct {
	Name        string
	Title       string
	Boss        bool
	Width       int
	Height      int
	Solids      []Solid
	PlayerSpawn PlayerSpawn
	Targets     []TargetSpawn
}

// Solid is a static collision rectangle.
type Solid struct {
	X, Y, Width, Height float64
}

// PlayerSpawn is where the player's feet start.
type PlayerSpawn struct {
	X float64
	Y float64
}

// TargetSpawn places a target center. Size is the size class name and Drift
// the signed horizontal speed.
type TargetSpawn struct {
	X, Y  float64
	Size  string
	Drift float64
}

type LevelLoader struct {
	fsys fs.FS
	dir  string
}

// NewLevelLoader loads the levels embedded in the binary.
func NewLevelLoader() *LevelLoader {
	return &LevelLoader{fsys: assetFS, dir: "levels"}
}

// NewFSLoader loads levels from dir inside fsys.
func NewFSLoader(fsys fs.FS, dir string) *LevelLoader {
	return &LevelLoader{fsys: fsys, dir: dir}
}

// LoadLevels loads every .tmx file in the level directory, ordered by file
// name.
func (l *LevelLoader) LoadLevels() ([]Level, error) {
	entries, err := fs.ReadDir(l.fsys, l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && path.Ext(entry.Name()) == ".tmx" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	levels := make([]Level, 0, len(names))
	for _, name := range names {
		level, err := l.loadFile(path.Join(l.dir, name))
		if err != nil {
			return nil, err
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("no level files in %s: %w", l.dir, ErrLevelNotFound)
	}
	return levels, nil
}

func (l *LevelLoader) MustLoadLevels() []Level {
	levels, err := l.LoadLevels()
	if err != nil {
		panic(err)
	}
	return levels
}

// LoadLevel loads one level by name, with or without the .tmx extension.
func (l *LevelLoader) LoadLevel(name string) (Level, error) {
	name = strings.TrimSuffix(name, ".tmx")
	p := path.Join(l.dir, name+".tmx")
	if _, err := fs.Stat(l.fsys, p); err != nil {
		return Level{}, fmt.Errorf("%s: %w", name, ErrLevelNotFound)
	}
	return l.loadFile(p)
}

func (l *LevelLoader) loadFile(levelPath string) (Level, error) {
	levelMap, err := tiled.LoadFile(levelPath, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return Level{}, fmt.Errorf("failed to load %s: %w", levelPath, err)
	}

	level := Level{
		Name:   strings.TrimSuffix(path.Base(levelPath), ".tmx"),
		Title:  levelMap.Properties.GetString("title"),
		Boss:   levelMap.Properties.GetString("kind") == "boss",
		Width:  levelMap.Width * levelMap.TileWidth,
		Height: levelMap.Height * levelMap.TileHeight,
	}

	spawnFound := false
	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case groupSolids:
			for _, o := range og.Objects {
				level.Solids = append(level.Solids, Solid{
					X:      o.X,
					Y:      o.Y,
					Width:  o.Width,
					Height: o.Height,
				})
			}
		case groupPlayerSpawn:
			for _, o := range og.Objects {
				level.PlayerSpawn = PlayerSpawn{X: o.X, Y: o.Y}
				spawnFound = true
				break
			}
		case groupTargets:
			for _, o := range og.Objects {
				// TMX files may still carry the older type= attribute
				size := o.Class
				if size == "" {
					size = o.Type //nolint:staticcheck
				}
				level.Targets = append(level.Targets, TargetSpawn{
					X:     o.X,
					Y:     o.Y,
					Size:  size,
					Drift: o.Properties.GetFloat("drift"),
				})
			}
		}
	}

	if !spawnFound {
		return Level{}, fmt.Errorf("%s: no player spawn point defined", level.Name)
	}
	return level, nil
}
