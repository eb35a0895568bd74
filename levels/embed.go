package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/flightsim/tilemap"
	"github.com/milk9111/flightsim/vmath"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tank layout. Rows are listed top row first, one character per
// tile (see tileCodes). Layers is the flat alternative: each layer holds
// Width*Height tile values, also top row first, and later layers overwrite
// earlier ones where they are not air.
type Level struct {
	Name     string   `json:"name"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	WrapX    bool     `json:"wrap_x,omitempty"`
	Rows     []string `json:"rows,omitempty"`
	Layers   [][]int  `json:"layers,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

// Entity is a spawn point in tile coordinates, Y counted from the top row.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

var tileCodes = map[rune]tilemap.Tile{
	'.': tilemap.Air,
	' ': tilemap.Air,
	'c': tilemap.Cloud,
	'=': tilemap.Tarmac,
	'-': tilemap.Line,
	'~': tilemap.Water,
	':': tilemap.Sand,
	'#': tilemap.Rock,
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelName(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parse(data)
}

// Load reads a level from disk when name is an existing file, else from
// the embedded levels.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return parse(data)
	}
	return LoadLevelFromFS(name)
}

func parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

// Names lists the embedded levels without extension.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names
}

func cleanLevelName(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	return name
}

// Grid builds the tilemap. World y grows upwards, so the first row of the
// file becomes the top row of the grid.
func (l *Level) Grid() (*tilemap.Grid, error) {
	if l.Width <= 0 || l.Height <= 0 {
		return nil, fmt.Errorf("tilemap: level %s: invalid size %dx%d", l.Name, l.Width, l.Height)
	}
	g := tilemap.New(l.Width, l.Height, tilemap.Air)
	g.WrapX = l.WrapX

	if len(l.Rows) > 0 {
		if len(l.Rows) != l.Height {
			return nil, fmt.Errorf("tilemap: level %s: %d rows, want %d", l.Name, len(l.Rows), l.Height)
		}
		for row, line := range l.Rows {
			runes := []rune(line)
			if len(runes) != l.Width {
				return nil, fmt.Errorf("tilemap: level %s: row %d has %d tiles, want %d", l.Name, row, len(runes), l.Width)
			}
			for x, r := range runes {
				t, ok := tileCodes[r]
				if !ok {
					return nil, fmt.Errorf("tilemap: level %s: row %d: unknown tile code %q", l.Name, row, r)
				}
				g.TrySet(vmath.V2i(x, l.Height-1-row), t)
			}
		}
	}

	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return nil, fmt.Errorf("tilemap: level %s: layer %d has %d tiles, want %d", l.Name, i, len(layer), l.Width*l.Height)
		}
		for idx, v := range layer {
			if v < 0 || v > int(tilemap.Rock) {
				return nil, fmt.Errorf("tilemap: level %s: layer %d: invalid tile %d", l.Name, i, v)
			}
			t := tilemap.Tile(v)
			if t == tilemap.Air {
				continue
			}
			x, row := idx%l.Width, idx/l.Width
			g.TrySet(vmath.V2i(x, l.Height-1-row), t)
		}
	}
	return g, nil
}

// Spawns returns the world positions, at tile centres, of entities of type
// kind.
func (l *Level) Spawns(kind string) []vmath.Vec2 {
	var out []vmath.Vec2
	for _, e := range l.Entities {
		if !strings.EqualFold(e.Type, kind) {
			continue
		}
		out = append(out, vmath.V2(float64(e.X)+0.5, float64(l.Height-1-e.Y)+0.5))
	}
	return out
}
