package tilemap

import (
	"fmt"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Tile is a terrain cell type.
type Tile uint8

const (
	Air Tile = iota
	Cloud
	Tarmac
	Line
	Water
	Sand
	Rock

	numTiles
)

var tileNames = [numTiles]string{
	Air:    "air",
	Cloud:  "cloud",
	Tarmac: "tarmac",
	Line:   "line",
	Water:  "water",
	Sand:   "sand",
	Rock:   "rock",
}

func (t Tile) String() string {
	if t < numTiles {
		return tileNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// ParseTile maps a tile name (case-insensitive) to its Tile.
func ParseTile(name string) (Tile, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range tileNames {
		if n == name {
			return Tile(i), nil
		}
	}
	return Air, fmt.Errorf("tilemap: unknown tile %q", name)
}

// Walkable reports whether bodies may occupy the tile.
func (t Tile) Walkable() bool {
	switch t {
	case Air, Cloud, Water:
		return true
	default:
		return false
	}
}

// Height is the z coordinate the tile is drawn at.
func (t Tile) Height() float64 {
	switch t {
	case Tarmac, Line, Rock:
		return 1.0
	case Sand:
		return 0.5
	case Air, Cloud, Water:
		return -0.5
	default:
		return 0
	}
}

// Color is the base colour the tile is drawn with.
func (t Tile) Color() color.RGBA {
	switch t {
	case Air:
		return color.RGBA{R: 141, G: 154, B: 255, A: 255}
	case Cloud:
		return color.RGBA{R: 181, G: 194, B: 255, A: 255}
	case Tarmac:
		return color.RGBA{R: 50, G: 50, B: 50, A: 255}
	case Line:
		return color.RGBA{R: 200, G: 200, B: 100, A: 255}
	case Water:
		return colornames.Steelblue
	case Sand:
		return colornames.Sandybrown
	case Rock:
		return colornames.Dimgray
	default:
		return colornames.Red
	}
}
