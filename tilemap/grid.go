package tilemap

import (
	"fmt"
	"iter"
	"math"

	"github.com/milk9111/flightsim/vmath"
)

// WrapPeriod is the draw period, in tiles, of an X-wrapping grid around the
// followed body.
const WrapPeriod = 512

// Grid is a fixed-size row-major tile array. Queries outside the grid return
// Air. When WrapX is set, X coordinates wrap around the grid width.
type Grid struct {
	Width  int    `msgpack:"width"`
	Height int    `msgpack:"height"`
	WrapX  bool   `msgpack:"wrap_x"`
	Tiles  []Tile `msgpack:"tiles"`
}

// New creates a width x height grid filled with fill.
func New(width, height int, fill Tile) *Grid {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("tilemap: invalid size %dx%d", width, height))
	}
	tiles := make([]Tile, width*height)
	if fill != Air {
		for i := range tiles {
			tiles[i] = fill
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// Airstrip builds the runway map: clouds every 32 tiles, tarmac up to y = 4
// with a dashed line on top and a tarmac wall in column 0. It wraps in X.
func Airstrip(width, height int) *Grid {
	g := New(width, height, Air)
	g.WrapX = true
	w, h := width-1, height-1

	for x := 0; x < w; x += 32 {
		for y := 0; y < h; y += 32 {
			g.TrySet(vmath.V2i(x, y), Cloud)
		}
	}

	const top = 4
	for x := 0; x <= w; x++ {
		for y := 0; y <= top; y++ {
			g.TrySet(vmath.V2i(x, y), Tarmac)
		}
		if (x/8)%2 == 0 {
			g.TrySet(vmath.V2i(x, top), Line)
		}
	}
	for y := 0; y <= top; y++ {
		g.TrySet(vmath.V2i(0, y), Tarmac)
	}
	return g
}

// Tank builds an aquarium: water enclosed by rock walls with a sand floor.
func Tank(width, height int) *Grid {
	g := New(width, height, Water)
	for x := 0; x < width; x++ {
		g.TrySet(vmath.V2i(x, 0), Rock)
		g.TrySet(vmath.V2i(x, 1), Sand)
		g.TrySet(vmath.V2i(x, height-1), Rock)
	}
	for y := 0; y < height; y++ {
		g.TrySet(vmath.V2i(0, y), Rock)
		g.TrySet(vmath.V2i(width-1, y), Rock)
	}
	return g
}

func (g *Grid) Size() vmath.Vec2i {
	if g == nil {
		return vmath.Vec2i{}
	}
	return vmath.V2i(g.Width, g.Height)
}

// Contains reports whether p lies inside the grid, ignoring wrapping.
func (g *Grid) Contains(p vmath.Vec2i) bool {
	return g != nil && p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

func (g *Grid) wrap(p vmath.Vec2i) vmath.Vec2i {
	if g.WrapX && g.Width > 0 {
		p.X %= g.Width
		if p.X < 0 {
			p.X += g.Width
		}
	}
	return p
}

// At returns the tile at p, or Air outside the grid.
func (g *Grid) At(p vmath.Vec2i) Tile {
	if g == nil {
		return Air
	}
	p = g.wrap(p)
	if !g.Contains(p) {
		return Air
	}
	return g.Tiles[p.X+g.Width*p.Y]
}

// MustAt returns the tile at p without wrapping. p must be inside the grid.
func (g *Grid) MustAt(p vmath.Vec2i) Tile {
	if !g.Contains(p) {
		panic(fmt.Sprintf("tilemap: MustAt(%d, %d) out of range %dx%d", p.X, p.Y, g.Width, g.Height))
	}
	return g.Tiles[p.X+g.Width*p.Y]
}

// TrySet writes t at p if p is inside the grid.
func (g *Grid) TrySet(p vmath.Vec2i, t Tile) bool {
	if !g.Contains(p) {
		return false
	}
	g.Tiles[p.X+g.Width*p.Y] = t
	return true
}

// AtPos returns the tile containing the world position p.
func (g *Grid) AtPos(p vmath.Vec2) Tile {
	return g.At(p.Tile())
}

// Walkable reports whether the world position p lies in a walkable tile.
func (g *Grid) Walkable(p vmath.Vec2) bool {
	return g.AtPos(p).Walkable()
}

// Range yields positions and tiles inside [lo, hi), clipped to the grid.
// X is the inner loop.
func (g *Grid) Range(lo, hi vmath.Vec2i) iter.Seq2[vmath.Vec2i, Tile] {
	return func(yield func(vmath.Vec2i, Tile) bool) {
		if g == nil {
			return
		}
		x0, y0 := max(lo.X, 0), max(lo.Y, 0)
		x1, y1 := min(hi.X, g.Width), min(hi.Y, g.Height)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				p := vmath.V2i(x, y)
				if !yield(p, g.Tiles[x+g.Width*y]) {
					return
				}
			}
		}
	}
}

// Count returns how many tiles equal t.
func (g *Grid) Count(t Tile) int {
	if g == nil {
		return 0
	}
	n := 0
	for _, v := range g.Tiles {
		if v == t {
			n++
		}
	}
	return n
}

// XOffset is the draw offset that keeps a wrapping grid under a body at x.
func XOffset(x float64) float64 {
	return float64((int(math.Floor(x))/WrapPeriod)*WrapPeriod - WrapPeriod/2)
}
