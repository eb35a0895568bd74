package render

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/flightsim/tilemap"
	"github.com/milk9111/flightsim/vmath"
)

const (
	MinZoom = 4
	MaxZoom = 256
)

type scrollAnim struct {
	tweenX, tweenY *gween.Tween
	doneX, doneY   bool
}

// Camera maps world (tile) positions to clip space.
type Camera struct {
	// ViewportSize is the screen size in pixels.
	ViewportSize vmath.Vec2 `msgpack:"viewport_size"`
	// Position is the world position at the centre of the screen.
	Position vmath.Vec2 `msgpack:"position"`
	// Zoom is pixels per tile.
	Zoom     float64 `msgpack:"zoom"`
	Rotation float64 `msgpack:"rotation"`
	Pitch    float64 `msgpack:"pitch"`
	// ZRange bounds the visible depth to [-ZRange, ZRange].
	ZRange float64 `msgpack:"z_range"`

	scroll *scrollAnim
}

func NewCamera() Camera {
	return Camera{
		ViewportSize: vmath.V2(1, 1),
		Zoom:         64,
		ZRange:       512,
	}
}

// Matrix returns the world to clip transform.
func (c *Camera) Matrix() vmath.Mat4 {
	vw, vh := c.ViewportSize.X, c.ViewportSize.Y
	sx, sy := c.Zoom/vw, c.Zoom/vh
	var sz float64
	if vw > vh {
		sz = sx / c.ZRange
	} else {
		sz = sy / c.ZRange
	}
	scale := vmath.V3(sx, sy, sz).Scale(2)

	return vmath.Translation(vmath.V3(0, 0, 0.5)).
		Mul(vmath.ScaleAnisotropic(scale)).
		Mul(vmath.Pitch(c.Pitch)).
		Mul(vmath.RotationAxis(vmath.UnitZ3, c.Rotation)).
		Mul(vmath.Translation(c.Position.Append(0).Neg()))
}

// ScreenToTile converts a pixel position (y down) to a world position.
func (c *Camera) ScreenToTile(px vmath.Vec2) vmath.Vec2 {
	x := (px.X-c.ViewportSize.X/2)/c.Zoom + c.Position.X
	y := (-px.Y+c.ViewportSize.Y/2)/c.Zoom + c.Position.Y
	return vmath.V2(x, y)
}

// TileToScreen is the inverse of ScreenToTile.
func (c *Camera) TileToScreen(p vmath.Vec2) vmath.Vec2 {
	x := (p.X-c.Position.X)*c.Zoom + c.ViewportSize.X/2
	y := -(p.Y-c.Position.Y)*c.Zoom + c.ViewportSize.Y/2
	return vmath.V2(x, y)
}

// VisibleTileRange returns the tile rectangle [lo, hi) on screen, shifted by
// xOffset (the wrap offset of the drawn grid).
func (c *Camera) VisibleTileRange(xOffset float64) (lo, hi vmath.Vec2i) {
	off := vmath.V2(xOffset, 0)
	bottomLeft := c.ScreenToTile(vmath.V2(0, c.ViewportSize.Y)).Sub(off)
	topRight := c.ScreenToTile(vmath.V2(c.ViewportSize.X, 0)).Add(vmath.Splat2(1)).Sub(off)
	return bottomLeft.Tile(), topRight.Tile()
}

// SetZoom clamps z to [MinZoom, MaxZoom].
func (c *Camera) SetZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	c.Zoom = vmath.Clamp(z, MinZoom, MaxZoom)
}

// Pan moves the camera by delta screen units, scaled so the same mouse motion
// pans the same number of pixels at any zoom.
func (c *Camera) Pan(delta vmath.Vec2) {
	c.Position = c.Position.Add(delta.Div(c.Zoom))
}

// ScrollTo animates the camera towards target over duration seconds.
func (c *Camera) ScrollTo(target vmath.Vec2, duration float32) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.Position.X), float32(target.X), duration, ease.OutCubic),
		tweenY: gween.New(float32(c.Position.Y), float32(target.Y), duration, ease.OutCubic),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil
}

// CancelScroll stops a running ScrollTo animation where it is.
func (c *Camera) CancelScroll() {
	c.scroll = nil
}

// Update advances a running scroll animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.scroll == nil {
		return
	}
	if !c.scroll.doneX {
		val, done := c.scroll.tweenX.Update(dt)
		c.Position.X = float64(val)
		c.scroll.doneX = done
	}
	if !c.scroll.doneY {
		val, done := c.scroll.tweenY.Update(dt)
		c.Position.Y = float64(val)
		c.scroll.doneY = done
	}
	if c.scroll.doneX && c.scroll.doneY {
		c.scroll = nil
	}
}

// DrawTiles emits the non-air tiles of g visible through c as mesh quads.
// xOffset shifts the drawn grid in X (see tilemap.XOffset).
func DrawTiles(sg *Scenegraph, c *Camera, g *tilemap.Grid, xOffset float64) {
	lo, hi := c.VisibleTileRange(xOffset)
	for p, tile := range g.Range(lo, hi) {
		if tile == tilemap.Air {
			continue
		}
		col := tile.Color()
		base := p.Float().Add(vmath.V2(xOffset, 0)).Append(tile.Height())
		var quad [4]TerrainVertex
		for i, corner := range [4]vmath.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}} {
			quad[i] = NewVertex(base.Add(corner.Append(1)), col)
		}
		sg.PushRect(quad)
	}
}
