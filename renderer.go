package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/vmath"
)

// quadCorners are the corners of a unit quad centred on its position,
// counter-clockwise from the bottom left.
var quadCorners = [4]vmath.Vec2{{X: -0.5, Y: -0.5}, {X: 0.5, Y: -0.5}, {X: 0.5, Y: 0.5}, {X: -0.5, Y: 0.5}}

// renderer draws a render.Scenegraph onto an ebiten image: the terrain mesh
// first, then the quad instances back to front.
type renderer struct {
	atlas *ebiten.Image
	white *ebiten.Image

	verts []ebiten.Vertex
	inds  []uint32
}

func newRenderer() *renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &renderer{
		atlas: newAtlas(),
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (r *renderer) Draw(screen *ebiten.Image, sg *render.Scenegraph) {
	screen.Fill(clearColor(sg.ClearColor))

	b := screen.Bounds()
	view := viewport{camera: sg.Camera, w: float64(b.Dx()), h: float64(b.Dy())}

	r.drawMesh(screen, view, &sg.Mesh)
	r.drawQuads(screen, view, sg.Instances)
}

func (r *renderer) drawMesh(screen *ebiten.Image, view viewport, m *render.MeshBuffer) {
	if len(m.Indices) == 0 {
		return
	}
	r.verts = r.verts[:0]
	for _, v := range m.Vertices {
		x, y := view.project(vmath.V3(float64(v.Position[0]), float64(v.Position[1]), float64(v.Position[2])))
		c := render.Unpack(v.Color)
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   1,
			SrcY:   1,
			ColorR: float32(c.R) / 255,
			ColorG: float32(c.G) / 255,
			ColorB: float32(c.B) / 255,
			ColorA: float32(c.A) / 255,
		})
	}
	var op ebiten.DrawTrianglesOptions
	screen.DrawTriangles32(r.verts, m.Indices, r.white, &op)
}

func (r *renderer) drawQuads(screen *ebiten.Image, view viewport, instances []render.QuadInstance) {
	if len(instances) == 0 {
		return
	}
	atlasPx := float32(r.atlas.Bounds().Dx())

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, q := range instances {
		pos := vmath.V2(float64(q.Position[0]), float64(q.Position[1]))
		rot := vmath.Rotation2(float64(q.Rotation))
		scale := vmath.V2(float64(q.Scale[0]), float64(q.Scale[1]))
		cr, cg, cb := mixChannels(q.MixColor)

		base := uint32(len(r.verts))
		for _, corner := range quadCorners {
			world := pos.Add(rot.MulVec(corner.Mul(scale)))
			x, y := view.project(world.Append(float64(q.Position[2])))
			// v grows downwards in the atlas
			u := q.TexOffset[0] + float32(corner.X+0.5)*q.TexSize[0]
			v := q.TexOffset[1] + float32(0.5-corner.Y)*q.TexSize[1]
			r.verts = append(r.verts, ebiten.Vertex{
				DstX:   x,
				DstY:   y,
				SrcX:   u * atlasPx,
				SrcY:   v * atlasPx,
				ColorR: cr,
				ColorG: cg,
				ColorB: cb,
				ColorA: 1,
			})
		}
		r.inds = append(r.inds, base, base+1, base+2, base, base+2, base+3)
	}

	var op ebiten.DrawTrianglesOptions
	op.Filter = ebiten.FilterLinear
	screen.DrawTriangles32(r.verts, r.inds, r.atlas, &op)
}

// mixChannels turns a quad mix colour into vertex colour multipliers. Alpha
// is the amount of the colour mixed over the sprite.
func mixChannels(mix [4]float32) (r, g, b float32) {
	a := mix[3]
	return 1 - a + a*mix[0], 1 - a + a*mix[1], 1 - a + a*mix[2]
}

func clearColor(c vmath.Vec4) color.RGBA {
	to8 := func(f float64) uint8 {
		return uint8(math.Round(vmath.Clamp(f, 0, 1) * 255))
	}
	return color.RGBA{R: to8(c.X), G: to8(c.Y), B: to8(c.Z), A: to8(c.W)}
}

// viewport maps clip space to screen pixels.
type viewport struct {
	camera vmath.Mat4
	w, h   float64
}

func (v viewport) project(p vmath.Vec3) (x, y float32) {
	clip := v.camera.TransformPoint(p)
	return float32((clip.X + 1) / 2 * v.w), float32((1 - clip.Y) / 2 * v.h)
}
