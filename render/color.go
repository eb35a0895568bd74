package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/milk9111/flightsim/vmath"
)

// Blend mixes a towards b in Lab space. t = 0 returns a, t = 1 returns b.
// Alpha is taken from a.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendLab(cb, vmath.Clamp(t, 0, 1)).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: a.A}
}

// MixColor converts c to the quad mix colour. The alpha channel is the
// amount of c mixed over the sprite.
func MixColor(c color.RGBA, amount float64) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(vmath.Clamp(amount, 0, 1)),
	}
}

// ClearColor converts c to a scenegraph clear colour.
func ClearColor(c color.RGBA) vmath.Vec4 {
	return vmath.V4(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255)
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}

var cubeCorners = [8]vmath.Vec3{
	{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1},
}

var cubeIndices = []uint32{
	0, 2, 1, 0, 3, 2, // bottom
	4, 5, 6, 4, 6, 7, // top
	0, 1, 5, 0, 5, 4,
	1, 2, 6, 1, 6, 5,
	2, 3, 7, 2, 7, 6,
	3, 0, 4, 3, 4, 7,
}

// PushCube adds a unit cube with its minimum corner at origin.
func (sg *Scenegraph) PushCube(origin vmath.Vec3, c color.RGBA) {
	var vertices [8]TerrainVertex
	for i, corner := range cubeCorners {
		vertices[i] = NewVertex(origin.Add(corner), c)
	}
	sg.Extend(vertices[:], cubeIndices)
}
