// Package render holds the renderer-agnostic draw list the simulation emits
// every frame, and the camera that projects it.
package render

import (
	"image/color"

	"github.com/milk9111/flightsim/vmath"
)

const (
	layerStep = 1.0 / 16.0
	// quads sit above the terrain mesh by this much
	quadZOffset = 3.0
)

// QuadInstance is one textured sprite quad.
type QuadInstance struct {
	Position  [3]float32
	MixColor  [4]float32
	Scale     [2]float32
	Rotation  float32
	TexOffset [2]float32
	TexSize   [2]float32
}

// NewQuad places sprite s at p with unit scale.
func NewQuad(p vmath.Vec2, s Sprite) QuadInstance {
	off, size := AtlasCoords(s)
	return QuadInstance{
		Position:  [3]float32{float32(p.X), float32(p.Y), 0},
		Scale:     [2]float32{1, 1},
		TexOffset: off,
		TexSize:   size,
	}
}

// Scenegraph is rebuilt every frame and handed to the renderer.
type Scenegraph struct {
	ClearColor vmath.Vec4
	Camera     vmath.Mat4
	Instances  []QuadInstance
	Mesh       MeshBuffer
	// Instances are drawn back to front; a new layer starts at each boundary.
	LayerBoundaries []uint32

	curZ float64
}

func NewScenegraph() *Scenegraph {
	return &Scenegraph{
		ClearColor: vmath.V4(0, 0, 1, 1),
		Camera:     vmath.Identity4,
	}
}

// Clear empties the draw lists, keeping their capacity.
func (sg *Scenegraph) Clear() {
	sg.Instances = sg.Instances[:0]
	sg.LayerBoundaries = sg.LayerBoundaries[:0]
	sg.Mesh.Clear()
	sg.curZ = 0
}

// NewLayer starts a layer drawn over everything pushed so far.
func (sg *Scenegraph) NewLayer() {
	if len(sg.Instances) > 0 {
		sg.LayerBoundaries = append(sg.LayerBoundaries, uint32(len(sg.Instances)))
	}
	sg.curZ += layerStep
}

// Push adds a quad on the current layer. Its z is overwritten.
func (sg *Scenegraph) Push(q QuadInstance) {
	q.Position[2] = float32(sg.curZ + quadZOffset)
	sg.Instances = append(sg.Instances, q)
}

func (sg *Scenegraph) PushRect(v [4]TerrainVertex) {
	sg.Mesh.PushRect(v)
}

func (sg *Scenegraph) PushTriangle(v [3]TerrainVertex) {
	sg.Mesh.PushTriangle(v)
}

func (sg *Scenegraph) Extend(vertices []TerrainVertex, indices []uint32) {
	sg.Mesh.Extend(vertices, indices)
}

// PushArrow draws a flat triangle from origin along vector at height z.
// Arrows shorter than sqrt(0.1) are skipped.
func (sg *Scenegraph) PushArrow(origin, vector vmath.Vec2, z float64, c color.RGBA) {
	if vector.Len2() < 0.1 {
		return
	}
	dir := vector.Normalized()
	side := dir.Rot90()
	length := vector.Len()
	corners := [3]vmath.Vec2{
		side.Scale(-0.3),
		side.Scale(0.3),
		dir.Scale(length),
	}
	var tri [3]TerrainVertex
	for i, p := range corners {
		tri[i] = NewVertex(origin.Add(p).Append(z), c)
	}
	sg.PushTriangle(tri)
}
