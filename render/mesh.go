package render

import (
	"image/color"

	"github.com/milk9111/flightsim/vmath"
)

// TerrainVertex is a coloured vertex of the terrain mesh.
type TerrainVertex struct {
	Position [3]float32
	Color    uint32
}

func NewVertex(p vmath.Vec3, c color.RGBA) TerrainVertex {
	return TerrainVertex{Position: p.Float32(), Color: Pack(c)}
}

// MeshBuffer is an indexed triangle list.
type MeshBuffer struct {
	Vertices []TerrainVertex
	Indices  []uint32
}

// Push adds one vertex and indexes it.
func (m *MeshBuffer) Push(v TerrainVertex) {
	m.Indices = append(m.Indices, uint32(len(m.Vertices)))
	m.Vertices = append(m.Vertices, v)
}

// Extend appends vertices with indices relative to the first of them.
func (m *MeshBuffer) Extend(vertices []TerrainVertex, indices []uint32) {
	offset := uint32(len(m.Vertices))
	for _, i := range indices {
		m.Indices = append(m.Indices, i+offset)
	}
	m.Vertices = append(m.Vertices, vertices...)
}

// PushRect adds a quad as two triangles (0, 1, 2) and (0, 2, 3).
func (m *MeshBuffer) PushRect(v [4]TerrainVertex) {
	m.Extend(v[:], []uint32{0, 1, 2, 0, 2, 3})
}

func (m *MeshBuffer) PushTriangle(v [3]TerrainVertex) {
	m.Extend(v[:], []uint32{0, 1, 2})
}

func (m *MeshBuffer) Clear() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Pack stores c as little-endian RGBA bytes.
func Pack(c color.RGBA) uint32 {
	return uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16 | uint32(c.A)<<24
}

// Unpack reverses Pack.
func Unpack(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: uint8(v >> 24)}
}
