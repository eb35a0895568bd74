package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/flightsim/tilemap"
	"github.com/milk9111/flightsim/vmath"
)

func TestLayers(t *testing.T) {
	sg := NewScenegraph()
	sg.NewLayer() // empty: no boundary
	sg.Push(NewQuad(vmath.V2(1, 2), Leaf))
	sg.NewLayer()
	sg.Push(NewQuad(vmath.V2(3, 4), Crab))

	if len(sg.LayerBoundaries) != 1 || sg.LayerBoundaries[0] != 1 {
		t.Fatalf("unexpected boundaries %v", sg.LayerBoundaries)
	}
	if z := sg.Instances[0].Position[2]; z != 3+1.0/16 {
		t.Fatalf("unexpected first z %v", z)
	}
	if z := sg.Instances[1].Position[2]; z != 3+2.0/16 {
		t.Fatalf("unexpected second z %v", z)
	}

	sg.Clear()
	if len(sg.Instances) != 0 || len(sg.LayerBoundaries) != 0 || len(sg.Mesh.Vertices) != 0 {
		t.Fatalf("Clear left data behind")
	}
}

func TestMeshExtendOffsetsIndices(t *testing.T) {
	var m MeshBuffer
	var tri [3]TerrainVertex
	m.PushTriangle(tri)
	m.PushRect([4]TerrainVertex{})

	want := []uint32{0, 1, 2, 3, 4, 5, 3, 5, 6}
	if len(m.Indices) != len(want) {
		t.Fatalf("expected %v, got %v", want, m.Indices)
	}
	for i := range want {
		if m.Indices[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, m.Indices)
		}
	}
	if len(m.Vertices) != 7 {
		t.Fatalf("expected 7 vertices, got %d", len(m.Vertices))
	}
}

func TestPackRoundTrip(t *testing.T) {
	c := color.RGBA{R: 1, G: 2, B: 3, A: 4}
	if Pack(c) != 0x04030201 {
		t.Fatalf("unexpected packing %#x", Pack(c))
	}
	if Unpack(Pack(c)) != c {
		t.Fatalf("unpack mismatch")
	}
}

func TestArrowSkipsShortVectors(t *testing.T) {
	sg := NewScenegraph()
	sg.PushArrow(vmath.Vec2{}, vmath.V2(0.1, 0.1), 2, color.RGBA{R: 255, A: 255})
	if len(sg.Mesh.Vertices) != 0 {
		t.Fatalf("short arrow should be skipped")
	}
	sg.PushArrow(vmath.V2(1, 1), vmath.V2(2, 0), 2, color.RGBA{R: 255, A: 255})
	if len(sg.Mesh.Vertices) != 3 {
		t.Fatalf("expected one triangle, got %d vertices", len(sg.Mesh.Vertices))
	}
	if tip := sg.Mesh.Vertices[2].Position; tip[0] != 3 || tip[1] != 1 || tip[2] != 2 {
		t.Fatalf("unexpected tip %v", tip)
	}
}

func TestAtlasCoords(t *testing.T) {
	off, size := AtlasCoords(Wing)
	if math.Abs(float64(off[0])-(3.0/8+1.0/512)) > 1e-6 || math.Abs(float64(size[0])-(2.0/8-2.0/512)) > 1e-6 {
		t.Fatalf("unexpected atlas coords %v %v", off, size)
	}
}

func TestCameraScreenToTile(t *testing.T) {
	c := NewCamera()
	c.ViewportSize = vmath.V2(800, 600)
	c.Position = vmath.V2(10, 5)

	cases := []struct {
		name string
		px   vmath.Vec2
		want vmath.Vec2
	}{
		{"centre", vmath.V2(400, 300), vmath.V2(10, 5)},
		{"right", vmath.V2(464, 300), vmath.V2(11, 5)},
		{"up", vmath.V2(400, 236), vmath.V2(10, 6)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.ScreenToTile(tc.px)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if back := c.TileToScreen(got); back != tc.px {
				t.Fatalf("round trip %v -> %v", tc.px, back)
			}
		})
	}
}

func TestCameraMatrixCentresPosition(t *testing.T) {
	c := NewCamera()
	c.ViewportSize = vmath.V2(800, 600)
	c.Position = vmath.V2(10, 5)

	p := c.Matrix().TransformPoint(vmath.V3(10, 5, 0))
	if math.Abs(p.X) > 1e-9 || math.Abs(p.Y) > 1e-9 || math.Abs(p.Z-0.5) > 1e-9 {
		t.Fatalf("camera position should map to the clip centre, got %v", p)
	}

	q := c.Matrix().TransformPoint(vmath.V3(10+400.0/64, 5, 0))
	if math.Abs(q.X-1) > 1e-9 {
		t.Fatalf("right screen edge should map to x=1, got %v", q.X)
	}
}

func TestCameraZoomAndPan(t *testing.T) {
	c := NewCamera()
	c.SetZoom(1000)
	if c.Zoom != MaxZoom {
		t.Fatalf("expected %v, got %v", float64(MaxZoom), c.Zoom)
	}
	c.SetZoom(1)
	if c.Zoom != MinZoom {
		t.Fatalf("expected %v, got %v", float64(MinZoom), c.Zoom)
	}
	c.Pan(vmath.V2(8, -4))
	if c.Position != vmath.V2(2, -1) {
		t.Fatalf("unexpected pan %v", c.Position)
	}
}

func TestCameraScrollTo(t *testing.T) {
	c := NewCamera()
	c.ScrollTo(vmath.V2(10, -10), 0.5)
	if !c.Scrolling() {
		t.Fatalf("expected scroll to start")
	}
	for i := 0; i < 100 && c.Scrolling(); i++ {
		c.Update(1.0 / 60)
	}
	if c.Scrolling() {
		t.Fatalf("scroll never finished")
	}
	if c.Position != vmath.V2(10, -10) {
		t.Fatalf("expected to land on target, got %v", c.Position)
	}
}

func TestDrawTilesSkipsAir(t *testing.T) {
	g := tilemap.New(4, 4, tilemap.Air)
	g.TrySet(vmath.V2i(1, 1), tilemap.Rock)
	c := NewCamera()
	c.ViewportSize = vmath.V2(640, 640)
	c.Position = vmath.V2(2, 2)

	sg := NewScenegraph()
	DrawTiles(sg, &c, g, 0)
	if len(sg.Mesh.Vertices) != 4 || len(sg.Mesh.Indices) != 6 {
		t.Fatalf("expected one quad, got %d vertices", len(sg.Mesh.Vertices))
	}
	if z := sg.Mesh.Vertices[0].Position[2]; z != 2 {
		t.Fatalf("expected rock at z 2, got %v", z)
	}
}

func TestBlend(t *testing.T) {
	a := color.RGBA{R: 255, A: 128}
	b := color.RGBA{B: 255, A: 255}

	if got := Blend(a, b, 0); got != a {
		t.Fatalf("t=0 should return a, got %v", got)
	}
	if got := Blend(a, b, 1); got.B != 255 || got.R != 0 || got.A != 128 {
		t.Fatalf("t=1 should return b with a's alpha, got %v", got)
	}
	if got := MixColor(color.RGBA{R: 255}, 2); got[3] != 1 || got[0] != 1 {
		t.Fatalf("unexpected mix colour %v", got)
	}
}

func TestPushCube(t *testing.T) {
	sg := NewScenegraph()
	sg.PushCube(vmath.V3(2, 0, 0), color.RGBA{R: 255, A: 255})
	if len(sg.Mesh.Vertices) != 8 || len(sg.Mesh.Indices) != 36 {
		t.Fatalf("got %d vertices, %d indices", len(sg.Mesh.Vertices), len(sg.Mesh.Indices))
	}
	if sg.Mesh.Vertices[6].Position != [3]float32{3, 1, 1} {
		t.Fatalf("unexpected far corner %v", sg.Mesh.Vertices[6].Position)
	}
}
