package tilemap

import (
	"testing"

	"github.com/milk9111/flightsim/vmath"
)

func TestAirstripLayout(t *testing.T) {
	g := Airstrip(1024, 1024)

	cases := []struct {
		name string
		pos  vmath.Vec2i
		want Tile
	}{
		{"wall", vmath.V2i(0, 4), Tarmac},
		{"line_dash", vmath.V2i(3, 4), Line},
		{"line_gap", vmath.V2i(10, 4), Tarmac},
		{"ground", vmath.V2i(100, 2), Tarmac},
		{"air", vmath.V2i(8, 6), Air},
		{"cloud", vmath.V2i(32, 32), Cloud},
		{"below", vmath.V2i(8, -1), Air},
		{"above", vmath.V2i(8, 5000), Air},
		{"wrapped", vmath.V2i(1024+3, 4), Line},
		{"wrapped_negative", vmath.V2i(-1024+3, 4), Line},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := g.At(c.pos); got != c.want {
				t.Fatalf("At(%v) = %v, want %v", c.pos, got, c.want)
			}
		})
	}
}

func TestWalkable(t *testing.T) {
	g := Airstrip(64, 64)
	if !g.Walkable(vmath.V2(8, 6.5)) {
		t.Fatalf("spawn position should be walkable")
	}
	if g.Walkable(vmath.V2(8, 4.99)) {
		t.Fatalf("runway surface should not be walkable")
	}
	if !g.Walkable(vmath.V2(8, -3)) {
		t.Fatalf("out of bounds should read as air")
	}
}

func TestMustAtPanics(t *testing.T) {
	g := New(4, 4, Water)
	if g.MustAt(vmath.V2i(3, 3)) != Water {
		t.Fatalf("expected water")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustAt out of range should panic")
		}
	}()
	g.MustAt(vmath.V2i(4, 0))
}

func TestTank(t *testing.T) {
	g := Tank(10, 8)
	if g.At(vmath.V2i(0, 4)) != Rock || g.At(vmath.V2i(9, 4)) != Rock {
		t.Fatalf("expected rock walls")
	}
	if g.At(vmath.V2i(5, 1)) != Sand {
		t.Fatalf("expected sand floor")
	}
	if !g.Walkable(vmath.V2(5.5, 4.5)) {
		t.Fatalf("water should be walkable")
	}
}

func TestRangeClipsToGrid(t *testing.T) {
	g := New(3, 2, Rock)
	n := 0
	for p, tile := range g.Range(vmath.V2i(-5, -5), vmath.V2i(10, 10)) {
		if !g.Contains(p) || tile != Rock {
			t.Fatalf("unexpected %v %v", p, tile)
		}
		n++
	}
	if n != 6 {
		t.Fatalf("expected 6 tiles, got %d", n)
	}
}

func TestParseTile(t *testing.T) {
	for i := Tile(0); i < numTiles; i++ {
		got, err := ParseTile(i.String())
		if err != nil || got != i {
			t.Fatalf("ParseTile(%q) = %v, %v", i.String(), got, err)
		}
	}
	if _, err := ParseTile("lava"); err == nil {
		t.Fatalf("expected error for unknown tile")
	}
}

func TestXOffset(t *testing.T) {
	cases := []struct {
		x    float64
		want float64
	}{
		{8, -256},
		{600, 256},
		{1100, 768},
	}
	for _, c := range cases {
		if got := XOffset(c.x); got != c.want {
			t.Fatalf("XOffset(%v) = %v, want %v", c.x, got, c.want)
		}
	}
}
