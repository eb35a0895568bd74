package render

// Sprite addresses a rectangle of cells in the sprite atlas.
type Sprite struct {
	Pos  [2]uint8 `msgpack:"pos"`
	Size [2]uint8 `msgpack:"size"`
}

var (
	Leaf   = Sprite{Pos: [2]uint8{1, 0}, Size: [2]uint8{1, 1}}
	Crab   = Sprite{Pos: [2]uint8{2, 0}, Size: [2]uint8{1, 1}}
	Wing   = Sprite{Pos: [2]uint8{3, 0}, Size: [2]uint8{2, 1}}
	Wheel  = Sprite{Pos: [2]uint8{5, 0}, Size: [2]uint8{1, 1}}
	Center = Sprite{Pos: [2]uint8{6, 0}, Size: [2]uint8{1, 1}}
	Plane  = Sprite{Pos: [2]uint8{0, 5}, Size: [2]uint8{8, 5}}
)

const (
	// AtlasCells is the number of sprite cells per atlas row and column.
	AtlasCells = 8

	atlasMargin = 1.0 / 512.0
)

// AtlasCoords returns the texture offset and size of s in normalised atlas
// coordinates, with v growing downwards and a small margin against bleeding.
func AtlasCoords(s Sprite) (off, size [2]float32) {
	const stride = float32(AtlasCells)
	off = [2]float32{
		float32(s.Pos[0])/stride + atlasMargin,
		float32(s.Pos[1])/stride + atlasMargin,
	}
	size = [2]float32{
		float32(s.Size[0])/stride - 2*atlasMargin,
		float32(s.Size[1])/stride - 2*atlasMargin,
	}
	return off, size
}

var spritesByName = map[string]Sprite{
	"leaf":   Leaf,
	"crab":   Crab,
	"wing":   Wing,
	"wheel":  Wheel,
	"center": Center,
	"plane":  Plane,
}

// SpriteByName looks up one of the named atlas sprites.
func SpriteByName(name string) (Sprite, bool) {
	s, ok := spritesByName[name]
	return s, ok
}
