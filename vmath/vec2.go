package vmath

import "math"

// Vec2 is a 2D vector in world (tile) units.
type Vec2 struct {
	X float64 `msgpack:"x"`
	Y float64 `msgpack:"y"`
}

var (
	Zero2 = Vec2{}
	EX    = Vec2{X: 1}
	EY    = Vec2{Y: 1}
)

func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Splat2 returns a vector with both components set to v.
func Splat2(v float64) Vec2 {
	return Vec2{X: v, Y: v}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Div(s float64) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Mul multiplies componentwise.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product (v, 0) x (o, 0).
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) Len2() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.Len2())
}

// Normalized returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Div(l)
}

// Rot90 rotates v a quarter turn counter-clockwise.
func (v Vec2) Rot90() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

func (v Vec2) Floor() Vec2 {
	return Vec2{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// Tile returns the integer tile coordinates containing v.
func (v Vec2) Tile() Vec2i {
	return Vec2i{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// At returns component i (0 = x, 1 = y).
func (v Vec2) At(i int) float64 {
	if i == 0 {
		return v.X
	}
	return v.Y
}

// With returns a copy of v with component i replaced.
func (v Vec2) With(i int, value float64) Vec2 {
	if i == 0 {
		v.X = value
	} else {
		v.Y = value
	}
	return v
}

func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Append lifts v into 3D with the given z.
func (v Vec2) Append(z float64) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: z}
}

// Heading returns the angle of v measured from +X, in radians.
func (v Vec2) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{X: v.X + t*(o.X-v.X), Y: v.Y + t*(o.Y-v.Y)}
}

// Vec2i is an integer grid position.
type Vec2i struct {
	X int `msgpack:"x"`
	Y int `msgpack:"y"`
}

func V2i(x, y int) Vec2i {
	return Vec2i{X: x, Y: y}
}

func (v Vec2i) Add(o Vec2i) Vec2i {
	return Vec2i{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2i) Float() Vec2 {
	return Vec2{X: float64(v.X), Y: float64(v.Y)}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
