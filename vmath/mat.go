package vmath

import "math"

// Mat2 is a row-major 2x2 matrix.
type Mat2 [2][2]float64

var Identity2 = Mat2{{1, 0}, {0, 1}}

// Rotation2 returns the counter-clockwise rotation by theta radians.
func Rotation2(theta float64) Mat2 {
	s, c := math.Sincos(theta)
	return Mat2{{c, -s}, {s, c}}
}

func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		X: m[0][0]*v.X + m[0][1]*v.Y,
		Y: m[1][0]*v.X + m[1][1]*v.Y,
	}
}

func (m Mat2) Mul(o Mat2) Mat2 {
	var r Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r[i][j] = m[i][0]*o[0][j] + m[i][1]*o[1][j]
		}
	}
	return r
}

func (m Mat2) Transpose() Mat2 {
	return Mat2{{m[0][0], m[1][0]}, {m[0][1], m[1][1]}}
}

// Col returns column j. For a rotation matrix column 0 is the body +X axis
// and column 1 the body +Y axis in world coordinates.
func (m Mat2) Col(j int) Vec2 {
	return Vec2{X: m[0][j], Y: m[1][j]}
}

// Mat4 is a row-major 4x4 matrix acting on column vectors.
type Mat4 [4][4]float64

var Identity4 = Mat4{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * o[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

func (m Mat4) MulVec(v Vec4) Vec4 {
	return Vec4{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z + m[0][3]*v.W,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z + m[1][3]*v.W,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z + m[2][3]*v.W,
		W: m[3][0]*v.X + m[3][1]*v.Y + m[3][2]*v.Z + m[3][3]*v.W,
	}
}

// TransformPoint applies m to the point p (w = 1) and returns x, y, z.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.MulVec(p.Append(1)).XYZ()
}

func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// ColumnMajor flattens m the way GPU uniform buffers expect it.
func (m Mat4) ColumnMajor() [16]float32 {
	var out [16]float32
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			out[j*4+i] = float32(m[i][j])
		}
	}
	return out
}

func Translation(d Vec3) Mat4 {
	m := Identity4
	m[0][3] = d.X
	m[1][3] = d.Y
	m[2][3] = d.Z
	return m
}

// ScaleAnisotropic scales each axis independently.
func ScaleAnisotropic(s Vec3) Mat4 {
	m := Identity4
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

// RotationAxis rotates by radians around an arbitrary axis.
func RotationAxis(axis Vec3, radians float64) Mat4 {
	a := axis.Normalized()
	ux, uy, uz := a.X, a.Y, a.Z
	s, c := math.Sincos(radians)
	c1 := 1 - c
	return Mat4{
		{c + ux*ux*c1, ux*uy*c1 - uz*s, ux*uz*c1 + uy*s, 0},
		{uy*ux*c1 + uz*s, c + uy*uy*c1, uy*uz*c1 - ux*s, 0},
		{uz*ux*c1 - uy*s, uz*uy*c1 + ux*s, c + uz*uz*c1, 0},
		{0, 0, 0, 1},
	}
}

// Pitch rotates around the X axis.
func Pitch(pitch float64) Mat4 {
	s, c := math.Sincos(pitch)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// Yaw rotates around the Y axis.
func Yaw(yaw float64) Mat4 {
	s, c := math.Sincos(yaw)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}
