// Package physics integrates rigid bodies against a walkable/blocked terrain.
package physics

import (
	"fmt"
	"math"

	"github.com/milk9111/flightsim/vmath"
)

// Terrain answers whether a world position may be occupied.
type Terrain interface {
	Walkable(p vmath.Vec2) bool
}

// Open is a terrain without obstacles.
type Open struct{}

func (Open) Walkable(vmath.Vec2) bool { return true }

// TerrainFunc adapts a function to Terrain.
type TerrainFunc func(p vmath.Vec2) bool

func (f TerrainFunc) Walkable(p vmath.Vec2) bool { return f(p) }

// Damping holds per-second linear and angular velocity decay rates.
type Damping struct {
	Linear  float64 `msgpack:"linear" yaml:"linear" toml:"linear"`
	Angular float64 `msgpack:"angular" yaml:"angular" toml:"angular"`
}

// Contact reports which axes bounced during a step.
type Contact uint8

const (
	ContactX Contact = 1 << iota
	ContactY
)

func (c Contact) Any() bool { return c != 0 }

// Restitution scales the reflected velocity component on a blocked axis.
const Restitution = 0.5

type RigidBody struct {
	Mass         float64    `msgpack:"mass"`
	Inertia      float64    `msgpack:"inertia"`
	Position     vmath.Vec2 `msgpack:"position"`
	Velocity     vmath.Vec2 `msgpack:"velocity"`
	Acceleration vmath.Vec2 `msgpack:"acceleration"`

	// Rotation is kept in [-pi, pi].
	Rotation        float64 `msgpack:"rotation"`
	AngularVelocity float64 `msgpack:"angular_velocity"`
	AngularAccel    float64 `msgpack:"angular_accel"`
}

// NewRigidBody returns a unit-mass, unit-inertia body at rest at pos.
func NewRigidBody(pos vmath.Vec2) RigidBody {
	return RigidBody{Mass: 1, Inertia: 1, Position: pos}
}

// Step advances the body by dt under force and torque, bouncing off
// non-walkable terrain one axis at a time.
func (b *RigidBody) Step(dt float64, terrain Terrain, force vmath.Vec2, torque float64, damp Damping) Contact {
	b.Acceleration = force.Div(b.Mass)
	b.AngularAccel = torque / b.Inertia

	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Velocity = b.Velocity.Scale(1 - dt*damp.Linear)

	contact := b.move(dt, terrain)

	b.Rotation = vmath.WrapAngle(b.Rotation + dt*b.AngularVelocity)

	b.AngularVelocity += dt * b.AngularAccel
	b.AngularVelocity *= 1 - dt*damp.Angular

	Check(b)
	return contact
}

func (b *RigidBody) move(dt float64, terrain Terrain) Contact {
	if terrain == nil {
		terrain = Open{}
	}
	delta := b.Velocity.Scale(dt)
	if candidate := b.Position.Add(delta); terrain.Walkable(candidate) {
		b.Position = candidate
		return 0
	}

	var contact Contact
	for axis := 0; axis < 2; axis++ {
		candidate := b.Position.Add(delta.With(1-axis, 0))
		if terrain.Walkable(candidate) {
			b.Position = candidate
			continue
		}
		b.Velocity = b.Velocity.With(axis, -Restitution*b.Velocity.At(axis))
		contact |= ContactX << axis
	}
	return contact
}

// Check panics if the body state is not finite.
func Check(b *RigidBody) {
	if !b.Position.IsFinite() || !b.Velocity.IsFinite() || !vmath.IsFinite(b.Rotation) || !vmath.IsFinite(b.AngularVelocity) {
		panic(fmt.Sprintf("physics: non-finite body state: pos=%v vel=%v rot=%v angvel=%v",
			b.Position, b.Velocity, b.Rotation, b.AngularVelocity))
	}
}

// CheckScalar panics if v is NaN or infinite.
func CheckScalar(name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic(fmt.Sprintf("physics: non-finite %s: %v", name, v))
	}
}

// RotationMatrix maps body-frame vectors to world frame.
func (b *RigidBody) RotationMatrix() vmath.Mat2 {
	return vmath.Rotation2(b.Rotation)
}

// InverseRotationMatrix maps world-frame vectors to body frame.
func (b *RigidBody) InverseRotationMatrix() vmath.Mat2 {
	return vmath.Rotation2(-b.Rotation)
}

// TransformRelPos converts a body-frame offset to a world position.
func (b *RigidBody) TransformRelPos(rel vmath.Vec2) vmath.Vec2 {
	return b.RotationMatrix().MulVec(rel).Add(b.Position)
}

// TransformVector rotates a body-frame vector into world frame.
func (b *RigidBody) TransformVector(v vmath.Vec2) vmath.Vec2 {
	return b.RotationMatrix().MulVec(v)
}

// VelocityOfRelPos is the world velocity of the body point at rel.
func (b *RigidBody) VelocityOfRelPos(rel vmath.Vec2) vmath.Vec2 {
	arm := b.TransformVector(rel)
	return b.Velocity.Add(arm.Rot90().Scale(b.AngularVelocity))
}

// TransformFrame converts a body-frame position and rotation to world frame.
func (b *RigidBody) TransformFrame(rel vmath.Vec2, rot float64) (vmath.Vec2, float64) {
	return b.TransformRelPos(rel), b.Rotation + rot
}
