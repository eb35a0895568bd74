// Package aero models a 2D plane: weight, propeller, wheels and winglets
// summed into a force and torque on a rigid body.
package aero

import (
	"math"

	"github.com/milk9111/flightsim/physics"
	"github.com/milk9111/flightsim/vmath"
)

const (
	// below this squared speed the angle of attack is taken as zero
	minAoASpeed2 = 1.0

	wheelProbeStep  = 0.01
	wheelMaxDepth   = 2.0
	wheelSpringK    = 30.0
	propellerOffset = 2.0
)

// wheel damping: light rolling friction along x, heavy vertical damping
var wheelDamping = vmath.V2(0.05, 100)

// PlaneDamping is applied by Tick on top of the aerodynamic forces.
var PlaneDamping = physics.Damping{Angular: 1}

type Plane struct {
	Body    physics.RigidBody `msgpack:"body"`
	Gravity float64           `msgpack:"gravity"`

	Wings    Winglet       `msgpack:"wings"`
	Elevator Winglet       `msgpack:"elevator"`
	Wheels   [2]vmath.Vec2 `msgpack:"wheels"`

	BodyDrag float64 `msgpack:"body_drag"`

	PropellerForce    float64 `msgpack:"propeller_force"`
	MaxPropellerForce float64 `msgpack:"max_propeller_force"`

	// Forces holds the contributions of the last UpdateForces call.
	Forces     []physics.Force `msgpack:"-"`
	DrawForces bool            `msgpack:"draw_forces"`

	force  vmath.Vec2
	torque float64
}

// NewPlane returns the default plane parked above the runway.
func NewPlane() *Plane {
	return &Plane{
		Body: physics.RigidBody{
			Mass:     1000,
			Inertia:  2000,
			Position: vmath.V2(8, 6.5),
		},
		Gravity:  9.81,
		BodyDrag: 0.2,
		Wings: Winglet{
			Pos:        vmath.V2(0.2, 0.5),
			Pitch:      3 * vmath.Deg,
			DragFactor: 1,
			LiftToDrag: 15,
		},
		Elevator: Winglet{
			Pos:        vmath.V2(-3.7, 0.3),
			DragFactor: 0.2,
			LiftToDrag: 15,
		},
		Wheels:            [2]vmath.Vec2{vmath.V2(-2.5, -0.75), vmath.V2(1, -1.4)},
		MaxPropellerForce: 2000,
		DrawForces:        true,
	}
}

func (p *Plane) Weight() float64 {
	return p.Body.Mass * p.Gravity
}

// BaseDrag is the drag coefficient of fuselage and both winglets together.
func (p *Plane) BaseDrag() float64 {
	return p.BodyDrag + p.Wings.DragFactor + p.Elevator.DragFactor
}

// BaseSpeed is the speed at which full throttle balances BaseDrag.
func (p *Plane) BaseSpeed() float64 {
	return math.Sqrt(p.MaxPropellerForce / p.BaseDrag())
}

func (p *Plane) Position() vmath.Vec2 {
	return p.Body.Position
}

func (p *Plane) Pitch() float64 {
	return p.Body.Rotation
}

// Throttle is the current propeller force in newtons.
func (p *Plane) Throttle() float64 {
	return p.PropellerForce
}

// SetThrottle sets the propeller force, clamped to [0, MaxPropellerForce].
func (p *Plane) SetThrottle(f float64) {
	p.PropellerForce = vmath.Clamp(f, 0, p.MaxPropellerForce)
}

// Force returns the total force and torque of the last UpdateForces call.
func (p *Plane) Force() (vmath.Vec2, float64) {
	return p.force, p.torque
}

// BodyAoA is the angle between the fuselage and the direction of flight.
func (p *Plane) BodyAoA() float64 {
	return p.Body.Rotation - p.Body.Velocity.Heading()
}

// WingletAoA is the angle of attack of w. It is not wrapped, so it can
// leave [-pi, pi] when the heading and the fuselage straddle the seam.
// It is exactly zero while the plane is (nearly) at rest.
func (p *Plane) WingletAoA(w Winglet) float64 {
	var aoa float64
	if p.Body.Velocity.Len2() >= minAoASpeed2 {
		aoa = p.BodyAoA() + w.Pitch
	}
	physics.CheckScalar("angle of attack", aoa)
	return aoa
}

func (p *Plane) WingsAoA() float64 {
	return p.WingletAoA(p.Wings)
}

func (p *Plane) ElevatorAoA() float64 {
	return p.WingletAoA(p.Elevator)
}

// WingletInducedDrag opposes the velocity, growing with |sin aoa| and speed².
func (p *Plane) WingletInducedDrag(w Winglet) vmath.Vec2 {
	v := p.Body.Velocity
	mag := w.DragFactor * math.Abs(math.Sin(p.WingletAoA(w))) * v.Len2()
	return v.Normalized().Neg().Scale(mag)
}

// WingletLift is perpendicular to the velocity, on the side the winglet
// deflects the flow to. It vanishes past +-90 degrees.
func (p *Plane) WingletLift(w Winglet) vmath.Vec2 {
	aoa := p.WingletAoA(w)
	if math.Abs(aoa) > 90*vmath.Deg {
		return vmath.Vec2{}
	}

	v := p.Body.Velocity.Normalized()
	general := vmath.Rotation2(aoa).MulVec(v)
	a := v.Rot90()
	b := a.Neg()
	dir := b
	if general.Dot(a) > general.Dot(b) {
		dir = a
	}

	flow := math.Max(math.Cos(aoa), 0)
	return dir.Scale(w.LiftToDrag * flow * p.WingletInducedDrag(w).Len())
}

// WingletForce is induced drag plus lift.
func (p *Plane) WingletForce(w Winglet) vmath.Vec2 {
	return p.WingletInducedDrag(w).Add(p.WingletLift(w))
}

// UpdateForces recomputes every force on the plane and their sum.
func (p *Plane) UpdateForces(terrain physics.Terrain) {
	if terrain == nil {
		terrain = physics.Open{}
	}
	forces := p.Forces[:0]

	forces = append(forces, physics.Force{
		Vector: vmath.V2(0, -p.Gravity*p.Body.Mass),
	})

	forces = append(forces, physics.Force{
		RelPos: vmath.V2(propellerOffset, 0),
		Vector: p.Body.TransformVector(vmath.EX).Scale(p.PropellerForce),
	})

	for _, rel := range p.Wheels {
		if f, ok := p.wheelForce(terrain, rel); ok {
			forces = append(forces, physics.Force{RelPos: rel, Vector: f})
		}
	}

	for _, w := range [2]Winglet{p.Wings, p.Elevator} {
		forces = append(forces, physics.Force{RelPos: w.Pos, Vector: p.WingletForce(w)})
	}

	forces = append(forces, physics.Force{
		Vector: p.WingletForce(Winglet{DragFactor: p.BodyDrag}),
	})

	p.Forces = forces
	p.force, p.torque = physics.SumForces(forces)
}

// wheelForce is the spring-damper force of a wheel pressed into the ground.
func (p *Plane) wheelForce(terrain physics.Terrain, rel vmath.Vec2) (vmath.Vec2, bool) {
	abs := p.Body.TransformRelPos(rel)
	if terrain.Walkable(abs) {
		return vmath.Vec2{}, false
	}
	probe := abs
	depth := 0.0
	for !terrain.Walkable(probe) && depth < wheelMaxDepth {
		probe.Y += wheelProbeStep
		depth += wheelProbeStep
	}
	vWheel := p.Body.VelocityOfRelPos(rel)
	spring := vmath.V2(0, wheelSpringK*p.Body.Mass*depth)
	return spring.Sub(vWheel.Mul(wheelDamping)), true
}

// Tick refreshes the forces and integrates the body by dt. A zero dt only
// refreshes the forces.
func (p *Plane) Tick(dt float64, terrain physics.Terrain) physics.Contact {
	p.UpdateForces(terrain)
	if dt == 0 {
		return 0
	}
	return p.Body.Step(dt, terrain, p.force, p.torque, PlaneDamping)
}
