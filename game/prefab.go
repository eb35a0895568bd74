package game

import (
	"strings"

	"go.uber.org/zap"

	"github.com/milk9111/flightsim/aero"
	"github.com/milk9111/flightsim/physics"
	"github.com/milk9111/flightsim/prefabs"
	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/vmath"
)

func vec(v prefabs.Vec2Spec) vmath.Vec2 {
	return vmath.V2(v.X, v.Y)
}

// bodyFromSpec builds a resting body. Inertia comes from the shape when the
// spec leaves it at zero, and falls back to 1.
func bodyFromSpec(spec prefabs.BodySpec) physics.RigidBody {
	b := physics.NewRigidBody(vec(spec.Position))
	if spec.Mass > 0 {
		b.Mass = spec.Mass
	}
	switch {
	case spec.Inertia > 0:
		b.Inertia = spec.Inertia
	case strings.EqualFold(spec.Shape.Kind, "box") && spec.Shape.Width > 0 && spec.Shape.Height > 0:
		b.Inertia = physics.MomentForBox(b.Mass, spec.Shape.Width, spec.Shape.Height)
	case strings.EqualFold(spec.Shape.Kind, "disc") && spec.Shape.Radius > 0:
		b.Inertia = physics.MomentForDisc(b.Mass, spec.Shape.Radius)
	}
	return b
}

func wingletFromSpec(spec prefabs.WingletSpec) aero.Winglet {
	return aero.Winglet{
		Pos:        vec(spec.Pos),
		Pitch:      spec.PitchDeg * vmath.Deg,
		DragFactor: spec.DragFactor,
		LiftToDrag: spec.LiftToDrag,
	}
}

// PlaneFromSpec builds a plane, keeping the defaults for missing wheels.
func PlaneFromSpec(spec prefabs.PlaneSpec) *aero.Plane {
	p := aero.NewPlane()
	p.Body = bodyFromSpec(spec.Body)
	p.Gravity = spec.Gravity
	p.Wings = wingletFromSpec(spec.Wings)
	p.Elevator = wingletFromSpec(spec.Elevator)
	for i := range min(len(spec.Wheels), len(p.Wheels)) {
		p.Wheels[i] = vec(spec.Wheels[i])
	}
	p.BodyDrag = spec.BodyDrag
	p.MaxPropellerForce = spec.MaxPropellerForce
	p.DrawForces = spec.DrawForces
	return p
}

func CrabletFromSpec(spec prefabs.CrabletSpec) Crablet {
	c := NewCrablet(vmath.Vec2{})
	c.Name = spec.Name
	if s, ok := render.SpriteByName(spec.Sprite); ok {
		c.Sprite = s
	}
	if spec.Scale > 0 {
		c.Scale = spec.Scale
	}
	c.Tint = spec.Tint.RGBA8(c.Tint)
	c.Body = bodyFromSpec(spec.Body)
	c.Brain = Brain{
		Weights: vmath.Mat2(spec.Brain.Weights),
		Biases:  vmath.V2(spec.Brain.Biases[0], spec.Brain.Biases[1]),
	}
	return c
}

func PlanktonFromSpec(spec prefabs.PlanktonSpec) Plankton {
	p := NewPlankton(vmath.Vec2{})
	if s, ok := render.SpriteByName(spec.Sprite); ok {
		p.Sprite = s
	}
	if spec.Scale > 0 {
		p.Scale = spec.Scale
	}
	p.Body = bodyFromSpec(spec.Body)
	return p
}

// WithPrefabs sets the entity templates of o from the loaded prefabs.
func (o Options) WithPrefabs(set prefabs.Set) Options {
	if set.Plane != nil {
		o.Plane = PlaneFromSpec(*set.Plane)
	}
	if set.Crablet != nil {
		c := CrabletFromSpec(*set.Crablet)
		o.CrabletTemplate = &c
	}
	if set.Plankton != nil {
		p := PlanktonFromSpec(*set.Plankton)
		o.PlanktonTemplate = &p
	}
	return o
}

// retuned returns the template t carrying the identity, motion and control
// state of c.
func (c *Crablet) retuned(t Crablet) Crablet {
	t.Name = c.Name
	t.Selected = c.Selected
	t.Body.Position = c.Body.Position
	t.Body.Velocity = c.Body.Velocity
	t.Body.Rotation = c.Body.Rotation
	t.Body.AngularVelocity = c.Body.AngularVelocity
	t.Retina = c.Retina
	t.ManualControl = c.ManualControl
	t.FlipperPower = c.FlipperPower
	t.FlipperTarget = c.FlipperTarget
	return t
}

// ApplyPrefabs queues a hot reload: templates are replaced, and the live
// plane and crablets take the new parameters while keeping their motion.
func (s *State) ApplyPrefabs(set prefabs.Set) {
	s.Commands.Push(func(s *State) {
		if set.Crablet != nil {
			s.CrabletTemplate = CrabletFromSpec(*set.Crablet)
			for id, c := range s.Crablets.All() {
				if err := s.Crablets.Set(id, c.retuned(s.CrabletTemplate)); err != nil {
					s.log.Warn("retune crablet", zap.Stringer("id", id), zap.Error(err))
				}
			}
		}
		if set.Plankton != nil {
			s.PlanktonTemplate = PlanktonFromSpec(*set.Plankton)
		}
		if set.Plane != nil && s.Plane != nil {
			fresh := PlaneFromSpec(*set.Plane)
			fresh.Body.Position = s.Plane.Body.Position
			fresh.Body.Velocity = s.Plane.Body.Velocity
			fresh.Body.Rotation = s.Plane.Body.Rotation
			fresh.Body.AngularVelocity = s.Plane.Body.AngularVelocity
			fresh.Elevator.Pitch = s.Plane.Elevator.Pitch
			fresh.SetThrottle(s.Plane.PropellerForce)
			s.Plane = fresh
		}
		s.log.Info("prefabs applied",
			zap.Bool("plane", set.Plane != nil),
			zap.Bool("crablet", set.Crablet != nil),
			zap.Bool("plankton", set.Plankton != nil),
		)
	})
}
