package game

import (
	"github.com/milk9111/flightsim/ecs"
	"github.com/milk9111/flightsim/physics"
	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/vmath"
)

// driftStrength scales the random force and torque on plankton.
const driftStrength = 0.5

// Plankton drifts randomly and is food for crablets.
type Plankton struct {
	ID       ecs.ID[Plankton]  `msgpack:"id"`
	Sprite   render.Sprite     `msgpack:"sprite"`
	Scale    float64           `msgpack:"scale"`
	Selected bool              `msgpack:"selected"`
	Body     physics.RigidBody `msgpack:"body"`

	// Eaten is set when a crablet has staged the removal.
	Eaten bool `msgpack:"-"`
}

func (p *Plankton) SetID(id ecs.ID[Plankton]) {
	p.ID = id
}

func NewPlankton(pos vmath.Vec2) Plankton {
	return Plankton{
		Sprite: render.Leaf,
		Scale:  0.35,
		Body:   physics.NewRigidBody(pos),
	}
}

func (p *Plankton) Position() vmath.Vec2 {
	return p.Body.Position
}

func (p *Plankton) Rotation() float64 {
	return p.Body.Rotation
}

// Tick applies a random drift. It does nothing unless TickPlankton is set.
func (p *Plankton) Tick(s *State, dt float64) {
	if !s.Debug.TickPlankton {
		return
	}
	rng := s.RNG.Rand()
	force := vmath.V2(rng.Float64()-0.5, rng.Float64()-0.5).Scale(driftStrength)
	torque := driftStrength * (rng.Float64() - 0.5)
	if p.Body.Step(dt, s.Tilemap, force, torque, s.Damping).Any() {
		s.Stats.Inc(EventBounce)
	}
}
