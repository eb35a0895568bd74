package game

import (
	"image/color"

	"github.com/milk9111/flightsim/common"
	"github.com/milk9111/flightsim/ecs"
	"github.com/milk9111/flightsim/physics"
	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/vmath"
)

const (
	// plankton closer than this is eaten
	eatRadius = 0.5
	// slider smoothing of manually controlled flippers
	flipperSmoothing = 0.1
)

// Crablet swims on two flippers steered by a linear brain looking through a
// two-eyed retina.
type Crablet struct {
	ID       ecs.ID[Crablet] `msgpack:"id"`
	Name     string          `msgpack:"name"`
	Sprite   render.Sprite   `msgpack:"sprite"`
	Scale    float64         `msgpack:"scale"`
	Tint     color.RGBA      `msgpack:"tint"`
	Selected bool            `msgpack:"selected"`

	Body physics.RigidBody `msgpack:"body"`

	// Retina holds the left and right eye activation.
	Retina vmath.Vec2 `msgpack:"retina"`
	Brain  Brain      `msgpack:"brain"`

	ManualControl bool `msgpack:"manual_control"`
	// FlipperPower is the left and right actuation, -1 (full backwards)
	// to 1 (full forwards).
	FlipperPower vmath.Vec2 `msgpack:"flipper_power"`
	// FlipperTarget is where manual control drives FlipperPower.
	FlipperTarget vmath.Vec2 `msgpack:"flipper_target"`
}

func (c *Crablet) SetID(id ecs.ID[Crablet]) {
	c.ID = id
}

// DefaultBrain steers towards the brighter eye and swims forward when
// nothing is in view.
var DefaultBrain = Brain{
	Weights: vmath.Identity2,
	Biases:  vmath.Splat2(0.2),
}

func NewCrablet(pos vmath.Vec2) Crablet {
	return Crablet{
		Sprite: render.Crab,
		Scale:  1,
		Body:   physics.NewRigidBody(pos),
		Brain:  DefaultBrain,
	}
}

func (c *Crablet) Position() vmath.Vec2 {
	return c.Body.Position
}

func (c *Crablet) Rotation() float64 {
	return c.Body.Rotation
}

// Tick runs the retina, brain, feeding and physics of one inner tick.
func (c *Crablet) Tick(s *State, dt float64) {
	c.tickRetina(s)
	c.tickBrain()
	c.tickEat(s)
	c.tickPhysics(s, dt)
}

// tickRetina sums, per eye, the plankton in front of the crablet weighted by
// how centred they are and by inverse distance.
func (c *Crablet) tickRetina(s *State) {
	var retina vmath.Vec2
	inv := c.Body.InverseRotationMatrix()
	for p := range s.Plankton.Values() {
		world := p.Position().Sub(c.Position())
		dist := world.Len()
		rel := inv.MulVec(world)
		if rel.Y <= 0 || dist == 0 {
			continue
		}
		cosTheta := rel.Normalized().Y
		weight := cosTheta * vmath.Clamp(1/dist, 0, 1)
		if rel.X < 0 {
			retina.X += weight
		} else {
			retina.Y += weight
		}
	}
	c.Retina = retina
}

func (c *Crablet) tickBrain() {
	if c.ManualControl {
		c.FlipperPower = vmath.V2(
			common.Smooth(c.FlipperPower.X, c.FlipperTarget.X, flipperSmoothing),
			common.Smooth(c.FlipperPower.Y, c.FlipperTarget.Y, flipperSmoothing),
		)
		return
	}
	c.FlipperPower = c.Brain.Tick(c.Retina)
}

// tickEat stages the removal of every plankton within reach.
func (c *Crablet) tickEat(s *State) {
	for id, p := range s.Plankton.All() {
		if p.Eaten {
			continue
		}
		if p.Position().Sub(c.Position()).Len2() > eatRadius*eatRadius {
			continue
		}
		p.Eaten = true
		s.Plankton.DeferRemove(id)
		s.Stats.Inc(EventPlanktonEaten)
	}
}

func (c *Crablet) tickPhysics(s *State, dt float64) {
	left, right := c.FlipperPower.X, c.FlipperPower.Y
	force := c.Body.RotationMatrix().Col(1).Scale(left + right)
	torque := left - right
	if c.Body.Step(dt, s.Tilemap, force, torque, s.Damping).Any() {
		s.Stats.Inc(EventBounce)
	}
}
