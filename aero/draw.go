package aero

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/vmath"
)

const (
	metersPerNewton = 1.0 / 500.0
	arrowZ          = 2.0
)

var (
	forceColor    = colornames.Red
	velocityColor = colornames.Blue
)

// Draw pushes the fuselage, winglets, wheels and centre of mass, plus force
// and velocity arrows when DrawForces is set.
func (p *Plane) Draw(sg *render.Scenegraph) {
	fuselage := render.NewQuad(p.Position(), render.Plane)
	fuselage.Scale = [2]float32{8, 4}
	fuselage.Rotation = float32(p.Pitch())
	sg.Push(fuselage)

	p.drawPart(sg, render.Wing, p.Wings.Pos, p.Wings.Pitch, [2]float32{2.5, 1.25})
	p.drawPart(sg, render.Wing, p.Elevator.Pos, p.Elevator.Pitch, [2]float32{1.75, 0.75})
	for _, w := range p.Wheels {
		p.drawPart(sg, render.Wheel, w, 0, [2]float32{0.7, 0.7})
	}
	p.drawPart(sg, render.Center, vmath.Vec2{}, 0, [2]float32{0.5, 0.5})

	if !p.DrawForces {
		return
	}
	for _, f := range p.Forces {
		p.drawArrow(sg, f.RelPos, f.Vector.Scale(metersPerNewton), forceColor)
	}
	p.drawArrow(sg, vmath.Vec2{}, p.Body.Velocity.Scale(0.1), velocityColor)
}

func (p *Plane) drawPart(sg *render.Scenegraph, s render.Sprite, rel vmath.Vec2, rot float64, scale [2]float32) {
	pos, r := p.Body.TransformFrame(rel, rot)
	q := render.NewQuad(pos, s)
	q.Scale = scale
	q.Rotation = float32(r)
	sg.Push(q)
}

func (p *Plane) drawArrow(sg *render.Scenegraph, rel, vector vmath.Vec2, c color.RGBA) {
	sg.PushArrow(p.Body.TransformRelPos(rel), vector, arrowZ, c)
}
