package game

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/vmath"
)

var (
	skyColor   = color.RGBA{R: 153, G: 179, B: 255, A: 255}
	waterColor = render.Blend(colornames.Steelblue, colornames.Midnightblue, 0.5)

	selectedTint = colornames.Gold
	manualTint   = colornames.Orangered
)

// DrawOn rebuilds sg from the current state.
func (s *State) DrawOn(sg *render.Scenegraph) {
	defer s.Diag.Start("draw")()

	sg.Clear()
	if s.Mode == ModeAquarium {
		sg.ClearColor = render.ClearColor(waterColor)
	} else {
		sg.ClearColor = render.ClearColor(skyColor)
	}
	sg.Camera = s.Camera.Matrix()

	if s.Debug.DrawAxes {
		drawAxes(sg)
	}
	if s.Debug.DrawTilemap {
		render.DrawTiles(sg, &s.Camera, s.Tilemap, s.tileXOffset())
	}

	sg.NewLayer()
	for p := range s.Plankton.Values() {
		q := render.NewQuad(p.Position(), p.Sprite)
		q.Scale = [2]float32{float32(p.Scale), float32(p.Scale)}
		q.Rotation = float32(p.Rotation())
		sg.Push(q)
	}

	sg.NewLayer()
	for c := range s.Crablets.Values() {
		q := render.NewQuad(c.Position(), c.Sprite)
		q.Scale = [2]float32{float32(c.Scale), float32(c.Scale)}
		q.Rotation = float32(c.Rotation())
		switch {
		case c.Selected && c.ManualControl:
			q.MixColor = render.MixColor(render.Blend(selectedTint, manualTint, 0.5), 0.6)
		case c.Selected:
			q.MixColor = render.MixColor(selectedTint, 0.5)
		case c.Tint.A > 0:
			q.MixColor = render.MixColor(c.Tint, 0.35)
		}
		sg.Push(q)
	}

	if s.Plane != nil {
		sg.NewLayer()
		s.Plane.Draw(sg)
	}
}

func drawAxes(sg *render.Scenegraph) {
	sg.PushCube(vmath.Vec3{}, colornames.White)
	sg.PushCube(vmath.UnitX3.Scale(2), colornames.Red)
	sg.PushCube(vmath.UnitY3.Scale(2), colornames.Lime)
	sg.PushCube(vmath.UnitZ3.Scale(2), colornames.Blue)
}
