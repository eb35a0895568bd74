package game

import (
	"github.com/milk9111/flightsim/vmath"
)

// PanSensitivity converts pan motion in pixels to screen units.
const PanSensitivity = 0.03

const (
	// fraction of the max propeller force added per frame while held
	throttleSteps = 100
	elevatorStep  = 60 * vmath.Deg / 100
	scrollSeconds = 0.6
)

// tickInputs applies the input snapshot. It runs even while paused.
func (s *State) tickInputs() {
	s.MousePos = s.Camera.ScreenToTile(s.Inputs.PointerPix)
	s.handleZoom()
	s.handlePan()
	s.handleKeys()
	s.handleClick()
	s.Inputs.Reset()
}

func (s *State) handleZoom() {
	if s.Inputs.ZoomFactor == 1 || s.Inputs.ZoomFactor <= 0 {
		return
	}
	s.Camera.SetZoom(s.Camera.Zoom * s.Inputs.ZoomFactor)
}

func (s *State) handlePan() {
	if s.Inputs.PanDelta == (vmath.Vec2{}) {
		return
	}
	s.Camera.CancelScroll()
	s.Camera.Pan(s.Inputs.PanDelta.Mul(vmath.V2(1, -1)).Scale(PanSensitivity))
}

func (s *State) handleKeys() {
	in := &s.Inputs
	if in.KeysPressed[KeySpace] {
		s.Debug.PauseAllSystems = !s.Debug.PauseAllSystems
		s.log.Sugar().Debugw("pause toggled", "paused", s.Debug.PauseAllSystems)
	}
	if in.KeysPressed[KeyHome] {
		if target, ok := s.followTarget(); ok {
			s.Camera.ScrollTo(target, scrollSeconds)
		}
	}

	p := s.Plane
	if p == nil {
		return
	}
	throttleStep := p.MaxPropellerForce / throttleSteps
	if in.KeysDown[KeyLeft] || in.KeysDown[KeyS] {
		p.SetThrottle(p.PropellerForce - throttleStep)
	}
	if in.KeysDown[KeyRight] || in.KeysDown[KeyF] {
		p.SetThrottle(p.PropellerForce + throttleStep)
	}
	if in.KeysDown[KeyDown] || in.KeysDown[KeyD] {
		p.Elevator.Pitch -= elevatorStep
	}
	if in.KeysDown[KeyUp] || in.KeysDown[KeyE] {
		p.Elevator.Pitch += elevatorStep
	}
}

func (s *State) handleClick() {
	if s.Inputs.MouseJustPressed {
		s.SelectAt(s.MousePos)
	}
}
