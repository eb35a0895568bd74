package game

import "github.com/milk9111/flightsim/vmath"

// Key is a keyboard key the simulation reacts to.
type Key uint8

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyS
	KeyF
	KeyE
	KeyD
	KeySpace
	KeyHome
)

// Inputs is the input snapshot of one displayed frame. The window layer
// fills it, tickInputs consumes it.
type Inputs struct {
	// PointerPix is the pointer position in pixels, y down.
	PointerPix vmath.Vec2
	// PanDelta is accumulated drag/scroll motion in pixels.
	PanDelta vmath.Vec2
	// ZoomFactor multiplies the camera zoom; 1 means no change.
	ZoomFactor float64

	MouseDown         bool
	MouseJustPressed  bool
	MouseJustReleased bool

	// KeysDown holds keys held this frame, KeysPressed those that went
	// down this frame.
	KeysDown    map[Key]bool
	KeysPressed map[Key]bool
}

func NewInputs() Inputs {
	return Inputs{
		ZoomFactor:  1,
		KeysDown:    make(map[Key]bool),
		KeysPressed: make(map[Key]bool),
	}
}

// Press records k as pressed this frame and held.
func (in *Inputs) Press(k Key) {
	in.ensure()
	in.KeysDown[k] = true
	in.KeysPressed[k] = true
}

// Hold records k as held this frame.
func (in *Inputs) Hold(k Key) {
	in.ensure()
	in.KeysDown[k] = true
}

func (in *Inputs) Zoom(factor float64) {
	in.ZoomFactor *= factor
}

func (in *Inputs) Pan(delta vmath.Vec2) {
	in.PanDelta = in.PanDelta.Add(delta)
}

// Reset clears per-frame state. Held keys are re-recorded every frame.
func (in *Inputs) Reset() {
	in.PanDelta = vmath.Vec2{}
	in.ZoomFactor = 1
	in.MouseJustPressed = false
	in.MouseJustReleased = false
	clear(in.KeysDown)
	clear(in.KeysPressed)
}

func (in *Inputs) ensure() {
	if in.KeysDown == nil {
		in.KeysDown = make(map[Key]bool)
	}
	if in.KeysPressed == nil {
		in.KeysPressed = make(map[Key]bool)
	}
}
