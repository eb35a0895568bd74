package aero

import "github.com/milk9111/flightsim/vmath"

// Winglet is a lifting surface attached to the plane body.
type Winglet struct {
	// Pos is the body-frame attachment point.
	Pos vmath.Vec2 `msgpack:"pos" yaml:"pos"`
	// Pitch is added to the body angle of attack, in radians.
	Pitch      float64 `msgpack:"pitch" yaml:"pitch"`
	DragFactor float64 `msgpack:"drag_factor" yaml:"drag_factor"`
	LiftToDrag float64 `msgpack:"lift_to_drag" yaml:"lift_to_drag"`
}
