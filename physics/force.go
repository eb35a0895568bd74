package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/flightsim/vmath"
)

// Force is a force vector applied at a body-frame offset.
type Force struct {
	RelPos vmath.Vec2 `msgpack:"rel_pos"`
	Vector vmath.Vec2 `msgpack:"vector"`
}

// SumForces adds up forces and their torque around the centre of mass.
// Torque uses the body-frame offset as the lever arm.
func SumForces(forces []Force) (vmath.Vec2, float64) {
	var total vmath.Vec2
	var torque float64
	for _, f := range forces {
		total = total.Add(f.Vector)
		torque += f.RelPos.Cross(f.Vector)
	}
	return total, torque
}

// MomentForBox is the moment of inertia of a solid box around its centre.
func MomentForBox(mass, width, height float64) float64 {
	return cp.MomentForBox(mass, width, height)
}

// MomentForDisc is the moment of inertia of a solid disc around its centre.
func MomentForDisc(mass, radius float64) float64 {
	return cp.MomentForCircle(mass, 0, radius, cp.Vector{})
}
