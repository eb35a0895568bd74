package game

import "github.com/milk9111/flightsim/vmath"

// Brain is a single linear layer from retina to flipper power.
type Brain struct {
	Weights vmath.Mat2 `msgpack:"weights" yaml:"weights"`
	Biases  vmath.Vec2 `msgpack:"biases" yaml:"biases"`
}

// Tick returns Weights * input + Biases.
func (b *Brain) Tick(input vmath.Vec2) vmath.Vec2 {
	return b.Weights.MulVec(input).Add(b.Biases)
}
