package game

import (
	"testing"

	"github.com/milk9111/flightsim/aero"
	"github.com/milk9111/flightsim/prefabs"
	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/vmath"
)

func TestPlaneFromEmbeddedSpec(t *testing.T) {
	prefabs.Dir = t.TempDir()
	t.Cleanup(func() { prefabs.Dir = "prefabs" })

	set, err := prefabs.LoadAll()
	if err != nil {
		t.Fatalf("load prefabs: %v", err)
	}
	got := PlaneFromSpec(*set.Plane)
	want := aero.NewPlane()

	if got.Body != want.Body {
		t.Fatalf("body %+v, want %+v", got.Body, want.Body)
	}
	if got.Wheels != want.Wheels || got.Elevator != want.Elevator {
		t.Fatalf("geometry differs: %+v", got)
	}
	if d := got.Wings.Pitch - want.Wings.Pitch; d > 1e-12 || d < -1e-12 {
		t.Fatalf("wing pitch %v, want %v", got.Wings.Pitch, want.Wings.Pitch)
	}

	c := CrabletFromSpec(*set.Crablet)
	if c.Sprite != render.Crab || c.Brain != DefaultBrain {
		t.Fatalf("unexpected crablet %+v", c)
	}
	if c.Body.Inertia != 0.125 {
		t.Fatalf("disc inertia = %v, want 0.125", c.Body.Inertia)
	}
}

func TestBodyFromSpec(t *testing.T) {
	tests := []struct {
		name string
		spec prefabs.BodySpec
		mass float64
		in   float64
	}{
		{"defaults", prefabs.BodySpec{}, 1, 1},
		{"explicit", prefabs.BodySpec{Mass: 2, Inertia: 3}, 2, 3},
		{"box", prefabs.BodySpec{Mass: 12, Shape: prefabs.ShapeSpec{Kind: "box", Width: 1, Height: 2}}, 12, 5},
		{"disc", prefabs.BodySpec{Mass: 2, Shape: prefabs.ShapeSpec{Kind: "Disc", Radius: 1}}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := bodyFromSpec(tt.spec)
			if b.Mass != tt.mass || b.Inertia != tt.in {
				t.Fatalf("mass %v inertia %v, want %v %v", b.Mass, b.Inertia, tt.mass, tt.in)
			}
		})
	}
}

func TestApplyPrefabsKeepsMotion(t *testing.T) {
	s := NewAirplane()
	s.Plane.Body.Velocity = vmath.V2(30, 1)
	s.Plane.Elevator.Pitch = 0.1
	s.Plane.SetThrottle(500)

	spec := prefabs.PlaneSpec{Body: prefabs.BodySpec{Mass: 500, Inertia: 800}, Gravity: 9.81, MaxPropellerForce: 4000}
	s.ApplyPrefabs(prefabs.Set{Plane: &spec})
	s.ExecCommandQueue()

	if s.Plane.Body.Mass != 500 || s.Plane.MaxPropellerForce != 4000 {
		t.Fatalf("parameters not applied: %+v", s.Plane.Body)
	}
	if s.Plane.Body.Velocity != vmath.V2(30, 1) || s.Plane.Elevator.Pitch != 0.1 || s.Plane.PropellerForce != 500 {
		t.Fatalf("motion lost: %+v", s.Plane)
	}
}

func TestApplyPrefabsRetunesCrablets(t *testing.T) {
	s := newTestTank(t)
	id := s.Crablets.Insert(NewCrablet(vmath.V2(4, 4)))
	c := s.Crablets.MustGet(id)
	c.Name = "pinchy"
	c.Body.Velocity = vmath.V2(0.5, -0.25)
	c.Body.Rotation = 1
	c.ManualControl = true
	c.FlipperTarget = vmath.V2(1, -1)
	s.selectCrablet(id)

	spec := prefabs.CrabletSpec{
		Scale: 2,
		Body:  prefabs.BodySpec{Mass: 3, Inertia: 4},
		Brain: prefabs.BrainSpec{Weights: [2][2]float64{{0, 1}, {1, 0}}, Biases: [2]float64{0.5, 0.5}},
	}
	s.ApplyPrefabs(prefabs.Set{Crablet: &spec})
	s.ExecCommandQueue()

	got := s.Crablets.MustGet(id)
	if got.Scale != 2 || got.Body.Mass != 3 || got.Body.Inertia != 4 || got.Brain.Biases != vmath.Splat2(0.5) {
		t.Fatalf("parameters not applied: %+v", got)
	}
	if got.ID != id || got.Name != "pinchy" || !got.Selected {
		t.Fatalf("identity lost: %+v", got)
	}
	if got.Body.Position != vmath.V2(4, 4) || got.Body.Velocity != vmath.V2(0.5, -0.25) || got.Body.Rotation != 1 {
		t.Fatalf("motion lost: %+v", got.Body)
	}
	if !got.ManualControl || got.FlipperTarget != vmath.V2(1, -1) {
		t.Fatalf("manual control lost: %+v", got)
	}
	if s.CrabletTemplate.Scale != 2 {
		t.Fatalf("template not replaced")
	}
}
