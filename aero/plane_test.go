package aero

import (
	"math"
	"testing"

	"github.com/milk9111/flightsim/physics"
	"github.com/milk9111/flightsim/tilemap"
	"github.com/milk9111/flightsim/vmath"
)

const eps = 1e-9

func TestAoAZeroAtRest(t *testing.T) {
	cases := []struct {
		name string
		vel  vmath.Vec2
		rot  float64
	}{
		{"still", vmath.Vec2{}, 0},
		{"creeping", vmath.V2(0.5, 0.5), 1},
		{"tilted", vmath.V2(0, 0.99), -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlane()
			p.Body.Velocity = c.vel
			p.Body.Rotation = c.rot
			if p.WingsAoA() != 0 || p.ElevatorAoA() != 0 {
				t.Fatalf("expected zero aoa, got %v / %v", p.WingsAoA(), p.ElevatorAoA())
			}
			if f := p.WingletForce(p.Wings); f != (vmath.Vec2{}) {
				t.Fatalf("expected no winglet force, got %v", f)
			}
		})
	}
}

func TestWingletAoA(t *testing.T) {
	p := NewPlane()
	p.Body.Velocity = vmath.V2(10, 0)

	if got := p.WingsAoA(); math.Abs(got-3*vmath.Deg) > eps {
		t.Fatalf("expected wing pitch as aoa, got %v", got)
	}
	if got := p.ElevatorAoA(); math.Abs(got) > eps {
		t.Fatalf("expected zero elevator aoa, got %v", got)
	}

}

func TestWingletAoAAcrossSeam(t *testing.T) {
	p := NewPlane()
	// flying backwards along -x, nose just under +pi, heading just over -pi
	p.Body.Rotation = math.Pi - 0.01
	p.Body.Velocity = vmath.V2(-10, -0.2)

	heading := math.Atan2(-0.2, -10)
	want := math.Pi - 0.01 - heading + 3*vmath.Deg
	if got := p.WingsAoA(); math.Abs(got-want) > eps {
		t.Fatalf("aoa = %v, want %v", got, want)
	}
	if p.WingsAoA() <= math.Pi {
		t.Fatalf("aoa wrapped to %v", p.WingsAoA())
	}
	if l := p.WingletLift(p.Wings); l != (vmath.Vec2{}) {
		t.Fatalf("expected no lift past the seam, got %v", l)
	}
	if d := p.WingletInducedDrag(p.Wings); d.Dot(p.Body.Velocity) >= 0 {
		t.Fatalf("drag should oppose motion, got %v", d)
	}
}

func TestWingletDragAndLift(t *testing.T) {
	p := NewPlane()
	p.Body.Velocity = vmath.V2(10, 0)

	drag := p.WingletInducedDrag(p.Wings)
	wantDrag := math.Sin(3*vmath.Deg) * 100
	if math.Abs(drag.X+wantDrag) > eps || math.Abs(drag.Y) > eps {
		t.Fatalf("expected (%v, 0), got %v", -wantDrag, drag)
	}

	lift := p.WingletLift(p.Wings)
	wantLift := wantDrag * 15 * math.Cos(3*vmath.Deg)
	if math.Abs(lift.X) > eps || math.Abs(lift.Y-wantLift) > 1e-6 {
		t.Fatalf("expected upward lift %v, got %v", wantLift, lift)
	}

	p.Elevator.Pitch = -5 * vmath.Deg
	if l := p.WingletLift(p.Elevator); l.Y >= 0 {
		t.Fatalf("negative aoa should push down, got %v", l)
	}
}

func TestLiftVanishesPastNinetyDegrees(t *testing.T) {
	p := NewPlane()
	p.Body.Velocity = vmath.V2(10, 0)
	p.Body.Rotation = 100 * vmath.Deg

	if l := p.WingletLift(p.Wings); l != (vmath.Vec2{}) {
		t.Fatalf("expected no lift, got %v", l)
	}
	if d := p.WingletInducedDrag(p.Wings); d.X >= 0 {
		t.Fatalf("drag should still oppose motion, got %v", d)
	}
}

func TestPlaneFreeFall(t *testing.T) {
	p := NewPlane()
	p.Tick(0.001, physics.Open{})

	if math.Abs(p.Body.Velocity.Y-(-9.81*0.001)) > eps {
		t.Fatalf("expected vy %v, got %v", -9.81*0.001, p.Body.Velocity.Y)
	}
	if p.Body.Position.Y >= 6.5 {
		t.Fatalf("plane did not fall: %v", p.Body.Position.Y)
	}
	f, torque := p.Force()
	if math.Abs(f.Y+p.Weight()) > eps || math.Abs(torque) > eps {
		t.Fatalf("expected pure weight, got %v %v", f, torque)
	}
}

func TestPropellerTorqueUsesBodyFrameArm(t *testing.T) {
	cases := []struct {
		name string
		rot  float64
	}{
		{"level", 0},
		{"nose up", math.Pi / 2},
		{"inverted", math.Pi},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := NewPlane()
			p.Body.Rotation = c.rot
			p.Elevator.Pitch = 0
			p.Wings.Pitch = 0
			p.SetThrottle(1000)
			p.UpdateForces(physics.Open{})

			// the propeller pushes along the body x axis at the arm (2, 0),
			// whatever the attitude
			_, torque := p.Force()
			want := vmath.V2(propellerOffset, 0).Cross(vmath.V2(math.Cos(c.rot), math.Sin(c.rot)).Scale(1000))
			if math.Abs(torque-want) > 1e-6 {
				t.Fatalf("torque = %v, want %v", torque, want)
			}
		})
	}
}

func TestTickZeroOnlyRefreshesForces(t *testing.T) {
	p := NewPlane()
	before := p.Body
	p.Tick(0, tilemap.Airstrip(64, 64))

	if p.Body.Position != before.Position || p.Body.Velocity != before.Velocity {
		t.Fatalf("dt=0 moved the plane")
	}
	if len(p.Forces) == 0 {
		t.Fatalf("forces not refreshed")
	}
}

func TestWheelContact(t *testing.T) {
	p := NewPlane()
	p.Body.Position = vmath.V2(8, 5.9)
	grid := tilemap.Airstrip(64, 64)

	p.UpdateForces(grid)

	// weight, propeller, one embedded wheel, two winglets, fuselage
	if len(p.Forces) != 6 {
		t.Fatalf("expected 6 forces, got %d", len(p.Forces))
	}
	wheel := p.Forces[2]
	if wheel.RelPos != p.Wheels[1] {
		t.Fatalf("expected the front wheel in contact, got %v", wheel.RelPos)
	}
	// wheel sits at y=4.5, so the probe climbs about half a tile
	if wheel.Vector.Y < 14000 || wheel.Vector.Y > 16000 {
		t.Fatalf("unexpected spring force %v", wheel.Vector)
	}
}

func TestWheelProbeDepthCapped(t *testing.T) {
	p := NewPlane()
	p.Body.Position = vmath.V2(8, 0)
	solid := physics.TerrainFunc(func(vmath.Vec2) bool { return false })

	p.UpdateForces(solid)

	limit := wheelSpringK * p.Body.Mass * (wheelMaxDepth + wheelProbeStep)
	for _, f := range p.Forces[2:4] {
		if f.Vector.Y > limit {
			t.Fatalf("probe depth not capped: %v", f.Vector)
		}
	}
}

func TestThrottle(t *testing.T) {
	p := NewPlane()
	p.SetThrottle(5000)
	if p.Throttle() != p.MaxPropellerForce {
		t.Fatalf("expected clamp to max, got %v", p.Throttle())
	}
	p.SetThrottle(-1)
	if p.Throttle() != 0 {
		t.Fatalf("expected clamp to zero, got %v", p.Throttle())
	}

	p.SetThrottle(1000)
	p.UpdateForces(physics.Open{})
	prop := p.Forces[1]
	if prop.Vector != vmath.V2(1000, 0) || prop.RelPos != vmath.V2(2, 0) {
		t.Fatalf("unexpected propeller force %v", prop)
	}
}

func TestDerived(t *testing.T) {
	p := NewPlane()
	if got := p.BaseDrag(); math.Abs(got-1.4) > eps {
		t.Fatalf("expected 1.4, got %v", got)
	}
	if got := p.BaseSpeed(); math.Abs(got-math.Sqrt(2000/1.4)) > eps {
		t.Fatalf("unexpected base speed %v", got)
	}
	if got := p.Weight(); math.Abs(got-9810) > eps {
		t.Fatalf("expected 9810, got %v", got)
	}
}
