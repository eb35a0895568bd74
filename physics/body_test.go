package physics

import (
	"math"
	"testing"

	"github.com/milk9111/flightsim/tilemap"
	"github.com/milk9111/flightsim/vmath"
)

const eps = 1e-9

func TestStepFreeFall(t *testing.T) {
	b := RigidBody{Mass: 1000, Inertia: 2000, Position: vmath.V2(8, 6.5)}
	gravity := vmath.V2(0, -9.81*b.Mass)

	contact := b.Step(0.001, tilemap.Airstrip(64, 64), gravity, 0, Damping{})

	if contact.Any() {
		t.Fatalf("unexpected contact %v", contact)
	}
	if math.Abs(b.Velocity.Y-(-9.81*0.001)) > eps {
		t.Fatalf("expected vy %v, got %v", -9.81*0.001, b.Velocity.Y)
	}
	if math.Abs(b.Position.Y-(6.5-9.81*0.001*0.001)) > eps {
		t.Fatalf("unexpected y %v", b.Position.Y)
	}
	if b.Position.X != 8 {
		t.Fatalf("x moved: %v", b.Position.X)
	}
}

func TestStepBouncesOffRunway(t *testing.T) {
	b := RigidBody{Mass: 1000, Inertia: 2000, Position: vmath.V2(8, 6.5)}
	grid := tilemap.Airstrip(64, 64)
	gravity := vmath.V2(0, -9.81*b.Mass)

	bounced := false
	for i := 0; i < 5000 && !bounced; i++ {
		before := b.Velocity.Y
		contact := b.Step(0.001, grid, gravity, 0, Damping{})
		if b.Position.Y < 5 {
			t.Fatalf("tunneled into runway at step %d: y=%v", i, b.Position.Y)
		}
		if contact&ContactY != 0 {
			bounced = true
			if b.Velocity.Y <= 0 {
				t.Fatalf("expected upward velocity after bounce, got %v", b.Velocity.Y)
			}
			if b.Velocity.Y >= -before {
				t.Fatalf("bounce gained energy: before %v after %v", before, b.Velocity.Y)
			}
		}
	}
	if !bounced {
		t.Fatalf("body never reached the runway")
	}
}

func TestStepAxisSeparation(t *testing.T) {
	ceiling := TerrainFunc(func(p vmath.Vec2) bool { return p.Y < 1 })
	b := NewRigidBody(vmath.V2(0.5, 0.9))
	b.Velocity = vmath.V2(10, 10)

	contact := b.Step(0.02, ceiling, vmath.Vec2{}, 0, Damping{})

	if contact != ContactY {
		t.Fatalf("expected y contact only, got %v", contact)
	}
	if math.Abs(b.Position.X-0.7) > eps || math.Abs(b.Position.Y-0.9) > eps {
		t.Fatalf("expected (0.7, 0.9), got %v", b.Position)
	}
	if b.Velocity.X != 10 || b.Velocity.Y != -5 {
		t.Fatalf("expected (10, -5), got %v", b.Velocity)
	}
}

func TestStepBothAxesBlocked(t *testing.T) {
	solid := TerrainFunc(func(vmath.Vec2) bool { return false })
	b := NewRigidBody(vmath.V2(1, 1))
	b.Velocity = vmath.V2(2, -4)

	contact := b.Step(0.01, solid, vmath.Vec2{}, 0, Damping{})

	if contact != ContactX|ContactY {
		t.Fatalf("expected both contacts, got %v", contact)
	}
	if b.Position != vmath.V2(1, 1) {
		t.Fatalf("position changed: %v", b.Position)
	}
	if b.Velocity != vmath.V2(-1, 2) {
		t.Fatalf("expected (-1, 2), got %v", b.Velocity)
	}
}

func TestStepRotationWrap(t *testing.T) {
	cases := []struct {
		name   string
		start  float64
		angvel float64
	}{
		{"forward", math.Pi - 0.001, 10},
		{"backward", -math.Pi + 0.001, -10},
		{"still", 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			b := NewRigidBody(vmath.Vec2{})
			b.Rotation = c.start
			b.AngularVelocity = c.angvel
			for i := 0; i < 10; i++ {
				b.Step(0.001, Open{}, vmath.Vec2{}, 0, Damping{})
				if b.Rotation > math.Pi || b.Rotation < -math.Pi {
					t.Fatalf("rotation escaped [-pi, pi]: %v", b.Rotation)
				}
			}
			want := vmath.WrapAngle(c.start + 10*0.001*c.angvel)
			if math.Abs(b.Rotation-want) > 1e-9 {
				t.Fatalf("expected %v, got %v", want, b.Rotation)
			}
		})
	}
}

func TestStepDamping(t *testing.T) {
	b := NewRigidBody(vmath.Vec2{})
	b.Velocity = vmath.V2(1, 0)
	b.AngularVelocity = 1

	b.Step(0.1, nil, vmath.Vec2{}, 0, Damping{Linear: 1, Angular: 2})

	if math.Abs(b.Velocity.X-0.9) > eps {
		t.Fatalf("expected 0.9, got %v", b.Velocity.X)
	}
	if math.Abs(b.AngularVelocity-0.8) > eps {
		t.Fatalf("expected 0.8, got %v", b.AngularVelocity)
	}
}

func TestCheckPanicsOnNaN(t *testing.T) {
	b := NewRigidBody(vmath.V2(math.NaN(), 0))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Check(&b)
}

func TestSumForces(t *testing.T) {
	forces := []Force{
		{RelPos: vmath.V2(1, 0), Vector: vmath.V2(0, 2)},
		{RelPos: vmath.Vec2{}, Vector: vmath.V2(3, 0)},
	}

	f, torque := SumForces(forces)
	if f != vmath.V2(3, 2) || math.Abs(torque-2) > eps {
		t.Fatalf("unexpected sum %v %v", f, torque)
	}
}

func TestSumForcesTorque(t *testing.T) {
	cases := []struct {
		name   string
		forces []Force
		want   float64
	}{
		{"arm along x", []Force{{RelPos: vmath.V2(1, 0), Vector: vmath.V2(0, 2)}}, 2},
		{"arm along y", []Force{{RelPos: vmath.V2(0, 1), Vector: vmath.V2(0, 2)}}, 0},
		{"opposing", []Force{
			{RelPos: vmath.V2(1, 0), Vector: vmath.V2(0, 2)},
			{RelPos: vmath.V2(-1, 0), Vector: vmath.V2(0, 2)},
		}, 0},
		{"negative", []Force{{RelPos: vmath.V2(2, 0), Vector: vmath.V2(0, -3)}}, -6},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, torque := SumForces(c.forces)
			if math.Abs(torque-c.want) > eps {
				t.Fatalf("torque = %v, want %v", torque, c.want)
			}
		})
	}
}

func TestVelocityOfRelPos(t *testing.T) {
	b := NewRigidBody(vmath.Vec2{})
	b.Velocity = vmath.V2(1, 0)
	b.AngularVelocity = 2

	v := b.VelocityOfRelPos(vmath.V2(0, 1))
	if math.Abs(v.X-(-1)) > eps || math.Abs(v.Y) > eps {
		t.Fatalf("expected (-1, 0), got %v", v)
	}
}

func TestMoments(t *testing.T) {
	if got := MomentForBox(12, 1, 1); math.Abs(got-2) > eps {
		t.Fatalf("box moment: expected 2, got %v", got)
	}
	if got := MomentForDisc(2, 1); math.Abs(got-1) > eps {
		t.Fatalf("disc moment: expected 1, got %v", got)
	}
}
