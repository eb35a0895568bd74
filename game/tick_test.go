package game

import (
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/flightsim/vmath"
)

func TestTickFrames(t *testing.T) {
	tests := []struct {
		name     string
		timewarp int
		paused   bool
		want     uint64
	}{
		{"normal", 1, false, 16},
		{"timewarp", 3, false, 48},
		{"stopped", 0, false, 0},
		{"paused", 1, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAirplane()
			s.Debug.Timewarp = tt.timewarp
			s.Debug.PauseAllSystems = tt.paused
			s.Tick()
			if s.Frame != tt.want {
				t.Fatalf("frame = %d, want %d", s.Frame, tt.want)
			}
			if got := s.Stats.Frame[EventInnerTick]; got != tt.want {
				t.Fatalf("inner ticks = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPausedRefreshesForces(t *testing.T) {
	s := NewAirplane()
	s.Debug.PauseAllSystems = true
	before := s.Plane.Body
	s.Tick()
	if len(s.Plane.Forces) == 0 {
		t.Fatalf("expected forces to be refreshed while paused")
	}
	if s.Plane.Body.Position != before.Position || s.Plane.Body.Velocity != before.Velocity {
		t.Fatalf("paused plane moved")
	}
	if s.Plotter.Len() != 0 {
		t.Fatalf("paused tick recorded a sample")
	}

	s.Debug.ForceRecordPlots = true
	s.Tick()
	if s.Plotter.Len() != 1 {
		t.Fatalf("ForceRecordPlots should record, got %d samples", s.Plotter.Len())
	}
}

func TestGravityAndRecord(t *testing.T) {
	s := NewAirplane()
	s.Plane.Body.Position = vmath.V2(100, 500)
	s.Tick()

	want := -9.81 * 16 * FixedDT
	if v := s.Plane.Body.Velocity.Y; math.Abs(v-want) > 1e-3 {
		t.Fatalf("vy = %v, want about %v", v, want)
	}
	if s.Plotter.Len() != 16 {
		t.Fatalf("expected one sample per inner tick, got %d", s.Plotter.Len())
	}
	if got := s.Plotter.Data[0][15]; math.Abs(got-0.016) > 1e-12 {
		t.Fatalf("last t = %v", got)
	}
}

func TestCrashPauses(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewAirplane()
	s.SetLogger(zap.New(core))
	s.Plane.Body.Position = vmath.V2(100, -1)

	s.Tick()
	if !s.Paused() {
		t.Fatalf("crash should pause")
	}
	if s.Stats.Frame[EventCrash] != 1 {
		t.Fatalf("crash not counted")
	}
	if logs.FilterMessage("plane crashed").Len() != 1 {
		t.Fatalf("crash not logged")
	}

	s.Tick()
	if s.Stats.Frame[EventCrash] != 0 {
		t.Fatalf("crash counted again while paused")
	}
}

func TestFPSCounter(t *testing.T) {
	s := NewAirplane()
	s.Debug.PauseAllSystems = true
	now := time.Unix(100, 0)

	s.TickAt(now)
	if s.LastFrameMicros != 1 || math.Abs(s.LastFPS-0.05*1e6) > 1e-6 {
		t.Fatalf("first frame: %d us, %v fps", s.LastFrameMicros, s.LastFPS)
	}

	s.TickAt(now.Add(500 * time.Microsecond))
	if s.LastFrameMicros != 500 {
		t.Fatalf("frame micros = %d", s.LastFrameMicros)
	}
	if want := 0.95*0.05*1e6 + 0.05*2000; math.Abs(s.LastFPS-want) > 1e-6 {
		t.Fatalf("fps = %v, want %v", s.LastFPS, want)
	}

	s.TickAt(now.Add(time.Second))
	if s.LastFrameMicros != 1000 {
		t.Fatalf("frame micros should clamp to 1000, got %d", s.LastFrameMicros)
	}
	if s.FPSLabel == "" {
		t.Fatalf("empty fps label")
	}
}

func TestCameraFollow(t *testing.T) {
	s := NewAirplane()
	s.Debug.PauseAllSystems = true
	s.Camera.Position = vmath.Vec2{}
	s.CameraFollowBuf = vmath.Vec2{}
	target := s.Plane.Position()

	s.Tick()
	want := target.Scale(0.4 * 0.4)
	if d := s.Camera.Position.Sub(want).Len(); d > 1e-9 {
		t.Fatalf("camera = %v, want %v", s.Camera.Position, want)
	}

	s.CameraFollowBuf = vmath.V2(math.NaN(), 0)
	s.Tick()
	if s.Camera.Position != (vmath.Vec2{}) {
		t.Fatalf("non-finite camera should reset, got %v", s.Camera.Position)
	}
}

func TestExecCommandQueue(t *testing.T) {
	s := newTestTank(t)
	var order []int
	s.Commands.Push(func(*State) { order = append(order, 1) })
	s.Commands.PushMaybe(func(*State) bool { order = append(order, 2); return false })
	s.Commands.Push(func(st *State) {
		order = append(order, 3)
		st.Commands.Push(func(*State) { order = append(order, 4) })
	})

	s.ExecCommandQueue()
	if len(order) != 3 || order[0] != 1 || order[2] != 3 {
		t.Fatalf("unexpected order %v", order)
	}
	if s.Stats.Frame[EventCommand] != 2 {
		t.Fatalf("counted %d commands", s.Stats.Frame[EventCommand])
	}
	if s.Commands.Len() != 1 {
		t.Fatalf("nested command should wait for the next flush")
	}
}

func TestManualTickWhilePaused(t *testing.T) {
	s := NewAirplane()
	s.Debug.PauseAllSystems = true
	s.ManualTick()
	s.Tick()
	if s.Frame != 1 {
		t.Fatalf("frame = %d, want 1", s.Frame)
	}
}

func TestRespawn(t *testing.T) {
	s := newTestTank(t)
	s.RespawnFrames = 4
	s.PlanktonCap = 2
	s.RespawnTimer.SetAlarm(0, 4)

	s.Tick()
	if s.Plankton.Len() != 2 {
		t.Fatalf("plankton = %d, want cap 2", s.Plankton.Len())
	}
	if s.Stats.Frame[EventPlanktonSpawned] != 2 {
		t.Fatalf("spawned = %d", s.Stats.Frame[EventPlanktonSpawned])
	}
}
