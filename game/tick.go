package game

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/flightsim/tilemap"
	"github.com/milk9111/flightsim/vmath"
)

const (
	// FixedDT is the physics timestep in seconds.
	FixedDT = 0.001
	// InnerTicksPerFrame at timewarp 1, assuming 60 displayed frames per
	// second.
	InnerTicksPerFrame = 16
	// frameSeconds advances the camera scroll tween once per frame.
	frameSeconds = 1.0 / 60.0
)

var plotLabels = []string{
	"t (s)",
	"x position (m)",
	"y position (m)",
	"x velocity (m/s)",
	"y velocity (m/s)",
	"x acceleration (m/s²)",
	"y acceleration (m/s²)",
	"pitch (deg)",
	"rot. vel (deg/s)",
	"torque (deg/s²)",
	"aoa (deg)",
	"lift (N)",
	"drag (N)",
	"G force",
}

// Tick advances one displayed frame.
func (s *State) Tick() {
	s.TickAt(time.Now())
}

// TickAt advances one displayed frame with now as the wall-clock time.
func (s *State) TickAt(now time.Time) {
	defer s.Diag.Start("tick")()

	s.Stats.StartFrame()
	s.tickFPSCounter(now)

	// inputs are processed even when paused so the camera still moves
	s.tickInputs()

	if s.Debug.PauseAllSystems {
		if s.Plane != nil {
			s.Plane.Tick(0, s.Tilemap)
		}
		if s.Debug.ForceRecordPlots {
			s.recordPlot()
		}
	} else {
		for range InnerTicksPerFrame * s.Debug.Timewarp {
			s.innerTick()
		}
	}

	// commands queued by the UI while paused
	s.ExecCommandQueue()
	s.gc()

	s.tickCamera()
	s.checkCrash()

	s.LastFrameCPUMicros = time.Since(now).Microseconds()
	s.Diag.Record("crablets", s.Crablets.Len())
	s.Diag.Record("plankton", s.Plankton.Len())
	s.Diag.Record("frame", s.Frame)
}

// innerTick runs every system once with the fixed timestep.
func (s *State) innerTick() {
	s.Frame++
	s.Stats.Inc(EventInnerTick)
	s.systems.Update(s, FixedDT)
	s.ExecCommandQueue()
	s.gc()
	s.recordPlot()
}

// ExecCommandQueue runs the queued commands and counts those that applied.
func (s *State) ExecCommandQueue() {
	if n := s.Commands.Exec(s); n > 0 {
		s.Stats.Add(EventCommand, uint64(n))
	}
}

// gc flushes the deferred inserts and removals of both arenas.
func (s *State) gc() {
	s.Crablets.ApplyPending()
	s.Plankton.ApplyPending()
}

func (s *State) recordPlot() {
	p := s.Plane
	if p == nil {
		return
	}
	t := float64(s.Frame) * FixedDT
	s.Plotter.Push(func() []float64 {
		b := &p.Body
		return []float64{
			t,
			b.Position.X,
			b.Position.Y,
			b.Velocity.X,
			b.Velocity.Y,
			b.Acceleration.X,
			b.Acceleration.Y,
			b.Rotation / vmath.Deg,
			b.AngularVelocity / vmath.Deg,
			b.AngularAccel / vmath.Deg,
			p.WingsAoA() / vmath.Deg,
			p.WingletLift(p.Wings).Len(),
			p.WingletInducedDrag(p.Wings).Len(),
			b.Acceleration.Add(vmath.V2(0, p.Gravity)).Len() / p.Gravity,
		}
	})
}

func (s *State) tickFPSCounter(now time.Time) {
	micros := int64(1)
	if !s.lastFrame.IsZero() {
		micros = now.Sub(s.lastFrame).Microseconds()
	}
	s.lastFrame = now
	s.LastFrameMicros = min(max(micros, 1), 1000)

	fps := 1 / (float64(s.LastFrameMicros) / 1e6)
	s.LastFPS = 0.95*s.LastFPS + 0.05*fps
	if !vmath.IsFinite(s.LastFPS) {
		s.LastFPS = 0
	}
	s.FPSLabel = fmt.Sprintf("%.1f ms | %3.0f fps", float64(s.LastFrameCPUMicros)/1000, s.LastFPS)
}

func (s *State) tickCamera() {
	if s.Camera.Scrolling() {
		s.Camera.Update(frameSeconds)
		return
	}
	target, ok := s.followTarget()
	if !ok {
		return
	}
	a := vmath.Clamp(s.CameraFollowSpeed, 0, 1)
	s.CameraFollowBuf = s.CameraFollowBuf.Lerp(target, a)
	if s.CameraFollows {
		s.Camera.Position = s.Camera.Position.Lerp(s.CameraFollowBuf, a)
	}
	if !s.Camera.Position.IsFinite() || !s.CameraFollowBuf.IsFinite() {
		s.Camera.Position = vmath.Vec2{}
		s.CameraFollowBuf = vmath.Vec2{}
	}
}

// checkCrash pauses the simulation once the plane drops below the ground.
func (s *State) checkCrash() {
	if s.Plane == nil || s.Debug.PauseAllSystems {
		return
	}
	pos := s.Plane.Position()
	if pos.Y >= 0 {
		return
	}
	s.Debug.PauseAllSystems = true
	s.Stats.Inc(EventCrash)
	s.log.Info("plane crashed",
		zap.Uint64("frame", s.Frame),
		zap.Float64("x", pos.X),
		zap.Float64("y", pos.Y),
		zap.Float64("speed", s.Plane.Body.Velocity.Len()),
	)
}

// tileXOffset is the draw offset of the wrapping airstrip under the plane.
func (s *State) tileXOffset() float64 {
	if s.Plane == nil || !s.Tilemap.WrapX {
		return 0
	}
	x := s.Plane.Position().X
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return tilemap.XOffset(x)
}
