// Package game owns the simulation state: the plane, crablets and plankton,
// the tilemap they move through, and the frame scheduler that ticks them.
package game

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/flightsim/aero"
	"github.com/milk9111/flightsim/diag"
	"github.com/milk9111/flightsim/ecs"
	"github.com/milk9111/flightsim/physics"
	"github.com/milk9111/flightsim/render"
	"github.com/milk9111/flightsim/tilemap"
	"github.com/milk9111/flightsim/vmath"
)

// Mode selects which world New builds.
type Mode uint8

const (
	ModeAirplane Mode = iota
	ModeAquarium
)

func (m Mode) String() string {
	switch m {
	case ModeAirplane:
		return "airplane"
	case ModeAquarium:
		return "aquarium"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "airplane", "plane":
		return ModeAirplane, nil
	case "aquarium", "tank":
		return ModeAquarium, nil
	}
	return 0, fmt.Errorf("game: unknown mode %q", s)
}

// DebugOpts are toggled from the debug panel.
type DebugOpts struct {
	PauseAllSystems  bool `msgpack:"pause_all_systems"`
	TickPlankton     bool `msgpack:"tick_plankton"`
	ForceRecordPlots bool `msgpack:"force_record_plots"`
	DrawTilemap      bool `msgpack:"draw_tilemap"`
	DrawAxes         bool `msgpack:"draw_axes"`
	// Timewarp multiplies the inner ticks per frame.
	Timewarp int `msgpack:"timewarp"`
}

func DefaultDebugOpts() DebugOpts {
	return DebugOpts{
		TickPlankton: true,
		DrawTilemap:  true,
		Timewarp:     1,
	}
}

// Options configure New.
type Options struct {
	Mode     Mode
	Seed     uint64
	Timewarp int
	Damping  physics.Damping

	// Grid replaces the mode's default tilemap.
	Grid     *tilemap.Grid
	TankSize vmath.Vec2i

	// Crablets and Plankton are spawned at random water positions unless
	// explicit spawn points are given.
	Crablets       int
	Plankton       int
	CrabletSpawns  []vmath.Vec2
	PlanktonSpawns []vmath.Vec2
	PlanktonCap    int
	RespawnFrames  uint64

	// Templates for spawned entities; nil means the built-in defaults.
	Plane            *aero.Plane
	CrabletTemplate  *Crablet
	PlanktonTemplate *Plankton
}

func DefaultOptions(mode Mode) Options {
	return Options{
		Mode:          mode,
		Seed:          1,
		Timewarp:      1,
		Damping:       physics.Damping{Linear: 0.5, Angular: 0.5},
		TankSize:      vmath.V2i(64, 32),
		Crablets:      3,
		Plankton:      20,
		PlanktonCap:   40,
		RespawnFrames: 2000,
	}
}

// State is everything the simulation owns. Exported fields are the UI
// surface; structural changes go through Commands.
type State struct {
	Frame uint64 `msgpack:"frame"`
	Mode  Mode   `msgpack:"mode"`

	LastFrameMicros    int64   `msgpack:"-"`
	LastFrameCPUMicros int64   `msgpack:"-"`
	LastFPS            float64 `msgpack:"-"`
	FPSLabel           string  `msgpack:"-"`

	Camera        render.Camera `msgpack:"camera"`
	CameraFollows bool          `msgpack:"camera_follows"`
	// CameraFollowSpeed is the exponential smoothing coefficient, 0..1.
	CameraFollowSpeed float64    `msgpack:"camera_follow_speed"`
	CameraFollowBuf   vmath.Vec2 `msgpack:"camera_follow_buf"`

	MousePos vmath.Vec2 `msgpack:"-"`
	Debug    DebugOpts  `msgpack:"debug"`

	// Plane is nil in aquarium mode.
	Plane    *aero.Plane          `msgpack:"plane"`
	Crablets *ecs.Arena[Crablet]  `msgpack:"crablets"`
	Plankton *ecs.Arena[Plankton] `msgpack:"plankton"`
	Selected ecs.ID[Crablet]      `msgpack:"selected"`

	Tilemap *tilemap.Grid   `msgpack:"tilemap"`
	Damping physics.Damping `msgpack:"damping"`

	CrabletTemplate  Crablet  `msgpack:"crablet_template"`
	PlanktonTemplate Plankton `msgpack:"plankton_template"`
	PlanktonCap      int      `msgpack:"plankton_cap"`
	RespawnFrames    uint64   `msgpack:"respawn_frames"`
	RespawnTimer     Timer    `msgpack:"respawn_timer"`

	Inputs   Inputs              `msgpack:"-"`
	Plotter  *Plotter            `msgpack:"plotter"`
	Stats    Stats               `msgpack:"stats"`
	RNG      *RNG                `msgpack:"rng"`
	Commands ecs.Commands[State] `msgpack:"-"`

	Diag *diag.Registry `msgpack:"-"`

	log       *zap.Logger
	systems   *ecs.Scheduler[State]
	lastFrame time.Time
}

// New builds a fresh world for opts.Mode.
func New(opts Options) *State {
	s := &State{
		Mode:              opts.Mode,
		Camera:            render.NewCamera(),
		CameraFollows:     true,
		CameraFollowSpeed: 0.4,
		Debug:             DefaultDebugOpts(),
		Crablets:          ecs.NewArena[Crablet](),
		Plankton:          ecs.NewArena[Plankton](),
		Damping:           opts.Damping,
		CrabletTemplate:   NewCrablet(vmath.Vec2{}),
		PlanktonTemplate:  NewPlankton(vmath.Vec2{}),
		PlanktonCap:       opts.PlanktonCap,
		RespawnFrames:     opts.RespawnFrames,
		RNG:               NewRNG(opts.Seed),
	}
	if opts.Timewarp > 0 {
		s.Debug.Timewarp = opts.Timewarp
	}
	if opts.CrabletTemplate != nil {
		s.CrabletTemplate = *opts.CrabletTemplate
	}
	if opts.PlanktonTemplate != nil {
		s.PlanktonTemplate = *opts.PlanktonTemplate
	}

	switch opts.Mode {
	case ModeAquarium:
		s.Tilemap = opts.Grid
		if s.Tilemap == nil {
			size := opts.TankSize
			if size.X <= 2 || size.Y <= 2 {
				size = DefaultOptions(ModeAquarium).TankSize
			}
			s.Tilemap = tilemap.Tank(size.X, size.Y)
		}
		s.populate(opts)
		s.Camera.Position = s.Tilemap.Size().Float().Scale(0.5)
		s.Camera.Zoom = 24
		s.RespawnTimer.SetAlarm(0, s.RespawnFrames)
	default:
		s.Tilemap = opts.Grid
		if s.Tilemap == nil {
			s.Tilemap = tilemap.Airstrip(1024, 1024)
		}
		if opts.Plane != nil {
			p := *opts.Plane
			p.Forces = nil
			s.Plane = &p
		} else {
			s.Plane = aero.NewPlane()
		}
		s.Camera.Position = s.Plane.Position()
		s.CameraFollowBuf = s.Plane.Position()
	}
	s.Init()
	return s
}

func NewAirplane() *State {
	return New(DefaultOptions(ModeAirplane))
}

func NewAquarium() *State {
	return New(DefaultOptions(ModeAquarium))
}

func (s *State) populate(opts Options) {
	for _, pos := range opts.CrabletSpawns {
		s.insertCrablet(pos)
	}
	for i := len(opts.CrabletSpawns); i < opts.Crablets; i++ {
		if pos, ok := s.randomWaterPos(); ok {
			s.insertCrablet(pos)
		}
	}
	for _, pos := range opts.PlanktonSpawns {
		s.insertPlankton(pos)
	}
	for i := len(opts.PlanktonSpawns); i < opts.Plankton; i++ {
		if pos, ok := s.randomWaterPos(); ok {
			s.insertPlankton(pos)
		}
	}
}

// Init restores the fields that are not persisted. New calls it; callers
// decoding a saved State must call it before the first Tick.
func (s *State) Init() {
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.Crablets == nil {
		s.Crablets = ecs.NewArena[Crablet]()
	}
	if s.Plankton == nil {
		s.Plankton = ecs.NewArena[Plankton]()
	}
	if s.RNG == nil {
		s.RNG = NewRNG(1)
	}
	if s.Tilemap == nil {
		if s.Mode == ModeAquarium {
			size := DefaultOptions(ModeAquarium).TankSize
			s.Tilemap = tilemap.Tank(size.X, size.Y)
		} else {
			s.Tilemap = tilemap.Airstrip(1024, 1024)
		}
	}
	if s.Plotter == nil {
		s.Plotter = NewPlotter(plotLabels...)
	}
	if s.Debug.Timewarp < 0 {
		s.Debug.Timewarp = 0
	}
	if s.Camera.Zoom == 0 {
		s.Camera.Zoom = render.NewCamera().Zoom
	}
	if s.Camera.ZRange == 0 {
		s.Camera.ZRange = render.NewCamera().ZRange
	}
	s.Inputs = NewInputs()
	s.Commands.Reset()
	s.systems = s.defaultSystems()
	s.lastFrame = time.Time{}
}

// SetLogger sets the logger used for simulation events. nil disables logging.
func (s *State) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

func (s *State) Logger() *zap.Logger {
	if s.log == nil {
		return zap.NewNop()
	}
	return s.log
}

// Paused reports whether the inner ticks are suspended.
func (s *State) Paused() bool {
	return s.Debug.PauseAllSystems
}

func (s *State) SetPaused(paused bool) {
	s.Debug.PauseAllSystems = paused
}

// SelectedCrablet returns the selected crablet, if it is still alive.
func (s *State) SelectedCrablet() (*Crablet, bool) {
	return s.Crablets.Get(s.Selected)
}

// followTarget is what the camera tracks: the plane, else the selected
// crablet.
func (s *State) followTarget() (vmath.Vec2, bool) {
	if s.Plane != nil {
		return s.Plane.Position(), true
	}
	if c, ok := s.SelectedCrablet(); ok {
		return c.Position(), true
	}
	return vmath.Vec2{}, false
}

// randomWaterPos picks the centre of a random walkable tile.
func (s *State) randomWaterPos() (vmath.Vec2, bool) {
	size := s.Tilemap.Size()
	if size.X == 0 || size.Y == 0 {
		return vmath.Vec2{}, false
	}
	rng := s.RNG.Rand()
	for range 64 {
		p := vmath.V2i(rng.IntN(size.X), rng.IntN(size.Y))
		if s.Tilemap.At(p).Walkable() {
			return p.Float().Add(vmath.Splat2(0.5)), true
		}
	}
	return vmath.Vec2{}, false
}
