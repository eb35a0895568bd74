// Package boot turns settings, prefabs and levels into a ready game.State.
// It is shared by the window and the headless runner.
package boot

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/milk9111/flightsim/config"
	"github.com/milk9111/flightsim/diag"
	"github.com/milk9111/flightsim/game"
	"github.com/milk9111/flightsim/levels"
	"github.com/milk9111/flightsim/physics"
	"github.com/milk9111/flightsim/prefabs"
	"github.com/milk9111/flightsim/save"
	"github.com/milk9111/flightsim/vmath"
)

// Settings loads path, returning the defaults when the file does not exist.
func Settings(path string) (*config.Settings, error) {
	if path == "" {
		return config.Default(), nil
	}
	s, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Options builds the world options for the settings. mode and level override
// the settings file when non-empty. Prefab failures are logged and the
// built-in defaults are used for the broken ones; a bad mode or level is an
// error.
func Options(s *config.Settings, mode, level string, log *zap.Logger) (game.Options, error) {
	if mode == "" {
		mode = s.Simulation.Mode
	}
	m, err := game.ParseMode(mode)
	if err != nil {
		return game.Options{}, err
	}

	sim := s.Simulation
	opts := game.DefaultOptions(m)
	opts.Seed = sim.Seed
	opts.Timewarp = sim.Timewarp
	opts.Damping = physics.Damping{Linear: sim.LinearDamping, Angular: sim.AngularDamping}
	opts.TankSize = vmath.V2i(sim.TankWidth, sim.TankHeight)
	opts.Crablets = sim.Crablets
	opts.Plankton = sim.Plankton
	opts.PlanktonCap = sim.PlanktonCap
	opts.RespawnFrames = sim.RespawnFrames

	set, err := prefabs.LoadAll()
	if err != nil {
		log.Warn("prefabs failed to load, using defaults", zap.Error(err))
	}
	opts = opts.WithPrefabs(set)

	if level == "" {
		level = sim.Level
	}
	if level == "" {
		return opts, nil
	}
	if m != game.ModeAquarium {
		log.Warn("level ignored outside aquarium mode", zap.String("level", level))
		return opts, nil
	}
	lvl, err := levels.Load(level)
	if err != nil {
		return game.Options{}, fmt.Errorf("boot: level %s: %w", level, err)
	}
	grid, err := lvl.Grid()
	if err != nil {
		return game.Options{}, err
	}
	opts.Grid = grid
	opts.CrabletSpawns = lvl.Spawns("crablet")
	opts.PlanktonSpawns = lvl.Spawns("plankton")
	log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("crablets", len(opts.CrabletSpawns)),
		zap.Int("plankton", len(opts.PlanktonSpawns)),
	)
	return opts, nil
}

// DebugOpts maps the settings' debug section onto the simulation's.
func DebugOpts(s *config.Settings) game.DebugOpts {
	d := game.DefaultDebugOpts()
	d.PauseAllSystems = s.Debug.PauseAllSystems
	d.TickPlankton = s.Debug.TickPlankton
	d.ForceRecordPlots = s.Debug.ForceRecordPlots
	d.DrawTilemap = s.Debug.DrawTilemap
	d.DrawAxes = s.Debug.DrawAxes
	if s.Simulation.Timewarp > 0 {
		d.Timewarp = s.Simulation.Timewarp
	}
	return d
}

// Apply pushes live-tunable settings into a running state. The pause
// belongs to the running session and is left alone; Fresh applies the
// configured one.
func Apply(st *game.State, s *config.Settings) {
	paused := st.Paused()
	st.Debug = DebugOpts(s)
	st.SetPaused(paused)
	st.Damping = physics.Damping{Linear: s.Simulation.LinearDamping, Angular: s.Simulation.AngularDamping}
	if st.Plane != nil {
		st.Plane.DrawForces = s.Debug.DrawForces
	}
}

// Fresh builds a new world from opts with the settings applied, starting
// paused when the settings ask for it.
func Fresh(s *config.Settings, opts game.Options) *game.State {
	st := game.New(opts)
	Apply(st, s)
	st.SetPaused(s.Debug.PauseAllSystems)
	return st
}

// State restores the save at statePath, or builds a fresh world from opts
// when there is no usable save. The returned state has log and a fresh
// diagnostics registry attached.
func State(s *config.Settings, opts game.Options, statePath string, log *zap.Logger) *game.State {
	fresh := func() *game.State {
		return Fresh(s, opts)
	}

	var st *game.State
	if statePath == "" {
		st = fresh()
	} else {
		data, err := save.ReadFile(statePath)
		if err != nil {
			log.Warn("save unreadable", zap.Error(err))
		}
		st = save.Restore(data, fresh, log)
	}
	st.SetLogger(log)
	st.Diag = diag.NewRegistry()
	return st
}
