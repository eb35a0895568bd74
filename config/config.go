// Package config loads the user settings file.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

type Settings struct {
	Graphics   Graphics   `toml:"graphics"`
	Controls   Controls   `toml:"controls"`
	Player     Player     `toml:"player"`
	Sound      Sound      `toml:"sound"`
	Network    Network    `toml:"network"`
	Logging    Logging    `toml:"logging"`
	Simulation Simulation `toml:"simulation"`
	Debug      Debug      `toml:"debug"`
}

type Graphics struct {
	Width      int  `toml:"width"`
	Height     int  `toml:"height"`
	Fullscreen bool `toml:"fullscreen"`
	VSync      bool `toml:"vsync"`
	HUD        bool `toml:"hud"`
}

type Controls struct {
	// MouseSensitivity scales drag panning, in percent.
	MouseSensitivity float64 `toml:"mouse_sensitivity"`
	// ZoomStep is the zoom factor applied per wheel notch.
	ZoomStep float64 `toml:"zoom_step"`
}

type Player struct {
	Name string `toml:"name"`
}

// Sound is read for compatibility; the simulation is silent.
type Sound struct {
	Enabled bool `toml:"enabled"`
	Music   bool `toml:"music"`
}

// Network is read for compatibility; there is no multiplayer.
type Network struct {
	Servers []string `toml:"servers"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type Simulation struct {
	Mode           string  `toml:"mode"` // "airplane" or "aquarium"
	Seed           uint64  `toml:"seed"`
	Timewarp       int     `toml:"timewarp"`
	LinearDamping  float64 `toml:"linear_damping"`
	AngularDamping float64 `toml:"angular_damping"`
	TankWidth      int     `toml:"tank_width"`
	TankHeight     int     `toml:"tank_height"`
	Crablets       int     `toml:"crablets"`
	Plankton       int     `toml:"plankton"`
	PlanktonCap    int     `toml:"plankton_cap"`
	RespawnFrames  uint64  `toml:"respawn_frames"`
	Level          string  `toml:"level"`
}

type Debug struct {
	PauseAllSystems  bool `toml:"pause_all_systems"`
	TickPlankton     bool `toml:"tick_plankton"`
	ForceRecordPlots bool `toml:"force_record_plots"`
	DrawTilemap      bool `toml:"draw_tilemap"`
	DrawAxes         bool `toml:"draw_axes"`
	DrawForces       bool `toml:"draw_forces"`
}

func Default() *Settings {
	return &Settings{
		Graphics: Graphics{
			Width:  1280,
			Height: 768,
			VSync:  true,
			HUD:    true,
		},
		Controls: Controls{
			MouseSensitivity: 100,
			ZoomStep:         1.1,
		},
		Sound: Sound{
			Enabled: true,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Simulation: Simulation{
			Mode:           "airplane",
			Seed:           1,
			Timewarp:       1,
			LinearDamping:  0.5,
			AngularDamping: 0.5,
			TankWidth:      64,
			TankHeight:     32,
			Crablets:       3,
			Plankton:       20,
			PlanktonCap:    40,
			RespawnFrames:  2000,
		},
		Debug: Debug{
			TickPlankton: true,
			DrawTilemap:  true,
			DrawForces:   true,
		},
	}
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a settings document over the defaults.
func Parse(data string) (*Settings, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Settings) validate() error {
	if s.Graphics.Width <= 0 || s.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", s.Graphics.Width, s.Graphics.Height)
	}
	if s.Simulation.Timewarp < 0 {
		return fmt.Errorf("simulation: negative timewarp %d", s.Simulation.Timewarp)
	}
	if s.Simulation.TankWidth < 3 || s.Simulation.TankHeight < 3 {
		return fmt.Errorf("simulation: tank %dx%d too small", s.Simulation.TankWidth, s.Simulation.TankHeight)
	}
	if s.Controls.ZoomStep <= 1 {
		return fmt.Errorf("controls: zoom_step must be greater than 1, got %v", s.Controls.ZoomStep)
	}
	return nil
}

// Encode writes s as TOML, for a first-run settings file.
func (s *Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}
