package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	PlaneFile    = "plane.yaml"
	CrabletFile  = "crablet.yaml"
	PlanktonFile = "plankton.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Set holds every entity prefab. A nil field failed to load.
type Set struct {
	Plane    *PlaneSpec
	Crablet  *CrabletSpec
	Plankton *PlanktonSpec
}

// LoadAll loads every prefab, keeping those that succeeded. The returned
// error combines all failures.
func LoadAll() (Set, error) {
	var (
		set  Set
		errs error
	)
	if spec, err := LoadSpec[PlaneSpec](PlaneFile); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		set.Plane = &spec
	}
	if spec, err := LoadSpec[CrabletSpec](CrabletFile); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		set.Crablet = &spec
	}
	if spec, err := LoadSpec[PlanktonSpec](PlanktonFile); err != nil {
		errs = multierr.Append(errs, err)
	} else {
		set.Plankton = &spec
	}
	return set, errs
}

// LoadChanged reloads only the prefab behind path, leaving the other
// fields nil. ok is false when path is not a known prefab.
func LoadChanged(path string) (set Set, ok bool, err error) {
	switch cleanPrefabPath(path) {
	case PlaneFile:
		spec, err := LoadSpec[PlaneSpec](PlaneFile)
		if err != nil {
			return Set{}, true, err
		}
		return Set{Plane: &spec}, true, nil
	case CrabletFile:
		spec, err := LoadSpec[CrabletSpec](CrabletFile)
		if err != nil {
			return Set{}, true, err
		}
		return Set{Crablet: &spec}, true, nil
	case PlanktonFile:
		spec, err := LoadSpec[PlanktonSpec](PlanktonFile)
		if err != nil {
			return Set{}, true, err
		}
		return Set{Plankton: &spec}, true, nil
	}
	return Set{}, false, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ShapeSpec derives a moment of inertia when BodySpec.Inertia is zero.
type ShapeSpec struct {
	Kind   string  `yaml:"kind"` // box or disc
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
}

type BodySpec struct {
	Mass     float64   `yaml:"mass"`
	Inertia  float64   `yaml:"inertia"`
	Shape    ShapeSpec `yaml:"shape"`
	Position Vec2Spec  `yaml:"position"`
}

type WingletSpec struct {
	Pos        Vec2Spec `yaml:"pos"`
	PitchDeg   float64  `yaml:"pitch_deg"`
	DragFactor float64  `yaml:"drag_factor"`
	LiftToDrag float64  `yaml:"lift_to_drag"`
}

type PlaneSpec struct {
	Name              string      `yaml:"name"`
	Body              BodySpec    `yaml:"body"`
	Gravity           float64     `yaml:"gravity"`
	Wings             WingletSpec `yaml:"wings"`
	Elevator          WingletSpec `yaml:"elevator"`
	Wheels            []Vec2Spec  `yaml:"wheels"`
	BodyDrag          float64     `yaml:"body_drag"`
	MaxPropellerForce float64     `yaml:"max_propeller_force"`
	DrawForces        bool        `yaml:"draw_forces"`
}

type BrainSpec struct {
	Weights [2][2]float64 `yaml:"weights"`
	Biases  [2]float64    `yaml:"biases"`
}

type CrabletSpec struct {
	Name   string     `yaml:"name"`
	Sprite string     `yaml:"sprite"`
	Scale  float64    `yaml:"scale"`
	Tint   *YAMLColor `yaml:"tint"`
	Body   BodySpec   `yaml:"body"`
	Brain  BrainSpec  `yaml:"brain"`
}

type PlanktonSpec struct {
	Name   string   `yaml:"name"`
	Sprite string   `yaml:"sprite"`
	Scale  float64  `yaml:"scale"`
	Body   BodySpec `yaml:"body"`
}

type YAMLColor struct {
	color.Color
}

// RGBA8 returns the colour as color.RGBA, or fallback when unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
