// Package config loads the tuning data the solver needs from YAML: the
// per-step IntegrationParameters and a named table of material presets,
// grounded on gazed-vu's load.Shd yaml loader style (string-keyed config
// struct unmarshaled with yaml.v3, validated field by field, wrapped errors
// on failure).
package config

import (
	"fmt"
	"os"

	"github.com/akmonengine/islet/actor"
	"github.com/akmonengine/islet/solver"
	"gopkg.in/yaml.v3"
)

// Tuning is the resolved configuration: the step parameters plus the named
// material table, ready to hand to solver.IslandSolver and the rigid-body
// constructors respectively.
type Tuning struct {
	Params    solver.IntegrationParameters
	Materials map[string]actor.Material
}

// tuningDoc is the string/number based YAML shape. Durations and rates are
// expressed the way a tuning file author would write them, not the way the
// solver consumes them internally (e.g. step rate in Hz rather than dt).
type tuningDoc struct {
	Solver struct {
		StepRateHz             float64 `yaml:"stepRateHz"`
		WarmstartCoeff         float64 `yaml:"warmstartCoeff"`
		VelocitySolveFraction  float64 `yaml:"velocitySolveFraction"`
		VelocityBasedERP       float64 `yaml:"velocityBasedErp"`
		VelocityIterations     int     `yaml:"velocityIterations"`
		PositionIterations     int     `yaml:"positionIterations"`
		MaxPositionCorrection  float64 `yaml:"maxPositionCorrection"`
		AllowedPenetrationSlop float64 `yaml:"allowedPenetrationSlop"`
	} `yaml:"solver"`

	Materials map[string]struct {
		Density         float64 `yaml:"density"`
		Restitution     float64 `yaml:"restitution"`
		StaticFriction  float64 `yaml:"staticFriction"`
		DynamicFriction float64 `yaml:"dynamicFriction"`
		LinearDamping   float64 `yaml:"linearDamping"`
		AngularDamping  float64 `yaml:"angularDamping"`
	} `yaml:"materials"`
}

// Load reads a tuning file from path. A missing "solver" section, or one
// without a positive step rate, falls back to
// solver.DefaultIntegrationParameters at 60 Hz; a missing
// "materials" section falls back to DefaultMaterials.
func Load(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a tuning document already read into memory, useful for
// embedded defaults and tests that don't want to touch the filesystem.
func Parse(data []byte) (*Tuning, error) {
	var doc tuningDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: yaml: %w", err)
	}

	stepRate := doc.Solver.StepRateHz
	if stepRate <= 0 {
		stepRate = 60.0
	}
	params := solver.DefaultIntegrationParameters(1.0 / stepRate)

	if doc.Solver.WarmstartCoeff > 0 {
		params.WarmstartCoeff = doc.Solver.WarmstartCoeff
	}
	if doc.Solver.VelocitySolveFraction > 0 {
		params.VelocitySolveFraction = doc.Solver.VelocitySolveFraction
	}
	if doc.Solver.VelocityBasedERP > 0 {
		params.VelocityBasedERP = doc.Solver.VelocityBasedERP
	}
	if doc.Solver.VelocityIterations > 0 {
		params.NumVelocityIterations = doc.Solver.VelocityIterations
	}
	if doc.Solver.PositionIterations > 0 {
		params.NumPositionIterations = doc.Solver.PositionIterations
	}
	if doc.Solver.MaxPositionCorrection > 0 {
		params.MaxPositionCorrection = doc.Solver.MaxPositionCorrection
	}
	if doc.Solver.AllowedPenetrationSlop > 0 {
		params.AllowedPenetrationSlop = doc.Solver.AllowedPenetrationSlop
	}

	materials := DefaultMaterials()
	for name, m := range doc.Materials {
		if m.Density <= 0 {
			return nil, fmt.Errorf("config: material %q: density must be positive", name)
		}
		materials[name] = actor.Material{
			Density:         m.Density,
			Restitution:     m.Restitution,
			StaticFriction:  m.StaticFriction,
			DynamicFriction: m.DynamicFriction,
			LinearDamping:   m.LinearDamping,
			AngularDamping:  m.AngularDamping,
		}
	}

	return &Tuning{Params: params, Materials: materials}, nil
}
