// Package scenario describes piston contraptions in YAML files and runs them against a simulation, comparing
// the outcome with the expectations listed in the file.
package scenario

import (
	"fmt"
	"os"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pistonsim/voxel"
	"gopkg.in/yaml.v3"
)

// Scenario is a contraption, the changes made to it over time and the expected outcome.
type Scenario struct {
	Name string `yaml:"name"`
	// Ticks is the amount of ticks the scenario runs for.
	Ticks    int64        `yaml:"ticks"`
	Blocks   []BlockSpec  `yaml:"blocks"`
	Entities []EntitySpec `yaml:"entities,omitempty"`
	Actions  []Action     `yaml:"actions,omitempty"`
	Expect   Expectation  `yaml:"expect"`
}

// BlockSpec is a voxel state at a position. The state is looked up in the voxel registry by its name and
// properties.
type BlockSpec struct {
	Pos    [3]int         `yaml:"pos"`
	Name   string         `yaml:"name"`
	States map[string]any `yaml:"states,omitempty"`
}

// EntitySpec is an entity placed when the scenario starts.
type EntitySpec struct {
	Pos    [3]float32 `yaml:"pos"`
	Player bool       `yaml:"player,omitempty"`
	// Airborne entities are not standing on the ground.
	Airborne bool `yaml:"airborne,omitempty"`
	// Size is the width and height of the entity. The size of a player is used if it is not set.
	Size [2]float32 `yaml:"size,omitempty"`
}

// Action is a set of changes applied right before the tick with the number Tick runs.
type Action struct {
	Tick    int64       `yaml:"tick"`
	Place   []BlockSpec `yaml:"place,omitempty"`
	Remove  [][3]int    `yaml:"remove,omitempty"`
	Explode [][3]int    `yaml:"explode,omitempty"`
}

// Expectation is the expected state once all ticks have run.
type Expectation struct {
	Blocks   []BlockSpec         `yaml:"blocks,omitempty"`
	Entities []EntityExpectation `yaml:"entities,omitempty"`
	// Destroyed is the expected amount of voxels destroyed by pistons and explosions, if set.
	Destroyed *int `yaml:"destroyed,omitempty"`
}

// EntityExpectation is the expected position of the entity at Index in the entity list of the scenario.
type EntityExpectation struct {
	Index     int        `yaml:"index"`
	Pos       [3]float32 `yaml:"pos"`
	Tolerance float32    `yaml:"tolerance,omitempty"`
}

// Load reads and validates the scenario file at path.
func Load(path string) (Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	sc, err := Parse(b)
	if err != nil {
		return Scenario{}, fmt.Errorf("%v: %w", path, err)
	}
	return sc, nil
}

// Parse decodes and validates a scenario from YAML.
func Parse(b []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(b, &sc); err != nil {
		return Scenario{}, err
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Validate checks that the scenario runs for at least one tick and that every voxel state it names exists.
func (sc Scenario) Validate() error {
	if sc.Ticks <= 0 {
		return fmt.Errorf("scenario %q: ticks must be positive", sc.Name)
	}
	specs := append(append([]BlockSpec{}, sc.Blocks...), sc.Expect.Blocks...)
	for _, a := range sc.Actions {
		if a.Tick < 1 || a.Tick > sc.Ticks {
			return fmt.Errorf("scenario %q: action at tick %v outside of [1, %v]", sc.Name, a.Tick, sc.Ticks)
		}
		specs = append(specs, a.Place...)
	}
	for _, spec := range specs {
		if _, err := spec.State(); err != nil {
			return fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
	}
	for i, e := range sc.Entities {
		if e.Size != ([2]float32{}) && (e.Size[0] <= 0 || e.Size[1] <= 0) {
			return fmt.Errorf("scenario %q: entity %v has invalid size %v", sc.Name, i, e.Size)
		}
	}
	for _, e := range sc.Expect.Entities {
		if e.Index < 0 || e.Index >= len(sc.Entities) {
			return fmt.Errorf("scenario %q: expectation for unknown entity %v", sc.Name, e.Index)
		}
	}
	return nil
}

// State looks up the voxel state of the spec.
func (spec BlockSpec) State() (voxel.State, error) {
	s, ok := voxel.ByName(spec.Name, spec.States)
	if !ok {
		return nil, fmt.Errorf("unknown voxel state %v %v", spec.Name, spec.States)
	}
	return s, nil
}

// Position returns the position of the spec.
func (spec BlockSpec) Position() cube.Pos {
	return cube.Pos(spec.Pos)
}

func vec(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3(v)
}
