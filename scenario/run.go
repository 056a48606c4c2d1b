package scenario

import (
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim"
	"github.com/oomph-ac/pistonsim/entity"
	"github.com/oomph-ac/pistonsim/game"
	"github.com/oomph-ac/pistonsim/piston"
	"github.com/oomph-ac/pistonsim/settings"
	"github.com/oomph-ac/pistonsim/voxel"
)

// defaultTolerance is the distance an entity may be off from its expected position if no tolerance is set.
const defaultTolerance = 0.01

// Result is the outcome of running a scenario.
type Result struct {
	Name  string
	Ticks int64
	// Mismatches holds a description of every expectation that was not met.
	Mismatches []string
	// Destroyed is the amount of voxels destroyed while running.
	Destroyed int
	// Digest is the digest of the world once all ticks have run.
	Digest uint64

	// Sim is the simulation in its final state.
	Sim *pistonsim.Simulation
}

// Passed returns true if all expectations were met.
func (r Result) Passed() bool {
	return len(r.Mismatches) == 0
}

// recorder counts the voxels destroyed during a run.
type recorder struct {
	piston.NopEffects
	log       *slog.Logger
	destroyed int
}

func (r *recorder) DestroyBlock(pos cube.Pos, s voxel.State) {
	r.destroyed++
	r.log.Debug("voxel destroyed", "pos", pos, "state", voxel.Key(s))
}

// Run builds the contraption of sc in a new simulation, runs it for sc.Ticks ticks and compares the outcome with
// the expectations of sc.
func Run(sc Scenario, s settings.Settings, log *slog.Logger) (Result, error) {
	if err := sc.Validate(); err != nil {
		return Result{}, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("scenario", sc.Name)

	sim := pistonsim.New(s, log)
	fx := &recorder{log: log}
	sim.SetEffects(fx)

	if err := place(sim, sc.Blocks); err != nil {
		return Result{}, err
	}
	entities := make([]*entity.Entity, 0, len(sc.Entities))
	for _, spec := range sc.Entities {
		e := sim.AddEntity(vec(spec.Pos), spec.Player)
		e.SetOnGround(!spec.Airborne)
		if spec.Size != ([2]float32{}) {
			e.SetAABB(game.AABBFromDimensions(spec.Size[0], spec.Size[1]))
		}
		entities = append(entities, e)
	}

	for tick := int64(1); tick <= sc.Ticks; tick++ {
		for _, a := range sc.Actions {
			if a.Tick != tick {
				continue
			}
			if err := apply(sim, a); err != nil {
				return Result{}, err
			}
		}
		sim.Tick()
	}

	mismatches, err := compare(sc.Expect, sim, entities, fx.destroyed)
	if err != nil {
		return Result{}, err
	}
	res := Result{Name: sc.Name, Ticks: sc.Ticks, Mismatches: mismatches, Destroyed: fx.destroyed, Digest: sim.World.Digest(), Sim: sim}
	log.Debug("scenario finished", "mismatches", len(res.Mismatches), "digest", res.Digest)
	return res, nil
}

func place(sim *pistonsim.Simulation, specs []BlockSpec) error {
	for _, spec := range specs {
		st, err := spec.State()
		if err != nil {
			return err
		}
		sim.Place(spec.Position(), st)
	}
	return nil
}

func apply(sim *pistonsim.Simulation, a Action) error {
	for _, pos := range a.Remove {
		sim.Place(cube.Pos(pos), voxel.Air{})
	}
	for _, pos := range a.Explode {
		sim.Explode(cube.Pos(pos))
	}
	return place(sim, a.Place)
}

func compare(exp Expectation, sim *pistonsim.Simulation, entities []*entity.Entity, destroyed int) ([]string, error) {
	var mismatches []string
	for _, spec := range exp.Blocks {
		want, err := spec.State()
		if err != nil {
			return nil, err
		}
		if got := sim.World.Block(spec.Position()); !voxel.Equal(got, want) {
			mismatches = append(mismatches, fmt.Sprintf("block at %v: expected %v, got %v", spec.Pos, voxel.Key(want), voxel.Key(got)))
		}
	}
	for _, e := range exp.Entities {
		tolerance := e.Tolerance
		if tolerance <= 0 {
			tolerance = defaultTolerance
		}
		got := game.Vec64To32(entities[e.Index].Position())
		for i := range 3 {
			if math32.Abs(got[i]-e.Pos[i]) > tolerance {
				mismatches = append(mismatches, fmt.Sprintf("entity %v: expected position %v, got %v", e.Index, e.Pos, got))
				break
			}
		}
	}
	if exp.Destroyed != nil && *exp.Destroyed != destroyed {
		mismatches = append(mismatches, fmt.Sprintf("expected %v destroyed voxels, got %v", *exp.Destroyed, destroyed))
	}
	return mismatches, nil
}
