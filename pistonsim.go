// Package pistonsim wires a voxel world, the pistons living in it and the entities they push into a single
// Simulation that can be ticked.
package pistonsim

import (
	"io"
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/pistonsim/entity"
	"github.com/oomph-ac/pistonsim/piston"
	"github.com/oomph-ac/pistonsim/settings"
	"github.com/oomph-ac/pistonsim/snapshot"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/oomph-ac/pistonsim/world"
)

// Simulation is a world with pistons and entities.
type Simulation struct {
	World    *world.World
	Entities *entity.Index
	Pistons  *piston.System

	log *slog.Logger
}

// New creates an empty Simulation using the world settings passed. If log is nil, nothing is logged.
func New(s settings.Settings, log *slog.Logger) *Simulation {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	w := world.New(s.Dimension(), log)
	idx := entity.NewIndex()
	sys := &piston.System{Level: w, Bodies: idx, Log: log}
	w.Handle(sys)
	return &Simulation{World: w, Entities: idx, Pistons: sys, log: log}
}

// SetEffects sets the sink that receives the sounds and destroyed voxels of piston motions.
func (sim *Simulation) SetEffects(fx piston.Effects) {
	sim.Pistons.Effects = fx
}

// Tick advances the simulation by one tick and records the position of every entity.
func (sim *Simulation) Tick() {
	sim.World.Tick()
	sim.Entities.Record(sim.World.CurrentTick())
}

// Place places s at pos and updates its neighbours, as if a player placed it.
func (sim *Simulation) Place(pos cube.Pos, s voxel.State) {
	sim.World.SetBlock(pos, s, world.FlagDefault)
}

// SetBlock sets s at pos with the update flags passed.
func (sim *Simulation) SetBlock(pos cube.Pos, s voxel.State, flags world.Flag) {
	sim.World.SetBlock(pos, s, flags)
}

// AddEntity adds an entity at pos and returns it.
func (sim *Simulation) AddEntity(pos mgl32.Vec3, player bool) *entity.Entity {
	e := entity.New(pos, player, sim.World)
	sim.Entities.Add(e)
	return e
}

// Explode destroys the voxel at pos. A moving voxel is destroyed along with the voxel it carries, and its motion
// is finished. Unbreakable voxels survive.
func (sim *Simulation) Explode(pos cube.Pos) {
	s := sim.World.Block(pos)
	if m, ok := s.(*piston.Moving); ok {
		if !m.Source {
			sim.effects().DestroyBlock(pos, m.MovedState)
		}
		sim.World.SetBlock(pos, voxel.Air{}, world.FlagDefault)
		return
	}
	if voxel.IsAir(s) || voxel.Unbreakable(s) {
		return
	}
	sim.effects().DestroyBlock(pos, s)
	sim.World.SetBlock(pos, voxel.Air{}, world.FlagDefault)
}

// Save writes all voxels that are currently moving to w.
func (sim *Simulation) Save(w io.Writer) error {
	return snapshot.Save(w, sim.World)
}

// Load restores the moving voxels saved to r by Save.
func (sim *Simulation) Load(r io.Reader) error {
	tick, err := snapshot.Load(r, sim.World, sim.log)
	if err != nil {
		return err
	}
	sim.log.Debug("resumed motions", "tick", tick)
	return nil
}

func (sim *Simulation) effects() piston.Effects {
	if sim.Pistons.Effects == nil {
		return piston.NopEffects{}
	}
	return sim.Pistons.Effects
}
