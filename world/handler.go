package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
)

// Handler handles changes made to a World. The World calls its methods synchronously from SetBlock and Tick.
type Handler interface {
	// HandleBlockChange is called after the state at pos changed from before to after.
	HandleBlockChange(pos cube.Pos, before, after voxel.State, flags Flag)
	// HandleNeighbourUpdate is called when the cell at origin notifies its neighbour at pos.
	HandleNeighbourUpdate(pos, origin cube.Pos)
	// HandleBlockEvent is called when a queued BlockEvent runs. It returns false if the event did nothing.
	HandleBlockEvent(ev BlockEvent) bool
	// HandleBlockTick is called once per tick for every cell holding a ticking state.
	HandleBlockTick(pos cube.Pos, s voxel.State)
}

// NopHandler implements Handler without doing anything.
type NopHandler struct{}

var _ Handler = NopHandler{}

func (NopHandler) HandleBlockChange(cube.Pos, voxel.State, voxel.State, Flag) {}
func (NopHandler) HandleNeighbourUpdate(cube.Pos, cube.Pos)                   {}
func (NopHandler) HandleBlockEvent(BlockEvent) bool                           { return false }
func (NopHandler) HandleBlockTick(cube.Pos, voxel.State)                      {}
