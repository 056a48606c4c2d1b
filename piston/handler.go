package piston

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/oomph-ac/pistonsim/world"
)

// HandleBlockChange force finishes motions whose voxel was removed, re-checks pistons that were placed or
// landed, and breaks the base of a piston whose head was removed.
func (s *System) HandleBlockChange(pos cube.Pos, before, after voxel.State, _ world.Flag) {
	switch before := before.(type) {
	case *Moving:
		if m, ok := after.(*Moving); !ok || m != before {
			s.FinalTick(pos, before)
		}
	case Head:
		if _, ok := after.(Head); ok {
			break
		}
		basePos := pos.Side(before.Facing.Opposite())
		if base := s.Level.Block(basePos); before.fits(base) {
			if _, ok := base.(Base); ok {
				s.effects().DestroyBlock(basePos, base)
				s.Level.SetBlock(basePos, voxel.Air{}, world.FlagDefault)
			}
		}
	}

	if _, ok := after.(Base); ok {
		if _, ok := before.(Base); !ok {
			s.OnSignalChanged(pos)
		}
	}
}

// HandleNeighbourUpdate re-checks the signal of a piston at pos.
func (s *System) HandleNeighbourUpdate(pos, _ cube.Pos) {
	s.OnSignalChanged(pos)
}

// HandleBlockEvent runs a piston event.
func (s *System) HandleBlockEvent(ev world.BlockEvent) bool {
	return s.OnTriggerEvent(ev.Pos, EventKind(ev.Kind), ev.Param)
}

// HandleBlockTick advances the motion held by the cell at pos.
func (s *System) HandleBlockTick(pos cube.Pos, st voxel.State) {
	if _, ok := st.(*Moving); ok {
		s.TickMoving(pos)
	}
}
