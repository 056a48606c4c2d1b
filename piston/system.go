package piston

import (
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/oomph-ac/pistonsim/world"
)

// EventKind is the kind of a block event queued by a piston.
type EventKind uint8

const (
	EventExtend EventKind = iota
	EventRetract
	// EventRetractQuick is a retraction while the voxel two cells ahead is still being pushed out. The voxel is
	// left in place instead of being pulled back.
	EventRetractQuick
)

// System runs the pistons of a Level. It implements world.Handler so that it can be attached to a world.World
// directly.
type System struct {
	Level   Level
	Bodies  EntityIndex
	Effects Effects
	Log     *slog.Logger
}

var _ world.Handler = (*System)(nil)

// OnSignalChanged re-evaluates the signal received by the piston at pos and queues an extend or retract event
// if the piston does not match it.
func (s *System) OnSignalChanged(pos cube.Pos) {
	b, ok := s.Level.Block(pos).(Base)
	if !ok {
		return
	}
	powered := s.powered(pos, b.Facing)
	switch {
	case powered && !b.Extended:
		if _, ok := Resolve(s.Level, pos, b.Facing, true); ok {
			s.queue(pos, b, EventExtend)
		}
	case !powered && b.Extended:
		kind := EventRetract
		ahead := relative(pos, b.Facing, 2)
		if m, ok := s.Level.Block(ahead).(*Moving); ok && m.Facing == b.Facing && m.Extending &&
			(m.Progress < 0.5 || m.LastTicked == s.Level.CurrentTick()) {
			kind = EventRetractQuick
		}
		s.queue(pos, b, kind)
	}
}

// OnTriggerEvent runs a block event queued by the piston at pos. param holds the facing of the piston when the
// event was queued. OnTriggerEvent returns false if the event turned out to be stale or the piston could not
// move.
func (s *System) OnTriggerEvent(pos cube.Pos, kind EventKind, param int32) bool {
	b, ok := s.Level.Block(pos).(Base)
	if !ok {
		return false
	}
	facing := b.Facing
	powered := s.powered(pos, facing)
	if powered && kind != EventExtend {
		s.Level.SetBlock(pos, Base{Facing: facing, Sticky: b.Sticky, Extended: true}, world.FlagClients)
		return false
	}
	if !powered && kind == EventExtend {
		return false
	}

	if kind == EventExtend {
		if !s.moveBlocks(pos, facing, b.Sticky, true) {
			return false
		}
		s.Level.SetBlock(pos, Base{Facing: facing, Sticky: b.Sticky, Extended: true}, world.FlagMovedByPiston|world.FlagClients|world.FlagNeighbours)
		s.effects().PlaySound(pos, SoundExtend)
		return true
	}

	head := pos.Side(facing)
	if m, ok := s.Level.Block(head).(*Moving); ok {
		s.FinalTick(head, m)
	}
	base := NewMoving(Base{Facing: faceFromParam(param, facing), Sticky: b.Sticky}, facing, false, true)
	s.Level.SetBlock(pos, base, world.FlagInvisible|world.FlagKnownShape)
	s.Level.UpdateNeighbours(pos)
	s.Level.UpdateNeighbourShapes(pos, base, world.FlagClients)

	if b.Sticky {
		ahead := relative(pos, facing, 2)
		target := s.Level.Block(ahead)
		if m, ok := target.(*Moving); ok && m.Facing == facing && m.Extending {
			s.FinalTick(ahead, m)
		} else if kind == EventRetract && !voxel.IsAir(target) && Pushable(s.Level, target, ahead, facing.Opposite(), false, facing) &&
			voxel.ReactionOf(target) == voxel.PushNormal {
			s.moveBlocks(pos, facing, b.Sticky, false)
		} else {
			s.Level.SetBlock(head, voxel.Air{}, world.FlagDefault)
		}
	} else {
		s.Level.SetBlock(head, voxel.Air{}, world.FlagDefault)
	}
	s.effects().PlaySound(pos, SoundRetract)
	return true
}

// moveBlocks resolves the structure in front of the piston at pos and starts moving it.
func (s *System) moveBlocks(pos cube.Pos, facing cube.Face, sticky, extending bool) bool {
	head := pos.Side(facing)
	if _, ok := s.Level.Block(head).(Head); ok && !extending {
		s.Level.SetBlock(head, voxel.Air{}, world.FlagInvisible|world.FlagKnownShape)
	}

	st, ok := Resolve(s.Level, pos, facing, extending)
	if !ok {
		s.logger().Debug("piston blocked", "pos", pos, "facing", facing, "extending", extending)
		return false
	}
	s.logger().Debug("piston moving structure", "pos", pos, "push", len(st.ToPush), "destroy", len(st.ToDestroy))

	vacated := orderedmap.NewOrderedMap[cube.Pos, voxel.State]()
	moved := make([]voxel.State, len(st.ToPush))
	for i, p := range st.ToPush {
		moved[i] = s.Level.Block(p)
		vacated.Set(p, moved[i])
	}
	for _, p := range st.ToDestroy {
		s.effects().DestroyBlock(p, s.Level.Block(p))
		s.Level.SetBlock(p, voxel.Air{}, world.FlagClients|world.FlagKnownShape)
	}
	for i, p := range st.ToPush {
		dst := p.Side(st.PushDirection)
		vacated.Delete(dst)
		s.Level.SetBlock(dst, NewMoving(moved[i], facing, extending, false), world.FlagMovedByPiston|world.FlagInvisible)
	}
	if extending {
		vacated.Delete(head)
		s.Level.SetBlock(head, NewMoving(Head{Facing: facing, Sticky: sticky}, facing, true, true), world.FlagMovedByPiston|world.FlagInvisible)
	}

	for el := vacated.Front(); el != nil; el = el.Next() {
		s.Level.SetBlock(el.Key, voxel.Air{}, world.FlagMovedByPiston|world.FlagKnownShape|world.FlagClients)
	}
	for el := vacated.Front(); el != nil; el = el.Next() {
		s.Level.UpdateNeighbourShapes(el.Key, voxel.Air{}, world.FlagClients)
	}
	for _, p := range st.ToDestroy {
		s.Level.UpdateNeighbours(p)
	}
	for _, p := range st.ToPush {
		s.Level.UpdateNeighbours(p)
	}
	if extending {
		s.Level.UpdateNeighbours(head)
	}
	return true
}

// powered returns true if the piston at pos facing facing receives a signal. Signals from the face the piston
// pushes towards are ignored, while the cell above the piston also powers it.
func (s *System) powered(pos cube.Pos, facing cube.Face) bool {
	for _, face := range cube.Faces() {
		if face != facing && s.Level.HasSignal(pos.Side(face), face) {
			return true
		}
	}
	if s.Level.HasSignal(pos, cube.FaceDown) {
		return true
	}
	above := pos.Side(cube.FaceUp)
	for _, face := range cube.Faces() {
		if face != cube.FaceDown && s.Level.HasSignal(above.Side(face), face) {
			return true
		}
	}
	return false
}

func (s *System) queue(pos cube.Pos, b Base, kind EventKind) {
	s.Level.QueueBlockEvent(world.BlockEvent{Pos: pos, Block: b.Name(), Kind: uint8(kind), Param: int32(b.Facing)})
}

// holds returns true if the cell at pos still holds m.
func (s *System) holds(pos cube.Pos, m *Moving) bool {
	cur, ok := s.Level.Block(pos).(*Moving)
	return ok && cur == m
}

func (s *System) logger() *slog.Logger {
	if s.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Log
}

func faceFromParam(param int32, fallback cube.Face) cube.Face {
	if param < 0 || param > 5 {
		return fallback
	}
	return cube.Face(param)
}

func (s *System) effects() Effects {
	if s.Effects == nil {
		return NopEffects{}
	}
	return s.Effects
}
