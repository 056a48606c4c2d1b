package piston

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/oomph-ac/pistonsim/world"
)

const (
	// progressStep is the progress a motion makes every tick.
	progressStep = 0.5
	// pushEpsilon is added to every displacement so that a pushed body does not collide with the same voxel
	// again the next tick.
	pushEpsilon = 0.01
	// stickyAreaTop is the height above the cell up to which bodies are carried by a sticky surface.
	stickyAreaTop = 1.500001
)

// TickMoving advances the motion of the Moving at pos by one tick. It does nothing if pos does not hold a
// Moving.
func (s *System) TickMoving(pos cube.Pos) {
	m, ok := s.Level.Block(pos).(*Moving)
	if !ok || m.done {
		return
	}
	tick := s.Level.CurrentTick()
	m.LastTicked = tick
	m.ProgressPrev = m.Progress
	if m.ProgressPrev >= 1 {
		s.finalise(pos, m)
		return
	}

	next := m.Progress + progressStep
	s.moveCollidedBodies(pos, m, next, tick)
	s.moveStuckBodies(pos, m, next, tick)
	m.Progress = math32.Min(next, 1)
}

// finalise replaces the Moving at pos with the voxel it moved.
func (s *System) finalise(pos cube.Pos, m *Moving) {
	m.done = true
	if !s.holds(pos, m) {
		s.logger().Debug("moving voxel finalised after removal", "pos", pos)
		return
	}

	updated := voxel.UpdateFromNeighbourShapes(m.MovedState, pos, s.Level)
	if voxel.IsAir(updated) {
		s.Level.SetBlock(pos, m.MovedState, world.FlagMovedByPiston|world.FlagKnownShape|world.FlagInvisible)
		s.effects().DestroyBlock(pos, m.MovedState)
		s.Level.SetBlock(pos, voxel.Air{}, world.FlagDefault)
		return
	}
	s.Level.SetBlock(pos, updated, world.FlagMovedByPiston|world.FlagClients|world.FlagNeighbours)
	s.Level.NotifyNeighbour(pos, pos)
}

// FinalTick immediately completes the motion of m at pos. If pos still holds m, a source piston is replaced by
// air and any other voxel by its moved state. Calling FinalTick on a finished motion does nothing.
func (s *System) FinalTick(pos cube.Pos, m *Moving) {
	if m.done {
		return
	}
	m.Progress, m.ProgressPrev = 1, 1
	m.done = true
	if !s.holds(pos, m) {
		return
	}

	var next voxel.State = voxel.Air{}
	if !m.Source {
		next = voxel.UpdateFromNeighbourShapes(m.MovedState, pos, s.Level)
	}
	s.Level.SetBlock(pos, next, world.FlagDefault)
	s.Level.NotifyNeighbour(pos, pos)
}

// moveCollidedBodies pushes all bodies in the path of m out of the way.
func (s *System) moveCollidedBodies(pos cube.Pos, m *Moving, next float32, tick int64) {
	if s.Bodies == nil {
		return
	}
	shape := m.collisionRelatedShape(pos)
	if len(shape) == 0 {
		return
	}
	dir := m.MovementDirection()
	d := float64(next - m.Progress)
	origin := pos.Vec3().Add(m.offset())

	swept := make([]cube.BBox, len(shape))
	for i, bb := range shape {
		swept[i] = movementArea(bb.Translate(origin), dir, d)
	}
	outline := bounds(shape).Translate(origin)
	slime := voxel.AdhesionOf(m.MovedState) == voxel.AdhesionSlime

	for _, b := range s.Bodies.Intersecting(union(movementArea(outline, dir, d), outline)) {
		if b.PushReaction() == voxel.PushIgnore {
			continue
		}
		if slime && !b.Player() {
			v := b.Velocity()
			i := axisIndex(dir.Axis())
			v[i] = step(dir)[i]
			b.SetVelocity(v)
			continue
		}

		var h float64
		box := b.BBox()
		for _, area := range swept {
			if !area.IntersectsWith(box) {
				continue
			}
			if h = math.Max(h, movement(area, dir, box)); h >= d {
				break
			}
		}
		if h <= 0 {
			continue
		}
		b.MoveByPiston(dir, step(dir).Mul(math.Min(h, d)+pushEpsilon), tick)
		if !m.Extending && m.Source {
			fixBodyWithinBase(pos, b, dir, d, tick)
		}
	}
}

// fixBodyWithinBase pushes a body that ended up inside the base of a retracting piston back out of it.
func fixBodyWithinBase(pos cube.Pos, b Body, dir cube.Face, d float64, tick int64) {
	cell := cube.Box(0, 0, 0, 1, 1, 1).Translate(pos.Vec3())
	box := b.BBox()
	if !box.IntersectsWith(cell) {
		return
	}
	out := dir.Opposite()
	full := movement(cell, out, box) + pushEpsilon
	overlap := movement(cell, out, intersection(box, cell)) + pushEpsilon
	if math.Abs(full-overlap) < pushEpsilon {
		b.MoveByPiston(dir, step(out).Mul(math.Min(full, d)+pushEpsilon), tick)
	}
}

// moveStuckBodies carries the bodies standing on a sticky surface that moves horizontally.
func (s *System) moveStuckBodies(pos cube.Pos, m *Moving, next float32, tick int64) {
	if s.Bodies == nil || voxel.AdhesionOf(m.MovedState) != voxel.AdhesionHoney {
		return
	}
	dir := m.MovementDirection()
	if dir.Axis() == cube.Y {
		return
	}
	top := voxel.ShapeTop(voxel.CollisionShape(m.MovedState, pos, voxel.ShapeQuery{}))
	area := cube.Box(0, top, 0, 1, stickyAreaTop, 1).Translate(pos.Vec3().Add(m.offset()))
	d := float64(next - m.Progress)

	for _, b := range s.Bodies.Intersecting(area) {
		if b.PushReaction() != voxel.PushNormal || !b.OnGround() {
			continue
		}
		p := b.Position()
		within := p[0] >= area.Min()[0] && p[0] <= area.Max()[0] && p[2] >= area.Min()[2] && p[2] <= area.Max()[2]
		if !b.SupportedBy(pos) && !within {
			continue
		}
		b.MoveByPiston(dir, step(dir).Mul(d), tick)
	}
}

// movementArea returns the slab of depth d that bb sweeps through in front of its leading face when moving
// along dir.
func movementArea(bb cube.BBox, dir cube.Face, d float64) cube.BBox {
	lo, hi := bb.Min(), bb.Max()
	switch dir {
	case cube.FaceEast:
		return cube.Box(hi[0], lo[1], lo[2], hi[0]+d, hi[1], hi[2])
	case cube.FaceWest:
		return cube.Box(lo[0]-d, lo[1], lo[2], lo[0], hi[1], hi[2])
	case cube.FaceUp:
		return cube.Box(lo[0], hi[1], lo[2], hi[0], hi[1]+d, hi[2])
	case cube.FaceDown:
		return cube.Box(lo[0], lo[1]-d, lo[2], hi[0], lo[1], hi[2])
	case cube.FaceSouth:
		return cube.Box(lo[0], lo[1], hi[2], hi[0], hi[1], hi[2]+d)
	}
	return cube.Box(lo[0], lo[1], lo[2]-d, hi[0], hi[1], lo[2])
}

// movement returns how far box must move along dir to leave area through its leading face.
func movement(area cube.BBox, dir cube.Face, box cube.BBox) float64 {
	switch dir {
	case cube.FaceEast:
		return area.Max()[0] - box.Min()[0]
	case cube.FaceWest:
		return box.Max()[0] - area.Min()[0]
	case cube.FaceUp:
		return area.Max()[1] - box.Min()[1]
	case cube.FaceDown:
		return box.Max()[1] - area.Min()[1]
	case cube.FaceSouth:
		return area.Max()[2] - box.Min()[2]
	}
	return box.Max()[2] - area.Min()[2]
}
