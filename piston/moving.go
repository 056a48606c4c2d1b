package piston

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/pistonsim/voxel"
)

// Moving is a voxel in the middle of a piston motion. It occupies the cell the voxel is moving into and is
// replaced by the moved voxel once the motion completes.
type Moving struct {
	// MovedState is the voxel being moved. For the source piston it is the piston base or head.
	MovedState voxel.State
	// Facing is the facing of the piston that started the motion.
	Facing    cube.Face
	Extending bool
	// Source is set if the voxel is the piston base or head of the piston that started the motion.
	Source bool

	Progress     float32
	ProgressPrev float32
	LastTicked   int64

	done bool
}

// NewMoving returns a Moving at the start of its motion.
func NewMoving(moved voxel.State, facing cube.Face, extending, source bool) *Moving {
	if moved == nil {
		moved = voxel.Air{}
	}
	return &Moving{MovedState: moved, Facing: facing, Extending: extending, Source: source}
}

// MovementDirection returns the direction the voxel moves in.
func (m *Moving) MovementDirection() cube.Face {
	if m.Extending {
		return m.Facing
	}
	return m.Facing.Opposite()
}

// Done returns true once the motion was finalised or forcibly finished.
func (m *Moving) Done() bool {
	return m.done
}

func (m *Moving) Name() string {
	return "minecraft:moving_block"
}

func (m *Moving) PushReaction() voxel.PushReaction {
	return voxel.PushBlock
}

func (m *Moving) DestroySpeed() float64 {
	return -1
}

func (m *Moving) Tickable() bool {
	return !m.done
}

// CollisionShape returns the shape of the moved voxel at its current offset. Bodies that are being pushed along
// the direction of the motion only collide with the stationary part of the source piston.
func (m *Moving) CollisionShape(pos cube.Pos, q voxel.ShapeQuery) []cube.BBox {
	var boxes []cube.BBox
	if !m.Extending && m.Source {
		boxes = extendedBaseShape(m.Facing)
	}
	if m.Progress < 1 && q.Pushing && q.Along == m.MovementDirection() {
		return boxes
	}

	var moved []cube.BBox
	if m.Source {
		moved = headShape(m.Facing, m.Extending != (1-m.Progress < 0.25))
	} else {
		moved = voxel.CollisionShape(m.MovedState, pos, q)
	}
	offset := m.offset()
	for _, bb := range moved {
		boxes = append(boxes, bb.Translate(offset))
	}
	return boxes
}

// collisionRelatedShape returns the block-local shape that pushes bodies. A retracting source piston pushes with
// its head.
func (m *Moving) collisionRelatedShape(pos cube.Pos) []cube.BBox {
	if _, ok := m.MovedState.(Base); ok && !m.Extending && m.Source {
		return headShape(m.Facing, m.Progress > 0.25)
	}
	return voxel.CollisionShape(m.MovedState, pos, voxel.ShapeQuery{})
}

// offset returns the offset of the moved voxel from the cell it moves into.
func (m *Moving) offset() mgl64.Vec3 {
	return step(m.MovementDirection()).Mul(float64(m.Progress) - 1)
}

func (m *Moving) EncodeState() (string, map[string]any) {
	return m.Name(), map[string]any{
		"facing_direction": int32(m.Facing),
		"extending":        boolByte(m.Extending),
		"source":           boolByte(m.Source),
		"progress":         m.Progress,
		"moved":            voxel.Key(m.MovedState),
	}
}
