package piston

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
)

func init() {
	for _, b := range allPistonBlocks() {
		voxel.Register(b)
	}
}

// Base is the stationary part of a piston.
type Base struct {
	// Facing is the direction the piston pushes towards. It is fixed at placement.
	Facing   cube.Face
	Sticky   bool
	Extended bool
}

func (b Base) Name() string {
	if b.Sticky {
		return "minecraft:sticky_piston"
	}
	return "minecraft:piston"
}

func (Base) DestroySpeed() float64 {
	return 1.5
}

func (b Base) CollisionShape(cube.Pos, voxel.ShapeQuery) []cube.BBox {
	if b.Extended {
		return extendedBaseShape(b.Facing)
	}
	return voxel.FullCube()
}

func (b Base) EncodeState() (string, map[string]any) {
	return b.Name(), map[string]any{"facing_direction": int32(b.Facing), "extended_bit": boolByte(b.Extended)}
}

// Head is the arm of an extended piston, placed in front of its Base.
type Head struct {
	Facing cube.Face
	Sticky bool
	// Short is set for heads whose arm does not reach into the base.
	Short bool
}

func (h Head) Name() string {
	if h.Sticky {
		return "minecraft:sticky_piston_arm_collision"
	}
	return "minecraft:piston_arm_collision"
}

func (Head) PushReaction() voxel.PushReaction {
	return voxel.PushBlock
}

func (Head) DestroySpeed() float64 {
	return 1.5
}

func (h Head) CollisionShape(cube.Pos, voxel.ShapeQuery) []cube.BBox {
	return headShape(h.Facing, h.Short)
}

// UpdateShape collapses the head into air once the cell behind it no longer holds its base.
func (h Head) UpdateShape(face cube.Face, neighbour voxel.State) voxel.State {
	if face == h.Facing.Opposite() && !h.fits(neighbour) {
		return voxel.Air{}
	}
	return h
}

// fits returns true if s can hold the head in place from behind.
func (h Head) fits(s voxel.State) bool {
	switch s := s.(type) {
	case Base:
		return s.Facing == h.Facing && s.Sticky == h.Sticky && s.Extended
	case *Moving:
		return s.Facing == h.Facing
	}
	return false
}

func (h Head) EncodeState() (string, map[string]any) {
	return h.Name(), map[string]any{"facing_direction": int32(h.Facing), "short_bit": boolByte(h.Short)}
}

func allPistonBlocks() (blocks []voxel.State) {
	for _, f := range cube.Faces() {
		for _, sticky := range []bool{false, true} {
			for _, b := range []bool{false, true} {
				blocks = append(blocks, Base{Facing: f, Sticky: sticky, Extended: b})
				blocks = append(blocks, Head{Facing: f, Sticky: sticky, Short: b})
			}
		}
	}
	return
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
