package voxel

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

var fullCube = []cube.BBox{cube.Box(0, 0, 0, 1, 1, 1)}

// ShapeQuery carries the call-scoped parameters of a collision shape lookup.
type ShapeQuery struct {
	// Pushing is set when the shape is queried for a body that is currently being pushed along Along. Voxels in
	// the middle of a motion along the same direction then leave their moving part out of the shape.
	Pushing bool
	Along   cube.Face
}

// Shaped is implemented by states whose collision shape is not a full cube.
type Shaped interface {
	// CollisionShape returns the block-local collision boxes of the state at pos.
	CollisionShape(pos cube.Pos, q ShapeQuery) []cube.BBox
}

// FullCube returns the shape of a full voxel.
func FullCube() []cube.BBox {
	return fullCube
}

// CollisionShape returns the block-local collision boxes of s at pos.
func CollisionShape(s State, pos cube.Pos, q ShapeQuery) []cube.BBox {
	if IsAir(s) {
		return nil
	}
	if sh, ok := s.(Shaped); ok {
		return sh.CollisionShape(pos, q)
	}
	return fullCube
}

// ShapeTop returns the highest local Y of the boxes passed, or 0 if there are none.
func ShapeTop(boxes []cube.BBox) float64 {
	top := 0.0
	for _, b := range boxes {
		if y := b.Max().Y(); y > top {
			top = y
		}
	}
	return top
}
