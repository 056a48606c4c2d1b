package piston

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// baseDepth is the depth of an extended piston base along its facing.
const baseDepth = 12.0 / 16.0

// facingBox returns a box that spans [from, to] along facing, measured from the face opposite to facing, and
// [lo, hi] on the other two axes.
func facingBox(facing cube.Face, from, to, lo, hi float64) cube.BBox {
	if !positive(facing) {
		from, to = 1-to, 1-from
	}
	lower, upper := mgl64.Vec3{lo, lo, lo}, mgl64.Vec3{hi, hi, hi}
	i := axisIndex(facing.Axis())
	lower[i], upper[i] = from, to
	return cube.Box(lower[0], lower[1], lower[2], upper[0], upper[1], upper[2])
}

// extendedBaseShape returns the shape of an extended piston base facing facing.
func extendedBaseShape(facing cube.Face) []cube.BBox {
	return []cube.BBox{facingBox(facing, 0, baseDepth, 0, 1)}
}

// headShape returns the shape of a piston head facing facing. A short head has an arm that does not reach
// into the base.
func headShape(facing cube.Face, short bool) []cube.BBox {
	armFrom := -4.0 / 16.0
	if short {
		armFrom = 0
	}
	return []cube.BBox{
		facingBox(facing, baseDepth, 1, 0, 1),
		facingBox(facing, armFrom, baseDepth, 6.0/16.0, 10.0/16.0),
	}
}

// step returns the unit vector pointing towards face.
func step(face cube.Face) mgl64.Vec3 {
	return cube.Pos{}.Side(face).Vec3()
}

// positive returns true if face points towards a positive axis direction.
func positive(face cube.Face) bool {
	return face == cube.FaceUp || face == cube.FaceSouth || face == cube.FaceEast
}

func axisIndex(axis cube.Axis) int {
	switch axis {
	case cube.X:
		return 0
	case cube.Y:
		return 1
	}
	return 2
}

// bounds returns the smallest box that contains all boxes passed.
func bounds(boxes []cube.BBox) cube.BBox {
	b := boxes[0]
	for _, other := range boxes[1:] {
		b = union(b, other)
	}
	return b
}

func union(a, b cube.BBox) cube.BBox {
	amin, amax, bmin, bmax := a.Min(), a.Max(), b.Min(), b.Max()
	return cube.Box(
		min(amin[0], bmin[0]), min(amin[1], bmin[1]), min(amin[2], bmin[2]),
		max(amax[0], bmax[0]), max(amax[1], bmax[1]), max(amax[2], bmax[2]),
	)
}

func intersection(a, b cube.BBox) cube.BBox {
	amin, amax, bmin, bmax := a.Min(), a.Max(), b.Min(), b.Max()
	return cube.Box(
		max(amin[0], bmin[0]), max(amin[1], bmin[1]), max(amin[2], bmin[2]),
		min(amax[0], bmax[0]), min(amax[1], bmax[1]), min(amax[2], bmax[2]),
	)
}
