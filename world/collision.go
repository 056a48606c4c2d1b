package world

import (
	"math"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
)

// CollisionBoxes returns the world space collision boxes of all cells that intersect area.
func (w *World) CollisionBoxes(area cube.BBox, q voxel.ShapeQuery) []cube.BBox {
	minX, minY, minZ := floor(area.Min().X()), floor(area.Min().Y()), floor(area.Min().Z())
	maxX, maxY, maxZ := floor(area.Max().X()), floor(area.Max().Y()), floor(area.Max().Z())

	var boxes []cube.BBox
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			for z := minZ; z <= maxZ; z++ {
				pos := cube.Pos{x, y, z}
				for _, bb := range voxel.CollisionShape(w.Block(pos), pos, q) {
					if bb = bb.Translate(pos.Vec3()); bb.IntersectsWith(area) {
						boxes = append(boxes, bb)
					}
				}
			}
		}
	}
	return boxes
}

func floor(v float64) int {
	return int(math.Floor(v))
}
