package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
)

// neighbourUpdateOrder is the order in which the neighbours of a cell are notified.
var neighbourUpdateOrder = [...]cube.Face{cube.FaceWest, cube.FaceEast, cube.FaceDown, cube.FaceUp, cube.FaceNorth, cube.FaceSouth}

// UpdateNeighbours notifies the six neighbours of pos that the cell at pos changed.
func (w *World) UpdateNeighbours(pos cube.Pos) {
	for _, face := range neighbourUpdateOrder {
		w.NotifyNeighbour(pos.Side(face), pos)
	}
}

// NotifyNeighbour notifies the cell at pos that its neighbour at origin changed.
func (w *World) NotifyNeighbour(pos, origin cube.Pos) {
	if !w.InBounds(pos) {
		return
	}
	w.handler.HandleNeighbourUpdate(pos, origin)
}

// UpdateNeighbourShapes lets the six neighbours of pos react to the cell at pos now holding s. Neighbours whose
// state changes as a result are written back with flags.
func (w *World) UpdateNeighbourShapes(pos cube.Pos, s voxel.State, flags Flag) {
	if w.shapeDepth >= maxShapeDepth {
		return
	}
	w.shapeDepth++
	defer func() { w.shapeDepth-- }()

	for _, face := range cube.Faces() {
		neighbourPos := pos.Side(face)
		neighbour := w.Block(neighbourPos)
		u, ok := neighbour.(voxel.ShapeUpdater)
		if !ok {
			continue
		}
		if updated := u.UpdateShape(face.Opposite(), s); !voxel.Equal(updated, neighbour) {
			w.SetBlock(neighbourPos, updated, flags)
		}
	}
}

// HasSignal returns true if the cell at pos emits a signal towards face.
func (w *World) HasSignal(pos cube.Pos, face cube.Face) bool {
	if e, ok := w.Block(pos).(voxel.Emitter); ok {
		return e.Signal(face)
	}
	return false
}
