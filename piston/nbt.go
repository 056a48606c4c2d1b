package piston

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
)

// MovingData is the persisted form of a Moving. It holds everything needed to resume the motion after a reload.
type MovingData struct {
	MovedState StateData `nbt:"movedState"`
	Facing     int32     `nbt:"facing"`
	Progress   float32   `nbt:"progress"`
	Extending  uint8     `nbt:"extending"`
	Source     uint8     `nbt:"isSource"`
}

// StateData is the persisted form of a voxel state.
type StateData struct {
	Name       string         `nbt:"name"`
	Properties map[string]any `nbt:"states"`
}

// Data returns the persisted form of m.
func (m *Moving) Data() MovingData {
	name, props := voxel.Encode(m.MovedState)
	if props == nil {
		props = map[string]any{}
	}
	return MovingData{
		MovedState: StateData{Name: name, Properties: props},
		Facing:     int32(m.Facing),
		Progress:   m.Progress,
		Extending:  boolByte(m.Extending),
		Source:     boolByte(m.Source),
	}
}

// MovingFromData restores a Moving from its persisted form. If the moved state is not registered, the Moving
// moves air and false is returned.
func MovingFromData(data MovingData) (*Moving, bool) {
	moved, ok := voxel.ByName(data.MovedState.Name, data.MovedState.Properties)
	if !ok {
		moved = voxel.Air{}
	}
	facing := cube.FaceDown
	if data.Facing >= 0 && data.Facing <= 5 {
		facing = cube.Face(data.Facing)
	}
	progress := min(max(data.Progress, 0), 1)

	m := NewMoving(moved, facing, data.Extending != 0, data.Source != 0)
	m.Progress, m.ProgressPrev = progress, progress
	return m, ok
}
