package piston

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/oomph-ac/pistonsim/world"
)

// BlockSource is the read-only view of the grid that structures are resolved against.
type BlockSource interface {
	voxel.Source
	InBounds(pos cube.Pos) bool
	Range() cube.Range
}

// Level is the grid that pistons live in.
type Level interface {
	BlockSource
	SetBlock(pos cube.Pos, s voxel.State, flags world.Flag)
	HasSignal(pos cube.Pos, face cube.Face) bool
	QueueBlockEvent(ev world.BlockEvent)
	UpdateNeighbours(pos cube.Pos)
	NotifyNeighbour(pos, origin cube.Pos)
	UpdateNeighbourShapes(pos cube.Pos, s voxel.State, flags world.Flag)
	CurrentTick() int64
}

// Body is a dynamic body that moving voxels can displace.
type Body interface {
	// BBox returns the world space bounding box of the body.
	BBox() cube.BBox
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	// MoveByPiston moves the body by delta. Voxels moving along the face passed do not block the movement.
	MoveByPiston(along cube.Face, delta mgl64.Vec3, tick int64)
	PushReaction() voxel.PushReaction
	Player() bool
	OnGround() bool
	// SupportedBy returns true if the body is standing on the cell at pos.
	SupportedBy(pos cube.Pos) bool
}

// EntityIndex looks up bodies by area.
type EntityIndex interface {
	// Intersecting returns all bodies whose bounding box intersects box.
	Intersecting(box cube.BBox) []Body
}

// Sound is a sound played by a piston.
type Sound uint8

const (
	SoundExtend Sound = iota
	SoundRetract
)

// Effects receives the side effects of piston motions. Calls are fire and forget.
type Effects interface {
	PlaySound(pos cube.Pos, sound Sound)
	// DestroyBlock is called for every voxel a piston destroys, before the cell is cleared. Implementations
	// handle drops and particles.
	DestroyBlock(pos cube.Pos, s voxel.State)
}

// NopEffects implements Effects without doing anything.
type NopEffects struct{}

func (NopEffects) PlaySound(cube.Pos, Sound)          {}
func (NopEffects) DestroyBlock(cube.Pos, voxel.State) {}
