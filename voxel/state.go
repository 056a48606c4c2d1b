package voxel

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// State is a single voxel state held by a grid cell. Behaviour beyond the name is exposed through the optional
// interfaces below; the package level accessors return the defaults for states that do not implement them.
type State interface {
	// Name returns the namespaced identifier of the state, such as minecraft:stone.
	Name() string
}

// Source is a read-only view of a voxel grid.
type Source interface {
	// Block returns the state at pos. Cells that were never written hold Air.
	Block(pos cube.Pos) State
}

// PushReactor is implemented by states that do not react to pistons as PushNormal.
type PushReactor interface {
	PushReaction() PushReaction
}

// Adhesive is implemented by states that glue their neighbours to them when moved.
type Adhesive interface {
	Adhesion() Adhesion
}

// Breakable is implemented by states with a destroy speed. A destroy speed of -1 marks the state unbreakable.
type Breakable interface {
	DestroySpeed() float64
}

// Container is implemented by states that carry attached storage. Such states are never relocated.
type Container interface {
	HasStorage() bool
}

// Emitter is implemented by states that emit a signal.
type Emitter interface {
	// Signal returns true if the state emits a signal towards face.
	Signal(face cube.Face) bool
}

// ShapeUpdater is implemented by states that change when one of their neighbours changes.
type ShapeUpdater interface {
	// UpdateShape returns the state after the neighbour on face became neighbour.
	UpdateShape(face cube.Face, neighbour State) State
}

// Ticker is implemented by states that the grid ticks every tick while they are present.
type Ticker interface {
	Tickable() bool
}

// IsAir returns true if s is nil or air.
func IsAir(s State) bool {
	if s == nil {
		return true
	}
	_, ok := s.(Air)
	return ok
}

// ReactionOf returns the push reaction of s.
func ReactionOf(s State) PushReaction {
	if r, ok := s.(PushReactor); ok {
		return r.PushReaction()
	}
	return PushNormal
}

// AdhesionOf returns the adhesion of s.
func AdhesionOf(s State) Adhesion {
	if a, ok := s.(Adhesive); ok {
		return a.Adhesion()
	}
	return AdhesionNone
}

// Unbreakable returns true if s can not be broken.
func Unbreakable(s State) bool {
	if b, ok := s.(Breakable); ok {
		return b.DestroySpeed() == -1
	}
	return false
}

// HasStorage returns true if s carries attached storage.
func HasStorage(s State) bool {
	if c, ok := s.(Container); ok {
		return c.HasStorage()
	}
	return false
}

var immovable = map[string]struct{}{
	"minecraft:obsidian":             {},
	"minecraft:crying_obsidian":      {},
	"minecraft:respawn_anchor":       {},
	"minecraft:reinforced_deepslate": {},
}

// Immovable returns true for the fixed set of materials that pistons can never move, regardless of their other
// properties.
func Immovable(s State) bool {
	_, ok := immovable[s.Name()]
	return ok
}

// UpdateFromNeighbourShapes runs s through UpdateShape for all six neighbours of pos.
func UpdateFromNeighbourShapes(s State, pos cube.Pos, src Source) State {
	for _, face := range cube.Faces() {
		u, ok := s.(ShapeUpdater)
		if !ok {
			return s
		}
		s = u.UpdateShape(face, src.Block(pos.Side(face)))
	}
	return s
}
