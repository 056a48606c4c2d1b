// Package dfvoxel exposes dragonfly blocks as voxel states, so that pistons can be simulated in grids built from
// dragonfly's block catalogue.
package dfvoxel

import (
	"github.com/df-mc/dragonfly/server/block"
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/oomph-ac/pistonsim/voxel"
)

// liquidDestroySpeed is the destroy speed reported for liquids.
const liquidDestroySpeed = 100

// State is a dragonfly block used as a voxel state.
type State struct {
	Block world.Block
}

// Wrap returns the voxel state for b. Air is returned as voxel.Air.
func Wrap(b world.Block) voxel.State {
	switch b.(type) {
	case nil, block.Air:
		return voxel.Air{}
	}
	return State{Block: b}
}

// Unwrap returns the dragonfly block for s. States that were not created by Wrap are looked up in dragonfly's
// block registry by their encoded name and properties.
func Unwrap(s voxel.State) (world.Block, bool) {
	switch s := s.(type) {
	case State:
		return s.Block, true
	case voxel.Air, nil:
		return block.Air{}, true
	}
	return world.BlockByName(voxel.Encode(s))
}

func (s State) Name() string {
	name, _ := s.Block.EncodeBlock()
	return name
}

func (s State) EncodeState() (string, map[string]any) {
	return s.Block.EncodeBlock()
}

// PushReaction reports liquids and blocks that liquids wash away, such as torches and flowers, as destroyed by
// pistons.
func (s State) PushReaction() voxel.PushReaction {
	if r, ok := s.Block.(voxel.PushReactor); ok {
		return r.PushReaction()
	}
	switch s.Block.(type) {
	case world.Liquid, block.LiquidRemovable:
		return voxel.PushDestroy
	}
	return voxel.PushNormal
}

// DestroySpeed returns the hardness of the block. Blocks that can not be broken report -1.
func (s State) DestroySpeed() float64 {
	switch b := s.Block.(type) {
	case world.Liquid:
		return liquidDestroySpeed
	case block.Breakable:
		return b.BreakInfo().Hardness
	}
	return -1
}

// HasStorage returns true for blocks that carry a block entity.
func (s State) HasStorage() bool {
	_, ok := s.Block.(world.NBTer)
	return ok
}

func (s State) CollisionShape(pos cube.Pos, _ voxel.ShapeQuery) []cube.BBox {
	return s.Block.Model().BBox(pos, nil)
}

// BlockGetter is implemented by dragonfly block sources, such as *world.Tx.
type BlockGetter interface {
	Block(pos cube.Pos) world.Block
}

// Source is a voxel.Source that reads its states from a dragonfly block source.
type Source struct {
	Getter BlockGetter
}

// Block returns the wrapped block at pos.
func (s Source) Block(pos cube.Pos) voxel.State {
	return Wrap(s.Getter.Block(pos))
}
