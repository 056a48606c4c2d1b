package voxel

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Air is the empty voxel.
type Air struct{}

// Name ...
func (Air) Name() string { return "minecraft:air" }

// EncodeState ...
func (Air) EncodeState() (string, map[string]any) { return "minecraft:air", nil }

// Block is a plain voxel described entirely by its fields.
type Block struct {
	ID       string
	Reaction PushReaction
	// Hardness is the destroy speed of the block. -1 makes it unbreakable.
	Hardness float64
	// Storage marks blocks that carry attached storage, such as chests.
	Storage bool
	// Passable blocks have no collision shape.
	Passable bool
}

// Name ...
func (b Block) Name() string { return b.ID }

// PushReaction ...
func (b Block) PushReaction() PushReaction { return b.Reaction }

// DestroySpeed ...
func (b Block) DestroySpeed() float64 { return b.Hardness }

// HasStorage ...
func (b Block) HasStorage() bool { return b.Storage }

// CollisionShape ...
func (b Block) CollisionShape(cube.Pos, ShapeQuery) []cube.BBox {
	if b.Passable {
		return nil
	}
	return fullCube
}

// EncodeState ...
func (b Block) EncodeState() (string, map[string]any) { return b.ID, nil }

// Slime is the bouncy sticky block.
type Slime struct{}

// Name ...
func (Slime) Name() string { return "minecraft:slime" }

// Adhesion ...
func (Slime) Adhesion() Adhesion { return AdhesionSlime }

// EncodeState ...
func (Slime) EncodeState() (string, map[string]any) { return "minecraft:slime", nil }

// Honey is the sticky block that drags bodies standing on it.
type Honey struct{}

// Name ...
func (Honey) Name() string { return "minecraft:honey_block" }

// Adhesion ...
func (Honey) Adhesion() Adhesion { return AdhesionHoney }

// CollisionShape ...
func (Honey) CollisionShape(cube.Pos, ShapeQuery) []cube.BBox {
	return []cube.BBox{cube.Box(0.0625, 0, 0.0625, 0.9375, 0.9375, 0.9375)}
}

// EncodeState ...
func (Honey) EncodeState() (string, map[string]any) { return "minecraft:honey_block", nil }

// PowerSource is a movable block that permanently emits a signal on all faces.
type PowerSource struct{}

// Name ...
func (PowerSource) Name() string { return "minecraft:redstone_block" }

// Signal ...
func (PowerSource) Signal(cube.Face) bool { return true }

// EncodeState ...
func (PowerSource) EncodeState() (string, map[string]any) { return "minecraft:redstone_block", nil }

// Lever emits a signal on all faces while it is on. Pistons destroy levers they run into.
type Lever struct {
	On bool
}

// Name ...
func (Lever) Name() string { return "minecraft:lever" }

// Signal ...
func (l Lever) Signal(cube.Face) bool { return l.On }

// PushReaction ...
func (Lever) PushReaction() PushReaction { return PushDestroy }

// CollisionShape ...
func (Lever) CollisionShape(cube.Pos, ShapeQuery) []cube.BBox { return nil }

// EncodeState ...
func (l Lever) EncodeState() (string, map[string]any) {
	return "minecraft:lever", map[string]any{"open_bit": l.On}
}

var (
	Stone            = Block{ID: "minecraft:stone", Hardness: 1.5}
	Cobblestone      = Block{ID: "minecraft:cobblestone", Hardness: 2}
	Dirt             = Block{ID: "minecraft:dirt", Hardness: 0.5}
	Glass            = Block{ID: "minecraft:glass", Hardness: 0.3}
	Obsidian         = Block{ID: "minecraft:obsidian", Hardness: 50}
	CryingObsidian   = Block{ID: "minecraft:crying_obsidian", Hardness: 50}
	Bedrock          = Block{ID: "minecraft:bedrock", Hardness: -1}
	Chest            = Block{ID: "minecraft:chest", Hardness: 2.5, Storage: true}
	Furnace          = Block{ID: "minecraft:furnace", Hardness: 3.5, Storage: true}
	Torch            = Block{ID: "minecraft:torch", Reaction: PushDestroy, Passable: true}
	Cobweb           = Block{ID: "minecraft:web", Hardness: 4, Reaction: PushDestroy, Passable: true}
	GlazedTerracotta = Block{ID: "minecraft:white_glazed_terracotta", Hardness: 1.4, Reaction: PushOnly}
	Anvil            = Block{ID: "minecraft:anvil", Hardness: 5, Reaction: PushBlock}
)

func init() {
	Register(Air{})
	for _, b := range []Block{Stone, Cobblestone, Dirt, Glass, Obsidian, CryingObsidian, Bedrock, Chest, Furnace,
		Torch, Cobweb, GlazedTerracotta, Anvil} {
		Register(b)
	}
	Register(Slime{})
	Register(Honey{})
	Register(PowerSource{})
	Register(Lever{On: false})
	Register(Lever{On: true})
}
