package entity

import (
	"sync"

	"github.com/chewxy/math32"
	df_cube "github.com/df-mc/dragonfly/server/block/cube"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/pistonsim/game"
	"github.com/oomph-ac/pistonsim/piston"
	"github.com/oomph-ac/pistonsim/voxel"
)

const (
	// PistonMovementLimit is the furthest an entity may be moved by pistons along a single axis in one tick.
	PistonMovementLimit float32 = 0.51
	// pistonMovementEpsilon is the smallest piston movement that is still applied.
	pistonMovementEpsilon float32 = 1e-5
	// supportOffset is how far below its feet the block an entity stands on is looked up.
	supportOffset = 0.2
	// historySize is the amount of ticks of position history kept for every entity.
	historySize = 20
)

// Collider provides the static collision boxes entities are clipped against.
type Collider interface {
	// CollisionBoxes returns the world space collision boxes of all cells that intersect area.
	CollisionBoxes(area df_cube.BBox, q voxel.ShapeQuery) []df_cube.BBox
}

// Entity is a dynamic body in the world that can be pushed around by pistons.
type Entity struct {
	// mu protects all the following fields.
	mu sync.Mutex
	// position is the position of the feet of the entity.
	position mgl32.Vec3
	// lastPosition is the position of the entity right before it last moved.
	lastPosition mgl32.Vec3
	// velocity is the velocity of the entity. Slime blocks launch entities by changing it.
	velocity mgl32.Vec3
	// aabb is the bounding box of the entity relative to its position.
	aabb cube.BBox
	// player is true if the entity is a player.
	player bool
	// onGround determines whether the entity is standing on a block.
	onGround bool
	// reaction is how the entity reacts to moving blocks.
	reaction voxel.PushReaction

	// pistonDeltas holds the piston movement applied on every axis during pistonTick.
	pistonDeltas [3]float32
	pistonTick   int64

	collider Collider
	history  *history
}

// defaultAABB is the default AABB for newly created entities.
var defaultAABB = game.AABBFromDimensions(0.6, 1.8)

// New creates an entity at the position passed. Entities without a collider are never clipped.
func New(position mgl32.Vec3, player bool, collider Collider) *Entity {
	return &Entity{
		position:     position,
		lastPosition: position,
		aabb:         defaultAABB,
		player:       player,
		onGround:     true,
		reaction:     voxel.PushNormal,
		pistonTick:   -1,
		collider:     collider,
		history:      newHistory(historySize),
	}
}

var _ piston.Body = (*Entity)(nil)

// Position returns the position of the entity.
func (e *Entity) Position() mgl64.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.Vec32To64(e.position)
}

// LastPosition returns the position of the entity before it last moved.
func (e *Entity) LastPosition() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPosition
}

// Teleport moves the entity to pos without any collision checks.
func (e *Entity) Teleport(pos mgl32.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastPosition = e.position
	e.position = pos
}

func (e *Entity) Velocity() mgl64.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.Vec32To64(e.velocity)
}

func (e *Entity) SetVelocity(v mgl64.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.velocity = game.Vec64To32(v)
}

// Player returns true if the entity is a player.
func (e *Entity) Player() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player
}

func (e *Entity) OnGround() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onGround
}

// SetOnGround updates whether the entity is standing on a block.
func (e *Entity) SetOnGround(onGround bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onGround = onGround
}

func (e *Entity) PushReaction() voxel.PushReaction {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reaction
}

// SetPushReaction changes how the entity reacts to moving blocks.
func (e *Entity) SetPushReaction(r voxel.PushReaction) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reaction = r
}

// SupportedBy returns true if the entity stands on the block at pos.
func (e *Entity) SupportedBy(pos df_cube.Pos) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.onGround {
		return false
	}
	feet := game.Vec32To64(e.position)
	feet[1] -= supportOffset
	return df_cube.PosFromVec3(feet) == pos
}

// AABB returns the AABB of the entity relative to its position.
func (e *Entity) AABB() cube.BBox {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.aabb
}

// SetAABB updates the AABB of the entity.
func (e *Entity) SetAABB(aabb cube.BBox) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aabb = aabb
}

// BBox returns the world space bounding box of the entity.
func (e *Entity) BBox() df_cube.BBox {
	e.mu.Lock()
	defer e.mu.Unlock()
	return game.CubeBoxToDFBox(e.aabb.Translate(e.position))
}

// MoveByPiston moves the entity by delta. The total piston movement on every axis is limited to
// PistonMovementLimit per tick, and the movement is clipped against the collision boxes of the world. Blocks
// moving along the face passed do not stop the entity.
func (e *Entity) MoveByPiston(along df_cube.Face, delta mgl64.Vec3, tick int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	vel := e.limitPistonMovement(game.Vec64To32(delta), tick)
	if vel == (mgl32.Vec3{}) {
		return
	}
	if e.collider != nil {
		box := e.aabb.Translate(e.position)
		area := game.CubeBoxToDFBox(box.Extend(vel))
		for _, bb := range e.collider.CollisionBoxes(area, voxel.ShapeQuery{Pushing: true, Along: along}) {
			vel = game.BBClipCollide(game.DFBoxToCubeBox(bb), box, vel, true, nil)
		}
	}
	e.lastPosition = e.position
	e.position = e.position.Add(vel)
}

// limitPistonMovement restricts vec so that the piston movement of the entity stays within
// PistonMovementLimit on every axis during tick. Only the first non-zero axis of vec is kept.
func (e *Entity) limitPistonMovement(vec mgl32.Vec3, tick int64) mgl32.Vec3 {
	if vec.LenSqr() <= 1e-7 {
		return vec
	}
	if tick != e.pistonTick {
		e.pistonDeltas = [3]float32{}
		e.pistonTick = tick
	}
	for i := range 3 {
		if vec[i] == 0 {
			continue
		}
		total := game.ClampFloat(vec[i]+e.pistonDeltas[i], -PistonMovementLimit, PistonMovementLimit)
		d := total - e.pistonDeltas[i]
		e.pistonDeltas[i] = total

		var limited mgl32.Vec3
		if math32.Abs(d) > pistonMovementEpsilon {
			limited[i] = d
		}
		return limited
	}
	return mgl32.Vec3{}
}

// Record stores the current position of the entity in its position history.
func (e *Entity) Record(tick int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.history.Add(HistoricalPosition{Position: e.position, PrevPosition: e.lastPosition, Tick: tick})
}
