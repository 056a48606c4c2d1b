package world

import (
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/sandertv/gophertunnel/minecraft/protocol"
)

// maxShapeDepth bounds how deep shape updates may recurse into each other.
const maxShapeDepth = 512

// World is a sparse voxel grid. Cells that were never written hold air. A World is not safe for concurrent use:
// the caller owns it for the whole tick.
type World struct {
	dim  Dimension
	tick int64

	chunks  map[protocol.ChunkPos]map[cube.Pos]voxel.State
	ticking *orderedmap.OrderedMap[cube.Pos, struct{}]
	events  *orderedmap.OrderedMap[BlockEvent, struct{}]

	handler    Handler
	shapeDepth int

	logger *slog.Logger
}

// New creates an empty World with the dimension passed. A nil logger discards all output.
func New(dim Dimension, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &World{
		dim:     dim,
		chunks:  make(map[protocol.ChunkPos]map[cube.Pos]voxel.State),
		ticking: orderedmap.NewOrderedMap[cube.Pos, struct{}](),
		events:  orderedmap.NewOrderedMap[BlockEvent, struct{}](),
		handler: NopHandler{},
		logger:  logger,
	}
}

// Handle sets the handler that receives the changes made to the World. Passing nil resets it to NopHandler.
func (w *World) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	w.handler = h
}

// Logger returns the logger of the World.
func (w *World) Logger() *slog.Logger {
	return w.logger
}

// Range returns the vertical range of the World.
func (w *World) Range() cube.Range {
	return w.dim.Range
}

// InBounds returns true if pos lies within the vertical range and the horizontal border of the World.
func (w *World) InBounds(pos cube.Pos) bool {
	if pos.OutOfBounds(w.dim.Range) {
		return false
	}
	return abs(pos[0]) < w.dim.Border && abs(pos[2]) < w.dim.Border
}

// CurrentTick returns the number of times Tick was called.
func (w *World) CurrentTick() int64 {
	return w.tick
}

// Block returns the state at the position passed.
func (w *World) Block(pos cube.Pos) voxel.State {
	if !w.InBounds(pos) {
		return voxel.Air{}
	}
	if s, ok := w.chunks[chunkPosOf(pos)][pos]; ok {
		return s
	}
	return voxel.Air{}
}

// SetBlock sets the state at the position passed and runs the updates requested by flags. Writes outside the
// bounds of the World are ignored.
func (w *World) SetBlock(pos cube.Pos, s voxel.State, flags Flag) {
	if !w.InBounds(pos) {
		w.logger.Debug("ignored out of bounds block write", "pos", pos, "block", s)
		return
	}
	if s == nil {
		s = voxel.Air{}
	}
	chunkPos := chunkPosOf(pos)
	blocks := w.chunks[chunkPos]

	before, ok := blocks[pos]
	if !ok {
		before = voxel.Air{}
	}
	if voxel.IsAir(s) {
		delete(blocks, pos)
		if len(blocks) == 0 {
			delete(w.chunks, chunkPos)
		}
	} else {
		if blocks == nil {
			blocks = make(map[cube.Pos]voxel.State)
			w.chunks[chunkPos] = blocks
		}
		blocks[pos] = s
	}

	if t, ok := s.(voxel.Ticker); ok && t.Tickable() {
		w.ticking.Set(pos, struct{}{})
	} else {
		w.ticking.Delete(pos)
	}

	w.handler.HandleBlockChange(pos, before, s, flags)
	if flags&FlagNeighbours != 0 {
		w.UpdateNeighbours(pos)
	}
	if flags&FlagKnownShape == 0 {
		w.UpdateNeighbourShapes(pos, s, flags&^(FlagNeighbours|FlagSuppressDrops))
	}
}

// RemoveBlock replaces the state at pos with air, updating neighbours and their shapes.
func (w *World) RemoveBlock(pos cube.Pos) {
	w.SetBlock(pos, voxel.Air{}, FlagDefault)
}

// chunkPosOf returns the position of the chunk that holds pos.
func chunkPosOf(pos cube.Pos) protocol.ChunkPos {
	return protocol.ChunkPos{int32(pos[0]) >> 4, int32(pos[2]) >> 4}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
