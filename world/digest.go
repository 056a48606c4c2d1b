package world

import (
	"encoding/binary"
	"slices"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/zeebo/xxh3"
)

// Digest returns a hash of every non-air cell of the World. Two worlds holding the same states at the same
// positions always have the same digest, regardless of the order in which the cells were written.
func (w *World) Digest() uint64 {
	h := xxh3.New()
	buf := make([]byte, 0, 64)
	w.Each(func(pos cube.Pos, s voxel.State) {
		buf = buf[:0]
		buf = binary.LittleEndian.AppendUint64(buf, uint64(pos[0]))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(pos[1]))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(pos[2]))
		buf = append(buf, voxel.Key(s)...)
		_, _ = h.Write(buf)
	})
	return h.Sum64()
}

// Each calls f for every non-air cell of the World, ordered by position. f must not write to the World.
func (w *World) Each(f func(pos cube.Pos, s voxel.State)) {
	positions := make([]cube.Pos, 0, 64)
	for _, blocks := range w.chunks {
		for pos := range blocks {
			positions = append(positions, pos)
		}
	}
	slices.SortFunc(positions, comparePos)
	for _, pos := range positions {
		f(pos, w.chunks[chunkPosOf(pos)][pos])
	}
}

// comparePos orders positions by x, then y, then z.
func comparePos(a, b cube.Pos) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
