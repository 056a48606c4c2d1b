// Package snapshot saves the voxels that are in the middle of a piston motion and restores them later, so that
// a simulation can be resumed without losing in-flight motions.
package snapshot

import (
	"io"
	"log/slog"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/klauspost/compress/zstd"
	"github.com/oomph-ac/pistonsim/oerror"
	"github.com/oomph-ac/pistonsim/piston"
	"github.com/oomph-ac/pistonsim/voxel"
	"github.com/oomph-ac/pistonsim/world"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

// Version is the version of the snapshot format written by Save.
const Version = 1

// Source is a grid whose moving voxels can be saved.
type Source interface {
	// Each calls f for every non-air cell of the grid.
	Each(f func(pos cube.Pos, s voxel.State))
	CurrentTick() int64
}

// Destination is a grid that moving voxels can be restored into.
type Destination interface {
	SetBlock(pos cube.Pos, s voxel.State, flags world.Flag)
}

type header struct {
	Version int32 `nbt:"version"`
	Tick    int64 `nbt:"tick"`
	Count   int32 `nbt:"count"`
}

type entry struct {
	X          int32             `nbt:"x"`
	Y          int32             `nbt:"y"`
	Z          int32             `nbt:"z"`
	LastTicked int64             `nbt:"lastTicked"`
	Moving     piston.MovingData `nbt:"moving"`
}

// Save writes every moving voxel of src to w as a zstd compressed stream of NBT compounds.
func Save(w io.Writer, src Source) error {
	var entries []entry
	src.Each(func(pos cube.Pos, s voxel.State) {
		m, ok := s.(*piston.Moving)
		if !ok || m.Done() {
			return
		}
		entries = append(entries, entry{
			X:          int32(pos[0]),
			Y:          int32(pos[1]),
			Z:          int32(pos[2]),
			LastTicked: m.LastTicked,
			Moving:     m.Data(),
		})
	})

	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	enc := nbt.NewEncoderWithEncoding(zw, nbt.LittleEndian)
	if err := enc.Encode(header{Version: Version, Tick: src.CurrentTick(), Count: int32(len(entries))}); err != nil {
		_ = zw.Close()
		return oerror.New("snapshot: encode header: %v", err)
	}
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			_ = zw.Close()
			return oerror.New("snapshot: encode moving voxel at %v %v %v: %v", e.X, e.Y, e.Z, err)
		}
	}
	return zw.Close()
}

// Load reads a snapshot written by Save from r and places the moving voxels it holds in dst. Moving voxels
// whose moved state is not registered are restored as moving air. Load returns the tick the snapshot was taken
// at.
func Load(r io.Reader, dst Destination, log *slog.Logger) (int64, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	zr, err := zstd.NewReader(r)
	if err != nil {
		return 0, err
	}
	defer zr.Close()

	dec := nbt.NewDecoderWithEncoding(zr, nbt.LittleEndian)
	var h header
	if err := dec.Decode(&h); err != nil {
		return 0, oerror.New("snapshot: decode header: %v", err)
	}
	if h.Version != Version {
		return 0, oerror.New("snapshot: unsupported version %v", h.Version)
	}

	if h.Count < 0 {
		return 0, oerror.New("snapshot: invalid moving voxel count %v", h.Count)
	}
	var restored []entry
	for range h.Count {
		var e entry
		if err := dec.Decode(&e); err != nil {
			return 0, oerror.New("snapshot: decode moving voxel: %v", err)
		}
		restored = append(restored, e)
	}
	for _, e := range restored {
		pos := cube.Pos{int(e.X), int(e.Y), int(e.Z)}
		m, ok := piston.MovingFromData(e.Moving)
		if !ok {
			log.Warn("unknown moved state restored as air", "pos", pos, "state", e.Moving.MovedState.Name)
		}
		m.LastTicked = e.LastTicked
		dst.SetBlock(pos, m, world.FlagKnownShape|world.FlagInvisible)
	}
	log.Debug("snapshot loaded", "tick", h.Tick, "moving", len(restored))
	return h.Tick, nil
}
