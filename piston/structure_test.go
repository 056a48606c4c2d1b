package piston

import (
	"slices"
	"testing"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/voxel"
)

type mockSource struct {
	blocks map[cube.Pos]voxel.State
}

func newMockSource() *mockSource {
	return &mockSource{blocks: make(map[cube.Pos]voxel.State)}
}

func (m *mockSource) Block(pos cube.Pos) voxel.State {
	if s, ok := m.blocks[pos]; ok {
		return s
	}
	return voxel.Air{}
}

func (m *mockSource) InBounds(pos cube.Pos) bool {
	return pos[1] >= -64 && pos[1] <= 319
}

func (m *mockSource) Range() cube.Range {
	return cube.Range{-64, 319}
}

func (m *mockSource) set(s voxel.State, positions ...cube.Pos) {
	for _, pos := range positions {
		m.blocks[pos] = s
	}
}

func line(from cube.Pos, face cube.Face, n int) []cube.Pos {
	positions := make([]cube.Pos, n)
	for i := range positions {
		positions[i] = relative(from, face, i)
	}
	return positions
}

func sameSet(a, b []cube.Pos) bool {
	if len(a) != len(b) {
		return false
	}
	for _, pos := range a {
		if !slices.Contains(b, pos) {
			return false
		}
	}
	return true
}

func TestResolveSingleVoxel(t *testing.T) {
	src := newMockSource()
	src.set(Base{Facing: cube.FaceEast}, cube.Pos{})
	src.set(voxel.Stone, cube.Pos{1, 0, 0})

	st, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok {
		t.Fatalf("expected structure to resolve")
	}
	if len(st.ToPush) != 1 || st.ToPush[0] != (cube.Pos{1, 0, 0}) {
		t.Fatalf("expected to push only the stone, got %v", st.ToPush)
	}
	if len(st.ToDestroy) != 0 {
		t.Fatalf("expected nothing to be destroyed, got %v", st.ToDestroy)
	}
	if st.PushDirection != cube.FaceEast {
		t.Fatalf("expected push direction east, got %v", st.PushDirection)
	}
}

func TestResolveEmpty(t *testing.T) {
	src := newMockSource()
	st, ok := Resolve(src, cube.Pos{}, cube.FaceUp, true)
	if !ok || len(st.ToPush) != 0 || len(st.ToDestroy) != 0 {
		t.Fatalf("expected empty structure, got %v (ok=%v)", st, ok)
	}

	st, ok = Resolve(src, cube.Pos{}, cube.FaceUp, false)
	if !ok || st.PushDirection != cube.FaceDown {
		t.Fatalf("expected empty retraction pulling down, got %v (ok=%v)", st, ok)
	}
}

func TestResolvePushLimit(t *testing.T) {
	src := newMockSource()
	src.set(voxel.Stone, line(cube.Pos{1, 0, 0}, cube.FaceEast, PushLimit)...)
	st, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok || len(st.ToPush) != PushLimit {
		t.Fatalf("expected %v voxels to be pushed, got %v (ok=%v)", PushLimit, len(st.ToPush), ok)
	}

	src.set(voxel.Stone, cube.Pos{PushLimit + 1, 0, 0})
	if _, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true); ok {
		t.Fatalf("expected %v voxels to exceed the push limit", PushLimit+1)
	}
}

func TestResolveBranchesCountTowardsLimit(t *testing.T) {
	src := newMockSource()
	src.set(voxel.Slime{}, line(cube.Pos{1, 0, 0}, cube.FaceUp, 7)...)
	src.set(voxel.Stone, line(cube.Pos{2, 0, 0}, cube.FaceUp, 6)...)
	if _, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true); ok {
		t.Fatalf("expected 13 glued voxels to exceed the push limit")
	}

	delete(src.blocks, cube.Pos{2, 5, 0})
	st, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok || len(st.ToPush) != PushLimit {
		t.Fatalf("expected exactly %v voxels, got %v (ok=%v)", PushLimit, len(st.ToPush), ok)
	}
}

func TestResolveBlocked(t *testing.T) {
	for name, s := range map[string]voxel.State{
		"obsidian": voxel.Obsidian,
		"bedrock":  voxel.Bedrock,
		"anvil":    voxel.Anvil,
		"chest":    voxel.Chest,
		"extended": Base{Facing: cube.FaceUp, Extended: true},
		"head":     Head{Facing: cube.FaceUp},
		"moving":   NewMoving(voxel.Stone, cube.FaceUp, true, false),
	} {
		src := newMockSource()
		src.set(voxel.Stone, cube.Pos{1, 0, 0})
		src.set(s, cube.Pos{2, 0, 0})
		if _, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true); ok {
			t.Fatalf("expected %v to block the piston", name)
		}
	}
}

func TestResolveWorldLimits(t *testing.T) {
	src := newMockSource()
	src.set(voxel.Stone, cube.Pos{0, 319, 0})
	if _, ok := Resolve(src, cube.Pos{0, 318, 0}, cube.FaceUp, true); ok {
		t.Fatalf("expected voxel at the top of the world not to move up")
	}

	src.set(voxel.Stone, cube.Pos{0, -64, 0})
	if _, ok := Resolve(src, cube.Pos{0, -63, 0}, cube.FaceDown, true); ok {
		t.Fatalf("expected voxel at the bottom of the world not to move down")
	}
}

func TestResolveDestroy(t *testing.T) {
	src := newMockSource()
	src.set(voxel.Torch, cube.Pos{1, 0, 0})
	st, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok {
		t.Fatalf("expected torch in front of the piston to be destroyed")
	}
	if len(st.ToPush) != 0 || len(st.ToDestroy) != 1 || st.ToDestroy[0] != (cube.Pos{1, 0, 0}) {
		t.Fatalf("unexpected structure %v", st)
	}

	if _, ok := Resolve(src, cube.Pos{-1, 0, 0}, cube.FaceEast, false); ok {
		t.Fatalf("expected retracting piston not to pull a torch")
	}

	src.set(voxel.Stone, line(cube.Pos{1, 0, 0}, cube.FaceEast, 3)...)
	src.set(voxel.Cobweb, cube.Pos{4, 0, 0})
	st, ok = Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok {
		t.Fatalf("expected cobweb at the end of the line to be destroyed")
	}
	if len(st.ToPush) != 3 || len(st.ToDestroy) != 1 || st.ToDestroy[0] != (cube.Pos{4, 0, 0}) {
		t.Fatalf("unexpected structure %v", st)
	}
	for _, pos := range st.ToDestroy {
		if slices.Contains(st.ToPush, pos) {
			t.Fatalf("voxel %v both pushed and destroyed", pos)
		}
	}
}

func TestResolvePushOnly(t *testing.T) {
	src := newMockSource()
	src.set(voxel.GlazedTerracotta, cube.Pos{1, 0, 0})
	if _, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true); !ok {
		t.Fatalf("expected glazed terracotta to be pushed")
	}

	src.set(voxel.Slime{}, cube.Pos{1, 0, 0})
	src.set(voxel.GlazedTerracotta, cube.Pos{1, 1, 0})
	st, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok || len(st.ToPush) != 1 {
		t.Fatalf("expected glazed terracotta not to stick to slime, got %v (ok=%v)", st.ToPush, ok)
	}
}

func TestResolveAdhesionExclusivity(t *testing.T) {
	src := newMockSource()
	src.set(voxel.Slime{}, cube.Pos{1, 0, 0}, cube.Pos{1, 2, 0}, cube.Pos{1, 4, 0})
	src.set(voxel.Honey{}, cube.Pos{1, 1, 0}, cube.Pos{1, 3, 0})

	st, ok := Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok {
		t.Fatalf("expected structure to resolve")
	}
	if len(st.ToPush) != 1 || st.ToPush[0] != (cube.Pos{1, 0, 0}) {
		t.Fatalf("expected only the first voxel to move, got %v", st.ToPush)
	}

	src.set(voxel.Slime{}, cube.Pos{1, 1, 0}, cube.Pos{1, 3, 0})
	st, ok = Resolve(src, cube.Pos{}, cube.FaceEast, true)
	if !ok || len(st.ToPush) != 5 {
		t.Fatalf("expected the whole slime column to move, got %v (ok=%v)", st.ToPush, ok)
	}
}

func TestResolvePull(t *testing.T) {
	src := newMockSource()
	src.set(Base{Facing: cube.FaceEast, Sticky: true}, cube.Pos{})
	src.set(voxel.Slime{}, cube.Pos{2, 0, 0})
	src.set(voxel.Stone, cube.Pos{3, 0, 0}, cube.Pos{2, 1, 0})

	st, ok := Resolve(src, cube.Pos{}, cube.FaceEast, false)
	if !ok {
		t.Fatalf("expected structure to resolve")
	}
	if st.PushDirection != cube.FaceWest {
		t.Fatalf("expected pull towards west, got %v", st.PushDirection)
	}
	if !sameSet(st.ToPush, []cube.Pos{{2, 0, 0}, {3, 0, 0}, {2, 1, 0}}) {
		t.Fatalf("unexpected structure %v", st.ToPush)
	}
	if st.ToPush[len(st.ToPush)-1] != (cube.Pos{3, 0, 0}) {
		t.Fatalf("expected the voxel furthest from the piston to move last, got %v", st.ToPush)
	}
}

func TestResolveCycleOrder(t *testing.T) {
	src := newMockSource()
	src.set(Base{Facing: cube.FaceEast}, cube.Pos{})
	src.set(voxel.Stone, cube.Pos{1, 0, 0}, cube.Pos{2, 1, 0}, cube.Pos{1, 1, 0})
	src.set(voxel.Slime{}, cube.Pos{2, 0, 0}, cube.Pos{2, 0, 1}, cube.Pos{1, 0, 1}, cube.Pos{1, 1, 1})

	r := &resolver{
		src:    src,
		facing: cube.FaceEast,
		push:   cube.FaceEast,
		start:  cube.Pos{1, 0, 0},
		index:  make(map[cube.Pos]int),
	}
	if !r.resolve(true) {
		t.Fatalf("expected structure to resolve")
	}
	if len(r.toPush) != 7 {
		t.Fatalf("expected 7 voxels, got %v", r.toPush)
	}
	// The stone at 1,1,0 is found last, but runs into the stone at 2,1,0 and is moved in front of it.
	if r.toPush[2] != (cube.Pos{1, 1, 0}) || r.toPush[3] != (cube.Pos{2, 1, 0}) {
		t.Fatalf("expected collision to reorder the arena, got %v", r.toPush)
	}
	for i, pos := range r.toPush {
		if r.index[pos] != i {
			t.Fatalf("index of %v is %v, expected %v", pos, r.index[pos], i)
		}
	}

	st := r.structure()
	for i, a := range st.ToPush {
		for _, b := range st.ToPush[i+1:] {
			if b[0] > a[0] {
				t.Fatalf("%v moves before %v, which is further along the push direction: %v", a, b, st.ToPush)
			}
		}
	}
}

func TestReorderAtCollision(t *testing.T) {
	r := &resolver{index: make(map[cube.Pos]int)}
	for i := range 6 {
		r.add(cube.Pos{i, 0, 0})
	}
	r.reorderAtCollision(2, 1)

	expected := []cube.Pos{{0, 0, 0}, {4, 0, 0}, {5, 0, 0}, {1, 0, 0}, {2, 0, 0}, {3, 0, 0}}
	if !slices.Equal(r.toPush, expected) {
		t.Fatalf("expected %v, got %v", expected, r.toPush)
	}
	for i, pos := range r.toPush {
		if r.index[pos] != i {
			t.Fatalf("index of %v is %v, expected %v", pos, r.index[pos], i)
		}
	}
}
