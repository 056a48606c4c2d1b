package piston

import (
	"slices"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/oomph-ac/pistonsim/assert"
	"github.com/oomph-ac/pistonsim/voxel"
)

// PushLimit is the maximum number of voxels a single piston can move.
const PushLimit = 12

// Structure is the set of voxels a piston moves or destroys.
type Structure struct {
	// ToPush holds the voxels to move one cell along PushDirection, leading voxels first, so that no voxel is
	// moved into a cell that has not been vacated yet.
	ToPush []cube.Pos
	// ToDestroy holds the voxels that are destroyed by the motion.
	ToDestroy []cube.Pos
	// PushDirection is the direction the voxels in ToPush move in.
	PushDirection cube.Face
}

// Resolve resolves the structure moved by a piston at pos facing facing. It returns false if the piston can not
// move. Resolve only reads from src.
func Resolve(src BlockSource, pos cube.Pos, facing cube.Face, extending bool) (Structure, bool) {
	r := &resolver{
		src:    src,
		piston: pos,
		facing: facing,
		index:  make(map[cube.Pos]int, PushLimit),
	}
	if extending {
		r.push = facing
		r.start = pos.Side(facing)
	} else {
		r.push = facing.Opposite()
		r.start = relative(pos, facing, 2)
	}

	if !r.resolve(extending) {
		return Structure{PushDirection: r.push}, false
	}
	return r.structure(), true
}

// resolver walks the adhesion graph in front of a piston. toPush is an append-only arena that is only
// rearranged when a line runs into a voxel that was queued earlier; index maps every queued position to its slot
// in toPush.
type resolver struct {
	src    BlockSource
	piston cube.Pos
	facing cube.Face
	push   cube.Face
	start  cube.Pos

	toPush    []cube.Pos
	index     map[cube.Pos]int
	toDestroy []cube.Pos
}

func (r *resolver) resolve(extending bool) bool {
	s := r.src.Block(r.start)
	if !Pushable(r.src, s, r.start, r.push, false, r.facing) {
		if extending && voxel.ReactionOf(s) == voxel.PushDestroy {
			r.toDestroy = append(r.toDestroy, r.start)
			return true
		}
		return false
	}
	if !r.addBlockLine(r.start, r.push) {
		return false
	}
	for i := 0; i < len(r.toPush); i++ {
		pos := r.toPush[i]
		if voxel.AdhesionOf(r.src.Block(pos)).Sticky() && !r.addBranchingBlocks(pos) {
			return false
		}
	}
	return true
}

// addBlockLine queues the voxel at pos, reached by moving along dir, together with the voxels glued to it from
// behind and everything it pushes in front of it.
func (r *resolver) addBlockLine(pos cube.Pos, dir cube.Face) bool {
	s := r.src.Block(pos)
	if voxel.IsAir(s) || !Pushable(r.src, s, pos, r.push, false, dir) || pos == r.piston || r.queued(pos) {
		return true
	}

	back := r.push.Opposite()
	length := 1
	if length+len(r.toPush) > PushLimit {
		return false
	}
	for voxel.AdhesionOf(s).Sticky() {
		behindPos := relative(pos, back, length)
		behind := r.src.Block(behindPos)
		if voxel.IsAir(behind) || !voxel.Bonds(voxel.AdhesionOf(s), voxel.AdhesionOf(behind)) ||
			!Pushable(r.src, behind, behindPos, r.push, false, back) || behindPos == r.piston {
			break
		}
		s = behind
		length++
		if length+len(r.toPush) > PushLimit {
			return false
		}
	}

	added := 0
	for k := length - 1; k >= 0; k-- {
		r.add(relative(pos, back, k))
		added++
	}

	for k := 1; ; k++ {
		next := relative(pos, r.push, k)
		if l, ok := r.index[next]; ok {
			r.reorderAtCollision(added, l)
			for m := 0; m <= l+added && m < len(r.toPush); m++ {
				branch := r.toPush[m]
				if voxel.AdhesionOf(r.src.Block(branch)).Sticky() && !r.addBranchingBlocks(branch) {
					return false
				}
			}
			return true
		}
		s = r.src.Block(next)
		if voxel.IsAir(s) {
			return true
		}
		if !Pushable(r.src, s, next, r.push, true, r.push) || next == r.piston {
			return false
		}
		if voxel.ReactionOf(s) == voxel.PushDestroy {
			r.toDestroy = append(r.toDestroy, next)
			return true
		}
		if len(r.toPush) >= PushLimit {
			return false
		}
		r.add(next)
		added++
	}
}

// addBranchingBlocks follows every voxel glued to the side of the voxel at pos.
func (r *resolver) addBranchingBlocks(pos cube.Pos) bool {
	adhesion := voxel.AdhesionOf(r.src.Block(pos))
	for _, face := range cube.Faces() {
		if face.Axis() == r.push.Axis() {
			continue
		}
		neighbourPos := pos.Side(face)
		neighbour := r.src.Block(neighbourPos)
		if voxel.IsAir(neighbour) || !voxel.Bonds(voxel.AdhesionOf(neighbour), adhesion) {
			continue
		}
		if !r.addBlockLine(neighbourPos, face) {
			return false
		}
	}
	return true
}

// reorderAtCollision moves the last added entries of toPush in front of the entry at index collision, so that
// a branch that ran into the main line keeps moving in front of it.
func (r *resolver) reorderAtCollision(added, collision int) {
	n := len(r.toPush)
	if added == 0 || collision >= n-added {
		return
	}
	recent := slices.Clone(r.toPush[n-added:])
	copy(r.toPush[collision+added:], r.toPush[collision:n-added])
	copy(r.toPush[collision:], recent)
	for i := collision; i < n; i++ {
		r.index[r.toPush[i]] = i
	}
}

func (r *resolver) add(pos cube.Pos) {
	r.index[pos] = len(r.toPush)
	r.toPush = append(r.toPush, pos)
}

func (r *resolver) queued(pos cube.Pos) bool {
	_, ok := r.index[pos]
	return ok
}

// structure builds the final Structure, ordering toPush so that the voxels furthest along the push direction
// come first.
func (r *resolver) structure() Structure {
	toPush := slices.Clone(r.toPush)
	slices.Reverse(toPush)

	step := cube.Pos{}.Side(r.push)
	slices.SortStableFunc(toPush, func(a, b cube.Pos) int {
		return dot(b, step) - dot(a, step)
	})

	assert.IsTrue(len(toPush) <= PushLimit, "structure of %v voxels exceeds push limit", len(toPush))
	for _, pos := range r.toDestroy {
		_, pushed := r.index[pos]
		assert.IsTrue(!pushed, "voxel %v is both pushed and destroyed", pos)
	}
	_, pushed := r.index[r.piston]
	assert.IsTrue(!pushed, "piston %v pushes itself", r.piston)

	return Structure{
		ToPush:        toPush,
		ToDestroy:     slices.Clone(r.toDestroy),
		PushDirection: r.push,
	}
}

// Pushable returns true if the voxel s at pos may be moved along move. connection is the direction in which the
// voxel was reached. allowDestroy allows voxels that break when pushed.
func Pushable(src BlockSource, s voxel.State, pos cube.Pos, move cube.Face, allowDestroy bool, connection cube.Face) bool {
	if !src.InBounds(pos) {
		return false
	}
	if voxel.IsAir(s) {
		return true
	}
	if voxel.Immovable(s) {
		return false
	}
	r := src.Range()
	if move == cube.FaceDown && pos[1] == r.Min() {
		return false
	}
	if move == cube.FaceUp && pos[1] == r.Max() {
		return false
	}
	if b, ok := s.(Base); ok {
		if b.Extended {
			return false
		}
	} else {
		if voxel.Unbreakable(s) {
			return false
		}
		switch voxel.ReactionOf(s) {
		case voxel.PushBlock:
			return false
		case voxel.PushDestroy:
			return allowDestroy
		case voxel.PushOnly:
			return move == connection
		}
	}
	return !voxel.HasStorage(s)
}

// relative returns the position n cells away from pos in the direction of face.
func relative(pos cube.Pos, face cube.Face, n int) cube.Pos {
	d := cube.Pos{}.Side(face)
	return cube.Pos{pos[0] + d[0]*n, pos[1] + d[1]*n, pos[2] + d[2]*n}
}

func dot(a, b cube.Pos) int {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
