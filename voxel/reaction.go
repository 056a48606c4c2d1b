package voxel

// PushReaction is the way a voxel or body responds to being part of a piston push.
type PushReaction uint8

const (
	// PushNormal voxels are moved along with the structure.
	PushNormal PushReaction = iota
	// PushBlock voxels can never be moved and stop the structure.
	PushBlock
	// PushDestroy voxels are destroyed when a structure is pushed into them.
	PushDestroy
	// PushOnly voxels may be pushed but never pulled or dragged sideways.
	PushOnly
	// PushIgnore bodies are never displaced by moving voxels.
	PushIgnore
)

// String ...
func (r PushReaction) String() string {
	switch r {
	case PushNormal:
		return "normal"
	case PushBlock:
		return "block"
	case PushDestroy:
		return "destroy"
	case PushOnly:
		return "push_only"
	case PushIgnore:
		return "ignore"
	}
	return "unknown"
}

// Adhesion is the kind of glue a voxel applies to its neighbours when moved.
type Adhesion uint8

const (
	AdhesionNone Adhesion = iota
	// AdhesionSlime bonds with anything but honey and launches bodies it hits.
	AdhesionSlime
	// AdhesionHoney bonds with anything but slime and drags bodies standing on top of it.
	AdhesionHoney
)

// String ...
func (a Adhesion) String() string {
	switch a {
	case AdhesionNone:
		return "none"
	case AdhesionSlime:
		return "slime"
	case AdhesionHoney:
		return "honey"
	}
	return "unknown"
}

// Sticky returns true if the adhesion glues neighbours together.
func (a Adhesion) Sticky() bool {
	return a != AdhesionNone
}

// Bonds reports whether two voxels with adhesion a and b are glued together. At least one of them must be sticky,
// and slime never bonds with honey.
func Bonds(a, b Adhesion) bool {
	if (a == AdhesionSlime && b == AdhesionHoney) || (a == AdhesionHoney && b == AdhesionSlime) {
		return false
	}
	return a.Sticky() || b.Sticky()
}
