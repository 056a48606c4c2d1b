package world

// Flag controls which updates a block write triggers.
type Flag uint8

const (
	// FlagNeighbours notifies the six neighbours of the written cell.
	FlagNeighbours Flag = 1 << iota
	// FlagClients marks the write as visible to viewers.
	FlagClients
	// FlagInvisible marks the write as not needing a re-render.
	FlagInvisible
	flagUnused
	// FlagKnownShape skips the shape updates of the neighbours of the written cell.
	FlagKnownShape
	// FlagSuppressDrops prevents states that collapse during shape updates from dropping items.
	FlagSuppressDrops
	// FlagMovedByPiston marks the write as part of a piston motion.
	FlagMovedByPiston
)

// FlagDefault is the set of flags used by ordinary block writes.
const FlagDefault = FlagNeighbours | FlagClients
