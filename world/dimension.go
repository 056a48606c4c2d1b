package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// Dimension describes the extent of a World.
type Dimension struct {
	// Range is the vertical range of the World, inclusive on both ends.
	Range cube.Range
	// Border is the horizontal distance from the origin at which cells stop existing.
	Border int
}

// Overworld is the extent of a vanilla overworld.
var Overworld = Dimension{Range: cube.Range{-64, 319}, Border: 30_000_000}
