package entity

import (
	"github.com/go-gl/mathgl/mgl32"
)

// HistoricalPosition is a position of an entity that was recorded at a certain tick.
type HistoricalPosition struct {
	Position     mgl32.Vec3
	PrevPosition mgl32.Vec3

	Tick int64
}

// Rewind looks back in the position history of the entity, and returns the position recorded at the tick
// closest to the one passed.
func (e *Entity) Rewind(tick int64) (HistoricalPosition, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.history.Len() == 0 {
		return HistoricalPosition{}, false
	}

	var (
		result HistoricalPosition
		delta  int64 = 1<<63 - 1
	)
	e.history.Iter(func(hp HistoricalPosition) bool {
		if hp.Tick == tick {
			result, delta = hp, 0
			return false
		}
		if d := abs64(hp.Tick - tick); d < delta {
			result, delta = hp, d
		}
		return true
	})
	return result, true
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
