package entity

// history is a fixed-size circular buffer of the most recent positions of an entity.
type history struct {
	buffer []HistoricalPosition
	head   int // Points to the next write position
	size   int
}

func newHistory(capacity int) *history {
	return &history{buffer: make([]HistoricalPosition, capacity)}
}

// Add inserts a new position, overwriting the oldest one if the buffer is full.
func (h *history) Add(pos HistoricalPosition) {
	h.buffer[h.head] = pos
	h.head = (h.head + 1) % len(h.buffer)
	if h.size < len(h.buffer) {
		h.size++
	}
}

// Len returns the amount of positions stored.
func (h *history) Len() int {
	return h.size
}

// Iter calls f for every stored position, starting with the most recent one, until f returns false.
func (h *history) Iter(f func(HistoricalPosition) bool) {
	for i := 0; i < h.size; i++ {
		idx := (h.head - 1 - i + len(h.buffer)) % len(h.buffer)
		if !f(h.buffer[idx]) {
			return
		}
	}
}
