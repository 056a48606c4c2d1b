package world

// Tick advances the World by one tick. Queued block events run first, after which every ticking state is
// ticked in the order it was placed. States that start ticking during this pass are first ticked next tick.
func (w *World) Tick() {
	w.tick++
	w.runBlockEvents()

	for _, pos := range w.ticking.Keys() {
		if _, ok := w.ticking.Get(pos); !ok {
			continue
		}
		w.handler.HandleBlockTick(pos, w.Block(pos))
	}
}

// TickingBlocks returns the number of cells holding a ticking state.
func (w *World) TickingBlocks() int {
	return w.ticking.Len()
}
