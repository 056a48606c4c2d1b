package world

import (
	"github.com/df-mc/dragonfly/server/block/cube"
)

// BlockEvent is an event scheduled for the cell at Pos. It is only run if the cell still holds a state named
// Block by the time the event is dispatched.
type BlockEvent struct {
	Pos   cube.Pos
	Block string
	Kind  uint8
	Param int32
}

// QueueBlockEvent schedules ev to run at the start of the next tick. An event equal to one already queued is
// dropped.
func (w *World) QueueBlockEvent(ev BlockEvent) {
	if _, ok := w.events.Get(ev); ok {
		return
	}
	w.events.Set(ev, struct{}{})
}

// PendingBlockEvents returns the number of events that have not yet been run.
func (w *World) PendingBlockEvents() int {
	return w.events.Len()
}

// runBlockEvents runs all queued events in the order they were queued, including events queued by the events
// themselves.
func (w *World) runBlockEvents() {
	for w.events.Len() > 0 {
		ev := w.events.Front().Key
		w.events.Delete(ev)

		if w.Block(ev.Pos).Name() != ev.Block {
			w.logger.Debug("dropped stale block event", "pos", ev.Pos, "block", ev.Block, "kind", ev.Kind)
			continue
		}
		w.handler.HandleBlockEvent(ev)
	}
}
