package entity

import (
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/pistonsim/piston"
)

// Index keeps track of all entities in a world. Entities are iterated in the order they were added.
type Index struct {
	mu       sync.Mutex
	entities *orderedmap.OrderedMap[uint64, *Entity]
	nextID   uint64
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	return &Index{entities: orderedmap.NewOrderedMap[uint64, *Entity](), nextID: 1}
}

var _ piston.EntityIndex = (*Index)(nil)

// Add adds e to the index and returns the runtime ID assigned to it.
func (idx *Index) Add(e *Entity) uint64 {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	id := idx.nextID
	idx.nextID++
	idx.entities.Set(id, e)
	return id
}

// Remove removes the entity with the runtime ID passed. It returns false if no such entity exists.
func (idx *Index) Remove(id uint64) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.entities.Delete(id)
}

// Entity returns the entity with the runtime ID passed.
func (idx *Index) Entity(id uint64) (*Entity, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.entities.Get(id)
}

// Len returns the amount of entities in the index.
func (idx *Index) Len() int {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.entities.Len()
}

// Intersecting returns all entities whose bounding box intersects box.
func (idx *Index) Intersecting(box cube.BBox) []piston.Body {
	var bodies []piston.Body
	for _, e := range idx.snapshot() {
		if e.BBox().IntersectsWith(box) {
			bodies = append(bodies, e)
		}
	}
	return bodies
}

// Record stores the current position of every entity in its position history.
func (idx *Index) Record(tick int64) {
	for _, e := range idx.snapshot() {
		e.Record(tick)
	}
}

func (idx *Index) snapshot() []*Entity {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	entities := make([]*Entity, 0, idx.entities.Len())
	for el := idx.entities.Front(); el != nil; el = el.Next() {
		entities = append(entities, el.Value)
	}
	return entities
}
