package object

import "time"

// Store owns the falling entities for one round.
type Store struct {
	entities []*Entity
	missed   []*Entity // Reused per Step to avoid allocations

	lowerBound float64 // Entities below this y are missed
	freezeRate float64 // Motion scale while frozen
}

// NewStore creates an empty store. Entities whose y exceeds lowerBound fall out
// of the field; freezeRate scales motion while a freeze is active.
func NewStore(lowerBound, freezeRate float64) *Store {
	return &Store{
		lowerBound: lowerBound,
		freezeRate: freezeRate,
	}
}

// Add appends entities to the store.
func (s *Store) Add(entities ...*Entity) {
	s.entities = append(s.entities, entities...)
}

// Len returns the number of stored entities, dead ones included.
func (s *Store) Len() int {
	return len(s.entities)
}

// AliveCount returns the number of live entities.
func (s *Store) AliveCount() int {
	n := 0
	for _, e := range s.entities {
		if e.Alive {
			n++
		}
	}
	return n
}

// Each calls fn for every live entity in spawn order.
// If fn returns false, iteration stops early.
func (s *Store) Each(fn func(e *Entity) bool) {
	for _, e := range s.entities {
		if !e.Alive {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

// Step moves every live entity by dt and marks the ones that left the field
// through the bottom as dead. The returned slice holds those missed entities
// and is only valid until the next call to Step.
func (s *Store) Step(dt time.Duration, gravity float64, frozen bool) []*Entity {
	s.missed = s.missed[:0]
	secs := dt.Seconds()
	for _, e := range s.entities {
		if !e.Alive {
			continue
		}
		e.Step(secs, gravity, frozen, s.freezeRate)
		if e.Y > s.lowerBound {
			e.MarkDestroyed()
			s.missed = append(s.missed, e)
		}
	}
	return s.missed
}

// Prune removes dead entities and any entity whose age reached lifetime.
// Returns the number of entities removed.
func (s *Store) Prune(now, lifetime time.Duration) int {
	kept := s.entities[:0] // reuse backing array
	for _, e := range s.entities {
		if e.Alive && e.Age(now) < lifetime {
			kept = append(kept, e)
		}
	}
	removed := len(s.entities) - len(kept)
	clear(s.entities[len(kept):])
	s.entities = kept
	return removed
}

// Reset empties the store.
func (s *Store) Reset() {
	clear(s.entities)
	s.entities = s.entities[:0]
	s.missed = s.missed[:0]
}
