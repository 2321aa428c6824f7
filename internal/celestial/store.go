package celestial

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Store owns the live bodies. Ids are assigned on insertion, starting at 1,
// and are not reused until Clear.
type Store struct {
	bodies []Body
	index  map[ID]int
	nextID ID
}

func NewStore() *Store {
	return &Store{
		bodies: make([]Body, 0),
		index:  make(map[ID]int),
		nextID: 1,
	}
}

func (s *Store) Len() int { return len(s.bodies) }

// Add validates b, assigns it a fresh id and appends it. The id carried by b
// is ignored.
func (s *Store) Add(b Body) (ID, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	b.ID = s.nextID
	s.nextID++
	s.index[b.ID] = len(s.bodies)
	s.bodies = append(s.bodies, b)
	return b.ID, nil
}

// Load replaces the contents with bodies. Nothing changes if any body is
// invalid.
func (s *Store) Load(bodies []Body) error {
	for _, b := range bodies {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	s.Clear()
	for _, b := range bodies {
		if _, err := s.Add(b); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes every body and restarts id assignment.
func (s *Store) Clear() {
	s.bodies = s.bodies[:0]
	s.index = make(map[ID]int)
	s.nextID = 1
}

func (s *Store) Get(id ID) (Body, bool) {
	i, ok := s.index[id]
	if !ok {
		return Body{}, false
	}
	return s.bodies[i], true
}

func (s *Store) Remove(id ID) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.bodies); j++ {
		s.index[s.bodies[j].ID] = j
	}
	return nil
}

// Snapshot returns a copy of all bodies in insertion order.
func (s *Store) Snapshot() Snapshot {
	snap := make(Snapshot, len(s.bodies))
	copy(snap, s.bodies)
	return snap
}

func (s *Store) SetVelocity(id ID, v r3.Vec) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	if !finite(v) {
		return fmt.Errorf("%w: velocity of body %d", ErrNonFinite, id)
	}
	s.bodies[i].Velocity = v
	return nil
}

func (s *Store) SetPosition(id ID, p r3.Vec) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, id)
	}
	if !finite(p) {
		return fmt.Errorf("%w: position of body %d", ErrNonFinite, id)
	}
	s.bodies[i].Position = p
	return nil
}

// Apply sets every body's velocity from velocities and advances its position
// by dt. The map must hold exactly the live ids; anything else is a defect
// in the caller and panics with *InvariantError.
func (s *Store) Apply(velocities map[ID]r3.Vec, dt float64) {
	if len(velocities) != len(s.bodies) {
		for id := range velocities {
			if _, ok := s.index[id]; !ok {
				panic(&InvariantError{Op: "apply", ID: id, Message: "velocity computed for a body not in the store"})
			}
		}
	}
	for i := range s.bodies {
		v, ok := velocities[s.bodies[i].ID]
		if !ok {
			panic(&InvariantError{Op: "apply", ID: s.bodies[i].ID, Message: "no velocity computed for live body"})
		}
		s.bodies[i].Advance(v, dt)
	}
}
