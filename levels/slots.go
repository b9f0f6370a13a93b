package levels

import "fmt"

// Slots is an id-addressed store. Ids are stable for the lifetime of an item
// and freed ids are reused by later pushes.
type Slots[T any] struct {
	items []*T
	count int
}

// Push stores v and returns its id.
func (s *Slots[T]) Push(v T) int {
	p := new(T)
	*p = v
	s.count++
	for id, it := range s.items {
		if it == nil {
			s.items[id] = p
			return id
		}
	}
	s.items = append(s.items, p)
	return len(s.items) - 1
}

// Get returns the item with the given id. It panics on an invalid id.
func (s *Slots[T]) Get(id int) *T {
	if !s.IsValid(id) {
		panic(fmt.Sprintf("levels: invalid id %d", id))
	}
	return s.items[id]
}

func (s *Slots[T]) IsValid(id int) bool {
	return id >= 0 && id < len(s.items) && s.items[id] != nil
}

// Remove frees id. It panics on an invalid id.
func (s *Slots[T]) Remove(id int) {
	if !s.IsValid(id) {
		panic(fmt.Sprintf("levels: remove invalid id %d", id))
	}
	s.items[id] = nil
	s.count--
	for len(s.items) > 0 && s.items[len(s.items)-1] == nil {
		s.items = s.items[:len(s.items)-1]
	}
}

func (s *Slots[T]) Count() int { return s.count }

// IDs returns the live ids in ascending order.
func (s *Slots[T]) IDs() []int {
	ids := make([]int, 0, s.count)
	for id, it := range s.items {
		if it != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// clone deep copies the store, keeping ids and holes.
func (s *Slots[T]) clone(copyItem func(*T) *T) Slots[T] {
	out := Slots[T]{items: make([]*T, len(s.items)), count: s.count}
	for id, it := range s.items {
		if it != nil {
			out.items[id] = copyItem(it)
		}
	}
	return out
}
