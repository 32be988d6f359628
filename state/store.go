package state

import "github.com/javanhut/ravenstate/ids"

// record is an entity stored by value whose id is read through its pointer
type record[T any] interface {
	*T
	ID() ids.ID
}

// store is a dense array of entities owned by one parent. Indices into it
// are invalidated by add (reallocation) and remove (compaction), so they are
// never kept across operations.
type store[T any, P record[T]] struct {
	items []T
}

func (s *store[T, P]) len() int {
	return len(s.items)
}

// add appends v and returns its index
func (s *store[T, P]) add(v T) int {
	s.items = append(s.items, v)
	return len(s.items) - 1
}

// find returns the index of id or -1
func (s *store[T, P]) find(id ids.ID) int {
	if id == 0 {
		return -1
	}
	for i := range s.items {
		if P(&s.items[i]).ID() == id {
			return i
		}
	}
	return -1
}

func (s *store[T, P]) at(i int) P {
	return P(&s.items[i])
}

// idAt returns the id at index i, or 0 when i is out of range
func (s *store[T, P]) idAt(i int) ids.ID {
	if i < 0 || i >= len(s.items) {
		return 0
	}
	return P(&s.items[i]).ID()
}

// remove destroys the entity with id, zeroes its slot and compacts the
// array. A nil destroy moves the entity out without tearing it down.
func (s *store[T, P]) remove(id ids.ID, destroy func(P)) bool {
	i := s.find(id)
	if i < 0 {
		return false
	}
	if destroy != nil {
		destroy(P(&s.items[i]))
	}
	s.removeAt(i)
	return true
}

func (s *store[T, P]) removeAt(i int) {
	var zero T
	s.items[i] = zero
	copy(s.items[i:], s.items[i+1:])
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
}

func (s *store[T, P]) swap(a, b int) {
	s.items[a], s.items[b] = s.items[b], s.items[a]
}

func (s *store[T, P]) idList() []ids.ID {
	out := make([]ids.ID, len(s.items))
	for i := range s.items {
		out[i] = P(&s.items[i]).ID()
	}
	return out
}
