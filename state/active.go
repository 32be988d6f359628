package state

import "github.com/javanhut/ravenstate/ids"

// removeTracked removes id from s while keeping *active pointing at the same
// entity. The active id is captured before compaction and looked up again
// afterwards. When the active entity itself goes away the index keeps its
// position, so whatever slides into the vacated slot becomes active; a
// vacated tail slot falls back to the new last element.
func removeTracked[T any, P record[T]](s *store[T, P], active *int, id ids.ID, destroy func(P)) bool {
	activeID := s.idAt(*active)
	if !s.remove(id, destroy) {
		return false
	}
	if activeID != 0 {
		if i := s.find(activeID); i >= 0 {
			*active = i
		}
	}
	clampActive(active, s.len())
	return true
}

func clampActive(active *int, count int) {
	switch {
	case count == 0:
		*active = 0
	case *active >= count:
		*active = count - 1
	case *active < 0:
		*active = 0
	}
}

// cycle moves the active index by delta with wrap-around
func cycle(active *int, count, delta int) bool {
	if count <= 1 {
		return false
	}
	*active = ((*active+delta)%count + count) % count
	return true
}
