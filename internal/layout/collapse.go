package layout

import (
	"maps"
	"slices"
)

// CollapsedSet holds the declaration indices of collapsed panels.
// The zero value is an empty set.
type CollapsedSet struct {
	m map[int]struct{}
}

// Toggle flips membership of i and reports whether i is now collapsed.
func (s *CollapsedSet) Toggle(i int) bool {
	if s.m == nil {
		s.m = make(map[int]struct{})
	}
	if _, ok := s.m[i]; ok {
		delete(s.m, i)
		return false
	}
	s.m[i] = struct{}{}
	return true
}

// Has reports whether i is collapsed.
func (s CollapsedSet) Has(i int) bool {
	_, ok := s.m[i]
	return ok
}

// Len returns the number of collapsed panels.
func (s CollapsedSet) Len() int {
	return len(s.m)
}

// Indices returns the collapsed indices in ascending order.
func (s CollapsedSet) Indices() []int {
	return slices.Sorted(maps.Keys(s.m))
}
