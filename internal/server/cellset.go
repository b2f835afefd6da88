package server

import "github.com/zyedidia/generic/mapset"

// CellSet is an integer-keyed set of cell ids. It backs both the
// per-call visible set and the per-player cumulative remembered set,
// per the design note in spec.md favouring a bitmap/hash set over a
// string-keyed one.
type CellSet struct {
	set *mapset.Set[int]
}

// NewCellSet returns an empty CellSet.
func NewCellSet() *CellSet {
	return &CellSet{set: mapset.New[int]()}
}

// Put adds id to the set.
func (s *CellSet) Put(id int) { s.set.Put(id) }

// Has reports whether id is in the set.
func (s *CellSet) Has(id int) bool { return s.set.Has(id) }

// Each calls f once for every member, in no particular order.
func (s *CellSet) Each(f func(id int)) { s.set.Each(f) }

// Size returns the number of members.
func (s *CellSet) Size() int { return s.set.Size() }

// Union returns a new set containing every member of s and other.
func (s *CellSet) Union(other *CellSet) *CellSet {
	out := s.Clone()
	if other != nil {
		other.Each(func(id int) { out.Put(id) })
	}
	return out
}

// Clone returns a copy of s.
func (s *CellSet) Clone() *CellSet {
	out := NewCellSet()
	s.Each(func(id int) { out.Put(id) })
	return out
}
