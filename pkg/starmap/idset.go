package starmap

import (
	"maps"
	"slices"
)

// IDSet is an unordered set of IDs.
type IDSet map[ID]struct{}

// NewIDSet returns a set holding ids.
func NewIDSet(ids ...ID) IDSet {
	res := make(IDSet, len(ids))
	res.Add(ids...)
	return res
}

// Add inserts ids into the set.
func (s IDSet) Add(ids ...ID) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of IDs in the set.
func (s IDSet) Len() int {
	return len(s)
}

// Union returns a new set with the members of s and every other set.
func (s IDSet) Union(others ...IDSet) IDSet {
	res := make(IDSet, len(s))
	maps.Copy(res, s)
	for _, o := range others {
		maps.Copy(res, o)
	}
	return res
}

// Contains reports whether every member of o is in s.
func (s IDSet) Contains(o IDSet) bool {
	for id := range o {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Equal reports whether both sets hold the same IDs.
func (s IDSet) Equal(o IDSet) bool {
	return len(s) == len(o) && s.Contains(o)
}

// Sorted returns the members in ascending order.
func (s IDSet) Sorted() []ID {
	res := make([]ID, 0, len(s))
	for id := range s {
		res = append(res, id)
	}
	slices.Sort(res)
	return res
}
