// Package selection tracks which entities are selected, one id set per kind.
package selection

import (
	"slices"

	"cellsketch/internal/doc"
)

type Set struct {
	ids map[doc.Kind]map[int]struct{}
}

func New() *Set {
	return &Set{ids: make(map[doc.Kind]map[int]struct{})}
}

func (s *Set) kind(k doc.Kind) map[int]struct{} {
	m, ok := s.ids[k]
	if !ok {
		m = make(map[int]struct{})
		s.ids[k] = m
	}
	return m
}

func (s *Set) Has(ref doc.Ref) bool {
	_, ok := s.ids[ref.Kind][ref.ID]
	return ok
}

func (s *Set) Add(ref doc.Ref) {
	s.kind(ref.Kind)[ref.ID] = struct{}{}
}

func (s *Set) Remove(ref doc.Ref) {
	delete(s.ids[ref.Kind], ref.ID)
}

func (s *Set) Toggle(ref doc.Ref) {
	if s.Has(ref) {
		s.Remove(ref)
		return
	}
	s.Add(ref)
}

// Replace clears every kind and selects only ref.
func (s *Set) Replace(ref doc.Ref) {
	s.Clear()
	s.Add(ref)
}

func (s *Set) Clear() {
	clear(s.ids)
}

func (s *Set) Count() int {
	n := 0
	for _, m := range s.ids {
		n += len(m)
	}
	return n
}

func (s *Set) IsMultiple() bool { return s.Count() > 1 }

func (s *Set) CountOf(k doc.Kind) int { return len(s.ids[k]) }

// Single returns the selected entity when exactly one is selected.
func (s *Set) Single() (doc.Ref, bool) {
	if s.Count() != 1 {
		return doc.Ref{}, false
	}
	return s.Refs()[0], true
}

// SingleOf is Single restricted to one kind.
func (s *Set) SingleOf(k doc.Kind) (int, bool) {
	ref, ok := s.Single()
	if !ok || ref.Kind != k {
		return 0, false
	}
	return ref.ID, true
}

// Refs lists the selection ordered by kind, then id.
func (s *Set) Refs() []doc.Ref {
	var refs []doc.Ref
	for _, k := range doc.Kinds {
		ids := make([]int, 0, len(s.ids[k]))
		for id := range s.ids[k] {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			refs = append(refs, doc.Ref{Kind: k, ID: id})
		}
	}
	return refs
}
