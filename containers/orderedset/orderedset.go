// Package orderedset implements the ordered set derivative (spec §4.5):
// a red-black tree of unique keys exposing add/remove/contains/get plus
// ceiling/floor/higher/lower/first/last/next/prev navigation.
package orderedset

import (
	"github.com/flier/gocontainer/containers/entry"
	"github.com/flier/gocontainer/containers/errs"
	"github.com/flier/gocontainer/rbtree"
)

// Item is a handle on a previously-observed key: the tree node backing
// it, used by RemoveItem, Key and Next/Prev without a fresh lookup,
// mirroring spec §4.5's "item is a previously-observed interior
// key pointer".
type Item[K any] = *rbtree.Node[entry.Set[K]]

// Set is an ordered set of unique keys of type K, ordered by a
// caller-supplied three-way comparator.
type Set[K any] struct {
	tree rbtree.Tree[entry.Set[K]]
	cmp  func(a, b K) int
}

// New constructs an empty Set ordered by cmp. cmp must report the sign
// of a-b: negative if a sorts before b, positive if after, zero if
// equal.
func New[K any](cmp func(a, b K) int) *Set[K] {
	return &Set[K]{cmp: cmp}
}

// Of bulk-constructs a Set by inserting items in argument order - a
// direct generalization of the original test suite's literal-slice
// bootstrap pattern (see SPEC_FULL.md §4). Duplicate keys after the
// first are silently dropped, matching Add's own contract.
func Of[K any](cmp func(a, b K) int, items ...K) *Set[K] {
	s := New(cmp)
	for _, k := range items {
		_ = s.Add(k)
	}
	return s
}

// Len returns the number of keys in s.
func (s *Set[K]) Len() int { return s.tree.Len() }

func (s *Set[K]) compareTo(probe K) rbtree.Compare[entry.Set[K]] {
	return entry.Compare[entry.Set[K]](s.cmp, probe)
}

// Add inserts key if not already present. Returns KeyAlreadyExists
// otherwise.
func (s *Set[K]) Add(key K) error {
	_, err := s.tree.Insert(s.compareTo(key), entry.Set[K]{K: key})
	if err != nil {
		return errs.New("orderedset.Add", errs.KeyAlreadyExists)
	}
	return nil
}

// Remove deletes key if present. Returns KeyNotFound otherwise.
func (s *Set[K]) Remove(key K) error {
	n, _ := s.tree.Find(s.compareTo(key))
	if n == nil {
		return errs.New("orderedset.Remove", errs.KeyNotFound)
	}
	s.tree.Remove(n)
	return nil
}

// RemoveItem removes a previously-observed Item directly, without a
// fresh lookup, per spec §4.5's remove_item.
func (s *Set[K]) RemoveItem(item Item[K]) error {
	if item == nil {
		return errs.New("orderedset.RemoveItem", errs.ItemIsNil)
	}
	s.tree.Remove(item)
	return nil
}

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool {
	n, _ := s.tree.Find(s.compareTo(key))
	return n != nil
}

// Get returns the Item for key, for callers that want the stored
// representation of a probe that compares equal but is not identical
// (spec §4.5).
func (s *Set[K]) Get(key K) (Item[K], error) {
	n, _ := s.tree.Find(s.compareTo(key))
	if n == nil {
		return nil, errs.New("orderedset.Get", errs.KeyNotFound)
	}
	return n, nil
}

// Key dereferences an Item to its key.
func Key[K any](item Item[K]) K { return item.Value.K }

// First returns the smallest key's Item.
func (s *Set[K]) First() (Item[K], error) {
	n, err := s.tree.First()
	if err != nil {
		return nil, errs.New("orderedset.First", errs.ContainerIsEmpty)
	}
	return n, nil
}

// Last returns the largest key's Item.
func (s *Set[K]) Last() (Item[K], error) {
	n, err := s.tree.Last()
	if err != nil {
		return nil, errs.New("orderedset.Last", errs.ContainerIsEmpty)
	}
	return n, nil
}

// Next returns item's in-order successor.
func (s *Set[K]) Next(item Item[K]) (Item[K], error) {
	n, err := rbtree.Next(item)
	if err != nil {
		return nil, errs.New("orderedset.Next", errs.EndOfSequence)
	}
	return n, nil
}

// Prev returns item's in-order predecessor.
func (s *Set[K]) Prev(item Item[K]) (Item[K], error) {
	n, err := rbtree.Prev(item)
	if err != nil {
		return nil, errs.New("orderedset.Prev", errs.EndOfSequence)
	}
	return n, nil
}

// ceilingFrom resolves the ceiling rule against find's insertion point
// when no exact match was found: candidate is either the predecessor or
// successor of probe in in-order (spec §4.7's BST rationale). If it's
// already >= probe it is the ceiling outright; otherwise the ceiling is
// its in-order successor, per §4.5's "fall back to next / prev as
// appropriate".
func (s *Set[K]) ceilingFrom(candidate *rbtree.Node[entry.Set[K]], probe K, op string) (Item[K], error) {
	if candidate == nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	if s.cmp(probe, candidate.Value.K) <= 0 {
		return candidate, nil
	}
	n, err := rbtree.Next(candidate)
	if err != nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	return n, nil
}

// floorFrom mirrors ceilingFrom, falling back to the predecessor.
func (s *Set[K]) floorFrom(candidate *rbtree.Node[entry.Set[K]], probe K, op string) (Item[K], error) {
	if candidate == nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	if s.cmp(probe, candidate.Value.K) >= 0 {
		return candidate, nil
	}
	n, err := rbtree.Prev(candidate)
	if err != nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	return n, nil
}

// Ceiling, Floor, Higher and Lower implement spec §4.7's precise rules
// against find's own insertion point, without a second descent.
func (s *Set[K]) Ceiling(probe K) (Item[K], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		return found, nil
	}
	return s.ceilingFrom(candidate, probe, "orderedset.Ceiling")
}

func (s *Set[K]) Floor(probe K) (Item[K], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		return found, nil
	}
	return s.floorFrom(candidate, probe, "orderedset.Floor")
}

func (s *Set[K]) Higher(probe K) (Item[K], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		n, err := rbtree.Next(found)
		if err != nil {
			return nil, errs.New("orderedset.Higher", errs.KeyNotFound)
		}
		return n, nil
	}
	return s.ceilingFrom(candidate, probe, "orderedset.Higher")
}

func (s *Set[K]) Lower(probe K) (Item[K], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		n, err := rbtree.Prev(found)
		if err != nil {
			return nil, errs.New("orderedset.Lower", errs.KeyNotFound)
		}
		return n, nil
	}
	return s.floorFrom(candidate, probe, "orderedset.Lower")
}

// Invalidate walks every entry in ascending order, calling onRemove
// once per key, then empties the set. It is the Go stand-in for the
// original's destroy callback (spec §3 Lifecycle): there is no manual
// free step, but callers that attached external resources to keys (file
// handles, arena slices) get a chance to release them deterministically
// rather than waiting on the garbage collector.
func (s *Set[K]) Invalidate(onRemove func(K)) {
	if onRemove != nil {
		s.tree.Walk(func(n *rbtree.Node[entry.Set[K]]) { onRemove(n.Value.K) })
	}
	s.tree.Clear()
}

// ForEach visits every key in ascending order.
func (s *Set[K]) ForEach(visit func(K)) {
	s.tree.Walk(func(n *rbtree.Node[entry.Set[K]]) { visit(n.Value.K) })
}
