// Package linkedset implements the linked ordered set derivative
// (spec §4.8): a red-black tree giving sorted lookup over a set of
// unique values, paired with a circular doubly-linked list giving
// independent insertion-ordered traversal.
package linkedset

import (
	"github.com/flier/gocontainer/containers/errs"
	"github.com/flier/gocontainer/dlist"
	"github.com/flier/gocontainer/rbtree"
)

// item is the dual-indexed entry: the value plus a pointer to its list
// node. The tree node (an rbtree.Node holding *item) and the list node
// (a dlist.Node holding *item) are separate allocations that both point
// back to the same item. Unlike orderedset/orderedmap's plain value entries, item
// needs its own identity distinct from its tree Node so the list side
// can be spliced (InsertBefore/InsertAfter/Remove) without disturbing
// the tree, and vice versa.
type item[V any] struct {
	value V
	list  *dlist.Node[*item[V]]
}

// Item is a handle on a previously-observed value, usable for
// navigation (Next/Prev walk the list, not the tree) and as an anchor
// for InsertBefore/InsertAfter.
type Item[V any] = *item[V]

// Value dereferences an Item to its stored value.
func Value[V any](item Item[V]) V { return item.value }

// Set is a linked ordered set of unique values of type V.
type Set[V any] struct {
	tree rbtree.Tree[*item[V]]
	cmp  func(a, b V) int
	head Item[V] // nil when empty
}

// New constructs an empty Set ordered by cmp.
func New[V any](cmp func(a, b V) int) *Set[V] {
	return &Set[V]{cmp: cmp}
}

// Len returns the number of values in s.
func (s *Set[V]) Len() int { return s.tree.Len() }

func (s *Set[V]) compareTo(probe V) rbtree.Compare[*item[V]] {
	return func(e *item[V]) int { return s.cmp(probe, e.value) }
}

func (s *Set[V]) findTreeNode(value V) *rbtree.Node[*item[V]] {
	n, _ := s.tree.Find(s.compareTo(value))
	return n
}

// insertIntoTree links a fresh item into the tree, returning
// KeyAlreadyExists if value is already present.
func (s *Set[V]) insertIntoTree(op string, value V) (*item[V], error) {
	it := &item[V]{value: value}
	_, err := s.tree.Insert(s.compareTo(value), it)
	if err != nil {
		return nil, errs.New(op, errs.KeyAlreadyExists)
	}
	return it, nil
}

// Add inserts value into the tree and splices it into the list
// immediately before head, so new additions appear at the tail of the
// ring when iterated starting at head. An empty list makes the new
// node head (spec §4.8).
func (s *Set[V]) Add(value V) (Item[V], error) {
	it, err := s.insertIntoTree("linkedset.Add", value)
	if err != nil {
		return nil, err
	}
	if s.head == nil {
		it.list = dlist.New(it)
		s.head = it
	} else {
		it.list = dlist.New(it)
		dlist.InsertBefore(s.head.list, it.list)
	}
	return it, nil
}

// Prepend inserts value into the tree, splices it before the current
// head, and makes it the new head.
func (s *Set[V]) Prepend(value V) (Item[V], error) {
	it, err := s.insertIntoTree("linkedset.Prepend", value)
	if err != nil {
		return nil, err
	}
	it.list = dlist.New(it)
	if s.head != nil {
		dlist.InsertBefore(s.head.list, it.list)
	}
	s.head = it
	return it, nil
}

// Append inserts value into the tree and splices it after the current
// last node (the node whose Next is head).
func (s *Set[V]) Append(value V) (Item[V], error) {
	it, err := s.insertIntoTree("linkedset.Append", value)
	if err != nil {
		return nil, err
	}
	it.list = dlist.New(it)
	if s.head != nil {
		dlist.InsertAfter(s.head.list.Prev(), it.list)
	} else {
		s.head = it
	}
	return it, nil
}

// InsertBefore inserts value into the tree and splices it into the
// list immediately before anchor, updating head if anchor was head
// (the head-at-tail-anchor invariant per spec §4.8: inserting before
// head moves head to the newly inserted node).
func (s *Set[V]) InsertBefore(anchor Item[V], value V) (Item[V], error) {
	if anchor == nil {
		return nil, errs.New("linkedset.InsertBefore", errs.ItemIsNil)
	}
	it, err := s.insertIntoTree("linkedset.InsertBefore", value)
	if err != nil {
		return nil, err
	}
	it.list = dlist.New(it)
	dlist.InsertBefore(anchor.list, it.list)
	if anchor == s.head {
		s.head = it
	}
	return it, nil
}

// InsertAfter inserts value into the tree and splices it into the list
// immediately after anchor.
func (s *Set[V]) InsertAfter(anchor Item[V], value V) (Item[V], error) {
	if anchor == nil {
		return nil, errs.New("linkedset.InsertAfter", errs.ItemIsNil)
	}
	it, err := s.insertIntoTree("linkedset.InsertAfter", value)
	if err != nil {
		return nil, err
	}
	it.list = dlist.New(it)
	dlist.InsertAfter(anchor.list, it.list)
	return it, nil
}

// Remove deletes value from both indexes. If the removed entry was
// head, head advances to its list-successor, or becomes absent when
// the set is now empty.
func (s *Set[V]) Remove(value V) error {
	n := s.findTreeNode(value)
	if n == nil {
		return errs.New("linkedset.Remove", errs.KeyNotFound)
	}
	it := n.Value
	s.removeItem(it, n)
	return nil
}

func (s *Set[V]) removeItem(it Item[V], n *rbtree.Node[*item[V]]) {
	next := it.list.Next()
	wasHead := it == s.head
	singleton := it.list.Singleton()

	s.tree.Remove(n)
	dlist.Remove(it.list)

	if wasHead {
		if singleton {
			s.head = nil
		} else {
			s.head = next.Value
		}
	}
}

// Contains reports whether value is present.
func (s *Set[V]) Contains(value V) bool { return s.findTreeNode(value) != nil }

// Get returns the Item for value.
func (s *Set[V]) Get(value V) (Item[V], error) {
	n := s.findTreeNode(value)
	if n == nil {
		return nil, errs.New("linkedset.Get", errs.KeyNotFound)
	}
	return n.Value, nil
}

// First returns the list's current head.
func (s *Set[V]) First() (Item[V], error) {
	if s.head == nil {
		return nil, errs.New("linkedset.First", errs.ContainerIsEmpty)
	}
	return s.head, nil
}

// Last returns the node immediately before head in the ring.
func (s *Set[V]) Last() (Item[V], error) {
	if s.head == nil {
		return nil, errs.New("linkedset.Last", errs.ContainerIsEmpty)
	}
	return s.head.list.Prev().Value, nil
}

// Next walks the list forward from item, signaling EndOfSequence when
// the walk would wrap back to head.
func (s *Set[V]) Next(item Item[V]) (Item[V], error) {
	if item.list.Next() == s.head.list {
		return nil, errs.New("linkedset.Next", errs.EndOfSequence)
	}
	return item.list.Next().Value, nil
}

// Prev mirrors Next, walking backward.
func (s *Set[V]) Prev(item Item[V]) (Item[V], error) {
	if item == s.head {
		return nil, errs.New("linkedset.Prev", errs.EndOfSequence)
	}
	return item.list.Prev().Value, nil
}

// ceilingFrom resolves the ceiling rule when find reports no exact
// match: candidate is either the predecessor or successor of probe in
// in-order (spec §4.7's BST rationale). If it's already >= probe it is
// the ceiling outright; otherwise the ceiling is its in-order
// successor, per §4.5's "fall back to next / prev as appropriate".
func (s *Set[V]) ceilingFrom(candidate *rbtree.Node[*item[V]], probe V, op string) (Item[V], error) {
	if candidate == nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	if s.cmp(probe, candidate.Value.value) <= 0 {
		return candidate.Value, nil
	}
	n, err := rbtree.Next(candidate)
	if err != nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	return n.Value, nil
}

// floorFrom mirrors ceilingFrom, falling back to the predecessor.
func (s *Set[V]) floorFrom(candidate *rbtree.Node[*item[V]], probe V, op string) (Item[V], error) {
	if candidate == nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	if s.cmp(probe, candidate.Value.value) >= 0 {
		return candidate.Value, nil
	}
	n, err := rbtree.Prev(candidate)
	if err != nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	return n.Value, nil
}

// Ceiling, Floor, Higher and Lower consult the tree's sorted order
// exactly as orderedset does (spec §4.7); the list's insertion order
// plays no part in these.
func (s *Set[V]) Ceiling(probe V) (Item[V], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		return found.Value, nil
	}
	return s.ceilingFrom(candidate, probe, "linkedset.Ceiling")
}

func (s *Set[V]) Floor(probe V) (Item[V], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		return found.Value, nil
	}
	return s.floorFrom(candidate, probe, "linkedset.Floor")
}

func (s *Set[V]) Higher(probe V) (Item[V], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		n, err := rbtree.Next(found)
		if err != nil {
			return nil, errs.New("linkedset.Higher", errs.KeyNotFound)
		}
		return n.Value, nil
	}
	return s.ceilingFrom(candidate, probe, "linkedset.Higher")
}

func (s *Set[V]) Lower(probe V) (Item[V], error) {
	found, candidate := s.tree.Find(s.compareTo(probe))
	if found != nil {
		n, err := rbtree.Prev(found)
		if err != nil {
			return nil, errs.New("linkedset.Lower", errs.KeyNotFound)
		}
		return n.Value, nil
	}
	return s.floorFrom(candidate, probe, "linkedset.Lower")
}

// Invalidate walks the list in insertion order, calling onRemove once
// per value, then empties the set.
func (s *Set[V]) Invalidate(onRemove func(V)) {
	if onRemove != nil {
		s.ForEach(onRemove)
	}
	s.tree.Clear()
	s.head = nil
}

// ForEach visits every value in insertion order, starting at head.
func (s *Set[V]) ForEach(visit func(V)) {
	if s.head == nil {
		return
	}
	n := s.head
	for {
		visit(n.value)
		n = n.list.Next().Value
		if n == s.head {
			return
		}
	}
}
