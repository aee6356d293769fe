// Package orderedmap implements the ordered map derivative (spec §4.6):
// the same red-black tree ordering as orderedset, keyed on Key alone,
// with an in-place value region and a first-class entry handle.
package orderedmap

import (
	"github.com/flier/gocontainer/containers/entry"
	"github.com/flier/gocontainer/containers/errs"
	"github.com/flier/gocontainer/rbtree"
)

// Entry is a borrowed handle on one key/value pair: the comparator
// trampoline only ever looks at the key half (entry.Map.Key), so the
// value half can be read or overwritten in place without disturbing the
// tree, exactly as spec §4.6 describes. "The entry address equals the
// key region address" in the original's packed-struct layout has no
// direct Go analogue; the handle identity that survives here is the
// *rbtree.Node[entry.Map[K, V]] pointer itself, stable across Set and
// navigation.
type Entry[K, V any] = *rbtree.Node[entry.Map[K, V]]

// Key returns e's key.
func Key[K, V any](e Entry[K, V]) K { return e.Value.K }

// GetValue returns e's current value.
func GetValue[K, V any](e Entry[K, V]) V { return e.Value.V }

// SetValue overwrites e's value in place.
func SetValue[K, V any](e Entry[K, V], value V) { e.Value.V = value }

// Map is an ordered map from keys of type K to values of type V,
// ordered by a caller-supplied three-way comparator over K.
type Map[K, V any] struct {
	tree rbtree.Tree[entry.Map[K, V]]
	cmp  func(a, b K) int
}

// New constructs an empty Map ordered by cmp.
func New[K, V any](cmp func(a, b K) int) *Map[K, V] {
	return &Map[K, V]{cmp: cmp}
}

// Of bulk-constructs a Map from key/value pairs, inserting each in
// turn; a later duplicate key is rejected the same way Add rejects it
// (first write wins).
func Of[K, V any](cmp func(a, b K) int, pairs ...entry.Map[K, V]) *Map[K, V] {
	m := New[K, V](cmp)
	for _, p := range pairs {
		_ = m.Add(p.K, p.V)
	}
	return m
}

// Len returns the number of entries in m.
func (m *Map[K, V]) Len() int { return m.tree.Len() }

func (m *Map[K, V]) compareTo(probe K) rbtree.Compare[entry.Map[K, V]] {
	return entry.Compare[entry.Map[K, V]](m.cmp, probe)
}

// Add inserts key/value if key is not already present.
func (m *Map[K, V]) Add(key K, value V) error {
	_, err := m.tree.Insert(m.compareTo(key), entry.Map[K, V]{K: key, V: value})
	if err != nil {
		return errs.New("orderedmap.Add", errs.KeyAlreadyExists)
	}
	return nil
}

// Set locates key and overwrites its value in place, per spec §4.6.
// Returns KeyNotFound if key is absent - callers that want upsert
// semantics combine Set with Add.
func (m *Map[K, V]) Set(key K, value V) error {
	n, _ := m.tree.Find(m.compareTo(key))
	if n == nil {
		return errs.New("orderedmap.Set", errs.KeyNotFound)
	}
	n.Value.V = value
	return nil
}

// Remove deletes key if present.
func (m *Map[K, V]) Remove(key K) error {
	n, _ := m.tree.Find(m.compareTo(key))
	if n == nil {
		return errs.New("orderedmap.Remove", errs.KeyNotFound)
	}
	m.tree.Remove(n)
	return nil
}

// RemoveItem removes a previously-observed Entry directly.
func (m *Map[K, V]) RemoveItem(e Entry[K, V]) error {
	if e == nil {
		return errs.New("orderedmap.RemoveItem", errs.ItemIsNil)
	}
	m.tree.Remove(e)
	return nil
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	n, _ := m.tree.Find(m.compareTo(key))
	return n != nil
}

// GetEntry returns the entry handle for key.
func (m *Map[K, V]) GetEntry(key K) (Entry[K, V], error) {
	n, _ := m.tree.Find(m.compareTo(key))
	if n == nil {
		return nil, errs.New("orderedmap.GetEntry", errs.KeyNotFound)
	}
	return n, nil
}

// Get returns key's value directly, for callers that don't need the
// entry handle.
func (m *Map[K, V]) Get(key K) (value V, err error) {
	e, err := m.GetEntry(key)
	if err != nil {
		return value, err
	}
	return e.Value.V, nil
}

// FirstEntry and LastEntry return the entry handles at either ordering
// extreme.
func (m *Map[K, V]) FirstEntry() (Entry[K, V], error) {
	n, err := m.tree.First()
	if err != nil {
		return nil, errs.New("orderedmap.FirstEntry", errs.ContainerIsEmpty)
	}
	return n, nil
}

func (m *Map[K, V]) LastEntry() (Entry[K, V], error) {
	n, err := m.tree.Last()
	if err != nil {
		return nil, errs.New("orderedmap.LastEntry", errs.ContainerIsEmpty)
	}
	return n, nil
}

// NextEntry and PrevEntry walk the in-order sequence from e.
func (m *Map[K, V]) NextEntry(e Entry[K, V]) (Entry[K, V], error) {
	n, err := rbtree.Next(e)
	if err != nil {
		return nil, errs.New("orderedmap.NextEntry", errs.EndOfSequence)
	}
	return n, nil
}

func (m *Map[K, V]) PrevEntry(e Entry[K, V]) (Entry[K, V], error) {
	n, err := rbtree.Prev(e)
	if err != nil {
		return nil, errs.New("orderedmap.PrevEntry", errs.EndOfSequence)
	}
	return n, nil
}

// ceilingFrom resolves the ceiling rule when find reports no exact
// match: candidate is either the predecessor or successor of probe in
// in-order (spec §4.7's BST rationale). If it's already >= probe it is
// the ceiling outright; otherwise the ceiling is its in-order
// successor, per §4.5's "fall back to next / prev as appropriate".
func (m *Map[K, V]) ceilingFrom(candidate Entry[K, V], probe K, op string) (Entry[K, V], error) {
	if candidate == nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	if m.cmp(probe, candidate.Value.K) <= 0 {
		return candidate, nil
	}
	n, err := rbtree.Next(candidate)
	if err != nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	return n, nil
}

// floorFrom mirrors ceilingFrom, falling back to the predecessor.
func (m *Map[K, V]) floorFrom(candidate Entry[K, V], probe K, op string) (Entry[K, V], error) {
	if candidate == nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	if m.cmp(probe, candidate.Value.K) >= 0 {
		return candidate, nil
	}
	n, err := rbtree.Prev(candidate)
	if err != nil {
		return nil, errs.New(op, errs.KeyNotFound)
	}
	return n, nil
}

// CeilingEntry, FloorEntry, HigherEntry and LowerEntry mirror
// orderedset's key-only navigation, returning entry handles instead of
// bare keys (spec §4.6-4.7).
func (m *Map[K, V]) CeilingEntry(probe K) (Entry[K, V], error) {
	found, candidate := m.tree.Find(m.compareTo(probe))
	if found != nil {
		return found, nil
	}
	return m.ceilingFrom(candidate, probe, "orderedmap.CeilingEntry")
}

func (m *Map[K, V]) FloorEntry(probe K) (Entry[K, V], error) {
	found, candidate := m.tree.Find(m.compareTo(probe))
	if found != nil {
		return found, nil
	}
	return m.floorFrom(candidate, probe, "orderedmap.FloorEntry")
}

func (m *Map[K, V]) HigherEntry(probe K) (Entry[K, V], error) {
	found, candidate := m.tree.Find(m.compareTo(probe))
	if found != nil {
		n, err := rbtree.Next(found)
		if err != nil {
			return nil, errs.New("orderedmap.HigherEntry", errs.KeyNotFound)
		}
		return n, nil
	}
	return m.ceilingFrom(candidate, probe, "orderedmap.HigherEntry")
}

func (m *Map[K, V]) LowerEntry(probe K) (Entry[K, V], error) {
	found, candidate := m.tree.Find(m.compareTo(probe))
	if found != nil {
		n, err := rbtree.Prev(found)
		if err != nil {
			return nil, errs.New("orderedmap.LowerEntry", errs.KeyNotFound)
		}
		return n, nil
	}
	return m.floorFrom(candidate, probe, "orderedmap.LowerEntry")
}

// Invalidate walks every entry in ascending order, calling onRemove
// once per key/value pair, then empties the map.
func (m *Map[K, V]) Invalidate(onRemove func(K, V)) {
	if onRemove != nil {
		m.tree.Walk(func(n *rbtree.Node[entry.Map[K, V]]) { onRemove(n.Value.K, n.Value.V) })
	}
	m.tree.Clear()
}

// ForEach visits every key/value pair in ascending key order.
func (m *Map[K, V]) ForEach(visit func(K, V)) {
	m.tree.Walk(func(n *rbtree.Node[entry.Map[K, V]]) { visit(n.Value.K, n.Value.V) })
}
