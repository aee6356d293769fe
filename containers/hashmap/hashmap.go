// Package hashmap implements the unordered hash map derivative
// (component I): a thin wrapper over the open-addressed hashtable
// engine that defaults the hash function via a fast, seed-randomized
// generic hasher instead of requiring every caller to supply one.
package hashmap

import (
	"github.com/dolthub/maphash"

	"github.com/flier/gocontainer/hashtable"
)

// Map is an unordered map from keys of type K (comparable) to values of
// type V.
type Map[K comparable, V any] struct {
	table *hashtable.Table[K, V]
}

// New constructs an empty Map with the given load factor (0 maps to
// hashtable.DefaultLoadFactor). The hash function defaults to a
// seed-randomized generic hasher (github.com/dolthub/maphash), so most
// callers never need to supply one; NewWithHash lets a caller override
// it, matching spec §4.9's caller-supplied hash_code collaborator.
func New[K comparable, V any](loadFactor float32) (*Map[K, V], error) {
	hasher := maphash.NewHasher[K]()
	return NewWithHash[K, V](loadFactor, hasher.Hash, func(a, b K) bool { return a == b })
}

// NewWithHash constructs an empty Map using a caller-supplied hash
// function and equality predicate.
func NewWithHash[K comparable, V any](loadFactor float32, hash func(K) uint64, eq func(a, b K) bool) (*Map[K, V], error) {
	t, err := hashtable.New[K, V](loadFactor, hash, eq)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{table: t}, nil
}

// Of bulk-constructs a Map from key/value pairs using the default
// hasher.
func Of[K comparable, V any](pairs ...KV[K, V]) (*Map[K, V], error) {
	m, err := New[K, V](0)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		_ = m.Add(p.K, p.V)
	}
	return m, nil
}

// KV is one key/value pair, used by Of's variadic argument list.
type KV[K, V any] struct {
	K K
	V V
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.table.Len() }

// Add inserts key/value. Returns KeyAlreadyExists if key is present.
func (m *Map[K, V]) Add(key K, value V) error { return m.table.Add(key, value) }

// Set overwrites the value for an already-present key.
func (m *Map[K, V]) Set(key K, value V) error { return m.table.Set(key, value) }

// Remove deletes key if present.
func (m *Map[K, V]) Remove(key K) error { return m.table.Remove(key) }

// Get returns key's value and whether it was found.
func (m *Map[K, V]) Get(key K) (V, bool) { return m.table.Get(key) }

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool { return m.table.Contains(key) }

// RebuildNeeded reports whether the tombstone/live ratio warrants a
// Rebuild pass (spec §4.9).
func (m *Map[K, V]) RebuildNeeded() bool { return m.table.RebuildNeeded() }

// Rebuild compacts tombstones, relocating displaced live entries toward
// their home slot. Any index obtained from iteration before Rebuild is
// invalidated afterward.
func (m *Map[K, V]) Rebuild() { m.table.Rebuild() }

// Clear empties the map without releasing the backing array.
func (m *Map[K, V]) Clear() { m.table.Clear() }

// ForEach visits every live key/value pair in slot order (unordered
// with respect to insertion or comparison).
func (m *Map[K, V]) ForEach(visit func(K, V)) { m.table.ForEach(visit) }

// Invalidate calls onRemove once per live entry, then empties the map.
func (m *Map[K, V]) Invalidate(onRemove func(K, V)) {
	if onRemove != nil {
		m.table.ForEach(onRemove)
	}
	m.table.Clear()
}
