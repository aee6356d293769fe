// Package hashtable implements the open-addressed hash table engine:
// a single contiguous slot array with linear probing, tombstone
// deletion, load-factor driven growth, and opportunistic rebuild
// compaction.
//
// This is the single-slot linear-probing sibling of the teacher's
// group-based swiss table (pkg/arena/swiss in the retrieval pack):
// same shape (resident/dead counters, a load factor, a rehash pass
// triggered on growth), but walking one slot at a time per spec §4.9
// instead of SIMD-matching 16-wide groups.
package hashtable

import (
	"github.com/flier/gocontainer/containers/errs"
	"github.com/flier/gocontainer/internal/xdebug"
)

// state is a slot's occupancy: empty, a tombstone left by Remove, or
// occupied by a live key/value pair.
type state int8

const (
	stateEmpty state = iota
	stateDeleted
	stateOccupied
)

type slot[K, V any] struct {
	state state
	key   K
	value V
}

// DefaultLoadFactor is substituted whenever New is called with a load
// factor of exactly zero.
const DefaultLoadFactor = 0.75

// Table is the open-addressed hash table engine, generic over key type K
// and value type V. The caller supplies both the hash function and the
// equality predicate; see [github.com/flier/gocontainer/containers/hashmap]
// for a constructor that defaults these via a fast generic hasher.
type Table[K, V any] struct {
	slots   []slot[K, V]
	live    int
	deleted int
	lf      float32
	hash    func(K) uint64
	eq      func(a, b K) bool
}

// New constructs an empty Table. loadFactor must be in (0, 1]; zero maps
// to DefaultLoadFactor. hash and eq must both be non-nil.
func New[K, V any](loadFactor float32, hash func(K) uint64, eq func(a, b K) bool) (*Table[K, V], error) {
	if hash == nil || eq == nil {
		return nil, errs.New("hashtable.New", errs.OutIsNil)
	}
	if loadFactor == 0 {
		loadFactor = DefaultLoadFactor
	}
	if loadFactor < 0 || loadFactor > 1 {
		return nil, errs.New("hashtable.New", errs.LoadFactorIsInvalid)
	}

	return &Table[K, V]{lf: loadFactor, hash: hash, eq: eq}, nil
}

// Len returns the number of live (OCCUPIED) entries.
func (t *Table[K, V]) Len() int { return t.live }

// Deleted returns the number of tombstoned slots, exposed so callers can
// reason about (or test) the rebuild heuristic directly.
func (t *Table[K, V]) Deleted() int { return t.deleted }

// Cap returns the current slot array length L.
func (t *Table[K, V]) Cap() int { return len(t.slots) }

func (t *Table[K, V]) probeStart(key K) int {
	if len(t.slots) == 0 {
		return 0
	}
	return int(t.hash(key) % uint64(len(t.slots)))
}

// Find walks the probe sequence for key, skipping tombstones, stopping at
// the first EMPTY slot (KeyNotFound) or the first OCCUPIED slot whose key
// is equal (Found). The returned slot index is meaningful only when ok is
// true.
func (t *Table[K, V]) Find(key K) (index int, ok bool) {
	n := len(t.slots)
	if n == 0 {
		return 0, false
	}

	i := t.probeStart(key)
	for probed := 0; probed < n; probed++ {
		s := &t.slots[i]
		switch s.state {
		case stateEmpty:
			return 0, false
		case stateOccupied:
			if t.eq(s.key, key) {
				return i, true
			}
		}
		i++
		if i == n {
			i = 0
		}
	}

	return 0, false
}

// Get returns the value associated with key, and whether it was found.
func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	i, ok := t.Find(key)
	if !ok {
		return value, false
	}
	return t.slots[i].value, true
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.Find(key)
	return ok
}

// Add inserts key/value. It grows (and rebuilds) the table first if
// needed to keep the occupancy cap (H4) satisfied, then walks the probe
// sequence up to the first EMPTY slot; an OCCUPIED slot with an equal key
// along the way is reported as KeyAlreadyExists. The entry is written
// into the first tombstone passed on that walk (which then no longer
// counts as deleted), or into the EMPTY slot if no tombstone was passed.
//
// If a growth rebuild runs and the key nonetheless turns out to already
// exist, the table is left resized: this benign side effect is explicit
// in spec §7 and covered by the growth/duplicate-key test.
func (t *Table[K, V]) Add(key K, value V) error {
	used := t.live + 1 // per spec §4.9: the growth trigger counts live occupancy, not tombstones
	if err := t.ensureCapacity(used); err != nil {
		return err
	}

	n := len(t.slots)
	i := t.probeStart(key)
	tomb, target := -1, -1
	for probed := 0; probed < n && target < 0; probed++ {
		s := &t.slots[i]
		switch s.state {
		case stateEmpty:
			target = i
		case stateDeleted:
			// Remember the first tombstone but keep probing, so an equal
			// key further down the same probe sequence is still found.
			if tomb < 0 {
				tomb = i
			}
		case stateOccupied:
			if t.eq(s.key, key) {
				return errs.New("hashtable.Add", errs.KeyAlreadyExists)
			}
		}
		i++
		if i == n {
			i = 0
		}
	}

	if tomb >= 0 {
		target = tomb
		t.deleted--
	}
	if target < 0 {
		// Unreachable when growth keeps live entries under the occupancy
		// cap: the probe sequence always holds a non-occupied slot.
		return errs.New("hashtable.Add", errs.MemoryAllocationFailed)
	}

	s := &t.slots[target]
	s.state = stateOccupied
	s.key = key
	s.value = value
	t.live++
	return nil
}

// ensureCapacity grows (doubling, saturating at the machine maximum) and
// rebuilds until the occupancy cap for `used` slots holds. Add passes
// live+1, so tombstones do not count toward growth.
func (t *Table[K, V]) ensureCapacity(used int) error {
	l := uint64(len(t.slots))
	if l == 0 {
		l = 1
	}

	grew := false
	for ceilLF(l, t.lf) <= uint64(used) {
		next := l * 2
		if next <= l {
			// Saturated: doubling overflowed and is still insufficient.
			return errs.New("hashtable.Add", errs.MemoryAllocationFailed)
		}
		l = next
		grew = true
	}

	if grew || len(t.slots) == 0 {
		t.grow(int(l))
	}

	return nil
}

func ceilLF(l uint64, lf float32) uint64 {
	v := float64(l) * float64(lf)
	c := uint64(v)
	if float64(c) < v {
		c++
	}
	return c
}

func (t *Table[K, V]) grow(newLen int) {
	xdebug.Log("grow", "L=%d -> %d live=%d deleted=%d\n", len(t.slots), newLen, t.live, t.deleted)

	old := t.slots
	t.slots = make([]slot[K, V], newLen)
	t.live, t.deleted = 0, 0

	for i := range old {
		if old[i].state == stateOccupied {
			t.insertDuringRebuild(old[i].key, old[i].value)
		}
	}
}

// insertDuringRebuild places key/value via the probe sequence without any
// duplicate check - used only by grow/Rebuild, which are reseeding a
// table from entries that were already known-unique.
func (t *Table[K, V]) insertDuringRebuild(key K, value V) {
	n := len(t.slots)
	i := t.probeStart(key)
	for {
		s := &t.slots[i]
		if s.state != stateOccupied {
			s.state = stateOccupied
			s.key = key
			s.value = value
			t.live++
			return
		}
		i++
		if i == n {
			i = 0
		}
	}
}

// Remove deletes key if present, leaving a tombstone in its slot rather
// than compacting eagerly. Returns KeyNotFound if key is absent.
func (t *Table[K, V]) Remove(key K) error {
	i, ok := t.Find(key)
	if !ok {
		return errs.New("hashtable.Remove", errs.KeyNotFound)
	}

	var zeroK K
	var zeroV V
	t.slots[i].state = stateDeleted
	t.slots[i].key = zeroK
	t.slots[i].value = zeroV
	t.live--
	t.deleted++

	return nil
}

// Set overwrites the value for an already-present key in place, without
// touching its probe position. Returns KeyNotFound if key is absent.
func (t *Table[K, V]) Set(key K, value V) error {
	i, ok := t.Find(key)
	if !ok {
		return errs.New("hashtable.Set", errs.KeyNotFound)
	}
	t.slots[i].value = value
	return nil
}

// RebuildNeeded reports the host-facing heuristic: deleted > L/10 &&
// deleted > live.
func (t *Table[K, V]) RebuildNeeded() bool {
	l := len(t.slots)
	return t.deleted > l/10 && t.deleted > t.live
}

// Rebuild performs a single linear pass moving displaced OCCUPIED entries
// toward their home slot and resetting DELETED slots to EMPTY, per spec
// §4.9. It does not change the slot array length.
//
// Any outstanding slot index obtained from Find/First/Last/Next/Prev is
// invalidated by a call to Rebuild.
func (t *Table[K, V]) Rebuild() {
	n := len(t.slots)
	if n == 0 {
		return
	}

	xdebug.Log("Rebuild", "L=%d live=%d deleted=%d\n", n, t.live, t.deleted)

	for i := 0; i < n; i++ {
	settle:
		for {
			s := &t.slots[i]
			switch s.state {
			case stateDeleted:
				s.state = stateEmpty
				var zeroK K
				var zeroV V
				s.key, s.value = zeroK, zeroV
				t.deleted--
				break settle
			case stateOccupied:
				at := int(t.hash(s.key) % uint64(n))
				switch {
				case at == i:
					break settle
				case at < i:
					key, value := s.key, s.value
					s.state = stateEmpty
					var zeroK K
					var zeroV V
					s.key, s.value = zeroK, zeroV
					t.live--
					t.insertDuringRebuild(key, value)
					break settle
				default: // at > i
					t.slots[i], t.slots[at] = t.slots[at], t.slots[i]
					// Slot at is now settled (holds what was at i, which
					// may itself need to move again); re-examine i.
				}
			default: // stateEmpty
				break settle
			}
		}
	}
}

// First returns the index of the first OCCUPIED slot scanning forward
// from the start of the array, or a ContainerIsEmpty error.
func (t *Table[K, V]) First() (int, error) {
	for i := 0; i < len(t.slots); i++ {
		if t.slots[i].state == stateOccupied {
			return i, nil
		}
	}
	return 0, errs.New("hashtable.First", errs.ContainerIsEmpty)
}

// Last returns the index of the last OCCUPIED slot scanning backward from
// the end of the array, or a ContainerIsEmpty error.
func (t *Table[K, V]) Last() (int, error) {
	for i := len(t.slots) - 1; i >= 0; i-- {
		if t.slots[i].state == stateOccupied {
			return i, nil
		}
	}
	return 0, errs.New("hashtable.Last", errs.ContainerIsEmpty)
}

// Next returns the index of the next OCCUPIED slot after index, skipping
// tombstones and empties, or an EndOfSequence error. An index outside
// the slot array is reported as ItemOutOfBounds.
func (t *Table[K, V]) Next(index int) (int, error) {
	if index < 0 || index >= len(t.slots) {
		return 0, errs.New("hashtable.Next", errs.ItemOutOfBounds)
	}
	for i := index + 1; i < len(t.slots); i++ {
		if t.slots[i].state == stateOccupied {
			return i, nil
		}
	}
	return 0, errs.New("hashtable.Next", errs.EndOfSequence)
}

// Prev mirrors Next, scanning backward.
func (t *Table[K, V]) Prev(index int) (int, error) {
	if index < 0 || index >= len(t.slots) {
		return 0, errs.New("hashtable.Prev", errs.ItemOutOfBounds)
	}
	for i := index - 1; i >= 0; i-- {
		if t.slots[i].state == stateOccupied {
			return i, nil
		}
	}
	return 0, errs.New("hashtable.Prev", errs.EndOfSequence)
}

// KeyAt and ValueAt dereference a slot index previously returned by
// Find/First/Last/Next/Prev. Behavior is undefined if index does not
// currently name an OCCUPIED slot (e.g. after an intervening Rebuild).
func (t *Table[K, V]) KeyAt(index int) K   { return t.slots[index].key }
func (t *Table[K, V]) ValueAt(index int) V { return t.slots[index].value }

// Clear empties the table without releasing the backing array.
func (t *Table[K, V]) Clear() {
	for i := range t.slots {
		var zero slot[K, V]
		t.slots[i] = zero
	}
	t.live, t.deleted = 0, 0
}

// ForEach visits every live key/value pair in slot order.
func (t *Table[K, V]) ForEach(visit func(K, V)) {
	for i := range t.slots {
		if t.slots[i].state == stateOccupied {
			visit(t.slots[i].key, t.slots[i].value)
		}
	}
}
