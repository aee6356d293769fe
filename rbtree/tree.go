package rbtree

import "github.com/flier/gocontainer/internal/xdebug"

// Tree is a red-black tree engine over entries of type E. The zero Tree
// is an empty, ready-to-use tree; there is no separate init step because
// a Go value starts zeroed (unlike the C original, which requires an
// explicit init call on caller-owned storage).
type Tree[E any] struct {
	root  *Node[E]
	count int
}

// Len returns the number of nodes currently in the tree.
func (t *Tree[E]) Len() int { return t.count }

// Root returns the tree's root node, or nil if the tree is empty.
func (t *Tree[E]) Root() *Node[E] { return t.root }

// Compare is a comparator closure over a fixed probe: Compare(e) reports
// the sign of probe-minus-e, i.e. negative when the probe sorts before
// e, positive when it sorts after, zero on a match. Derivatives build
// this closure by capturing their probe key and user-supplied key
// comparator; this is the "probe key plus a comparator closure" design
// the spec's design notes call out as the safe-language alternative to
// the original's per-operation override pointer.
type Compare[E any] func(e E) int

// Find descends from the root comparing each visited node against
// compare. It returns the matching node if one exists; otherwise it
// returns the last node visited during the descent (the insertion
// point a new entry equal to the probe would be attached under), which
// is nil only when the tree is empty.
func (t *Tree[E]) Find(compare Compare[E]) (found, insertionPoint *Node[E]) {
	n := t.root
	var last *Node[E]

	for n != nil {
		last = n
		c := compare(n.Value)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n, nil
		}
	}

	return nil, last
}

// Insert locates the position implied by compare and links a fresh node
// for value there, rebalancing on the way up. It returns ErrNodeAlreadyExists
// if compare matches an existing node exactly.
//
// If the computed side is already occupied - which cannot happen via
// Find's own insertion point but can when a caller supplies a stale
// insertionPoint - the existing occupant is demoted one level below the
// new node (preserving its color) before repair, per spec §4.3.
func (t *Tree[E]) Insert(compare Compare[E], value E) (*Node[E], error) {
	found, parent := t.Find(compare)
	if found != nil {
		return nil, ErrNodeAlreadyExists
	}

	node := NewNode(value)

	left := parent != nil && compare(parent.Value) < 0
	t.InsertAt(parent, left, node)

	return node, nil
}

// attach links child under parent on the given side, demoting any
// existing occupant one level below the new child first (preserving the
// occupant's color untouched), matching spec §4.3's handling of an
// already-occupied insertion side. Find always returns a nil child slot
// at its own insertion point, so this path only triggers when a caller
// drives InsertAt directly with a stale insertion point.
func (t *Tree[E]) attach(parent, child *Node[E], left bool) {
	var existing *Node[E]
	if left {
		existing = parent.left
	} else {
		existing = parent.right
	}

	if left {
		parent.setLeft(child)
	} else {
		parent.setRight(child)
	}

	if existing != nil {
		// Demote the bumped occupant below the new child, on the side
		// dictated by its relation to child - since existing used to be
		// parent's only child on this side, it becomes child's child on
		// the same side.
		if left {
			child.setLeft(existing)
		} else {
			child.setRight(existing)
		}
	}
}

// InsertAt links a fresh, disconnected node under a previously located
// insertion point and rebalances, without performing its own Find. This
// is the lower-level primitive spec §4.3 describes; Insert is Find plus
// InsertAt combined into one call, which is the form every derivative
// actually uses.
func (t *Tree[E]) InsertAt(parent *Node[E], left bool, node *Node[E]) {
	if parent == nil {
		t.root = node
		node.color = black
		t.count++
		return
	}

	t.attach(parent, node, left)
	t.count++

	xdebug.Log("InsertAt", "count=%d\n", t.count)

	t.repairAfterInsert(node)
}

// repairAfterInsert restores invariants T1-T3 from a freshly inserted RED
// node upward, per the case analysis in spec §4.3.
func (t *Tree[E]) repairAfterInsert(n *Node[E]) {
	for {
		parent := n.parent

		if parent == nil {
			n.color = black
			return
		}
		if parent.color == black {
			return
		}

		grandparent := parent.parent
		// parent is RED, so parent cannot be the root (root is always
		// BLACK by T1), hence grandparent is non-nil here.
		uncle := sibling(grandparent, parent)

		if colorOf(uncle) == red {
			parent.color = black
			uncle.color = black
			grandparent.color = red
			n = grandparent
			continue
		}

		parentIsLeft := isOnLeft(grandparent, parent)
		nIsLeft := isOnLeft(parent, n)

		if parentIsLeft == nIsLeft {
			// Same side: single rotation.
			if parentIsLeft {
				mustRotate(rotateRight(t, parent))
			} else {
				mustRotate(rotateLeft(t, parent))
			}
			parent.color, grandparent.color = black, red
			return
		}

		// Opposite side: double rotation.
		if parentIsLeft {
			mustRotate(rotateLeftRight(t, n))
		} else {
			mustRotate(rotateRightLeft(t, n))
		}
		n.color, grandparent.color = black, red
		return
	}
}

// Walk visits every node in ascending order, calling visit once per node.
// It is used by the derivative containers' Invalidate to run the caller's
// on-destroy callback exactly once per live entry.
func (t *Tree[E]) Walk(visit func(*Node[E])) {
	n, err := t.First()
	for err == nil {
		visit(n)
		n, err = Next(n)
	}
}

// Clear resets the tree to empty. Nodes already detached this way become
// eligible for garbage collection once the caller drops its own
// references to them.
func (t *Tree[E]) Clear() {
	t.root = nil
	t.count = 0
}

// mustRotate panics if a rotation invoked with arguments the engine itself
// constructed reports an error - that would indicate a broken internal
// invariant, not a caller mistake.
func mustRotate[E any](_ *Node[E], err error) {
	if err != nil {
		panic("rbtree: internal rotation precondition violated: " + err.Error())
	}
}
