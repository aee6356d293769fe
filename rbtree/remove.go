package rbtree

import "github.com/flier/gocontainer/internal/xdebug"

// Remove detaches node from the tree and repairs any resulting
// black-height deficit. node must currently belong to t (callers locate
// it via Find or direct navigation first).
func (t *Tree[E]) Remove(node *Node[E]) {
	// Two children: swap node with its in-order successor structurally
	// and by color (a full pointer swap, per the design notes' required
	// removal-by-swap semantics), so the target to splice out now has at
	// most one child. This keeps the successor's own address stable,
	// which is what the design notes promise holders of a successor
	// reference.
	if node.left != nil && node.right != nil {
		succ := minimum(node.right)
		swapNodes(t, node, succ)
	}

	// node now has at most one child.
	var child *Node[E]
	if node.left != nil {
		child = node.left
	} else {
		child = node.right
	}

	doubleBlack := colorOf(node) == black && colorOf(child) == black
	parent := node.parent

	reparentOnRemove(t, parent, node, child)
	t.count--

	xdebug.Log("Remove", "count=%d doubleBlack=%v\n", t.count, doubleBlack)

	if doubleBlack {
		// A leaf removal with no replacement is a double-black on the
		// (now-vacated) NIL position itself; repairDoubleBlack takes the
		// replacement node (possibly nil) plus its new parent to locate
		// that position.
		t.repairDoubleBlack(child, parent)
	} else {
		// Promoting a RED child (or replacing a RED node) restores T3
		// outright: just recolor the child BLACK if present.
		setColor(child, black)
	}
}

// swapNodes exchanges a's and b's positions in the tree, including color,
// by relinking their parent/child pointers - a full structural swap
// rather than a payload copy, so that any outstanding reference to b
// (the in-order successor) still points at b after the swap completes,
// and subsequent navigation from that reference behaves as if only a's
// entry moved away.
func swapNodes[E any](t *Tree[E], a, b *Node[E]) {
	if a.right == b {
		// b is a's direct right child (the common case when a has no
		// left subtree below b).
		a.color, b.color = b.color, a.color

		aParent := a.parent
		aLeft := a.left
		bRight := b.right

		b.setLeft(aLeft)
		b.parent = aParent
		reparentRaw(t, aParent, a, b)

		b.setRight(a)
		a.left, a.right = nil, nil
		a.setRight(bRight)

		return
	}

	a.color, b.color = b.color, a.color

	aParent, bParent := a.parent, b.parent
	aLeft, aRight := a.left, a.right
	bLeft, bRight := b.left, b.right

	reparentRaw(t, aParent, a, b)
	reparentRaw(t, bParent, b, a)

	b.setLeft(aLeft)
	b.setRight(aRight)
	a.left, a.right = nil, nil
	a.setLeft(bLeft)
	a.setRight(bRight)
}

// reparentRaw is reparent without requiring replacement to be non-nil.
func reparentRaw[E any](t *Tree[E], p, old, replacement *Node[E]) {
	if p == nil {
		t.root = replacement
		if replacement != nil {
			replacement.parent = nil
		}
		return
	}
	if p.left == old {
		p.left = replacement
	} else {
		p.right = replacement
	}
	if replacement != nil {
		replacement.parent = p
	}
}

// reparentOnRemove splices child into node's slot under parent (or makes
// child the new root), removing node from the tree entirely.
func reparentOnRemove[E any](t *Tree[E], parent, node, child *Node[E]) {
	reparentRaw(t, parent, node, child)
	node.parent, node.left, node.right = nil, nil, nil
}

// repairDoubleBlack restores T3 when n (possibly nil, representing a
// vacated NIL position) is carrying a black-height deficit of one under
// parent, per the case analysis in spec §4.3.
func (t *Tree[E]) repairDoubleBlack(n, parent *Node[E]) {
	for {
		if parent == nil {
			// Root absorbs the deficit; nothing more to balance.
			return
		}

		s := sibling(parent, n)

		if colorOf(s) == red {
			parent.color, s.color = s.color, parent.color
			if parent.left == n {
				mustRotate(rotateLeft(t, s))
			} else {
				mustRotate(rotateRight(t, s))
			}
			s = sibling(parent, n)
		}

		closeChild, farChild := sOrientedChildren(parent, n, s)

		if colorOf(parent) == black && colorOf(s) == black &&
			colorOf(closeChild) == black && colorOf(farChild) == black {
			setColor(s, red)
			n, parent = parent, parent.parent
			continue
		}

		if colorOf(parent) == red && colorOf(s) == black &&
			colorOf(closeChild) == black && colorOf(farChild) == black {
			parent.color, s.color = s.color, parent.color
			return
		}

		if colorOf(s) == black && colorOf(closeChild) == red && colorOf(farChild) == black {
			s.color, closeChild.color = closeChild.color, s.color
			if parent.left == n {
				mustRotate(rotateRight(t, closeChild))
			} else {
				mustRotate(rotateLeft(t, closeChild))
			}
			s = sibling(parent, n)
			closeChild, farChild = sOrientedChildren(parent, n, s)
		}

		// S BLACK, far child RED.
		s.color = parent.color
		parent.color = black
		setColor(farChild, black)
		if parent.left == n {
			mustRotate(rotateLeft(t, s))
		} else {
			mustRotate(rotateRight(t, s))
		}
		return
	}
}

// sOrientedChildren returns sibling s's children named by proximity to n:
// closest is the child of s on n's side, farthest is the child of s on
// the opposite side.
func sOrientedChildren[E any](parent, n, s *Node[E]) (closest, farthest *Node[E]) {
	if parent.left == n {
		return s.left, s.right
	}
	return s.right, s.left
}
