package rbtree

import "github.com/flier/gocontainer/internal/xdebug"

// rotateLeft performs a left rotation around y, per:
//
//	     p                 p
//	     |                 |
//	    (x)               (y)
//	    / \       =>      / \
//	   a  (y)           (x)  c
//	      / \           / \
//	     b   c         a   b
//
// y must be the right child of its parent x. Returns y, which now
// occupies x's former position under p (or is the new tree root if x had
// no parent; t.root is updated in that case).
func rotateLeft[E any](t *Tree[E], y *Node[E]) (*Node[E], error) {
	if y == nil {
		return nil, ErrYIsNil
	}
	x := y.parent
	if x == nil {
		return nil, ErrYHasNoParent
	}
	if x.right != y {
		return nil, ErrYIsNotRightChildOfX
	}

	p := x.parent
	x.setRight(y.left)
	y.setLeft(x)
	reparent(t, p, x, y)

	xdebug.Log("rotateLeft", "pivoted y around x\n")

	return y, nil
}

// rotateRight is the mirror image of rotateLeft: y must be the left
// child of its parent x.
func rotateRight[E any](t *Tree[E], y *Node[E]) (*Node[E], error) {
	if y == nil {
		return nil, ErrYIsNil
	}
	x := y.parent
	if x == nil {
		return nil, ErrYHasNoParent
	}
	if x.left != y {
		return nil, ErrYIsNotLeftChildOfX
	}

	p := x.parent
	x.setLeft(y.right)
	y.setRight(x)
	reparent(t, p, x, y)

	xdebug.Log("rotateRight", "pivoted y around x\n")

	return y, nil
}

// rotateLeftRight performs the double rotation used when a RED child is
// on the opposite side of its RED parent relative to the grandparent:
// rotate y up over x (left), then y up over z (right).
func rotateLeftRight[E any](t *Tree[E], y *Node[E]) (*Node[E], error) {
	x := y.parent
	if x == nil {
		return nil, ErrYHasNoParent
	}
	if x.right != y {
		return nil, ErrYIsNotRightChildOfX
	}
	z := x.parent
	if z == nil {
		return nil, ErrXHasNoParent
	}
	if z.left != x {
		return nil, ErrXIsNotLeftChildOfZ
	}

	if _, err := rotateLeft(t, y); err != nil {
		return nil, err
	}
	return rotateRight(t, y)
}

// rotateRightLeft is the mirror image of rotateLeftRight.
func rotateRightLeft[E any](t *Tree[E], y *Node[E]) (*Node[E], error) {
	x := y.parent
	if x == nil {
		return nil, ErrYHasNoParent
	}
	if x.left != y {
		return nil, ErrYIsNotLeftChildOfX
	}
	z := x.parent
	if z == nil {
		return nil, ErrXHasNoParent
	}
	if z.right != x {
		return nil, ErrXIsNotRightChildOfZ
	}

	if _, err := rotateRight(t, y); err != nil {
		return nil, err
	}
	return rotateLeft(t, y)
}

// reparent splices replacement into p's child slot that used to hold
// old (or, if p is nil, makes replacement the tree root).
func reparent[E any](t *Tree[E], p, old, replacement *Node[E]) {
	if p == nil {
		t.root = replacement
		replacement.setParent(nil)
		return
	}
	if p.left == old {
		p.setLeft(replacement)
	} else {
		p.setRight(replacement)
	}
}
