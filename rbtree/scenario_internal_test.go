package rbtree

import "testing"

// Exercises spec §8 scenario 1 and scenario 2 directly against the
// unexported rotation/color primitives, as the spec's "engine-internal"
// error kinds are only ever produced by calling those primitives with a
// node that violates their precondition - never through the high-level
// Tree surface.

func findInt(t *Tree[int], v int) *Node[int] {
	n, _ := t.Find(func(e int) int { return v - e })
	return n
}

func forceBlack(t *Tree[int]) {
	var walk func(n *Node[int])
	walk = func(n *Node[int]) {
		if n == nil {
			return
		}
		n.color = black
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
}

// Red-black deletion repair case 3, spec §8 scenario 1: build
// {10,5,30,1,7,15,40}, force every node BLACK (an invariant-violating
// but test-convenient starting layout matching the spec's description),
// delete 15, and check the resulting color layout.
func TestDeletionRepairCase3ColorLayout(t *testing.T) {
	var tr Tree[int]
	for _, v := range []int{10, 5, 30, 1, 7, 15, 40} {
		if _, err := tr.Insert(func(e int) int { return v - e }, v); err != nil {
			t.Fatalf("insert %d: %v", v, err)
		}
	}
	forceBlack(&tr)

	target := findInt(&tr, 15)
	if target == nil {
		t.Fatal("15 not found before removal")
	}
	tr.Remove(target)

	root := tr.root
	if root == nil || root.Value != 10 || root.color != black {
		t.Fatalf("root = %v, want 10(black)", root)
	}

	five := root.left
	if five == nil || five.Value != 5 || five.color != red {
		t.Fatalf("root.left = %v, want 5(red)", five)
	}
	if one := five.left; one == nil || one.Value != 1 || one.color != black {
		t.Fatalf("5.left = %v, want 1(black)", one)
	}
	if seven := five.right; seven == nil || seven.Value != 7 || seven.color != black {
		t.Fatalf("5.right = %v, want 7(black)", seven)
	}

	thirty := root.right
	if thirty == nil || thirty.Value != 30 || thirty.color != black {
		t.Fatalf("root.right = %v, want 30(black)", thirty)
	}
	if thirty.left != nil {
		t.Fatalf("30.left = %v, want nil", thirty.left)
	}
	if forty := thirty.right; forty == nil || forty.Value != 40 || forty.color != red {
		t.Fatalf("30.right = %v, want 40(red)", forty)
	}
}

// Rotation error reporting, spec §8 scenario 2: build {X, Y} with Y as
// X's left child, call left-rotate on Y (which requires Y to be a
// *right* child of its parent), and expect ErrYIsNotRightChildOfX.
func TestRotateLeftOnWrongChildReportsError(t *testing.T) {
	var tr Tree[int]
	x := NewNode(10)
	y := NewNode(5)
	tr.root = x
	x.setLeft(y)

	if _, err := rotateLeft(&tr, y); err != ErrYIsNotRightChildOfX {
		t.Fatalf("rotateLeft(y) = %v, want ErrYIsNotRightChildOfX", err)
	}
}

func TestRotateRightOnWrongChildReportsError(t *testing.T) {
	var tr Tree[int]
	x := NewNode(10)
	y := NewNode(15)
	tr.root = x
	x.setRight(y)

	if _, err := rotateRight(&tr, y); err != ErrYIsNotLeftChildOfX {
		t.Fatalf("rotateRight(y) = %v, want ErrYIsNotLeftChildOfX", err)
	}
}

func TestRotateOnNilYReportsError(t *testing.T) {
	var tr Tree[int]
	if _, err := rotateLeft[int](&tr, nil); err != ErrYIsNil {
		t.Fatalf("rotateLeft(nil) = %v, want ErrYIsNil", err)
	}
}

func TestRotateOnRootReportsNoParent(t *testing.T) {
	var tr Tree[int]
	root := NewNode(10)
	tr.root = root
	if _, err := rotateLeft(&tr, root); err != ErrYHasNoParent {
		t.Fatalf("rotateLeft(root) = %v, want ErrYHasNoParent", err)
	}
}
