package rbtree_test

import (
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/flier/gocontainer/rbtree"
)

func cmpInt(probe int) func(int) int {
	return func(e int) int { return probe - e }
}

func assertInvariants(t *testing.T, tr *rbtree.Tree[int]) {
	t.Helper()

	root := tr.Root()
	if root != nil {
		require.Nil(t, root.Parent())
	}

	var walk func(n *rbtree.Node[int]) (blackHeight int)
	walk = func(n *rbtree.Node[int]) int {
		if n == nil {
			return 1
		}
		left, right := n.Left(), n.Right()
		if left != nil {
			require.Same(t, n, left.Parent())
		}
		if right != nil {
			require.Same(t, n, right.Parent())
		}
		lh := walk(left)
		rh := walk(right)
		require.Equal(t, lh, rh, "black height mismatch")
		return lh
	}
	walk(root)
}

func TestInsertAndFind(t *testing.T) {
	Convey("Given an empty tree", t, func() {
		var tr rbtree.Tree[int]

		Convey("Inserting a sequence of values keeps T1-T5 satisfied", func() {
			values := []int{50, 30, 70, 20, 40, 60, 80, 10, 25, 35, 45}
			for _, v := range values {
				_, err := tr.Insert(cmpInt(v), v)
				So(err, ShouldBeNil)
			}
			So(tr.Len(), ShouldEqual, len(values))
			assertInvariants(t, &tr)

			Convey("Find locates every inserted value", func() {
				for _, v := range values {
					found, _ := tr.Find(cmpInt(v))
					So(found, ShouldNotBeNil)
					So(found.Value, ShouldEqual, v)
				}
			})

			Convey("Inserting a duplicate reports ErrNodeAlreadyExists", func() {
				_, err := tr.Insert(cmpInt(30), 30)
				So(err, ShouldEqual, rbtree.ErrNodeAlreadyExists)
			})

			Convey("Removing every value empties the tree in any order", func() {
				order := append([]int(nil), values...)
				rand.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
				for _, v := range order {
					n, _ := tr.Find(cmpInt(v))
					So(n, ShouldNotBeNil)
					tr.Remove(n)
					assertInvariants(t, &tr)
				}
				So(tr.Len(), ShouldEqual, 0)
				So(tr.Root(), ShouldBeNil)
			})
		})
	})
}

func TestWalkOrder(t *testing.T) {
	Convey("Given a tree built from a random permutation", t, func() {
		n := 200
		values := rand.Perm(n)
		var tr rbtree.Tree[int]
		for _, v := range values {
			_, err := tr.Insert(cmpInt(v), v)
			So(err, ShouldBeNil)
		}

		Convey("First/Next walks values in ascending order", func() {
			var got []int
			node, err := tr.First()
			So(err, ShouldBeNil)
			for err == nil {
				got = append(got, node.Value)
				node, err = rbtree.Next(node)
			}
			So(len(got), ShouldEqual, n)
			for i := 1; i < len(got); i++ {
				So(got[i-1], ShouldBeLessThan, got[i])
			}
		})

		Convey("Last/Prev walks values in descending order", func() {
			var got []int
			node, err := tr.Last()
			So(err, ShouldBeNil)
			for err == nil {
				got = append(got, node.Value)
				node, err = rbtree.Prev(node)
			}
			So(len(got), ShouldEqual, n)
			for i := 1; i < len(got); i++ {
				So(got[i-1], ShouldBeGreaterThan, got[i])
			}
		})
	})
}

func TestEmptyTree(t *testing.T) {
	Convey("Given an empty tree", t, func() {
		var tr rbtree.Tree[int]

		Convey("First/Last report ErrTreeIsEmpty", func() {
			_, err := tr.First()
			So(err, ShouldEqual, rbtree.ErrTreeIsEmpty)
			_, err = tr.Last()
			So(err, ShouldEqual, rbtree.ErrTreeIsEmpty)
		})

		Convey("Find on an empty tree returns no node and a nil insertion point", func() {
			found, insertionPoint := tr.Find(cmpInt(1))
			So(found, ShouldBeNil)
			So(insertionPoint, ShouldBeNil)
		})
	})
}

func TestStressInsertRemove(t *testing.T) {
	const n = 10_000
	rng := rand.NewPCG(1, 2)
	r := rand.New(rng)

	Convey("Given a large random insert/remove/find workload", t, func() {
		var tr rbtree.Tree[int]
		present := make(map[int]bool)

		for i := 0; i < n; i++ {
			v := r.IntN(n / 2)
			if present[v] {
				n, _ := tr.Find(cmpInt(v))
				So(n, ShouldNotBeNil)
				tr.Remove(n)
				delete(present, v)
			} else {
				_, err := tr.Insert(cmpInt(v), v)
				So(err, ShouldBeNil)
				present[v] = true
			}
		}

		Convey("The tree's contents match the shadow set exactly", func() {
			So(tr.Len(), ShouldEqual, len(present))
			assertInvariants(t, &tr)

			node, err := tr.First()
			count := 0
			for err == nil {
				So(present[node.Value], ShouldBeTrue)
				count++
				node, err = rbtree.Next(node)
			}
			So(count, ShouldEqual, len(present))
		})
	})
}
