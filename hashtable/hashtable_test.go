package hashtable_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/flier/gocontainer/containers/errs"
	"github.com/flier/gocontainer/hashtable"
)

func identityHash(k int) uint64 { return uint64(k) }
func intEq(a, b int) bool       { return a == b }

func TestGrowthScenario(t *testing.T) {
	Convey("Given a table with the default load factor and h(k)=k", t, func() {
		tbl, err := hashtable.New[int, string](0, identityHash, intEq)
		So(err, ShouldBeNil)

		Convey("Inserting keys 1..8 grows the slot array to at least 8", func() {
			for i := 1; i <= 8; i++ {
				So(tbl.Add(i, "v"), ShouldBeNil)
			}
			So(tbl.Len(), ShouldEqual, 8)
			So(tbl.Cap(), ShouldBeGreaterThanOrEqualTo, 8)

			Convey("Every inserted key is found", func() {
				for i := 1; i <= 8; i++ {
					v, ok := tbl.Get(i)
					So(ok, ShouldBeTrue)
					So(v, ShouldEqual, "v")
				}
			})
		})
	})
}

func TestTombstonesAndRebuild(t *testing.T) {
	Convey("Given a table with several keys removed", t, func() {
		tbl, err := hashtable.New[int, int](0, identityHash, intEq)
		So(err, ShouldBeNil)

		for i := 0; i < 20; i++ {
			So(tbl.Add(i, i*i), ShouldBeNil)
		}
		for i := 0; i < 10; i++ {
			So(tbl.Remove(i), ShouldBeNil)
		}

		Convey("Deleted tombstones are tracked separately from live entries", func() {
			So(tbl.Len(), ShouldEqual, 10)
			So(tbl.Deleted(), ShouldEqual, 10)
		})

		Convey("Rebuild clears tombstones without changing live entries or capacity", func() {
			capBefore := tbl.Cap()
			tbl.Rebuild()
			So(tbl.Deleted(), ShouldEqual, 0)
			So(tbl.Len(), ShouldEqual, 10)
			So(tbl.Cap(), ShouldEqual, capBefore)

			for i := 10; i < 20; i++ {
				v, ok := tbl.Get(i)
				So(ok, ShouldBeTrue)
				So(v, ShouldEqual, i*i)
			}
			for i := 0; i < 10; i++ {
				_, ok := tbl.Get(i)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("A removed key can be re-added, landing in a tombstoned slot", func() {
			So(tbl.Add(3, 999), ShouldBeNil)
			v, ok := tbl.Get(3)
			So(ok, ShouldBeTrue)
			So(v, ShouldEqual, 999)
		})
	})
}

func TestDuplicateAndMissingKeys(t *testing.T) {
	Convey("Given a table with one key", t, func() {
		tbl, err := hashtable.New[string, int](0, func(s string) uint64 {
			var h uint64
			for i := 0; i < len(s); i++ {
				h = h*31 + uint64(s[i])
			}
			return h
		}, func(a, b string) bool { return a == b })
		So(err, ShouldBeNil)
		So(tbl.Add("a", 1), ShouldBeNil)

		Convey("Re-adding the same key reports KeyAlreadyExists", func() {
			err := tbl.Add("a", 2)
			So(errors.Is(err, errs.Of(errs.KeyAlreadyExists)), ShouldBeTrue)
		})

		Convey("Removing an absent key reports KeyNotFound", func() {
			err := tbl.Remove("missing")
			So(errors.Is(err, errs.Of(errs.KeyNotFound)), ShouldBeTrue)
		})

		Convey("Set on an absent key reports KeyNotFound", func() {
			err := tbl.Set("missing", 1)
			So(errors.Is(err, errs.Of(errs.KeyNotFound)), ShouldBeTrue)
		})
	})
}

func TestNavigation(t *testing.T) {
	Convey("Given an empty table", t, func() {
		tbl, err := hashtable.New[int, int](0, identityHash, intEq)
		So(err, ShouldBeNil)

		Convey("First/Last report ContainerIsEmpty", func() {
			_, err := tbl.First()
			So(errors.Is(err, errs.Of(errs.ContainerIsEmpty)), ShouldBeTrue)
			_, err = tbl.Last()
			So(errors.Is(err, errs.Of(errs.ContainerIsEmpty)), ShouldBeTrue)
		})

		Convey("Once populated, First..Next visits every live slot exactly once", func() {
			for i := 0; i < 50; i++ {
				So(tbl.Add(i, i), ShouldBeNil)
			}
			seen := map[int]bool{}
			idx, err := tbl.First()
			So(err, ShouldBeNil)
			for {
				seen[tbl.KeyAt(idx)] = true
				idx, err = tbl.Next(idx)
				if err != nil {
					break
				}
			}
			So(len(seen), ShouldEqual, 50)
		})
	})
}

func TestStressAgainstShadowMap(t *testing.T) {
	const ops = 10_000
	rng := rand.NewPCG(7, 11)
	r := rand.New(rng)

	Convey("Given a long randomized add/remove/rebuild workload", t, func() {
		tbl, err := hashtable.New[int, int](0, identityHash, intEq)
		So(err, ShouldBeNil)
		shadow := map[int]int{}

		for i := 0; i < ops; i++ {
			k := r.IntN(ops / 4)
			if _, ok := shadow[k]; ok {
				So(tbl.Remove(k), ShouldBeNil)
				delete(shadow, k)
			} else {
				So(tbl.Add(k, k*2), ShouldBeNil)
				shadow[k] = k * 2
			}
			if tbl.RebuildNeeded() {
				tbl.Rebuild()
			}
		}

		Convey("The table's contents match the shadow map exactly", func() {
			So(tbl.Len(), ShouldEqual, len(shadow))
			for k, v := range shadow {
				got, ok := tbl.Get(k)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, v)
			}
		})
	})
}
