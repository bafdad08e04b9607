package rowan

import (
	"fmt"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// treeFromSeeds grows a tree deterministically from a seed slice: node
// i+1 is attached under a parent picked by seeds[i] among the nodes
// built so far.
func treeFromSeeds(seeds []int) *Tree[string] {
	t := New[string]()
	t.AddRoot("n0")
	for i, s := range seeds {
		parent := s % (i + 1)
		t.Add(parent, fmt.Sprintf("n%d", i+1))
	}
	return t
}

func TestPostorderProperties(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("visits every node exactly once, depth consistent",
		prop.ForAll(
			func(seeds []int) bool {
				tree := treeFromSeeds(seeds)
				seen := make(map[int]int, tree.Len())
				for p := range tree.IterDepthSimple() {
					seen[p.Index]++
					if p.Depth != tree.Depth(p.Index) {
						return false
					}
				}
				if len(seen) != tree.Len() {
					return false
				}
				for _, n := range seen {
					if n != 1 {
						return false
					}
				}
				return true
			},
			gen.SliceOf(gen.IntRange(0, 1<<20)),
		))

	properties.Property("children precede their parent",
		prop.ForAll(
			func(seeds []int) bool {
				tree := treeFromSeeds(seeds)
				pos := make(map[int]int, tree.Len())
				order := 0
				for p := range tree.IterDepthSimple() {
					pos[p.Index] = order
					order++
				}
				for index := range pos {
					for _, c := range tree.Children(index) {
						if pos[c] >= pos[index] {
							return false
						}
					}
				}
				return true
			},
			gen.SliceOf(gen.IntRange(0, 1<<20)),
		))

	properties.TestingRun(t)
}

func TestImportProperties(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("nested import preserves post-order values",
		prop.ForAll(
			func(seeds []int) bool {
				tree := treeFromSeeds(seeds)
				root, _ := tree.Root()
				rebuilt := New[string]()
				rebuilt.AddNested(NoParent, nestedFrom(tree, root))
				return slices.Equal(postorderValues(tree), postorderValues(rebuilt))
			},
			gen.SliceOf(gen.IntRange(0, 1<<20)),
		))

	properties.Property("sequence copy preserves post-order values",
		prop.ForAll(
			func(seeds []int) bool {
				tree := treeFromSeeds(seeds)
				copied := New[string]()
				copied.AddFromTree(NoParent, tree, NoParent)
				return copied.String() == tree.String() &&
					slices.Equal(postorderValues(tree), postorderValues(copied))
			},
			gen.SliceOf(gen.IntRange(0, 1<<20)),
		))

	properties.TestingRun(t)
}

func TestGuardProperties(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("released holds leave the tree reusable",
		prop.ForAll(
			func(seeds []int, pick int) bool {
				tree := treeFromSeeds(seeds)
				index := pick % tree.Len()

				m := tree.BorrowMut(index)
				m.Release()
				r1 := tree.Borrow(index)
				r2 := tree.Borrow(index)
				r1.Release()
				r2.Release()
				m = tree.BorrowMut(index)
				m.Release()

				for range tree.IterDepthMut() {
				}
				return tree.outstanding == 0
			},
			gen.SliceOf(gen.IntRange(0, 1<<20)),
			gen.IntRange(0, 1<<20),
		))

	properties.TestingRun(t)
}
