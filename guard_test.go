package rowan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSharedHoldsCoexist(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	p1 := tree.Borrow(4)
	p2 := tree.Borrow(4)
	require.Equal(t, "a1", p1.Value())
	require.Equal(t, "a1", p2.Value())
	p1.Release()
	p2.Release()
	m := tree.BorrowMut(4)
	m.Release()
}

func TestExclusiveCoversSubtree(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	m := tree.BorrowMut(1)

	var ae *AliasError
	err := catchPanic(t, func() { tree.Borrow(4) })
	require.ErrorAs(t, err, &ae)
	require.Equal(t, 4, ae.Node)
	require.Equal(t, 1, ae.Conflict)
	require.False(t, ae.Exclusive)

	err = catchPanic(t, func() { tree.Borrow(1) })
	require.ErrorIs(t, err, ErrAliasViolation)
	err = catchPanic(t, func() { tree.BorrowMut(4) })
	require.ErrorIs(t, err, ErrAliasViolation)
	err = catchPanic(t, func() { tree.BorrowMut(1) })
	require.ErrorIs(t, err, ErrAliasViolation)

	// an ancestor of a mutably held node cannot be held at all
	err = catchPanic(t, func() { tree.Borrow(0) })
	require.ErrorAs(t, err, &ae)
	require.Equal(t, 1, ae.Conflict)
	err = catchPanic(t, func() { tree.BorrowMut(0) })
	require.ErrorIs(t, err, ErrAliasViolation)

	// nodes outside the held subtree are unaffected
	p := tree.Borrow(2)
	p.Release()
	p = tree.Borrow(6)
	p.Release()

	m.Release()
	p = tree.Borrow(4)
	p.Release()
}

func TestSharedBlocksExclusive(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	r := tree.Borrow(4)

	var ae *AliasError
	err := catchPanic(t, func() { tree.BorrowMut(4) })
	require.ErrorAs(t, err, &ae)
	require.Equal(t, 4, ae.Conflict)
	require.True(t, ae.Exclusive)

	err = catchPanic(t, func() { tree.BorrowMut(1) })
	require.ErrorAs(t, err, &ae)
	require.Equal(t, 4, ae.Conflict)
	err = catchPanic(t, func() { tree.BorrowMut(0) })
	require.ErrorIs(t, err, ErrAliasViolation)

	m := tree.BorrowMut(2)
	m.Release()
	r2 := tree.Borrow(1)
	r2.Release()

	r.Release()
	m = tree.BorrowMut(1)
	m.Release()
}

func TestReleaseIdempotent(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	p := tree.Borrow(1)
	p.Release()
	p.Release()
	require.Equal(t, 0, tree.outstanding)

	err := catchPanic(t, func() { p.Value() })
	require.ErrorIs(t, err, ErrReleased)

	m := tree.BorrowMut(1)
	m.Release()
	m.Release()
	err = catchPanic(t, func() { m.Set("x") })
	require.ErrorIs(t, err, ErrReleased)
}

func TestProxyEscapesLoop(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	var escaped *NodeProxyMut[string]
	for p := range tree.IterDepthMut() {
		escaped = p
		break
	}
	err := catchPanic(t, func() { escaped.Set("x") })
	require.ErrorIs(t, err, ErrReleased)
}

func TestMutProxyReadsOwnSubtree(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	for p := range tree.IterDepthMut() {
		if p.Index != 3 {
			continue
		}
		var childValues []string
		for v := range p.IterChildrenValues() {
			childValues = append(childValues, v)
		}
		require.Equal(t, []string{"c1", "c2"}, childValues)

		size := 0
		for range p.IterDepthSimple() {
			size++
		}
		require.Equal(t, 3, size)

		// the exemption is for the proxy's own chain, not the tree API
		err := catchPanic(t, func() { tree.Borrow(6) })
		require.ErrorIs(t, err, ErrAliasViolation)
	}
}

func TestChildrenMut(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	for p := range tree.IterDepthMut() {
		if p.Index != 3 {
			continue
		}
		for c := range p.ChildrenMut() {
			c.Set(c.Value() + "!")
		}
	}
	require.Equal(t, "root(a(a1,a2),b,c(c1!,c2!))", tree.String())
}

func TestChildrenMutConflict(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	for p := range tree.IterDepthMut() {
		if p.Index != 0 {
			continue
		}
		for child := range p.IterChildren() {
			if child.Index != 1 {
				continue
			}
			// child a is held shared, so an exclusive sweep of the
			// root's children must trip on it
			err := catchPanic(t, func() {
				for range p.ChildrenMut() {
				}
			})
			var ae *AliasError
			require.ErrorAs(t, err, &ae)
			require.Equal(t, 1, ae.Conflict)
		}
	}
}

func TestGuardRecoversAfterViolation(t *testing.T) {
	t.Parallel()
	tree := buildTree()
	m := tree.BorrowMut(1)
	err := catchPanic(t, func() { tree.Borrow(4) })
	require.ErrorIs(t, err, ErrAliasViolation)
	m.Release()

	// a denied acquisition leaves no residue
	for p := range tree.IterDepthMut() {
		p.Set(p.Value())
	}
	require.Equal(t, 0, tree.outstanding)
}
