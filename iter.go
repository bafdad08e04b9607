package rowan

import "iter"

// visit is one pending step of the post-order engine: a node on the way
// down (children not yet expanded) or on the way back up (children
// done, node ready to emit).
type visit struct {
	index int
	up    bool
}

// postorder calls f for every node of the subtree rooted at start, in
// post-order, with depth relative to start.  f returning false stops
// the walk.
func (t *Tree[T]) postorder(start int, f func(index, depth int) bool) {
	var stack []visit
	depth := 0
	cur, ok := visit{index: start}, true
	for ok {
		emit := NoParent
		if cur.up {
			depth--
			emit = cur.index
		} else if children := t.nodes[cur.index].children; len(children) == 0 {
			emit = cur.index
		} else {
			depth++
			stack = append(stack, visit{index: cur.index, up: true})
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, visit{index: children[i]})
			}
		}
		if len(stack) > 0 {
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		} else {
			ok = false
		}
		if emit != NoParent && !f(emit, depth) {
			return
		}
	}
}

// walkShared is the shared-proxy traversal engine.  Every visited node
// is acquired through the guard before its step and released when the
// step returns, on every exit path.
func (t *Tree[T]) walkShared(start int, origin *hold) iter.Seq[*NodeProxy[T]] {
	return func(yield func(*NodeProxy[T]) bool) {
		if start == NoParent {
			return
		}
		t.postorder(start, func(index, depth int) bool {
			p := &NodeProxy[T]{Index: index, Depth: depth, tree: t, hold: t.acquireShared(index, origin)}
			ok := yield(p)
			p.Release()
			return ok
		})
	}
}

// walkMut is the exclusive-proxy traversal engine.  At most one
// exclusive hold is live between steps: each step's hold is released
// before the next is acquired.
func (t *Tree[T]) walkMut(start int) iter.Seq[*NodeProxyMut[T]] {
	return func(yield func(*NodeProxyMut[T]) bool) {
		if start == NoParent {
			return
		}
		t.postorder(start, func(index, depth int) bool {
			p := &NodeProxyMut[T]{Index: index, Depth: depth, tree: t, hold: t.acquireExclusive(index, nil)}
			ok := yield(p)
			p.Release()
			return ok
		})
	}
}

// IterDepthSimple iterates over all nodes below the root (and the root
// itself, last), post-order depth-first, with shared proxies.  An
// empty or rootless tree yields nothing.
func (t *Tree[T]) IterDepthSimple() iter.Seq[*NodeProxy[T]] {
	return t.walkShared(t.root, nil)
}

// IterDepthSimpleAt is IterDepthSimple rooted at an arbitrary node.
func (t *Tree[T]) IterDepthSimpleAt(top int) iter.Seq[*NodeProxy[T]] {
	t.checkIndex("iterate", top)
	return t.walkShared(top, nil)
}

// IterDepthMut iterates over all nodes below the root (and the root
// itself, last), post-order depth-first, with exclusive proxies.  Each
// step may mutate the visited node and read its descendants through
// the proxy.
func (t *Tree[T]) IterDepthMut() iter.Seq[*NodeProxyMut[T]] {
	return t.walkMut(t.root)
}

// IterDepthMutAt is IterDepthMut rooted at an arbitrary node.
func (t *Tree[T]) IterDepthMutAt(top int) iter.Seq[*NodeProxyMut[T]] {
	t.checkIndex("iterate", top)
	return t.walkMut(top)
}
