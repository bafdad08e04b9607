package rowan

import "iter"

// NodeProxy is a shared (read-only) handle on one node's value, plus
// the capability to recurse into the node's subtree.  Iterator-created
// proxies are released automatically when the loop step returns;
// proxies from Borrow must be released by the caller.
type NodeProxy[T any] struct {
	Index int
	Depth int
	tree  *Tree[T]
	hold  *hold
}

// Borrow acquires a shared hold on the given node and returns its
// proxy.  The caller must call Release, typically with defer.
func (t *Tree[T]) Borrow(index int) *NodeProxy[T] {
	depth := t.Depth(index)
	return &NodeProxy[T]{Index: index, Depth: depth, tree: t, hold: t.acquireShared(index, nil)}
}

// Value returns the node's value.
func (p *NodeProxy[T]) Value() T {
	p.ensureLive()
	return p.tree.nodes[p.Index].value
}

// NumChildren returns the number of direct children of the node.
func (p *NodeProxy[T]) NumChildren() int {
	p.ensureLive()
	return len(p.tree.nodes[p.Index].children)
}

// IterChildren iterates over the node's direct children with shared
// proxies, each subject to the guard at creation.
func (p *NodeProxy[T]) IterChildren() iter.Seq[*NodeProxy[T]] {
	return func(yield func(*NodeProxy[T]) bool) {
		p.ensureLive()
		children := p.tree.nodes[p.Index].children
		for _, c := range children {
			child := &NodeProxy[T]{
				Index: c,
				Depth: p.Depth + 1,
				tree:  p.tree,
				hold:  p.tree.acquireShared(c, p.hold),
			}
			ok := yield(child)
			child.Release()
			if !ok {
				return
			}
		}
	}
}

// IterChildrenValues iterates over the values of the node's direct
// children.  Each value is read under a momentary shared hold.
func (p *NodeProxy[T]) IterChildrenValues() iter.Seq[T] {
	return func(yield func(T) bool) {
		p.ensureLive()
		children := p.tree.nodes[p.Index].children
		for _, c := range children {
			h := p.tree.acquireShared(c, p.hold)
			v := p.tree.nodes[c].value
			p.tree.release(h)
			if !yield(v) {
				return
			}
		}
	}
}

// IterDepthSimple iterates the subtree under the node, post-order,
// with shared proxies.  Depths are relative to this node.
func (p *NodeProxy[T]) IterDepthSimple() iter.Seq[*NodeProxy[T]] {
	return func(yield func(*NodeProxy[T]) bool) {
		p.ensureLive()
		for q := range p.tree.walkShared(p.Index, p.hold) {
			if !yield(q) {
				return
			}
		}
	}
}

// Release returns the proxy's hold to the guard.  Releasing twice is a
// no-op; any other use of a released proxy panics with ErrReleased.
func (p *NodeProxy[T]) Release() {
	p.tree.release(p.hold)
}

func (p *NodeProxy[T]) ensureLive() {
	if p.hold.released {
		panic(&StructureError{Op: "proxy", Index: p.Index, Err: ErrReleased})
	}
}

// NodeProxyMut is an exclusive (read-write) handle on one node's
// value.  It can read its subtree through IterChildren,
// IterChildrenValues, and IterDepthSimple, and write direct children
// through ChildrenMut; every spawned handle is checked by the guard at
// creation.
type NodeProxyMut[T any] struct {
	Index int
	Depth int
	tree  *Tree[T]
	hold  *hold
}

// BorrowMut acquires an exclusive hold on the given node and returns
// its proxy.  The caller must call Release, typically with defer.
func (t *Tree[T]) BorrowMut(index int) *NodeProxyMut[T] {
	depth := t.Depth(index)
	return &NodeProxyMut[T]{Index: index, Depth: depth, tree: t, hold: t.acquireExclusive(index, nil)}
}

// Value returns the node's value.
func (p *NodeProxyMut[T]) Value() T {
	p.ensureLive()
	return p.tree.nodes[p.Index].value
}

// Set replaces the node's value.
func (p *NodeProxyMut[T]) Set(v T) {
	p.ensureLive()
	p.tree.nodes[p.Index].value = v
}

// NumChildren returns the number of direct children of the node.
func (p *NodeProxyMut[T]) NumChildren() int {
	p.ensureLive()
	return len(p.tree.nodes[p.Index].children)
}

// IterChildren iterates over the node's direct children with shared
// proxies.  This is the central capability: mutate the node, read its
// descendants.
func (p *NodeProxyMut[T]) IterChildren() iter.Seq[*NodeProxy[T]] {
	return func(yield func(*NodeProxy[T]) bool) {
		p.ensureLive()
		children := p.tree.nodes[p.Index].children
		for _, c := range children {
			child := &NodeProxy[T]{
				Index: c,
				Depth: p.Depth + 1,
				tree:  p.tree,
				hold:  p.tree.acquireShared(c, p.hold),
			}
			ok := yield(child)
			child.Release()
			if !ok {
				return
			}
		}
	}
}

// IterChildrenValues iterates over the values of the node's direct
// children under momentary shared holds.
func (p *NodeProxyMut[T]) IterChildrenValues() iter.Seq[T] {
	return func(yield func(T) bool) {
		p.ensureLive()
		children := p.tree.nodes[p.Index].children
		for _, c := range children {
			h := p.tree.acquireShared(c, p.hold)
			v := p.tree.nodes[c].value
			p.tree.release(h)
			if !yield(v) {
				return
			}
		}
	}
}

// ChildrenMut iterates over the node's direct children with exclusive
// proxies.  Each child is acquired under the stricter exclusive check:
// no other hold may be live anywhere in that child's subtree.
func (p *NodeProxyMut[T]) ChildrenMut() iter.Seq[*NodeProxyMut[T]] {
	return func(yield func(*NodeProxyMut[T]) bool) {
		p.ensureLive()
		children := p.tree.nodes[p.Index].children
		for _, c := range children {
			child := &NodeProxyMut[T]{
				Index: c,
				Depth: p.Depth + 1,
				tree:  p.tree,
				hold:  p.tree.acquireExclusive(c, p.hold),
			}
			ok := yield(child)
			child.Release()
			if !ok {
				return
			}
		}
	}
}

// IterDepthSimple iterates the subtree under the node, post-order,
// with shared proxies.  Depths are relative to this node.
func (p *NodeProxyMut[T]) IterDepthSimple() iter.Seq[*NodeProxy[T]] {
	return func(yield func(*NodeProxy[T]) bool) {
		p.ensureLive()
		for q := range p.tree.walkShared(p.Index, p.hold) {
			if !yield(q) {
				return
			}
		}
	}
}

// Release returns the proxy's hold to the guard.  Releasing twice is a
// no-op; any other use of a released proxy panics with ErrReleased.
func (p *NodeProxyMut[T]) Release() {
	p.tree.release(p.hold)
}

func (p *NodeProxyMut[T]) ensureLive() {
	if p.hold.released {
		panic(&StructureError{Op: "proxy", Index: p.Index, Err: ErrReleased})
	}
}
