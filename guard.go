package rowan

// hold is one live acquisition registered with the aliasing guard.
// Holds spawned from a proxy record that proxy's hold as their origin;
// the origin links form the spawn chain along which the "a proxy may
// read its own subtree" exemption is resolved.
type hold struct {
	node      int
	token     uint64
	exclusive bool
	released  bool
	origin    *hold
}

// chainHolds reports whether the hold chain of the requesting handle
// includes a hold on the given node.  Chains only ever descend the
// tree, so chain members are the requested node itself or its
// ancestors.
func chainHolds(origin *hold, index int) bool {
	for h := origin; h != nil; h = h.origin {
		if h.node == index {
			return true
		}
	}
	return false
}

// acquireShared registers a shared hold on the node's value.  It is
// denied while an exclusive hold lives on the node itself, anywhere
// inside its subtree, or on any ancestor, unless that hold belongs to
// the requesting chain.  Any number of shared holds may coexist.
func (t *Tree[T]) acquireShared(index int, origin *hold) *hold {
	t.checkIndex("acquire", index)
	n := &t.nodes[index]
	ownMut := 0
	if n.mutBy != 0 {
		if !chainHolds(origin, index) {
			panic(&AliasError{Node: index, Conflict: index})
		}
		ownMut = 1
	}
	if n.subMuts > ownMut {
		panic(&AliasError{Node: index, Conflict: t.heldBelow(index, true)})
	}
	for a := n.parent; a != NoParent; a = t.nodes[a].parent {
		if t.nodes[a].mutBy != 0 && !chainHolds(origin, a) {
			panic(&AliasError{Node: index, Conflict: a})
		}
	}
	t.nextToken++
	h := &hold{node: index, token: t.nextToken, origin: origin}
	n.reads++
	for a := index; a != NoParent; a = t.nodes[a].parent {
		t.nodes[a].subHolds++
	}
	t.outstanding++
	return h
}

// acquireExclusive registers an exclusive hold on the node's value.
// It is denied while any hold lives on the node or anywhere inside its
// subtree, and while any ancestor is held at all, unless the holding
// ancestor belongs to the requesting chain.
func (t *Tree[T]) acquireExclusive(index int, origin *hold) *hold {
	t.checkIndex("acquire", index)
	n := &t.nodes[index]
	if n.subHolds > 0 {
		conflict := index
		if n.mutBy == 0 && n.reads == 0 {
			conflict = t.heldBelow(index, false)
		}
		panic(&AliasError{Node: index, Conflict: conflict, Exclusive: true})
	}
	for a := n.parent; a != NoParent; a = t.nodes[a].parent {
		an := &t.nodes[a]
		if an.reads > 0 || (an.mutBy != 0 && !chainHolds(origin, a)) {
			panic(&AliasError{Node: index, Conflict: a, Exclusive: true})
		}
	}
	t.nextToken++
	h := &hold{node: index, token: t.nextToken, exclusive: true, origin: origin}
	n.mutBy = h.token
	for a := index; a != NoParent; a = t.nodes[a].parent {
		t.nodes[a].subHolds++
		t.nodes[a].subMuts++
	}
	t.outstanding++
	return h
}

// release returns a hold to the guard.  Releasing twice is a no-op;
// using a proxy after release is what panics, see proxy.go.
func (t *Tree[T]) release(h *hold) {
	if h.released {
		return
	}
	h.released = true
	n := &t.nodes[h.node]
	if h.exclusive {
		n.mutBy = 0
	} else {
		n.reads--
	}
	for a := h.node; a != NoParent; a = t.nodes[a].parent {
		t.nodes[a].subHolds--
		if h.exclusive {
			t.nodes[a].subMuts--
		}
	}
	t.outstanding--
}

// heldBelow locates a held node strictly inside the subtree, for error
// reporting only.
func (t *Tree[T]) heldBelow(index int, exclusiveOnly bool) int {
	for _, c := range t.nodes[index].children {
		if r := t.scanHeld(c, exclusiveOnly); r != NoParent {
			return r
		}
	}
	return index
}

func (t *Tree[T]) scanHeld(index int, exclusiveOnly bool) int {
	n := &t.nodes[index]
	if n.mutBy != 0 || (!exclusiveOnly && n.reads > 0) {
		return index
	}
	for _, c := range n.children {
		if r := t.scanHeld(c, exclusiveOnly); r != NoParent {
			return r
		}
	}
	return NoParent
}
