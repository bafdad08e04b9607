package rowan

import (
	"fmt"
	"strings"
)

// Tree is a growable, append-only arena of nodes addressed by stable
// integer indices.  The zero value is not usable; construct with New,
// NewWithCapacity, or FromSpecs.
type Tree[T any] struct {
	nodes       []node[T]
	root        int // NoParent while the tree has no root
	outstanding int // live holds across all nodes
	nextToken   uint64
	generation  uint64 // bumped when linkage is reshaped; keys the depth cache
	id          uint64
	depthCache  DepthCache
}

// New creates a new and empty tree with no pre-allocated buffer.
//
// If the number of nodes is known in advance, prefer NewWithCapacity.
func New[T any]() *Tree[T] {
	return &Tree[T]{root: NoParent, id: treeSeq.Add(1)}
}

// NewWithCapacity creates a new and empty tree with a pre-allocated
// buffer for the given number of nodes.  The capacity is not a hard
// limit.
func NewWithCapacity[T any](capacity int) *Tree[T] {
	return &Tree[T]{nodes: make([]node[T], 0, capacity), root: NoParent, id: treeSeq.Add(1)}
}

// SetDepthCache installs a cache for Depth computations.  One cache can
// be shared by any number of trees; see NewDepthCache.
func (t *Tree[T]) SetDepthCache(c DepthCache) {
	t.depthCache = c
}

// Root returns the index of the root node, if the tree has one.
func (t *Tree[T]) Root() (int, bool) {
	if t.root == NoParent {
		return 0, false
	}
	return t.root, true
}

// SetRoot redefines the root of the tree by index, returning the index
// for convenience.  Nodes that are not below the new root stop being
// visited by the whole-tree iterators but remain in the arena, so they
// can still be read by index or referenced by AttachChild; the caller
// is responsible for keeping the structure sensible when re-rooting.
func (t *Tree[T]) SetRoot(index int) int {
	t.checkIndex("set root", index)
	t.root = index
	return index
}

// AddRoot adds a node and defines it as the root of the tree, returning
// its index.  Panics with ErrRootExists if a root is already defined.
func (t *Tree[T]) AddRoot(v T) int {
	if t.root != NoParent {
		panic(&StructureError{Op: "add root", Index: t.root, Err: ErrRootExists})
	}
	return t.Add(NoParent, v)
}

// Add appends a node to the arena and returns its index.
//
// If parent is not NoParent it must be an existing index, and the new
// node is appended to that parent's children.  If parent is NoParent
// and the tree has no root yet, the new node becomes the root;
// otherwise it is left floating for a later AttachChild.
func (t *Tree[T]) Add(parent int, v T) int {
	index := len(t.nodes)
	if parent != NoParent {
		t.checkIndex("add", parent)
		t.nodes[parent].children = append(t.nodes[parent].children, index)
	}
	t.nodes = append(t.nodes, node[T]{value: v, parent: parent})
	if parent == NoParent && t.root == NoParent {
		t.root = index
	}
	return index
}

// AddAll appends one node per value, all under the same parent and in
// the given order, and returns their indices.
func (t *Tree[T]) AddAll(parent int, vs ...T) []int {
	indices := make([]int, 0, len(vs))
	for _, v := range vs {
		indices = append(indices, t.Add(parent, v))
	}
	return indices
}

// AddWithChild adds a node and one child below it, returning the
// node's index.
func (t *Tree[T]) AddWithChild(parent int, v, child T) int {
	index := t.Add(parent, v)
	t.Add(index, child)
	return index
}

// AddWithChildIndex adds a node adopting one existing node as its
// child, returning the new node's index.  The adopted node must be
// parentless.
func (t *Tree[T]) AddWithChildIndex(parent int, v T, child int) int {
	return t.AddWithChildIndexes(parent, v, child)
}

// AddWithChildIndexes adds a node adopting existing parentless nodes as
// its children, returning the new node's index.
func (t *Tree[T]) AddWithChildIndexes(parent int, v T, children ...int) int {
	index := t.Add(parent, v)
	for _, c := range children {
		t.attach("add with child", index, c)
	}
	return index
}

// AddWithChildren adds a node and its children below it, returning the
// node's index.
func (t *Tree[T]) AddWithChildren(parent int, v T, children ...T) int {
	index := t.Add(parent, v)
	t.AddAll(index, children...)
	return index
}

// AttachChild appends an existing parentless node to an existing
// parent's children, linking the two.  No data moves.  Panics with
// ErrAlreadyAttached if the child already has a parent, with ErrCycle
// if the child is an ancestor of the parent, and with
// ErrOutstandingHolds while any hold is live.
func (t *Tree[T]) AttachChild(parent, child int) {
	t.attach("attach", parent, child)
}

// AttachChildren attaches several existing parentless nodes under the
// same parent, in the given order.
func (t *Tree[T]) AttachChildren(parent int, children ...int) {
	for _, c := range children {
		t.attach("attach", parent, c)
	}
}

func (t *Tree[T]) attach(op string, parent, child int) {
	t.checkIndex(op, parent)
	t.checkIndex(op, child)
	if t.outstanding != 0 {
		panic(&StructureError{Op: op, Index: parent, Err: ErrOutstandingHolds})
	}
	if t.nodes[child].parent != NoParent {
		panic(&StructureError{Op: op, Index: child, Err: ErrAlreadyAttached})
	}
	for a := parent; a != NoParent; a = t.nodes[a].parent {
		if a == child {
			panic(&StructureError{Op: op, Index: child, Err: ErrCycle})
		}
	}
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent
	t.generation++
}

// Len returns the number of nodes in the arena, including any floating
// nodes not reachable from the root.
func (t *Tree[T]) Len() int {
	return len(t.nodes)
}

// IsEmpty reports whether the arena contains no nodes.
func (t *Tree[T]) IsEmpty() bool {
	return len(t.nodes) == 0
}

// Height returns the maximum iterator depth below the root, and false
// if the tree has no root.  A tree with only a root has height 0.
//
// Height walks the whole tree, so it is not time-effective.
func (t *Tree[T]) Height() (int, bool) {
	height, ok := 0, false
	for p := range t.IterDepthSimple() {
		ok = true
		if p.Depth > height {
			height = p.Depth
		}
	}
	return height, ok
}

// Children returns the indices of a node's direct children, in sibling
// order.  The returned slice is the tree's own; callers must not
// modify it.
func (t *Tree[T]) Children(index int) []int {
	t.checkIndex("children", index)
	return t.nodes[index].children
}

// Parent returns the index of a node's parent, and false for the root
// and for floating nodes.
func (t *Tree[T]) Parent(index int) (int, bool) {
	t.checkIndex("parent", index)
	p := t.nodes[index].parent
	return p, p != NoParent
}

// Value returns the value stored at the given index.  The read is a
// momentary shared hold, so it panics with an *AliasError while the
// node is covered by a live exclusive hold.
func (t *Tree[T]) Value(index int) T {
	h := t.acquireShared(index, nil)
	v := t.nodes[index].value
	t.release(h)
	return v
}

// SetValue replaces the value stored at the given index.  The write is
// a momentary exclusive hold, so it panics with an *AliasError while
// any live hold covers the node.
func (t *Tree[T]) SetValue(index int, v T) {
	h := t.acquireExclusive(index, nil)
	t.nodes[index].value = v
	t.release(h)
}

// Depth returns the number of ancestors of the given node.  Results
// are memoized in the depth cache, if one is installed.
func (t *Tree[T]) Depth(index int) int {
	t.checkIndex("depth", index)
	key := depthKey{tree: t.id, generation: t.generation, index: index}
	if t.depthCache != nil {
		if d, ok := t.depthCache.Get(key); ok {
			return d.(int)
		}
	}
	d := 0
	for a := t.nodes[index].parent; a != NoParent; a = t.nodes[a].parent {
		d++
	}
	if t.depthCache != nil {
		t.depthCache.Add(key, d)
	}
	return d
}

// Clear removes all nodes.  Panics with ErrOutstandingHolds if any
// proxy is still live.
func (t *Tree[T]) Clear() {
	if t.outstanding != 0 {
		panic(&StructureError{Op: "clear", Index: NoParent, Err: ErrOutstandingHolds})
	}
	t.nodes = nil
	t.root = NoParent
	t.generation++
}

// Clone returns a structural copy of the tree with a fresh, idle guard.
// Values are copied by assignment, so values containing references
// share those referents with the original.
func (t *Tree[T]) Clone() *Tree[T] {
	c := &Tree[T]{
		nodes:      make([]node[T], len(t.nodes)),
		root:       t.root,
		id:         treeSeq.Add(1),
		depthCache: t.depthCache,
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		c.nodes[i] = node[T]{
			value:    n.value,
			parent:   n.parent,
			children: append([]int(nil), n.children...),
		}
	}
	return c
}

// String renders the tree reachable from the root as
// value(child,child(...),...), for debugging and tests.
func (t *Tree[T]) String() string {
	if t.root == NoParent {
		return "<empty>"
	}
	var sb strings.Builder
	t.writeNode(&sb, t.root)
	return sb.String()
}

func (t *Tree[T]) writeNode(sb *strings.Builder, index int) {
	writeValue(sb, t.nodes[index].value)
	children := t.nodes[index].children
	if len(children) == 0 {
		return
	}
	sb.WriteByte('(')
	for i, c := range children {
		if i > 0 {
			sb.WriteByte(',')
		}
		t.writeNode(sb, c)
	}
	sb.WriteByte(')')
}

func writeValue(sb *strings.Builder, v any) {
	if s, ok := v.(string); ok {
		sb.WriteString(s)
		return
	}
	fmt.Fprintf(sb, "%v", v)
}

func (t *Tree[T]) checkIndex(op string, index int) {
	if index < 0 || index >= len(t.nodes) {
		panic(&StructureError{Op: op, Index: index, Err: ErrNodeNotFound})
	}
}
