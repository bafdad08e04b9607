package rowan

import "iter"

// Nested is a self-describing import structure: a value and its
// children, nested.
type Nested[T any] struct {
	Value    T
	Children []Nested[T]
}

// NodeSpec describes one node of an adjacency-list import: its value
// and the indices of its children among the other specs.
type NodeSpec[T any] struct {
	Value    T
	Children []int
}

// AddNested bulk-imports a nested structure below parent, materializing
// nodes in pre-order, and returns the index of the top node.  The
// result is equivalent to the corresponding sequence of Add calls.
func (t *Tree[T]) AddNested(parent int, n Nested[T]) int {
	index := t.Add(parent, n.Value)
	for _, c := range n.Children {
		t.AddNested(index, c)
	}
	return index
}

// FromSpecs builds a tree from an adjacency list: spec i becomes node
// i, linked to the children it names.  root is the index of the root
// node, or NoParent for a rootless tree.  Panics with
// ErrMalformedImport if a node is claimed by two parents and with
// ErrCycle if the links loop.
func FromSpecs[T any](root int, specs []NodeSpec[T]) *Tree[T] {
	t := NewWithCapacity[T](len(specs))
	for _, s := range specs {
		t.newNode(s.Value)
	}
	for i, s := range specs {
		for _, c := range s.Children {
			t.checkIndex("import", c)
			if c == i || t.nodes[c].parent != NoParent {
				panic(&StructureError{Op: "import", Index: c, Err: ErrMalformedImport})
			}
			t.nodes[c].parent = i
			t.nodes[i].children = append(t.nodes[i].children, c)
		}
	}
	for i := range t.nodes {
		steps := 0
		for a := t.nodes[i].parent; a != NoParent; a = t.nodes[a].parent {
			steps++
			if steps > len(t.nodes) {
				panic(&StructureError{Op: "import", Index: i, Err: ErrCycle})
			}
		}
	}
	if root != NoParent {
		t.checkIndex("import", root)
		t.root = root
	}
	return t
}

// AddFromTree copies a subtree of another tree below parent and
// returns the index of the copied top node.  top selects the subtree
// to copy; NoParent means the source tree's whole root subtree.  The
// source is not altered.  To copy within one tree, Clone the source
// first.
func (t *Tree[T]) AddFromTree(parent int, src *Tree[T], top int) int {
	return t.AddFromTreeFunc(parent, src, top, nil)
}

// AddFromTreeFunc is AddFromTree with a callback invoked once per
// copied node, in copy (post-)order, with the destination index, the
// source index, and the copied value.
func (t *Tree[T]) AddFromTreeFunc(parent int, src *Tree[T], top int, f func(dst, src int, v T)) int {
	if top == NoParent {
		r, ok := src.Root()
		if !ok {
			panic(&StructureError{Op: "graft", Index: NoParent, Err: ErrNodeNotFound})
		}
		top = r
	}
	return t.AddFromSeqFunc(parent, src.IterDepthSimpleAt(top), f)
}

// AddFromSeq copies nodes from any post-order proxy sequence below
// parent and returns the index of the reassembled top node.  If parent
// is NoParent the copy is left floating, or becomes the root of a
// rootless tree.
func (t *Tree[T]) AddFromSeq(parent int, seq iter.Seq[*NodeProxy[T]]) int {
	return t.AddFromSeqFunc(parent, seq, nil)
}

// AddFromSeqFunc is AddFromSeq with a per-node callback; see
// AddFromTreeFunc.  Panics with ErrMalformedImport if the sequence is
// not the post-order of a single tree.
func (t *Tree[T]) AddFromSeqFunc(parent int, seq iter.Seq[*NodeProxy[T]], f func(dst, src int, v T)) int {
	if parent != NoParent {
		t.checkIndex("graft", parent)
	}
	// Post-order reassembly: a node's copied children are the top
	// len(children) entries of the stack when the node arrives.
	var stack []int
	for p := range seq {
		v := p.Value()
		numChildren := p.NumChildren()
		if f != nil {
			f(len(t.nodes), p.Index, v)
		}
		if numChildren > len(stack) {
			panic(&StructureError{Op: "graft", Index: p.Index, Err: ErrMalformedImport})
		}
		index := t.newNode(v)
		for _, c := range stack[len(stack)-numChildren:] {
			t.attach("graft", index, c)
		}
		stack = append(stack[:len(stack)-numChildren], index)
	}
	if len(stack) != 1 {
		panic(&StructureError{Op: "graft", Index: NoParent, Err: ErrMalformedImport})
	}
	top := stack[0]
	if parent != NoParent {
		t.attach("graft", parent, top)
	} else if t.root == NoParent {
		t.root = top
	}
	return top
}

// newNode appends a floating node without touching the root, unlike
// Add.
func (t *Tree[T]) newNode(v T) int {
	index := len(t.nodes)
	t.nodes = append(t.nodes, node[T]{value: v, parent: NoParent})
	return index
}
