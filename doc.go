/*
Package rowan provides a generic tree container stored contiguously in a
single growable arena, together with depth-first iterators that can
mutate the node being visited while reading that node's descendants,
under a runtime-checked single-writer/multiple-reader discipline.

Arena

Nodes live in one append-only slice and are addressed by stable integer
indices rather than pointers.  Parent/child relations are index pairs,
so subtrees can be cross-referenced freely without ownership cycles.
Indices remain valid for the lifetime of the tree; nodes are never
deleted, moved, or compacted.

Building a tree

Construction methods return the index of what they add:

	t := rowan.New[string]()
	root := t.AddRoot("root")
	a := t.Add(root, "a")
	t.Add(root, "b")
	c := t.Add(root, "c")
	t.AddAll(a, "a1", "a2")
	t.AddAll(c, "c1", "c2")

Floating subtrees can be built with Add(rowan.NoParent, ...) and grafted
later with AttachChild, and whole subtrees can be imported from nested
structures (AddNested), adjacency lists (FromSpecs), or other trees
(AddFromTree and friends).

Iterators

All traversal is post-order, depth-first: for a node with children
c1..ck, the full subtree of c1 is visited, then c2's, and so on, then
the node itself.  IterDepthSimple yields shared (read-only) proxies;
IterDepthMut yields exclusive (read-write) proxies.  Both are lazy
iter.Seq sequences, and both exist in an At variant rooted at an
arbitrary node.  A proxy reports its Index and Depth, and can recurse:
IterChildren yields shared proxies over the direct children, and on a
mutable proxy ChildrenMut yields exclusive ones.  Mutating the current
node while inspecting its children is the point of the package:

	for p := range t.IterDepthMut() {
		for child := range p.IterChildren() {
			...
		}
		p.Set(...)
	}

Aliasing guard

Every proxy is a hold registered with a per-node guard.  A node may be
held exclusively by one handle, or shared by many, never both, and a
hold is taken to cover the node's entire subtree: acquiring an exclusive
hold fails while any other hold lives at or below the node or at an
exclusively held ancestor, and acquiring a shared hold fails while an
exclusive hold lives on the node, inside its subtree, or at an ancestor,
unless that ancestor's hold is the very handle the request is being made
through (a proxy may always read its own subtree).  Violations are
programmer errors: they panic with an *AliasError naming the conflicting
node, because continuing would let an aliasing bug surface as silent
data corruption.  Iterator-created holds are released when the loop body
returns, on every exit path including break, so a finished or abandoned
loop always leaves the guard clean.

Limitations

The tree is single-threaded: the guard orders handle creation and
release within one goroutine and is not a lock.  There is no way to
delete nodes.
*/
package rowan
