package rowan

// NoParent is the index stand-in for "no node".  Passing it to Add and
// friends creates a node with no parent link, either to start the tree
// (the first parentless Add of a rootless tree becomes the root) or to
// build a floating subtree for later grafting with AttachChild.
const NoParent = -1

// node is one slot of the arena.  The lower fields are the aliasing
// guard's per-node state; the subtree counters are maintained along the
// ancestor chain on every acquire and release so that subtree
// exclusivity can be checked in O(depth).
type node[T any] struct {
	value    T
	parent   int
	children []int

	reads    int    // live shared holds on this node's value
	mutBy    uint64 // token of the live exclusive hold, 0 when free
	subHolds int    // live holds on this node or any descendant
	subMuts  int    // live exclusive holds on this node or any descendant
}
