package rowan

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// treeSeq hands out tree identities for depth cache keys, so one cache
// can serve several trees.
var treeSeq atomic.Uint64

// DepthCache caches computed node depths.  Keys are opaque; a cache
// can be shared by any number of trees.
type DepthCache interface {
	// Add records a freshly-computed depth.
	Add(key, value interface{})
	// Get retrieves a previously-computed depth, if cached.
	Get(key interface{}) (value interface{}, ok bool)
}

// NewDepthCache creates a new LRU-based depth cache of the given size.
// Deep trees pay O(depth) per Depth call; a cache makes repeated
// queries on the same generation of the tree O(1).
func NewDepthCache(size int) DepthCache {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return cache
}

// depthKey identifies one node of one tree at one linkage generation.
// Operations that reshape ancestry bump the generation, so stale
// depths simply stop being found.
type depthKey struct {
	tree       uint64
	generation uint64
	index      int
}
