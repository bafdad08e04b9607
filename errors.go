package rowan

import (
	"errors"
	"fmt"
)

// Aliasing errors.  These report holds that would break the
// single-writer/multiple-reader discipline; see guard.go.
var (
	// ErrAliasViolation indicates that acquiring a hold would conflict
	// with a live hold covering the same node.
	ErrAliasViolation = errors.New("aliasing violation")

	// ErrReleased indicates use of a proxy after its hold was released.
	ErrReleased = errors.New("hold already released")

	// ErrOutstandingHolds indicates that an operation which reshapes
	// ancestry was attempted while holds were live.
	ErrOutstandingHolds = errors.New("outstanding holds on tree")
)

// Structural errors.  These report violated construction preconditions.
var (
	// ErrNodeNotFound indicates a node index outside the arena.
	ErrNodeNotFound = errors.New("node index does not exist")

	// ErrRootExists indicates a second AddRoot on a rooted tree.
	ErrRootExists = errors.New("tree already has a root")

	// ErrCycle indicates an attachment that would make a node its own
	// ancestor.
	ErrCycle = errors.New("attachment would create a cycle")

	// ErrAlreadyAttached indicates attaching a node that already has a
	// parent.
	ErrAlreadyAttached = errors.New("node already has a parent")

	// ErrMalformedImport indicates imported data that does not describe
	// a single well-formed tree.
	ErrMalformedImport = errors.New("import does not describe a single tree")
)

// AliasError is the panic value raised when acquiring a hold would
// violate subtree exclusivity.  Node is the node the hold was requested
// on; Conflict is the node whose live hold caused the rejection.
type AliasError struct {
	Node      int
	Conflict  int
	Exclusive bool
}

func (e *AliasError) Error() string {
	mode := "shared"
	if e.Exclusive {
		mode = "exclusive"
	}
	return fmt.Sprintf("aliasing violation: %s hold on node %d conflicts with live hold covering node %d",
		mode, e.Node, e.Conflict)
}

func (e *AliasError) Unwrap() error { return ErrAliasViolation }

// StructureError is the panic value raised when a construction or
// access precondition is violated.
type StructureError struct {
	Op    string
	Index int
	Err   error
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s: node %d: %v", e.Op, e.Index, e.Err)
}

func (e *StructureError) Unwrap() error { return e.Err }
