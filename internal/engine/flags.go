// Package engine implements the reactive dependency-graph core: nodes,
// links, push-pull propagation, dirty-checking, and the batching/effect
// scheduler. It has no concept of generics or user-facing ergonomics —
// those live in the root package, which boxes values into `any` at this
// boundary.
package engine

// Flags is the compact per-node bitset described by the node/link data
// model: role bits (mutable, watching) and traversal-state bits
// (recursedCheck, recursed, dirty, pending).
type Flags uint8

const (
	FlagNone Flags = 0

	// Mutable marks a node that holds a value: Signal or Computed.
	Mutable Flags = 1 << iota

	// Watching marks a node that is an active subscriber the scheduler
	// may enqueue: a live Effect, or the capture node Trigger uses. A
	// Scope created by CreateScope never carries it.
	Watching

	// RecursedCheck marks a node currently being tracked/recomputed.
	RecursedCheck

	// Recursed marks a node where propagation observed a recursion
	// cycle (re-entered the node mid-recomputation).
	Recursed

	// Dirty marks a node whose value must be recomputed before next use.
	Dirty

	// Pending marks a node with an upstream change not yet confirmed by
	// dirty-check.
	Pending
)

// has reports whether any bit in mask is set. For a single flag this is
// an exact membership test; for a combined mask it is "any of".
func (f Flags) has(mask Flags) bool {
	return f&mask != 0
}

// hasAll reports whether every bit in mask is set.
func (f Flags) hasAll(mask Flags) bool {
	return f&mask == mask
}

// hasNone reports whether no bit in mask is set.
func (f Flags) hasNone(mask Flags) bool {
	return f&mask == 0
}

func (f *Flags) set(mask Flags) {
	*f |= mask
}

func (f *Flags) remove(mask Flags) {
	*f &^= mask
}

func (f *Flags) replace(old, new Flags) {
	*f = (*f &^ old) | new
}
