package engine

import "sync"

var runtimes sync.Map // goid -> *Runtime, see runtime_default.go / runtime_wasm.go

// Runtime is the global mutable state spec.md §3 calls out: cycle
// counter, batch depth, active subscriber, and effect queue. One
// instance exists per goroutine (keyed by goid) so embedders get
// per-context isolation for free without threading a handle through
// every call; an explicit Runtime can still be constructed and used
// directly by an embedder that wants isolation inside one goroutine.
type Runtime struct {
	cycle         int64
	activeVersion int64

	batchDepth int

	activeSubscriber *Node

	queue []*Node
}

// New constructs a standalone engine instance. Most callers should use
// Current, which returns the goroutine-local singleton.
func New() *Runtime {
	return &Runtime{}
}

// NewSignalNode allocates a Signal-kind node holding initial.
func (rt *Runtime) NewSignalNode(initial any, equal func(a, b any) bool) *Node {
	if equal == nil {
		equal = defaultEqual
	}
	return &Node{rt: rt, kind: KindSignal, flags: Mutable, current: initial, equal: equal}
}

// NewComputedNode allocates a Computed-kind node. It starts with no
// flags at all (spec §4.7: "flags are none -> never computed"),
// deferring its first evaluation to the first Read.
func (rt *Runtime) NewComputedNode(compute func(prev any) any, equal func(a, b any) bool) *Node {
	if equal == nil {
		equal = defaultEqual
	}
	n := &Node{rt: rt, kind: KindComputed, compute: compute, equal: equal}
	if owner := rt.activeSubscriber; owner != nil {
		owner.addChild(n)
	}
	return n
}
