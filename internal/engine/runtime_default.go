//go:build !wasm

package engine

import "github.com/petermattis/goid"

// Current returns the Runtime for the calling goroutine, creating one
// on first use. Keying by goroutine id (rather than a single global)
// is what lets two goroutines run fully independent reactive graphs
// without any explicit handle-passing — the default described in
// spec.md §5 ("process-wide... permits multiple independent engines").
func Current() *Runtime {
	gid := goid.Get()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := New()
	runtimes.Store(gid, r)
	return r
}
