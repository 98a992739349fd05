//go:build wasm

package engine

import "sync"

var (
	once          sync.Once
	globalRuntime *Runtime
)

// Current returns the single process-wide Runtime. WASM builds run on
// one JS-event-loop thread with no meaningful goroutine identity, so
// there is exactly one engine instance rather than one per goroutine.
func Current() *Runtime {
	once.Do(func() {
		globalRuntime = New()
	})
	return globalRuntime
}
