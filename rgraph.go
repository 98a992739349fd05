// Package rgraph is a fine-grained reactive dependency graph: signals,
// computed values and effects that keep themselves consistent without
// a virtual DOM or a scheduler tick, by tracking exactly which reads
// feed which writes.
package rgraph

import "github.com/anatolelucet/rgraph/internal/engine"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}

// Signal is a writable reactive value. The zero Signal is not usable;
// construct one with NewSignal.
type Signal[T any] struct {
	node *engine.Node
}

// NewSignal creates a signal holding initial, compared on write with
// Go's == (see NewSignalWithEqual for non-comparable T).
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{node: engine.Current().NewSignalNode(initial, nil)}
}

// NewSignalWithEqual creates a signal using a custom equality function
// in place of ==, for a T that is not comparable (a slice, a map, or
// any struct containing one).
func NewSignalWithEqual[T any](initial T, equal func(a, b T) bool) *Signal[T] {
	wrapped := func(a, b any) bool { return equal(as[T](a), as[T](b)) }
	return &Signal[T]{node: engine.Current().NewSignalNode(initial, wrapped)}
}

// Read returns the signal's current value, subscribing the active
// effect or computed, if any, to future writes.
func (s *Signal[T]) Read() T {
	return as[T](s.node.RT().ReadSignal(s.node))
}

// Write sets a new value, propagating to every dependent that reads
// it. A write of the value already pending in an open Batch is a
// no-op, even if that value has not yet been committed.
func (s *Signal[T]) Write(v T) {
	s.node.RT().WriteSignal(s.node, v)
}

// Peek reads without subscribing, regardless of the ambient tracking
// context.
func (s *Signal[T]) Peek() T {
	return as[T](s.node.RT().PeekSignal(s.node))
}

// HasSubscribers reports whether any computed or effect currently
// depends on this signal.
func (s *Signal[T]) HasSubscribers() bool {
	return engine.HasSubscribers(s.node)
}

// Computed is a memoized derivation of other signals and computeds.
// It only recomputes when read after one of its dependencies changed.
type Computed[T any] struct {
	node *engine.Node
}

// NewComputed creates a computed whose value is produced by fn,
// called with the no-dependency-tracking-yet previous value discarded
// (fn takes no argument; compare the previous value yourself via a
// captured Signal if you need it).
func NewComputed[T any](fn func() T) *Computed[T] {
	compute := func(prev any) any { return fn() }
	return &Computed[T]{node: engine.Current().NewComputedNode(compute, nil)}
}

// NewComputedWithEqual is NewComputed with a custom equality function
// for a non-comparable T.
func NewComputedWithEqual[T any](fn func() T, equal func(a, b T) bool) *Computed[T] {
	compute := func(prev any) any { return fn() }
	wrapped := func(a, b any) bool { return equal(as[T](a), as[T](b)) }
	return &Computed[T]{node: engine.Current().NewComputedNode(compute, wrapped)}
}

// NewComputedWithPrev creates a computed whose fn additionally receives
// its own previous value (spec §6's computedWithPrev), letting it fold
// over its own history instead of recomputing from scratch every time.
// fn is called with T's zero value the first time, since there is no
// previous value yet.
func NewComputedWithPrev[T any](fn func(prev T) T) *Computed[T] {
	compute := func(prev any) any { return fn(as[T](prev)) }
	return &Computed[T]{node: engine.Current().NewComputedNode(compute, nil)}
}

// NewComputedWithPrevAndEqual is NewComputedWithPrev with a custom
// equality function for a non-comparable T.
func NewComputedWithPrevAndEqual[T any](fn func(prev T) T, equal func(a, b T) bool) *Computed[T] {
	compute := func(prev any) any { return fn(as[T](prev)) }
	wrapped := func(a, b any) bool { return equal(as[T](a), as[T](b)) }
	return &Computed[T]{node: engine.Current().NewComputedNode(compute, wrapped)}
}

// Read returns the computed's current value, recomputing first if a
// dependency has changed since the last read.
func (c *Computed[T]) Read() T {
	return as[T](c.node.RT().ReadComputed(c.node))
}

// Peek reads without subscribing the active tracking context, still
// refreshing the value if it is stale.
func (c *Computed[T]) Peek() T {
	return as[T](c.node.RT().PeekComputed(c.node))
}

// HasSubscribers reports whether any other computed or effect
// currently depends on this computed.
func (c *Computed[T]) HasSubscribers() bool {
	return engine.HasSubscribers(c.node)
}

// EffectHandle lets a caller stop an effect and register error
// catchers against it.
type EffectHandle struct {
	node *engine.Node
}

// NewEffect runs fn immediately and again every time one of the
// signals or computeds it read changes, until Stop is called. Any
// effect or scope created while fn runs becomes a child of this
// effect and is disposed before each re-run and on Stop.
func NewEffect(fn func()) *EffectHandle {
	return &EffectHandle{node: engine.Current().CreateEffect(fn)}
}

// Stop ends the effect: it will not run again, and its children (any
// nested effect, scope or cleanup) are disposed. Calling Stop on an
// already-stopped effect is a no-op.
func (e *EffectHandle) Stop() {
	engine.Stop(e.node)
}

// OnError registers fn to receive a recovered panic from this
// effect's body, or from any descendant effect/scope that has no
// closer catcher of its own.
func (e *EffectHandle) OnError(fn func(any)) {
	engine.OnError(e.node, fn)
}

// ScopeHandle lets a caller stop every reactive node created inside a
// scope in one call.
type ScopeHandle struct {
	node *engine.Node
}

// NewScope runs fn immediately with a fresh owner as the active
// tracking context: any Computed, effect or nested scope created
// inside fn becomes a child of this scope. Stop stops every child
// effect and scope together; a child Computed is only detached, and
// a Signal created inside fn is not owned by the scope at all.
func NewScope(fn func()) *ScopeHandle {
	return &ScopeHandle{node: engine.Current().CreateScope(fn)}
}

// Stop disposes every child this scope owns. Idempotent.
func (s *ScopeHandle) Stop() {
	engine.Stop(s.node)
}

// OnError registers fn to receive a recovered panic from any
// descendant effect that has no closer catcher of its own.
func (s *ScopeHandle) OnError(fn func(any)) {
	engine.OnError(s.node, fn)
}

// Batch defers effect execution until fn returns, coalescing any
// number of writes made during fn into at most one flush. Batches
// nest: only the outermost call flushes.
func Batch(fn func()) {
	engine.Current().Batch(fn)
}

// Untrack runs fn so that any Signal or Computed it reads creates no
// dependency, even if Untrack is itself called from inside an effect
// or computed, and returns fn's result.
func Untrack[T any](fn func() T) T {
	var result T
	engine.Current().Untrack(func() { result = fn() })
	return result
}

// Trigger runs fn, capturing every signal and computed it reads, and
// force-notifies their current subscribers regardless of whether the
// values actually changed. Use this to re-run dependents of a signal
// whose boxed value is mutated in place rather than replaced.
func Trigger(fn func()) {
	engine.Current().Trigger(fn)
}

// OnCleanup registers fn to run before the active effect's next
// re-run, or when it (or its owning scope) is stopped. Outside of any
// effect or scope, OnCleanup is a no-op.
func OnCleanup(fn func()) {
	engine.Current().OnCleanup(fn)
}
