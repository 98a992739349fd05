package engine

// enqueueEffect appends n to the flush queue and clears its watching
// bit so a second propagator hit on the same node during the same
// cycle cannot enqueue it twice (spec §4.6, invariant 4 in §8); flush
// restores the bit right before running n.
func (rt *Runtime) enqueueEffect(n *Node) {
	n.flags.remove(Watching)
	rt.queue = append(rt.queue, n)
}

// maybeFlush enqueues nothing itself; it just flushes immediately when
// not inside a batch. Writes call this after propagating.
func (rt *Runtime) maybeFlush() {
	if rt.batchDepth == 0 {
		rt.flush()
	}
}

// flush drains the effect queue to quiescence. Draining is a plain FIFO
// slice (the array-based equivalent spec.md §9 permits, with no
// reversal needed since we only ever append and never prepend).
// Re-entrant: an effect body may write signals, which propagate and
// append more entries to the same queue while we're still draining it;
// the for-loop simply keeps going until empty.
func (rt *Runtime) flush() {
	for len(rt.queue) > 0 {
		n := rt.queue[0]
		rt.queue = rt.queue[1:]

		n.flags.set(Watching)

		if n.flags.has(Dirty) || (n.flags.has(Pending) && n.deps != nil && checkDirty(n.deps, n)) {
			recomputeComputed(n)
		} else {
			n.flags.remove(Dirty | Pending | Recursed)
		}
	}
}

// Batch defers flushing until the outermost Batch call returns,
// coalescing any number of writes into at most one flush pass. Nested
// batches only flush when the outermost one completes. The
// increment/defer-decrement pairing is the scoped-acquisition idiom
// spec.md §9 calls for: the batch depth is restored on every exit path,
// including a panic unwinding through fn.
func (rt *Runtime) Batch(fn func()) {
	rt.batchDepth++
	defer func() {
		rt.batchDepth--
		if rt.batchDepth == 0 {
			rt.flush()
		}
	}()
	fn()
}

// Untrack runs fn with no active subscriber, so any signal/computed
// reads inside it create no dependency link.
func (rt *Runtime) Untrack(fn func()) {
	prev := rt.activeSubscriber
	rt.activeSubscriber = nil
	defer func() { rt.activeSubscriber = prev }()
	fn()
}

// Trigger runs fn under a synthetic watching subscriber to capture
// every signal/computed it reads, then force-notifies each one's
// current subscribers regardless of whether dirty-check would
// otherwise consider them stale (spec.md open question #3, resolved:
// "force notify all current subscribers of the signals read in fn").
func (rt *Runtime) Trigger(fn func()) {
	synthetic := &Node{rt: rt, kind: KindScope, flags: Watching, equal: defaultEqual}

	prev := rt.activeSubscriber
	rt.activeSubscriber = synthetic
	func() {
		defer func() { rt.activeSubscriber = prev }()
		fn()
	}()

	for l := synthetic.deps; l != nil; {
		next := l.nextDep
		dep := l.dep
		unlink(l, synthetic)
		if dep.subs != nil {
			propagate(dep.subs)
			shallowPropagate(dep.subs)
		}
		l = next
	}

	rt.maybeFlush()
}
