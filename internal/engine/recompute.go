package engine

// commitSignal applies a written signal's pending value to current,
// clears its dirty bit, and — if the value actually changed — shallow
// propagates to every direct subscriber so any of them still merely
// "pending" (not yet visited by this particular caller) is promoted to
// dirty in the same step. This makes commitSignal safe to call from
// whichever subscriber's dirty-check reaches the signal first: every
// other subscriber sharing it is resolved at once, exactly as a direct
// readSignal of a dirty signal would resolve them.
func commitSignal(n *Node) bool {
	prev := n.current
	changed := !n.equal(prev, n.pending)
	n.current = n.pending
	n.pending = nil
	n.flags.remove(Dirty)
	if changed && n.subs != nil {
		shallowPropagate(n.subs)
	}
	return changed
}

// recomputeComputed performs the tracked recomputation described by
// spec §4.5, generalized (per §4.6) to also drive an Effect's thunk —
// in that case "changed" is meaningless and always reported as true so
// callers that only care about dirty-resolution treat it uniformly.
// recomputeComputed disposes the node's children and runs its
// accumulated cleanups before invoking the thunk.
func recomputeComputed(n *Node) bool {
	rt := n.rt

	n.disposeChildren()
	n.runCleanups()

	rt.cycle++
	version := rt.cycle

	n.depsTail = nil
	flags := (n.flags | RecursedCheck) &^ (Dirty | Pending | Recursed)
	if n.kind == KindComputed {
		// Mutable is exclusive to nodes that hold a value (spec §3
		// invariant 3: never both watching and mutable) — an Effect has
		// no cached value to hold, so it never carries this bit.
		flags |= Mutable
	}
	n.flags = flags

	prevSub := rt.activeSubscriber
	prevVersion := rt.activeVersion
	rt.activeSubscriber = n
	rt.activeVersion = version

	var panicVal any
	var panicked bool
	var newValue any

	func() {
		defer func() {
			rt.activeSubscriber = prevSub
			rt.activeVersion = prevVersion
			n.flags.remove(RecursedCheck)

			if r := recover(); r != nil {
				panicked = true
				panicVal = r
			}
		}()

		if n.kind == KindEffect {
			n.fn()
		} else {
			newValue = n.compute(n.current)
		}
	}()

	// Deps read up to the point of a panic are kept as the new dep set
	// (spec.md open question #1: commit, don't roll back) — purge
	// happens regardless of panicked.
	purgeStaleDeps(n)

	if panicked {
		// A Computed is left Dirty so its next read retries compute. An
		// Effect is not: a Dirty Effect still queued would rerun at once,
		// and one not queued would be skipped by every later propagate.
		if n.kind == KindComputed {
			n.flags.set(Dirty)
		}
		dispatchPanic(n, panicVal)
		return true
	}

	if n.kind == KindEffect {
		return true
	}

	changed := !n.equal(n.current, newValue)
	n.current = newValue
	return changed
}

// dispatchPanic walks n's owner chain for the nearest OnError catcher.
// With none registered, it re-panics so it surfaces to whichever
// top-level API call (Write/Batch/NewEffect) drove the flush — the
// UserCallbackError contract from spec §7.
func dispatchPanic(n *Node, v any) {
	for o := n; o != nil; o = o.parent {
		if len(o.catchers) > 0 {
			for _, catch := range o.catchers {
				catch(v)
			}
			return
		}
	}
	panic(v)
}

// defaultEqual is the engine-wide fallback comparer: Go's ==. Panics at
// runtime if a caller boxes a non-comparable T without supplying a
// custom Equal.
func defaultEqual(a, b any) bool {
	return a == b
}
