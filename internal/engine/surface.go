package engine

// ReadSignal implements spec §4.7 readSignal: apply any pending write,
// shallow-propagate on change, link to the active subscriber if one
// exists, and return the current value.
func (rt *Runtime) ReadSignal(n *Node) any {
	if n.flags.has(Dirty) {
		commitSignal(n)
	}

	if sub := rt.activeSubscriber; sub != nil {
		link(n, sub, rt.activeVersion)
	}

	return n.current
}

// PeekSignal reads without tracking, regardless of the ambient active
// subscriber (spec §6 item 2).
func (rt *Runtime) PeekSignal(n *Node) any {
	if n.flags.has(Dirty) {
		commitSignal(n)
	}
	return n.current
}

// WriteSignal implements spec §4.7 writeSignal. The comparison is
// against the still-pending value, not current (spec.md open question
// #2, resolved): a write that restores an in-flight batch's pending
// value to what it already was collapses to a no-op, even though
// current has not yet caught up.
func (rt *Runtime) WriteSignal(n *Node, v any) {
	prior := n.current
	if n.flags.has(Dirty) {
		prior = n.pending
	}
	if n.equal(prior, v) {
		return
	}

	n.pending = v
	n.flags = (n.flags | Mutable | Dirty) &^ Pending

	if n.subs != nil {
		propagate(n.subs)
	}

	rt.maybeFlush()
}

// ReadComputed implements spec §4.7 readComputed: evaluate once if
// never computed, refresh if dirty or (pending and dirty-check
// confirms), link to the active subscriber, return the cached value.
func (rt *Runtime) ReadComputed(n *Node) any {
	if n.flags == FlagNone {
		recomputeComputed(n)
	} else if n.flags.has(Dirty) {
		changed := recomputeComputed(n)
		if changed && n.subs != nil {
			shallowPropagate(n.subs)
		}
	} else if n.flags.has(Pending) {
		if n.deps != nil && checkDirty(n.deps, n) {
			changed := recomputeComputed(n)
			if changed && n.subs != nil {
				shallowPropagate(n.subs)
			}
		} else {
			// DirtyCheckInconsistency: a pending node with nothing left
			// to confirm against settles clean rather than staying
			// pending forever.
			n.flags.remove(Pending)
		}
	}

	if sub := rt.activeSubscriber; sub != nil {
		link(n, sub, rt.activeVersion)
	}

	return n.current
}

// PeekComputed reads without tracking, still refreshing if stale.
func (rt *Runtime) PeekComputed(n *Node) any {
	prev := rt.activeSubscriber
	rt.activeSubscriber = nil
	defer func() { rt.activeSubscriber = prev }()
	return rt.ReadComputed(n)
}

// CreateEffect implements spec §4.7 createEffect: allocate, link to
// the enclosing owner (if any) for cascading Stop, run the thunk once
// under tracking.
func (rt *Runtime) CreateEffect(fn func()) *Node {
	n := &Node{rt: rt, kind: KindEffect, fn: fn, equal: defaultEqual}

	if owner := rt.activeSubscriber; owner != nil {
		owner.addChild(n)
	}

	n.flags = Watching
	recomputeComputed(n)
	return n
}

// CreateScope implements spec §4.7 createEffectScope: a passive
// subscriber whose only job is to own children for bulk Stop. fn runs
// immediately with the scope as the active subscriber; any
// effect/scope/computed created inside becomes its child.
func (rt *Runtime) CreateScope(fn func()) *Node {
	// A Scope has no recompute body, so it never sets Watching: unlike
	// an Effect, it must never be enqueued for a flush to run. If fn
	// reads a signal directly (rather than through a nested Effect or
	// Computed), that read still links the scope in as a subscriber,
	// but leaving it un-Watching means propagate only marks it Pending
	// and the scheduler never tries to invoke a body that doesn't exist.
	n := &Node{rt: rt, kind: KindScope, equal: defaultEqual}

	if owner := rt.activeSubscriber; owner != nil {
		owner.addChild(n)
	}

	prev := rt.activeSubscriber
	rt.activeSubscriber = n
	defer func() { rt.activeSubscriber = prev }()

	if fn != nil {
		fn()
	}

	return n
}

// Stop implements spec §4.7 stopEffect/stopScope: idempotent, clears
// watching, releases every dep (so upstream computeds can in turn go
// dirty-and-lazy per invariant 6), runs cleanups, and cascades to
// children before detaching from its own owner.
func Stop(n *Node) {
	stopNode(n)
}

func stopNode(n *Node) {
	if !n.isEffectOrScope() {
		return
	}
	if n.flags.hasNone(Watching) && n.deps == nil && n.childHead == nil && n.parent == nil && len(n.cleanups) == 0 {
		return // already stopped; StoppedHandleUse is a no-op (spec §7)
	}

	n.flags.remove(Watching)
	n.disposeChildren()
	n.runCleanups()
	clearDeps(n)

	if n.parent != nil {
		n.parent.removeChild(n)
	}
}

// OnCleanup registers fn against the currently active subscriber, if
// any, to run before its next recomputation or on Stop.
func (rt *Runtime) OnCleanup(fn func()) {
	if sub := rt.activeSubscriber; sub != nil {
		sub.onCleanup(fn)
	}
}

// OnError registers a panic catcher against n.
func OnError(n *Node, fn func(any)) {
	n.onError(fn)
}

// HasSubscribers reports whether any node currently depends on n.
func HasSubscribers(n *Node) bool {
	return n.subs != nil
}

// ActiveSubscriber exposes the current tracking context; nil means
// untracked.
func (rt *Runtime) ActiveSubscriber() *Node {
	return rt.activeSubscriber
}
