package engine

// link establishes (or refreshes) a dependency edge dep -> sub during a
// tracked read. Preconditions: sub.flags has recursedCheck set, and
// sub.depsTail either points at the most recently linked dep of this
// pass or is nil (first dep read in this pass).
func link(dep, sub *Node, version int64) {
	// Fast path 1: dep was just linked (re-reading the same dep twice
	// in a row).
	if sub.depsTail != nil && sub.depsTail.dep == dep {
		return
	}

	// Fast path 2: the next link after depsTail (or sub.deps if this is
	// the first dep of the pass) already targets dep — reuse it,
	// refreshing version, rather than reallocating.
	var nextDep *Link
	if sub.depsTail != nil {
		nextDep = sub.depsTail.nextDep
	} else {
		nextDep = sub.deps
	}
	if nextDep != nil && nextDep.dep == dep {
		nextDep.version = version
		sub.depsTail = nextDep
		return
	}

	// Fast path 3: dep's subsTail already references sub at this
	// version (idempotent under concurrent shapes / duplicate calls
	// within the same pass that fast paths 1-2 could not detect because
	// the sub's own chain was already advanced past it).
	if dep.subsTail != nil && dep.subsTail.sub == sub && dep.subsTail.version == version {
		return
	}

	l := &Link{dep: dep, sub: sub, version: version}

	// Splice into sub's dependency chain, after depsTail.
	if sub.depsTail != nil {
		l.prevDep = sub.depsTail
		l.nextDep = sub.depsTail.nextDep
		if l.nextDep != nil {
			l.nextDep.prevDep = l
		}
		sub.depsTail.nextDep = l
	} else {
		l.nextDep = sub.deps
		if l.nextDep != nil {
			l.nextDep.prevDep = l
		}
		sub.deps = l
	}
	sub.depsTail = l

	// Splice into dep's subscriber chain, appending at the tail.
	l.prevSub = dep.subsTail
	if dep.subsTail != nil {
		dep.subsTail.nextSub = l
	} else {
		dep.subs = l
	}
	dep.subsTail = l
}

// unlink splices l out of both lists it belongs to and returns l.nextDep
// so callers can sweep a chain. If dep.subs becomes empty, onUnwatched
// fires for dep's lifecycle (§ invariant 6).
func unlink(l *Link, sub *Node) *Link {
	next := l.nextDep

	if l.prevDep != nil {
		l.prevDep.nextDep = l.nextDep
	} else if sub.deps == l {
		sub.deps = l.nextDep
	}
	if l.nextDep != nil {
		l.nextDep.prevDep = l.prevDep
	} else if sub.depsTail == l {
		sub.depsTail = l.prevDep
	}

	dep := l.dep
	if l.prevSub != nil {
		l.prevSub.nextSub = l.nextSub
	} else if dep.subs == l {
		dep.subs = l.nextSub
	}
	if l.nextSub != nil {
		l.nextSub.prevSub = l.prevSub
	} else if dep.subsTail == l {
		dep.subsTail = l.prevSub
	}

	l.prevDep, l.nextDep, l.prevSub, l.nextSub = nil, nil, nil, nil

	if dep.subs == nil {
		onUnwatched(dep)
	}

	return next
}

// onUnwatched fires when a node's last subscriber is removed (invariant
// 6). A Computed with zero subs drops its own deps and goes dirty,
// deferring re-evaluation until (if ever) it is read again. An
// Effect/Scope with zero subs has nothing upstream to react to and is
// simply left alone here — Effects/Scopes are stopped explicitly or
// transitively via their owner, never because their subs list emptied
// (they normally have no subs at all; only a Scope nested as another
// Scope's child can appear as a dep, and its subs emptying does not by
// itself mean it should stop).
func onUnwatched(dep *Node) {
	if dep.kind == KindComputed {
		clearDeps(dep)
		dep.flags = (dep.flags | Mutable | Dirty) &^ Pending
	}
}

// purgeStaleDeps unlinks every dep link left over from the previous
// tracking pass: everything after sub.depsTail (or the whole chain, if
// sub.depsTail is nil meaning nothing was (re)read this pass).
func purgeStaleDeps(sub *Node) {
	var l *Link
	if sub.depsTail != nil {
		l = sub.depsTail.nextDep
	} else {
		l = sub.deps
	}
	for l != nil {
		l = unlink(l, sub)
	}
}

// clearDeps unlinks every dep of sub, unconditionally.
func clearDeps(sub *Node) {
	l := sub.deps
	for l != nil {
		l = unlink(l, sub)
	}
	sub.deps, sub.depsTail = nil, nil
}
