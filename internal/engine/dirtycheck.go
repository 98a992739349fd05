package engine

// checkFrame saves a parent's scan position while checkDirty descends
// into one of its pending computed deps to resolve it first.
type checkFrame struct {
	link *Link // parent's link whose dep is the computed just descended into
	sub  *Node // parent
}

// checkDirty walks sub's dependency chain starting at link and proves
// (or disproves) that sub actually has a transitively changed
// dependency. A dirty signal dep is committed and compared directly. A
// dirty computed dep is recomputed directly. A merely pending computed
// dep is not dirty by itself — it is only a candidate — so its own
// deps are checked first; only if that proves a real change does the
// candidate get recomputed, and only if ITS value then actually
// changes does the proof propagate further up. A pending computed
// whose recompute turns out unchanged settles clean even though one of
// its own deps changed, exactly like a direct read would observe. An
// explicit stack replaces host recursion — depth is bounded by graph
// depth, never by the Go call stack.
func checkDirty(link *Link, sub *Node) bool {
	var stack []checkFrame
	var retVal bool

scan:
	for link != nil {
		dep := link.dep

		switch {
		case dep.kind == KindSignal && dep.flags.has(Dirty):
			if commitSignal(dep) {
				retVal = true
				goto ascend
			}

		case dep.kind == KindComputed && dep.flags.has(Dirty):
			if recomputeComputed(dep) {
				if dep.subs != nil && dep.subs.nextSub != nil {
					shallowPropagate(dep.subs)
				}
				retVal = true
				goto ascend
			}

		case dep.kind == KindComputed && dep.flags.has(Pending):
			stack = append(stack, checkFrame{link: link, sub: sub})
			sub = dep
			link = dep.deps
			goto scan
		}

		link = link.nextDep
	}
	retVal = false

ascend:
	for {
		if len(stack) == 0 {
			if !retVal && sub.kind == KindComputed {
				sub.flags.remove(Pending)
			}
			return retVal
		}

		childDep := sub
		n := len(stack) - 1
		frame := stack[n]
		stack = stack[:n]
		sub = frame.sub

		if retVal {
			changed := recomputeComputed(childDep)
			if changed {
				if childDep.subs != nil && childDep.subs.nextSub != nil {
					shallowPropagate(childDep.subs)
				}
				continue // keep propagating the proof upward
			}
			retVal = false
		} else {
			childDep.flags.remove(Pending)
		}

		link = frame.link.nextDep
		goto scan
	}
}
