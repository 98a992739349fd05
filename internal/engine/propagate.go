package engine

// propagate performs the top-down, depth-first notification of every
// subscriber reachable from start (dep.subs after a signal write, or a
// computed's own subs after its value changes). An explicit stack of
// saved "resume here" links replaces host recursion so a deep graph
// cannot blow the call stack.
func propagate(start *Link) {
	var stack []*Link
	cur := start

	for cur != nil {
		sub := cur.sub
		f := sub.flags

		switch {
		case f.hasNone(RecursedCheck | Recursed | Dirty | Pending):
			// Case A: untouched this cycle.
			sub.flags = f | Pending
			if f.has(Watching) {
				sub.rt.enqueueEffect(sub)
			}
			if f.has(Mutable) && sub.subs != nil {
				if cur.nextSub != nil {
					stack = append(stack, cur.nextSub)
				}
				cur = sub.subs
				continue
			}

		case f.has(RecursedCheck | Recursed):
			// Case B: cyclic or re-entrant mid-recomputation.
			sub.flags = f | Recursed | Pending

		default:
			// Case C: already dirty or pending — stop, already queued
			// for resolution by dirty-check.
		}

		if cur.nextSub != nil {
			cur = cur.nextSub
			continue
		}

		if n := len(stack); n > 0 {
			cur = stack[n-1]
			stack = stack[:n-1]
			continue
		}
		cur = nil
	}
}

// shallowPropagate promotes every direct subscriber of a node whose
// value just changed from "pending" to "dirty" — a single-level
// promotion, no further descent (descent already happened during the
// original propagate pass; this just confirms the ones that were
// waiting on this exact node).
func shallowPropagate(start *Link) {
	for l := start; l != nil; l = l.nextSub {
		sub := l.sub
		f := sub.flags
		if f.has(Pending) && f.hasNone(Dirty) {
			sub.flags.replace(Pending, Dirty)
			if f.has(Watching) {
				sub.rt.enqueueEffect(sub)
			}
		}
	}
}
