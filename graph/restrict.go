// ABOUTME: Reachability/restriction filter: splits a graph into a dominated subgraph plus a "rest" set
// ABOUTME: Mode A reduces to all-reachable-nodes; Mode B restricts to a user-chosen subtree root
package graph

// wholeGraphRestriction implements Mode A (§4.2): every node with an
// idom entry (or the root itself) is reachable and goes into the
// dominated subgraph; everything else is unreachable and lands in rest.
func wholeGraphRestriction(rg *ReferenceGraph, root ObjID, doms *Dominators) (ObjID, *ReferenceGraph, []*Object, map[ObjID]ObjID) {
	keep := map[ObjID]bool{root: true}
	var rest []*Object
	rg.ForEachObject(func(obj *Object) {
		if obj.Address == root {
			return
		}
		if _, ok := doms.IDom(obj.Address); ok {
			keep[obj.Address] = true
		} else {
			rest = append(rest, obj)
		}
	})

	dominators := make(map[ObjID]ObjID, len(keep)-1)
	for id := range keep {
		if id == root {
			continue
		}
		p, _ := doms.IDom(id)
		dominators[id] = p
	}

	assertRestrictionInvariants(len(keep)+len(rest), rg.NumObjects(), len(dominators), len(keep))
	return root, rg.Subgraph(keep), rest, dominators
}

// subtreeRestriction implements Mode B (§4.2): find s, compute the set
// of nodes reachable from s and the set dominated by s (via the
// amortized-linear idom-chain walk), and split accordingly.
func subtreeRestriction(rg *ReferenceGraph, s ObjID, doms *Dominators) (ObjID, *ReferenceGraph, []*Object, map[ObjID]ObjID) {
	reachableFromS := dfsReachable(rg, s)
	dominators := dominatedBySubtreeRoot(doms, reachableFromS, s)

	keep := map[ObjID]bool{s: true}
	for id := range dominators {
		keep[id] = true
	}

	var rest []*Object
	for id := range reachableFromS {
		if !keep[id] {
			rest = append(rest, rg.Object(id))
		}
	}

	assertRestrictionInvariants(len(reachableFromS), len(reachableFromS), len(dominators), len(keep))
	return s, rg.Subgraph(keep), rest, dominators
}

// dfsReachable returns every node reachable from s (including s) via an
// iterative depth-first traversal over successors.
func dfsReachable(rg *ReferenceGraph, s ObjID) map[ObjID]bool {
	seen := map[ObjID]bool{s: true}
	stack := []ObjID{s}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, succ := range rg.Successors(v) {
			if !seen[succ] {
				seen[succ] = true
				stack = append(stack, succ)
			}
		}
	}
	return seen
}

// dominatedBySubtreeRoot computes, for every node proven dominated by s,
// its immediate dominator — using one reusable path buffer per the
// amortized-linear walk described in §4.2 rather than re-deriving
// dominance from scratch for each candidate.
func dominatedBySubtreeRoot(doms *Dominators, reachableFromS map[ObjID]bool, s ObjID) map[ObjID]ObjID {
	result := make(map[ObjID]ObjID)
	var chain []ObjID

	visit := func(startChild, startParent ObjID) {
		if _, already := result[startChild]; already {
			return
		}
		child, parent := startChild, startParent
		chain = chain[:0]
		for {
			if !reachableFromS[parent] {
				return // proved not dominated by s; abandon this chain
			}
			if parent == s {
				result[child] = parent
				for i := len(chain) - 1; i >= 0; i-- {
					result[chain[i]] = child
					child = chain[i]
				}
				return
			}
			if _, known := result[parent]; known {
				result[child] = parent
				for i := len(chain) - 1; i >= 0; i-- {
					result[chain[i]] = child
					child = chain[i]
				}
				return
			}
			grandparent, ok := doms.IDom(parent)
			if !ok {
				return // reached the whole-graph root without passing through s
			}
			chain = append(chain, child)
			child, parent = parent, grandparent
		}
	}

	for v := range reachableFromS {
		if p, ok := doms.IDom(v); ok {
			visit(v, p)
		}
	}
	return result
}

// assertRestrictionInvariants enforces the cheap sanity checks from §4.2.
// These are real invariants of a correctly-implemented filter, not
// defensive guards against caller misuse, so a violation panics rather
// than returning an error.
func assertRestrictionInvariants(reachablePlusUnreachable, total, dominatorEdges, dominatedCount int) {
	if reachablePlusUnreachable != total {
		panic("graph: reachable.count + unreachable.count != total.count")
	}
	if dominatedCount > dominatorEdges+1 {
		panic("graph: dominated.count exceeds proved-dominated edges + 1")
	}
}
