// ABOUTME: Computes immediate dominators via Cooper-Harvey-Kennedy's "Simple, Fast Dominance Algorithm"
// ABOUTME: Uses a strided reverse-postorder numbering so later localized edits stay well-ordered
package graph

// rpoStride leaves gaps between consecutive RPO numbers. Nothing in this
// package renumbers after the fact, but the gaps are part of the
// algorithm's published discipline and keep the numbering cheap to extend.
const rpoStride = 4

// Dominators holds the immediate-dominator relation computed by
// ComputeDominators, plus the reverse-postorder numbering used to derive
// it. Nodes unreachable from the analyzed root have no entry in idom and
// an rpo number of 0.
type Dominators struct {
	root ObjID
	idom map[ObjID]ObjID
	rpo  map[ObjID]int
}

// IDom returns the immediate dominator of v and whether one is defined.
// It is never defined for root itself or for nodes unreachable from root.
func (d *Dominators) IDom(v ObjID) (ObjID, bool) {
	p, ok := d.idom[v]
	return p, ok
}

// Reachable reports whether v was reached from root during numbering.
func (d *Dominators) Reachable(v ObjID) bool {
	return v == d.root || d.rpo[v] > 0
}

// ComputeDominators computes the immediate dominator of every node
// reachable from root in rg. The root itself never appears in the
// returned idom mapping.
func ComputeDominators(rg *ReferenceGraph, root ObjID) *Dominators {
	rpo, order := reversePostorder(rg, root)

	idom := make(map[ObjID]ObjID, len(order))

	// Initial pass: assign a first estimate to every node in RPO order.
	// By the time we reach v, every predecessor that precedes v in RPO
	// already has an idom entry (or is root), which is what the single
	// "every visited node has at least one already-visited predecessor"
	// invariant guarantees.
	for _, v := range order[1:] {
		idom[v] = estimateIDom(rg, root, rpo, idom, v)
	}

	// Fixed-point pass: loop bodies, incoming back-edges, etc. may still
	// need their estimate refined once every node has an initial idom.
	for changed := true; changed; {
		changed = false
		for _, v := range order[1:] {
			next := estimateIDom(rg, root, rpo, idom, v)
			if idom[v] != next {
				idom[v] = next
				changed = true
			}
		}
	}

	return &Dominators{root: root, idom: idom, rpo: rpo}
}

// estimateIDom intersects the current idom estimates of v's
// already-visited predecessors (root counts as visited). A predecessor
// is ignored if it has RPO number 0 (never reached) or if this is the
// first pass and it hasn't been assigned an estimate yet.
func estimateIDom(rg *ReferenceGraph, root ObjID, rpo map[ObjID]int, idom map[ObjID]ObjID, v ObjID) ObjID {
	var result ObjID
	found := false
	for _, p := range rg.Predecessors(v) {
		if p != root && rpo[p] == 0 {
			continue
		}
		if p != root {
			if _, ok := idom[p]; !ok {
				continue
			}
		}
		if !found {
			result = p
			found = true
			continue
		}
		result = intersect(root, rpo, idom, result, p)
	}
	return result
}

// intersect walks both a and b up the dominator tree being built,
// always advancing whichever is further from root (larger RPO number),
// until they meet at the common dominator.
func intersect(root ObjID, rpo map[ObjID]int, idom map[ObjID]ObjID, a, b ObjID) ObjID {
	for a != b {
		for rpo[a] > rpo[b] {
			a = parentOf(root, idom, a)
		}
		for rpo[b] > rpo[a] {
			b = parentOf(root, idom, b)
		}
	}
	return a
}

func parentOf(root ObjID, idom map[ObjID]ObjID, v ObjID) ObjID {
	if v == root {
		return root
	}
	return idom[v]
}

// reversePostorder runs an iterative depth-first traversal from root and
// returns both the RPO number of every reachable node (0 for everything
// else) and the nodes themselves in RPO order (root first). Successor
// order is NodeIDs' ascending-address order, which is arbitrary but
// fixed, so the numbering is reproducible.
func reversePostorder(rg *ReferenceGraph, root ObjID) (map[ObjID]int, []ObjID) {
	visited := map[ObjID]bool{root: true}

	type frame struct {
		node  ObjID
		succs []ObjID
		next  int
	}
	stack := []*frame{{node: root, succs: rg.Successors(root)}}
	postorder := make([]ObjID, 0, rg.NumObjects())

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next < len(top.succs) {
			succ := top.succs[top.next]
			top.next++
			if !visited[succ] {
				visited[succ] = true
				stack = append(stack, &frame{node: succ, succs: rg.Successors(succ)})
			}
			continue
		}
		postorder = append(postorder, top.node)
		stack = stack[:len(stack)-1]
	}

	order := make([]ObjID, len(postorder))
	for i, v := range postorder {
		order[len(postorder)-1-i] = v
	}

	rpo := make(map[ObjID]int, len(order))
	for i, v := range order {
		rpo[v] = (i + 2) * rpoStride
	}
	return rpo, order
}
