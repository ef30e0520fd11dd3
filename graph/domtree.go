// ABOUTME: Dominator-tree utilities built on top of an Analysis's idom relation
// ABOUTME: Answers "what is retaining this object" by walking the chain to the analyzed root
package graph

// DominatorPath returns the chain of dominators from v up to and
// including Root(), in that order (v first). It is the answer to "what
// is retaining this object": every entry after v is something that
// would, if freed, also free v. Returns nil if v is not in the
// dominated subgraph.
func (a *Analysis) DominatorPath(v ObjID) []ObjID {
	if v != a.root && a.dominatedSubgraph.Object(v) == nil {
		return nil
	}
	path := []ObjID{v}
	for v != a.root {
		parent, ok := a.dominators[v]
		if !ok {
			break
		}
		path = append(path, parent)
		v = parent
	}
	return path
}

// Dominates reports whether d dominates v (a node dominates itself).
func (a *Analysis) Dominates(d, v ObjID) bool {
	if d == v {
		return true
	}
	for {
		parent, ok := a.dominators[v]
		if !ok {
			return false
		}
		if parent == d {
			return true
		}
		v = parent
	}
}
