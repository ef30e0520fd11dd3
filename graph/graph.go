// ABOUTME: ReferenceGraph: a directed graph of Objects backed by gonum's graph/simple
// ABOUTME: Nodes are looked up and compared solely by ObjID (the object's address)

package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// node adapts an *Object to gonum's graph.Node interface. Identity is the
// object's address, never a pointer or an owning reference — this is what
// lets the dominator engine and restriction filter operate purely over ids
// and sidestep cycles in the underlying object graph.
type node struct {
	obj *Object
}

func (n node) ID() int64 { return int64(n.obj.Address) }

// ReferenceGraph is a directed graph of Objects, rooted at a synthetic
// super-root (address 0). Multi-edges collapse (gonum's SetEdge is
// idempotent); the graph is not required to be acyclic.
type ReferenceGraph struct {
	g *simple.DirectedGraph
}

// NewReferenceGraph allocates an empty graph containing only the synthetic
// super-root.
func NewReferenceGraph() *ReferenceGraph {
	rg := &ReferenceGraph{g: simple.NewDirectedGraph()}
	rg.g.AddNode(node{obj: superRoot()})
	return rg
}

// AddObject inserts obj as a node, keyed by its address. Re-adding an
// address overwrites the prior object's attributes but keeps its edges.
func (rg *ReferenceGraph) AddObject(obj *Object) {
	if n := rg.g.Node(int64(obj.Address)); n != nil {
		*n.(node).obj = *obj
		return
	}
	rg.g.AddNode(node{obj: obj})
}

// AddEdge adds a directed reference from -> to. An edge with an endpoint
// that is not in the graph is silently dropped, which is how the heapdump
// builder drops references to unknown addresses. A self-reference is
// dropped too: simple.DirectedGraph cannot store one, and it never
// affects reachability or dominance.
func (rg *ReferenceGraph) AddEdge(from, to ObjID) {
	if from == to {
		return
	}
	f := rg.g.Node(int64(from))
	t := rg.g.Node(int64(to))
	if f == nil || t == nil {
		return
	}
	rg.g.SetEdge(simple.Edge{F: f, T: t})
}

// Object returns the object at id, or nil if no such node exists.
func (rg *ReferenceGraph) Object(id ObjID) *Object {
	n := rg.g.Node(int64(id))
	if n == nil {
		return nil
	}
	return n.(node).obj
}

// HasObject reports whether id names a node in the graph.
func (rg *ReferenceGraph) HasObject(id ObjID) bool {
	return rg.g.Node(int64(id)) != nil
}

// NumObjects returns the total node count, including the super-root.
func (rg *ReferenceGraph) NumObjects() int {
	return rg.g.Nodes().Len()
}

// NodeIDs returns every node id in the graph in ascending order, so callers
// that need a deterministic traversal order don't depend on gonum's
// iteration order (which is map-backed and therefore unordered).
func (rg *ReferenceGraph) NodeIDs() []ObjID {
	it := rg.g.Nodes()
	ids := make([]ObjID, 0, it.Len())
	for it.Next() {
		ids = append(ids, ObjID(it.Node().ID()))
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ForEachObject calls fn for every object in the graph, including the
// super-root, in ascending address order.
func (rg *ReferenceGraph) ForEachObject(fn func(*Object)) {
	for _, id := range rg.NodeIDs() {
		fn(rg.Object(id))
	}
}

// Successors returns the ids that id has outgoing references to, in
// ascending order.
func (rg *ReferenceGraph) Successors(id ObjID) []ObjID {
	n := rg.g.Node(int64(id))
	if n == nil {
		return nil
	}
	it := rg.g.From(n.ID())
	out := make([]ObjID, 0, it.Len())
	for it.Next() {
		out = append(out, ObjID(it.Node().ID()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Predecessors returns the ids that have an outgoing reference to id, in
// ascending order.
func (rg *ReferenceGraph) Predecessors(id ObjID) []ObjID {
	n := rg.g.Node(int64(id))
	if n == nil {
		return nil
	}
	it := rg.g.To(n.ID())
	out := make([]ObjID, 0, it.Len())
	for it.Next() {
		out = append(out, ObjID(it.Node().ID()))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// newEmptyGraph allocates a ReferenceGraph with no nodes at all, not even
// a synthetic root. Used by callers that build up a graph whose root is
// not necessarily address 0 (the pruned dominator subgraph, subgraph
// restriction).
func newEmptyGraph() *ReferenceGraph {
	return &ReferenceGraph{g: simple.NewDirectedGraph()}
}

// Subgraph builds a fresh, owned ReferenceGraph containing exactly the
// given node ids and the edges of the receiver between them. It does not
// alias the receiver's storage.
func (rg *ReferenceGraph) Subgraph(ids map[ObjID]bool) *ReferenceGraph {
	out := newEmptyGraph()
	for id := range ids {
		obj := rg.Object(id)
		if obj != nil {
			out.g.AddNode(node{obj: obj})
		}
	}
	for id := range ids {
		for _, succ := range rg.Successors(id) {
			if ids[succ] {
				out.AddEdge(id, succ)
			}
		}
	}
	return out
}
