// ABOUTME: Renders a pruned dominator subgraph as Graphviz DOT
// ABOUTME: The only rendering surface the core's §4.5 data structure feeds; the core stops at the graph itself

// Package render converts a graph.ReferenceGraph into Graphviz DOT,
// using gonum's own graph/simple and graph/encoding/dot packages rather
// than hand-rolling a writer.
package render

import (
	"fmt"

	"github.com/prateek/rheap/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

// dotNode adapts a *graph.Object to gonum's graph.Node plus
// encoding/dot's DOTID/Attributes interfaces, so the object's label and
// kind show up on the rendered graph.
type dotNode struct {
	obj *graph.Object
}

func (n dotNode) ID() int64 { return int64(n.obj.Address) }

func (n dotNode) DOTID() string {
	return fmt.Sprintf("n%d", n.obj.Address)
}

func (n dotNode) Attributes() []encoding.Attribute {
	return []encoding.Attribute{
		{Key: "label", Value: fmt.Sprintf("%q", n.obj.String())},
		{Key: "kind", Value: fmt.Sprintf("%q", n.obj.Kind)},
	}
}

// DOT renders rg as a Graphviz DOT document.
func DOT(rg *graph.ReferenceGraph, name string) ([]byte, error) {
	g := simple.NewDirectedGraph()
	rg.ForEachObject(func(obj *graph.Object) {
		g.AddNode(dotNode{obj: obj})
	})
	rg.ForEachObject(func(obj *graph.Object) {
		for _, succ := range rg.Successors(obj.Address) {
			g.SetEdge(simple.Edge{F: g.Node(int64(obj.Address)), T: g.Node(int64(succ))})
		}
	})
	return dot.Marshal(g, name, "", "  ")
}
