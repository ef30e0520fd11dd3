// ABOUTME: Tests for DOT rendering: node/edge presence and valid document framing
package render

import (
	"strings"
	"testing"

	"github.com/prateek/rheap/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSmallGraph(t *testing.T) *graph.ReferenceGraph {
	t.Helper()
	rg := graph.NewReferenceGraph()
	rg.AddObject(&graph.Object{Address: 1, Bytes: 16, Kind: "ARRAY"})
	rg.AddObject(&graph.Object{Address: 2, Bytes: 8, Kind: "STRING"})
	rg.AddEdge(graph.SuperRoot, 1)
	rg.AddEdge(1, 2)
	return rg
}

func TestDOT_RendersNodesAndEdges(t *testing.T) {
	rg := buildSmallGraph(t)

	out, err := DOT(rg, "retained")
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "strict digraph retained {"))
	assert.Contains(t, doc, "ARRAY")
	assert.Contains(t, doc, "STRING")
	assert.Contains(t, doc, "->")
}

func TestDOT_EmptyGraphStillValidDocument(t *testing.T) {
	rg := graph.NewReferenceGraph()
	out, err := DOT(rg, "empty")
	require.NoError(t, err)
	assert.Contains(t, string(out), "empty")
}
