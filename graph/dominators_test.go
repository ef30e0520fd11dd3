// ABOUTME: Tests for the Cooper-Harvey-Kennedy immediate-dominator computation
// ABOUTME: Covers linear chains, diamonds, multi-path merges, and unreachable nodes
package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chain(edges map[ObjID][]ObjID) *ReferenceGraph {
	rg := NewReferenceGraph()
	for from, tos := range edges {
		if !rg.HasObject(from) {
			rg.AddObject(&Object{Address: from, Bytes: 1, Kind: "obj"})
		}
		for _, to := range tos {
			if !rg.HasObject(to) {
				rg.AddObject(&Object{Address: to, Bytes: 1, Kind: "obj"})
			}
		}
	}
	for from, tos := range edges {
		for _, to := range tos {
			rg.AddEdge(from, to)
		}
	}
	return rg
}

func TestComputeDominators_LinearChain(t *testing.T) {
	rg := chain(map[ObjID][]ObjID{
		SuperRoot: {1},
		1:         {2},
		2:         {3},
	})

	doms := ComputeDominators(rg, SuperRoot)

	for v, want := range map[ObjID]ObjID{1: SuperRoot, 2: 1, 3: 2} {
		got, ok := doms.IDom(v)
		assert.True(t, ok, "node %d should have an immediate dominator", v)
		assert.Equal(t, want, got)
	}
	_, ok := doms.IDom(SuperRoot)
	assert.False(t, ok, "root must never have an immediate dominator")
}

func TestComputeDominators_Diamond(t *testing.T) {
	rg := chain(map[ObjID][]ObjID{
		SuperRoot: {1},
		1:         {2, 3},
		2:         {4},
		3:         {4},
	})

	doms := ComputeDominators(rg, SuperRoot)

	for v, want := range map[ObjID]ObjID{1: SuperRoot, 2: 1, 3: 1, 4: 1} {
		got, ok := doms.IDom(v)
		assert.True(t, ok)
		assert.Equal(t, want, got, "node %d", v)
	}
}

func TestComputeDominators_MultiplePathsToMerge(t *testing.T) {
	// root -> 1 -> a -> c -> f
	//           -> b -> c
	//                -> d -> f
	// with a=2, b=3, c=4, d=5, f=6.
	rg := chain(map[ObjID][]ObjID{
		SuperRoot: {1},
		1:         {2, 3},
		2:         {4},
		3:         {4, 5},
		4:         {6},
		5:         {6},
	})

	doms := ComputeDominators(rg, SuperRoot)

	for v, want := range map[ObjID]ObjID{1: SuperRoot, 2: 1, 3: 1, 4: 1, 5: 3, 6: 1} {
		got, ok := doms.IDom(v)
		assert.True(t, ok)
		assert.Equal(t, want, got, "node %d", v)
	}
}

func TestComputeDominators_UnreachableNodesAreExcluded(t *testing.T) {
	rg := NewReferenceGraph()
	rg.AddObject(&Object{Address: 1, Bytes: 1, Kind: "obj"})
	rg.AddObject(&Object{Address: 2, Bytes: 1, Kind: "obj"})
	rg.AddEdge(SuperRoot, 1)
	// node 2 has no path from the super-root.

	doms := ComputeDominators(rg, SuperRoot)

	_, ok := doms.IDom(2)
	assert.False(t, ok)
	assert.False(t, doms.Reachable(2))
	assert.True(t, doms.Reachable(1))
}

func TestComputeDominators_CyclicGraph(t *testing.T) {
	rg := chain(map[ObjID][]ObjID{
		SuperRoot: {1},
		1:         {2},
		2:         {1, 3},
	})

	doms := ComputeDominators(rg, SuperRoot)

	got1, _ := doms.IDom(1)
	got2, _ := doms.IDom(2)
	got3, _ := doms.IDom(3)
	assert.Equal(t, SuperRoot, got1)
	assert.Equal(t, ObjID(1), got2)
	assert.Equal(t, ObjID(2), got3)
}

func TestComputeDominators_SelfLoopIgnoredAsPredecessor(t *testing.T) {
	rg := chain(map[ObjID][]ObjID{
		SuperRoot: {1},
		1:         {1, 2},
	})

	doms := ComputeDominators(rg, SuperRoot)

	got, ok := doms.IDom(2)
	assert.True(t, ok)
	assert.Equal(t, ObjID(1), got)
}
