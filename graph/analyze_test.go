// ABOUTME: Tests for Analyze: whole-graph and subtree-restricted scenarios, plus the §8 invariants
package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// diamondWithUnreachable builds:
//
//	root(0) -> 1(String,10) -> 2(Array,20) -> 4(Hash,40)
//	                        -> 3(Array,30) -> 4
//	5(String,50) is unreachable.
func diamondWithUnreachable() *ReferenceGraph {
	rg := NewReferenceGraph()
	rg.AddObject(&Object{Address: 1, Bytes: 10, Kind: "STRING"})
	rg.AddObject(&Object{Address: 2, Bytes: 20, Kind: "ARRAY"})
	rg.AddObject(&Object{Address: 3, Bytes: 30, Kind: "ARRAY"})
	rg.AddObject(&Object{Address: 4, Bytes: 40, Kind: "HASH"})
	rg.AddObject(&Object{Address: 5, Bytes: 50, Kind: "STRING"})
	rg.AddEdge(SuperRoot, 1)
	rg.AddEdge(1, 2)
	rg.AddEdge(1, 3)
	rg.AddEdge(2, 4)
	rg.AddEdge(3, 4)
	return rg
}

func TestAnalyze_WholeGraph(t *testing.T) {
	rg := diamondWithUnreachable()
	a, err := Analyze(rg, SuperRoot, SuperRoot)
	require.NoError(t, err)

	assert.Equal(t, SuperRoot, a.Root())
	assert.Equal(t, Stats{Count: 5, Bytes: 100}, a.DominatedTotals())

	require.Len(t, a.Rest(), 1)
	assert.Equal(t, ObjID(5), a.Rest()[0].Address)

	d1, ok := a.SubtreeStats(1)
	require.True(t, ok)
	assert.Equal(t, Stats{Count: 4, Bytes: 100}, d1)

	d4, ok := a.SubtreeStats(4)
	require.True(t, ok)
	assert.Equal(t, Stats{Count: 1, Bytes: 40}, d4)
}

func TestAnalyze_SubtreeRestriction(t *testing.T) {
	rg := diamondWithUnreachable()
	// Add a path into 4 via 6, alongside the existing one via 3, so that
	// 4 is reachable from 2 but not dominated by it.
	rg.AddObject(&Object{Address: 6, Bytes: 5, Kind: "OTHER"})
	rg.AddEdge(SuperRoot, 6)
	rg.AddEdge(6, 4)

	a, err := Analyze(rg, SuperRoot, 2)
	require.NoError(t, err)

	assert.Equal(t, ObjID(2), a.Root())
	// 2 dominates only itself: 4 is also reachable via 3 and via 6,
	// neither of which passes through 2.
	totals := a.DominatedTotals()
	assert.Equal(t, Stats{Count: 1, Bytes: 20}, totals)

	require.Len(t, a.Rest(), 1)
	assert.Equal(t, ObjID(4), a.Rest()[0].Address)
}

func TestAnalyze_UnknownSubgraphRootFails(t *testing.T) {
	rg := diamondWithUnreachable()
	_, err := Analyze(rg, SuperRoot, 9999)
	assert.Error(t, err)
}

func TestAnalyze_Invariants(t *testing.T) {
	rg := diamondWithUnreachable()

	for _, root := range []ObjID{SuperRoot, 1, 2} {
		a, err := Analyze(rg, SuperRoot, root)
		require.NoError(t, err)

		// (1) dominated ∩ rest == ∅.
		domIDs := map[ObjID]bool{}
		a.dominatedSubgraph.ForEachObject(func(o *Object) { domIDs[o.Address] = true })
		for _, o := range a.Rest() {
			assert.False(t, domIDs[o.Address], "object %d in both dominated and rest", o.Address)
		}

		// (2) every non-root dominated node has a dominator in the dominated subgraph.
		a.dominatedSubgraph.ForEachObject(func(o *Object) {
			if o.Address == a.Root() {
				return
			}
			p, ok := a.Dominator(o.Address)
			require.True(t, ok, "node %d missing dominator", o.Address)
			assert.True(t, domIDs[p], "dominator %d of %d not in dominated subgraph", p, o.Address)
		})

		// (3) subtreeSizes[root] == sum of all dominated nodes' stats.
		var sum Stats
		a.dominatedSubgraph.ForEachObject(func(o *Object) { sum = sum.Add(o.stats()) })
		assert.Equal(t, sum, a.DominatedTotals())

		// (4) subtree bytes >= self bytes, count >= 1.
		a.dominatedSubgraph.ForEachObject(func(o *Object) {
			st, _ := a.SubtreeStats(o.Address)
			assert.GreaterOrEqual(t, st.Bytes, o.Bytes)
			assert.GreaterOrEqual(t, st.Count, uint64(1))
		})
	}
}

func TestLargestAndRest_PartitionsAndSorts(t *testing.T) {
	byKind := map[string]Stats{
		"STRING": {Count: 1, Bytes: 100},
		"ARRAY":  {Count: 1, Bytes: 50},
		"HASH":   {Count: 1, Bytes: 10},
	}
	top, rest := largestKindsAndRest(byKind, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "STRING", top[0].Kind)
	assert.Equal(t, "ARRAY", top[1].Kind)
	assert.Equal(t, Stats{Count: 1, Bytes: 10}, rest)

	var total Stats
	for _, e := range top {
		total = total.Add(e.Stats)
	}
	total = total.Add(rest)
	var want Stats
	for _, s := range byKind {
		want = want.Add(s)
	}
	assert.Equal(t, want, total)
}

func TestLargestAndRest_NGreaterThanLenYieldsIdentityRest(t *testing.T) {
	byKind := map[string]Stats{"STRING": {Count: 1, Bytes: 100}}
	top, rest := largestKindsAndRest(byKind, 10)
	assert.Len(t, top, 1)
	assert.Equal(t, Stats{}, rest)
}

func TestRelevantDominatorSubgraph_ZeroThresholdKeepsEverything(t *testing.T) {
	rg := diamondWithUnreachable()
	a, err := Analyze(rg, SuperRoot, SuperRoot)
	require.NoError(t, err)

	sub := a.RelevantDominatorSubgraph(0.0)
	assert.Equal(t, a.dominatedSubgraph.NumObjects(), sub.NumObjects())
}

func TestRelevantDominatorSubgraph_IsATree(t *testing.T) {
	rg := diamondWithUnreachable()
	a, err := Analyze(rg, SuperRoot, SuperRoot)
	require.NoError(t, err)

	sub := a.RelevantDominatorSubgraph(0.1)
	nodeCount := sub.NumObjects()
	edgeCount := 0
	sub.ForEachObject(func(o *Object) {
		edgeCount += len(sub.Successors(o.Address))
	})
	if nodeCount > 0 {
		assert.Equal(t, nodeCount-1, edgeCount)
	}
}

func TestDominatorPath(t *testing.T) {
	rg := diamondWithUnreachable()
	a, err := Analyze(rg, SuperRoot, SuperRoot)
	require.NoError(t, err)

	path := a.DominatorPath(4)
	assert.Equal(t, []ObjID{4, 1, SuperRoot}, path)
}
