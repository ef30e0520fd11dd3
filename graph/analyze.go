// ABOUTME: Ties the dominator engine, restriction filter, and subtree aggregator into one Analysis
// ABOUTME: Also exposes the ranked reporter queries and the pruned dominator subgraph builder
package graph

import (
	"fmt"
	"sort"
)

// Analysis is the immutable result of analyzing a ReferenceGraph rooted
// at orig, optionally restricted to a chosen subgraph root. Once built
// it is safe for concurrent read access: no query mutates it.
type Analysis struct {
	root              ObjID
	dominatedSubgraph *ReferenceGraph
	rest              []*Object
	dominators        map[ObjID]ObjID
	subtreeSizes      map[ObjID]Stats
}

// Analyze computes a complete Analysis of rg. origRoot is the graph's
// true entry point (ordinarily the synthetic super-root); subgraphRoot
// selects which part of the dominator tree to report on. Passing
// subgraphRoot == origRoot analyzes the whole graph (Mode A); any other
// address present in rg restricts the analysis to that address's
// dominated subtree (Mode B). It is an error if subgraphRoot does not
// name a node in rg.
func Analyze(rg *ReferenceGraph, origRoot, subgraphRoot ObjID) (*Analysis, error) {
	if !rg.HasObject(subgraphRoot) {
		return nil, fmt.Errorf("graph: subgraph root %#x not found", uint64(subgraphRoot))
	}

	doms := ComputeDominators(rg, origRoot)

	var (
		root       ObjID
		dominated  *ReferenceGraph
		rest       []*Object
		dominators map[ObjID]ObjID
	)
	if subgraphRoot == origRoot {
		root, dominated, rest, dominators = wholeGraphRestriction(rg, origRoot, doms)
	} else {
		root, dominated, rest, dominators = subtreeRestriction(rg, subgraphRoot, doms)
	}

	subtreeSizes := computeSubtreeSizes(dominated, dominators)

	return &Analysis{
		root:              root,
		dominatedSubgraph: dominated,
		rest:              rest,
		dominators:        dominators,
		subtreeSizes:      subtreeSizes,
	}, nil
}

// computeSubtreeSizes implements §4.3: every node starts as its own
// stats, then each node's stats are added to every ancestor along its
// idom chain. subtreeSizes[root] therefore ends up as the sum of every
// node's stats in dominated, per the guarantee in §4.3.
func computeSubtreeSizes(dominated *ReferenceGraph, dominators map[ObjID]ObjID) map[ObjID]Stats {
	sizes := make(map[ObjID]Stats, dominated.NumObjects())
	dominated.ForEachObject(func(obj *Object) {
		sizes[obj.Address] = obj.stats()
	})
	dominated.ForEachObject(func(obj *Object) {
		s := obj.stats()
		v := obj.Address
		for {
			parent, ok := dominators[v]
			if !ok {
				break
			}
			sizes[parent] = sizes[parent].Add(s)
			v = parent
		}
	})
	return sizes
}

// Root returns the id of the analyzed root (original or restricted).
func (a *Analysis) Root() ObjID { return a.root }

// DominatedSubgraph returns the graph restricted to nodes dominated by
// Root(). Callers must not mutate the returned graph.
func (a *Analysis) DominatedSubgraph() *ReferenceGraph { return a.dominatedSubgraph }

// Rest returns the detached objects: unreachable nodes when analyzing
// the whole graph, or reachable-but-not-dominated nodes when restricted
// to a subgraph root.
func (a *Analysis) Rest() []*Object { return a.rest }

// Dominator returns the immediate dominator of v within the dominated
// subgraph, if any.
func (a *Analysis) Dominator(v ObjID) (ObjID, bool) {
	p, ok := a.dominators[v]
	return p, ok
}

// SubtreeStats returns the retained (count, bytes) of v, if v is in the
// dominated subgraph.
func (a *Analysis) SubtreeStats(v ObjID) (Stats, bool) {
	s, ok := a.subtreeSizes[v]
	return s, ok
}

// DominatedTotals returns subtreeSizes[root]: the retained stats of the
// entire analyzed subgraph.
func (a *Analysis) DominatedTotals() Stats {
	return a.subtreeSizes[a.root]
}

// KindStat pairs a type tag with an aggregated Stats value.
type KindStat struct {
	Kind  string
	Stats Stats
}

// ObjectStat pairs an object with an aggregated Stats value.
type ObjectStat struct {
	Object *Object
	Stats  Stats
}

// LiveStatsByKind ranges over the dominated subgraph's nodes, grouped
// by kind, summing self-stats.
func (a *Analysis) LiveStatsByKind(topN int) ([]KindStat, Stats) {
	byKind := make(map[string]Stats)
	a.dominatedSubgraph.ForEachObject(func(obj *Object) {
		byKind[obj.Kind] = byKind[obj.Kind].Add(obj.stats())
	})
	return largestKindsAndRest(byKind, topN)
}

// RetainedStatsByKind ranges over the dominated subgraph's nodes,
// grouped by kind, summing subtree (retained) stats.
func (a *Analysis) RetainedStatsByKind(topN int) ([]KindStat, Stats) {
	byKind := make(map[string]Stats)
	a.dominatedSubgraph.ForEachObject(func(obj *Object) {
		byKind[obj.Kind] = byKind[obj.Kind].Add(a.subtreeSizes[obj.Address])
	})
	return largestKindsAndRest(byKind, topN)
}

// UnreachableStatsByKind ranges over Rest(), grouped by kind, summing
// self-stats.
func (a *Analysis) UnreachableStatsByKind(topN int) ([]KindStat, Stats) {
	byKind := make(map[string]Stats)
	for _, obj := range a.rest {
		byKind[obj.Kind] = byKind[obj.Kind].Add(obj.stats())
	}
	return largestKindsAndRest(byKind, topN)
}

// DominatorSubtreeStats ranges over every subtreeSizes entry, returning
// the top-N objects by retained bytes.
func (a *Analysis) DominatorSubtreeStats(topN int) ([]ObjectStat, Stats) {
	entries := make([]ObjectStat, 0, len(a.subtreeSizes))
	for id, stats := range a.subtreeSizes {
		entries = append(entries, ObjectStat{Object: a.dominatedSubgraph.Object(id), Stats: stats})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Bytes != entries[j].Stats.Bytes {
			return entries[i].Stats.Bytes > entries[j].Stats.Bytes
		}
		return entries[i].Object.Address < entries[j].Object.Address
	})
	return splitTopNObjects(entries, topN)
}

func largestKindsAndRest(byKind map[string]Stats, topN int) ([]KindStat, Stats) {
	entries := make([]KindStat, 0, len(byKind))
	for kind, stats := range byKind {
		entries = append(entries, KindStat{Kind: kind, Stats: stats})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.Bytes != entries[j].Stats.Bytes {
			return entries[i].Stats.Bytes > entries[j].Stats.Bytes
		}
		return entries[i].Kind < entries[j].Kind
	})
	return splitTopNKinds(entries, topN)
}

func splitTopNKinds(sorted []KindStat, topN int) ([]KindStat, Stats) {
	if topN < 0 {
		topN = 0
	}
	if topN >= len(sorted) {
		return sorted, Stats{}
	}
	var rest Stats
	for _, e := range sorted[topN:] {
		rest = rest.Add(e.Stats)
	}
	return sorted[:topN], rest
}

func splitTopNObjects(sorted []ObjectStat, topN int) ([]ObjectStat, Stats) {
	if topN < 0 {
		topN = 0
	}
	if topN >= len(sorted) {
		return sorted, Stats{}
	}
	var rest Stats
	for _, e := range sorted[topN:] {
		rest = rest.Add(e.Stats)
	}
	return sorted[:topN], rest
}

// RelevantDominatorSubgraph implements §4.5: it retains every node whose
// subtree bytes are at least floor(total_bytes * threshold) and returns
// a fresh tree whose edges run from each retained node's immediate
// dominator to it (only ever an edge between two retained nodes, since
// subtreeSizes is monotonic up the dominator chain).
func (a *Analysis) RelevantDominatorSubgraph(threshold float64) *ReferenceGraph {
	total := a.subtreeSizes[a.root].Bytes
	thresholdBytes := uint64(float64(total) * threshold)

	out := newEmptyGraph()
	for id, stats := range a.subtreeSizes {
		if stats.Bytes < thresholdBytes {
			continue
		}
		obj := a.dominatedSubgraph.Object(id)
		out.AddObject(&Object{
			Address: obj.Address,
			Bytes:   obj.Bytes,
			Kind:    obj.Kind,
			Label:   dominatorStatsLabel(obj, stats),
		})
	}
	for id, stats := range a.subtreeSizes {
		if stats.Bytes < thresholdBytes || id == a.root {
			continue
		}
		parent, ok := a.dominators[id]
		if !ok || !out.HasObject(parent) {
			continue
		}
		out.AddEdge(parent, id)
	}
	return out
}

// dominatorStatsLabel renders the §4.5/§9 "with_dominator_stats" label:
// the object's own display string plus self-size, descendants-size, and
// object count, all human-formatted.
func dominatorStatsLabel(obj *Object, stats Stats) string {
	descendants := stats.Bytes - obj.Bytes
	return fmt.Sprintf("%s: %s self, %s refs, %d objects",
		obj.String(), HumanizeBytes(obj.Bytes), HumanizeBytes(descendants), stats.Count)
}
