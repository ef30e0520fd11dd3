// ABOUTME: Tests for table rendering: rows, rest remainder, and the all-empty case
package report

import (
	"bytes"
	"testing"

	"github.com/prateek/rheap/graph"
	"github.com/stretchr/testify/assert"
)

func TestKindTable_RendersRowsAndRest(t *testing.T) {
	var buf bytes.Buffer
	rows := []graph.KindStat{{Kind: "STRING", Stats: graph.Stats{Count: 2, Bytes: 2048}}}
	rest := graph.Stats{Count: 3, Bytes: 300}

	KindTable(&buf, "Live bytes by kind", rows, rest)

	out := buf.String()
	assert.Contains(t, out, "Live bytes by kind:")
	assert.Contains(t, out, "STRING")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "...")
}

func TestKindTable_EmptyPrintsNone(t *testing.T) {
	var buf bytes.Buffer
	KindTable(&buf, "Unreachable", nil, graph.Stats{})
	assert.Contains(t, buf.String(), "none")
}

func TestObjectTable_RendersRows(t *testing.T) {
	var buf bytes.Buffer
	rows := []graph.ObjectStat{{
		Object: &graph.Object{Address: 0x10, Bytes: 64, Kind: "ARRAY"},
		Stats:  graph.Stats{Count: 1, Bytes: 64},
	}}
	ObjectTable(&buf, "Objects retaining the most memory", rows, graph.Stats{})
	assert.Contains(t, buf.String(), "ARRAY")
}

func TestTotals(t *testing.T) {
	var buf bytes.Buffer
	Totals(&buf, "Dominated totals", graph.Stats{Count: 5, Bytes: 1024})
	assert.Equal(t, "Dominated totals: 1.0 KiB (5 objects)\n", buf.String())
}
