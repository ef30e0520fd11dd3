// ABOUTME: Renders Analysis's ranked queries into aligned text tables
// ABOUTME: Table alignment via text/tabwriter; no example repo ships a table-rendering dependency

// Package report formats the retention analyzer's ranked output for
// terminal display.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/prateek/rheap/graph"
)

// KindTable renders a (kind, Stats) ranking plus its "rest" remainder.
func KindTable(w io.Writer, title string, rows []graph.KindStat, rest graph.Stats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, title+":")
	if len(rows) == 0 && rest.Count == 0 {
		fmt.Fprintln(tw, "  none")
		tw.Flush()
		return
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t(%d objects)\n", r.Kind, graph.HumanizeBytes(r.Stats.Bytes), r.Stats.Count)
	}
	if rest.Count > 0 {
		fmt.Fprintf(tw, "  ...\t%s\t(%d objects)\n", graph.HumanizeBytes(rest.Bytes), rest.Count)
	}
	tw.Flush()
}

// ObjectTable renders a (object, Stats) ranking plus its "rest" remainder.
func ObjectTable(w io.Writer, title string, rows []graph.ObjectStat, rest graph.Stats) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, title+":")
	if len(rows) == 0 && rest.Count == 0 {
		fmt.Fprintln(tw, "  none")
		tw.Flush()
		return
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t(%d objects)\n", r.Object.String(), graph.HumanizeBytes(r.Stats.Bytes), r.Stats.Count)
	}
	if rest.Count > 0 {
		fmt.Fprintf(tw, "  ...\t%s\t(%d objects)\n", graph.HumanizeBytes(rest.Bytes), rest.Count)
	}
	tw.Flush()
}

// Totals renders the dominated-subgraph total as a single line.
func Totals(w io.Writer, label string, s graph.Stats) {
	fmt.Fprintf(w, "%s: %s (%d objects)\n", label, graph.HumanizeBytes(s.Bytes), s.Count)
}
