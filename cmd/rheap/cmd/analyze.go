// ABOUTME: "analyze" subcommand: parses a snapshot, runs the retention analysis, and prints/renders the result

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/prateek/rheap/graph"
	"github.com/prateek/rheap/heapdump"
	"github.com/prateek/rheap/internal/render"
	"github.com/prateek/rheap/internal/report"
)

var (
	rootFlag      string
	topFlag       int
	thresholdFlag float64
	dotFlag       string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [snapshot file]",
	Short: "Analyze a heap snapshot's retention",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&rootFlag, "root", "", "restrict the analysis to this address's dominated subtree (hex, e.g. 0x1a2b); defaults to the whole graph")
	analyzeCmd.Flags().IntVar(&topFlag, "top", 0, "number of ranked rows to print per table; 0 uses the config default")
	analyzeCmd.Flags().Float64Var(&thresholdFlag, "threshold", -1, "relevance threshold for the pruned dominator subgraph; negative uses the config default")
	analyzeCmd.Flags().StringVar(&dotFlag, "dot", "", "write the pruned dominator subgraph as Graphviz DOT to this path")
}

func runAnalyze(c *cobra.Command, args []string) error {
	path := args[0]

	topN := topFlag
	if topN <= 0 {
		topN = cfg.Analysis.TopN
	}
	threshold := thresholdFlag
	if threshold < 0 {
		threshold = cfg.Analysis.Threshold
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	defer f.Close()

	log.WithField("path", path).Info("parsing snapshot")
	rg, origRoot, err := heapdump.Open(f)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}
	log.WithField("objects", rg.NumObjects()).Info("parsed snapshot")

	subgraphRoot := origRoot
	if rootFlag != "" {
		n, err := strconv.ParseUint(rootFlag, 0, 64)
		if err != nil {
			return fmt.Errorf("analyze: invalid --root %q: %w", rootFlag, err)
		}
		subgraphRoot = graph.ObjID(n)
	}

	a, err := graph.Analyze(rg, origRoot, subgraphRoot)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	out := c.OutOrStdout()
	report.Totals(out, "Dominated totals", a.DominatedTotals())
	fmt.Fprintln(out)

	liveKinds, liveRest := a.LiveStatsByKind(topN)
	report.KindTable(out, "Live bytes by kind", liveKinds, liveRest)
	fmt.Fprintln(out)

	retainedKinds, retainedRest := a.RetainedStatsByKind(topN)
	report.KindTable(out, "Retained bytes by kind", retainedKinds, retainedRest)
	fmt.Fprintln(out)

	unreachableKinds, unreachableRest := a.UnreachableStatsByKind(topN)
	report.KindTable(out, "Unreachable bytes by kind", unreachableKinds, unreachableRest)
	fmt.Fprintln(out)

	topObjects, objectsRest := a.DominatorSubtreeStats(topN)
	report.ObjectTable(out, "Objects retaining the most memory", topObjects, objectsRest)

	if dotFlag != "" {
		sub := a.RelevantDominatorSubgraph(threshold)
		doc, err := render.DOT(sub, "retained")
		if err != nil {
			return fmt.Errorf("analyze: rendering dot: %w", err)
		}
		if err := os.WriteFile(dotFlag, doc, 0o644); err != nil {
			return fmt.Errorf("analyze: writing dot: %w", err)
		}
		log.WithField("path", dotFlag).Info("wrote pruned dominator subgraph")
	}

	return nil
}
