// Package report renders sampling-run diagnostics as terminal tables.
package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/LyrineYang/dataset-download/internal/metadata"
)

// BinCount is one row of a bin distribution.
type BinCount struct {
	Label      string
	Count      int
	Proportion float64
}

// Distribution tallies a bin label over the candidate set, proportion
// normalized, sorted by label.
func Distribution(rows []*metadata.Clip, label func(*metadata.Clip) string) []BinCount {
	counts := make(map[string]int)
	for _, c := range rows {
		counts[label(c)]++
	}

	out := make([]BinCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, BinCount{
			Label:      k,
			Count:      n,
			Proportion: float64(n) / float64(len(rows)),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Label < out[b].Label })
	return out
}

// RenderBins writes one distribution table per trajectory bin.
func RenderBins(w io.Writer, rows []*metadata.Clip) {
	renderDistribution(w, "move_bin", Distribution(rows, func(c *metadata.Clip) string { return c.MoveBin }))
	renderDistribution(w, "rot_bin", Distribution(rows, func(c *metadata.Clip) string { return c.RotBin }))
	renderDistribution(w, "turn_bin", Distribution(rows, func(c *metadata.Clip) string { return c.TurnBin }))
}

func renderDistribution(w io.Writer, name string, dist []BinCount) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("%s distribution", name)

	t.AppendHeader(table.Row{"Bin", "Count", "Proportion"})
	for _, bc := range dist {
		t.AppendRow(table.Row{bc.Label, bc.Count, fmt.Sprintf("%.4f", bc.Proportion)})
	}
	t.Render()
}

// RenderWeightSummary writes min/mean/max of the final weights plus the
// candidate and target counts.
func RenderWeightSummary(w io.Writer, rows []*metadata.Clip, target int) {
	minW, maxW := math.Inf(1), math.Inf(-1)
	var sum float64
	for _, c := range rows {
		if c.Weight < minW {
			minW = c.Weight
		}
		if c.Weight > maxW {
			maxW = c.Weight
		}
		sum += c.Weight
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendRows([]table.Row{
		{"Candidates", len(rows)},
		{"Sampling size", target},
		{"Weight min", fmt.Sprintf("%.4f", minW)},
		{"Weight mean", fmt.Sprintf("%.4f", sum/float64(len(rows)))},
		{"Weight max", fmt.Sprintf("%.4f", maxW)},
	})
	t.Render()
}
