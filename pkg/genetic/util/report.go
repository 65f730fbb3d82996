package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/youstinus/ga-tests/pkg/genetic/algorithms"
)

// maxChromosomeWidth truncates long chromosomes in the summary.
const maxChromosomeWidth = 80

// RenderSummary writes a table describing the outcome of a run.
func RenderSummary[G comparable](w io.Writer, problemName string, result *algorithms.Result[G]) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s: %s", algorithms.Name, problemName))
	t.AppendRows([]table.Row{
		{"Termination", result.Reason},
		{"Generations", humanize.Comma(int64(result.Generations))},
		{"Evaluations", humanize.Comma(int64(result.Evaluations))},
		{"Elapsed", result.Elapsed.String()},
	})

	if len(result.History) > 0 {
		last := result.History[len(result.History)-1]
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"Best fitness", formatFitness(last.Best)},
			{"Mean fitness", formatFitness(last.Mean)},
			{"Worst fitness", formatFitness(last.Worst)},
			{"Std deviation", formatFitness(last.StdDev)},
		})
	}

	if result.Best != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Best chromosome", truncate(result.Best.String(), maxChromosomeWidth)})
	}
	t.Render()
}

func formatFitness(f float64) string {
	return humanize.FtoaWithDigits(f, 6)
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return strings.TrimRight(s[:width-3], ",") + "..."
}
