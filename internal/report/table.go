package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/ivmazurenko/membench/internal/harness"
)

// RenderTables writes one comparison table per task count to w, plus a
// failed-runs section when any cell failed.
func RenderTables(w io.Writer, result *harness.SuiteResult) {
	for _, tasks := range result.TaskCounts {
		cells := result.CellsForTasks(tasks)
		if len(cells) == 0 {
			continue
		}
		renderTaskCountTable(w, tasks, cells)
	}

	renderUnmeasured(w, result.Cells)
	renderFailures(w, result.Cells)

	succeeded := 0
	for _, c := range result.Cells {
		if c.Success {
			succeeded++
		}
	}
	fmt.Fprintln(w)
	colorFprintf(w, Green, "Measured %d/%d cells successfully (session %s)\n",
		succeeded, len(result.Cells), result.SessionID)
}

func renderTaskCountTable(w io.Writer, tasks int, cells []harness.CellResult) {
	succeeded := make([]harness.CellResult, 0, len(cells))
	for _, c := range cells {
		if c.Success && c.Rank > 0 {
			succeeded = append(succeeded, c)
		}
	}
	if len(succeeded) == 0 {
		return
	}

	sort.Slice(succeeded, func(i, j int) bool {
		return succeeded[i].Rank < succeeded[j].Rank
	})
	best := succeeded[0].PeakKB

	fmt.Fprintln(w)
	colorFprintf(w, Bold, "═══ %s tasks ═══\n", FormatNumber(tasks))
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("Rank", "Runtime", "Peak Memory", "Spread", "Wall Time", "vs Best")

	for _, c := range succeeded {
		_ = table.Append(
			fmt.Sprintf("%d", c.Rank),
			c.Target,
			FormatKB(c.PeakKB),
			spreadStr(c),
			c.WallTime.Round(time.Millisecond).String(),
			vsBestStr(c.PeakKB, best, c.Rank),
		)
	}

	if err := table.Render(); err != nil {
		colorFprintln(w, Red, "error rendering results table:", err)
	}
}

func spreadStr(c harness.CellResult) string {
	if c.MinKB == c.MaxKB {
		return "-"
	}
	return fmt.Sprintf("%s … %s", FormatKB(c.MinKB), FormatKB(c.MaxKB))
}

func vsBestStr(peakKB, bestKB int64, rank int) string {
	if rank == 1 {
		return "baseline"
	}
	if bestKB == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", float64(peakKB)/float64(bestKB))
}

// renderUnmeasured lists runs that completed but produced no memory
// reading. They carry no rank and must not sit in the comparison table
// as if they measured zero kilobytes.
func renderUnmeasured(w io.Writer, cells []harness.CellResult) {
	unmeasured := make([]harness.CellResult, 0)
	for _, c := range cells {
		if c.Success && c.Rank == 0 {
			unmeasured = append(unmeasured, c)
		}
	}
	if len(unmeasured) == 0 {
		return
	}

	fmt.Fprintln(w)
	colorFprintln(w, Yellow, "Completed without a memory reading:")
	for _, c := range unmeasured {
		colorFprintf(w, Yellow, "  • %s @ %s tasks\n", c.Target, FormatNumber(c.Tasks))
	}
}

func renderFailures(w io.Writer, cells []harness.CellResult) {
	failed := make([]harness.CellResult, 0)
	for _, c := range cells {
		if !c.Success {
			failed = append(failed, c)
		}
	}
	if len(failed) == 0 {
		return
	}

	fmt.Fprintln(w)
	colorFprintln(w, Red, "Failed runs:")
	for _, c := range failed {
		colorFprintf(w, Red, "  • %s @ %s tasks: %s\n",
			c.Target, FormatNumber(c.Tasks), c.ErrorMsg)
	}
}
