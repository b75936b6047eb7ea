package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ivmazurenko/membench/internal/harness"
)

// chartConfig is the chart payload embedded in the markdown writeup:
// runtime labels paired with measured kilobyte values, the same shape
// the published comparison renders its bar charts from.
type chartConfig struct {
	Type string       `json:"type"`
	Data chartData    `json:"data"`
	Opts chartOptions `json:"options"`
}

type chartData struct {
	Labels   []string       `json:"labels"`
	Datasets []chartDataset `json:"datasets"`
}

type chartDataset struct {
	Label string  `json:"label"`
	Data  []int64 `json:"data"`
}

type chartOptions struct {
	IndexAxis string `json:"indexAxis"`
}

// RenderMarkdown writes the full results writeup: one section per task
// count with a ranked list and the chart config holding the raw numbers.
func RenderMarkdown(w io.Writer, result *harness.SuiteResult) error {
	fmt.Fprintln(w, "# Concurrency memory footprint")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Peak resident memory per runtime while %s sleeping tasks are live.\n",
		taskCountsPhrase(result.TaskCounts))
	if result.Hostname != "" {
		fmt.Fprintf(w, "Measured on `%s`, session `%s`.\n", result.Hostname, result.SessionID)
	}

	for _, tasks := range result.TaskCounts {
		cells := rankedCells(result.CellsForTasks(tasks))
		if len(cells) == 0 {
			continue
		}

		fmt.Fprintln(w)
		fmt.Fprintf(w, "## %s tasks\n", FormatNumber(tasks))
		fmt.Fprintln(w)

		for _, c := range cells {
			fmt.Fprintf(w, "%d. **%s** — %s\n", c.Rank, c.Target, FormatKB(c.PeakKB))
		}

		fmt.Fprintln(w)
		if err := writeChart(w, cells); err != nil {
			return fmt.Errorf("embed chart for %d tasks: %w", tasks, err)
		}
	}

	writeMarkdownFailures(w, result.Cells)
	return nil
}

func writeChart(w io.Writer, cells []harness.CellResult) error {
	labels := make([]string, len(cells))
	data := make([]int64, len(cells))
	for i, c := range cells {
		labels[i] = c.Target
		data[i] = c.PeakKB
	}

	cfg := chartConfig{
		Type: "bar",
		Data: chartData{
			Labels: labels,
			Datasets: []chartDataset{
				{Label: "Peak resident memory (KB)", Data: data},
			},
		},
		Opts: chartOptions{IndexAxis: "y"},
	}

	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "```chart")
	fmt.Fprintln(w, string(encoded))
	fmt.Fprintln(w, "```")
	return nil
}

func writeMarkdownFailures(w io.Writer, cells []harness.CellResult) {
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
	fmt.Fprintln(w, "## Failed runs")
	fmt.Fprintln(w)
	for _, c := range failed {
		fmt.Fprintf(w, "- `%s` @ %s tasks: %s\n", c.Target, FormatNumber(c.Tasks), c.ErrorMsg)
	}
}

func rankedCells(cells []harness.CellResult) []harness.CellResult {
	ranked := make([]harness.CellResult, 0, len(cells))
	for _, c := range cells {
		if c.Success && c.Rank > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})
	return ranked
}

func taskCountsPhrase(counts []int) string {
	formatted := make([]string, len(counts))
	for i, n := range counts {
		formatted[i] = FormatNumber(n)
	}
	return strings.Join(formatted, " / ")
}
