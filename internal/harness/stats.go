package harness

import (
	"math"
	"slices"
	"sort"
	"time"
)

// Aggregate folds the iterations of one cell into a CellResult. The
// reported peak is the median across successful iterations, which is
// robust against a single run landing on a busy machine. If no
// iteration succeeded the cell is marked failed with the first error.
func Aggregate(target string, tasks int, runs []RunResult) CellResult {
	cell := CellResult{
		Target: target,
		Tasks:  tasks,
	}

	succeeded := make([]RunResult, 0, len(runs))
	for _, r := range runs {
		if r.Success {
			succeeded = append(succeeded, r)
		} else if cell.ErrorMsg == "" {
			cell.ErrorMsg = r.ErrorMsg
		}
	}
	if len(succeeded) == 0 {
		return cell
	}

	peaks := make([]int64, len(succeeded))
	walls := make([]time.Duration, len(succeeded))
	for i, r := range succeeded {
		peaks[i] = r.PeakKB
		walls[i] = r.WallTime
	}
	slices.Sort(peaks)
	slices.Sort(walls)

	cell.Success = true
	cell.ErrorMsg = ""
	cell.PeakKB = peaks[len(peaks)/2]
	cell.MinKB = peaks[0]
	cell.MaxKB = peaks[len(peaks)-1]
	cell.StdDevKB = stddev(peaks)
	cell.WallTime = walls[len(walls)/2]
	return cell
}

func stddev(values []int64) float64 {
	if len(values) < 2 {
		return 0
	}

	var sum int64
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / float64(len(values))

	var variance float64
	for _, v := range values {
		diff := float64(v) - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}

// RankCells assigns ranks within each task-count group: rank 1 is the
// smallest successful peak. Failed cells keep rank 0, and so do
// successful cells without a memory reading (peak <= 0, e.g. off
// Linux): a cell that measured nothing must never become the baseline.
func RankCells(cells []CellResult) {
	byTasks := make(map[int][]*CellResult)
	for i := range cells {
		c := &cells[i]
		c.Rank = 0
		if c.Success && c.PeakKB > 0 {
			byTasks[c.Tasks] = append(byTasks[c.Tasks], c)
		}
	}

	for _, group := range byTasks {
		sort.Slice(group, func(i, j int) bool {
			return group[i].PeakKB < group[j].PeakKB
		})
		for i, c := range group {
			c.Rank = i + 1
		}
	}
}
