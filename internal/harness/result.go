package harness

import (
	"time"
)

// RunResult is one measured execution of a target at a task count.
type RunResult struct {
	Target   string        `json:"target" yaml:"target"`
	Tasks    int           `json:"tasks" yaml:"tasks"`
	PeakKB   int64         `json:"peak_kb" yaml:"peak_kb"`
	WallTime time.Duration `json:"wall_time_ns" yaml:"wall_time_ns"`
	Success  bool          `json:"success" yaml:"success"`
	ErrorMsg string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// CellResult aggregates the iterations of one target × task-count cell.
// PeakKB is the median across successful iterations; min/max/stddev
// describe their spread.
type CellResult struct {
	Target   string        `json:"target" yaml:"target"`
	Tasks    int           `json:"tasks" yaml:"tasks"`
	PeakKB   int64         `json:"peak_kb" yaml:"peak_kb"`
	MinKB    int64         `json:"min_kb" yaml:"min_kb"`
	MaxKB    int64         `json:"max_kb" yaml:"max_kb"`
	StdDevKB float64       `json:"stddev_kb" yaml:"stddev_kb"`
	WallTime time.Duration `json:"wall_time_ns" yaml:"wall_time_ns"`
	Rank     int           `json:"rank,omitempty" yaml:"rank,omitempty"`
	Success  bool          `json:"success" yaml:"success"`
	ErrorMsg string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// SuiteResult is the full output of one harness session.
type SuiteResult struct {
	SessionID  string       `json:"session_id" yaml:"session_id"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	Hostname   string       `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	TaskCounts []int        `json:"task_counts" yaml:"task_counts"`
	Cells      []CellResult `json:"cells" yaml:"cells"`
}

// CellsForTasks returns the cells measured at one task count.
func (r *SuiteResult) CellsForTasks(tasks int) []CellResult {
	cells := make([]CellResult, 0, len(r.Cells))
	for _, c := range r.Cells {
		if c.Tasks == tasks {
			cells = append(cells, c)
		}
	}
	return cells
}
