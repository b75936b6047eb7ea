package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
)

// Suite measures every target at every task count, strictly one process
// at a time.
type Suite struct {
	Targets    []Target
	TaskCounts []int
	Iterations int
	Warmup     int

	Runner *Runner
	Logger *slog.Logger

	// Bar, when set, is advanced once per completed cell.
	Bar *progressbar.ProgressBar

	// SettleDelay is the pause between runs, letting the OS reclaim the
	// previous process before the next measurement starts.
	SettleDelay time.Duration
}

// NewSuite returns a suite with defaults: the built-in target set, the
// standard task counts, and a single iteration per cell.
func NewSuite() *Suite {
	return &Suite{
		Targets:     DefaultTargets(),
		TaskCounts:  DefaultTaskCounts,
		Iterations:  1,
		Runner:      NewRunner(),
		Logger:      slog.Default(),
		SettleDelay: 300 * time.Millisecond,
	}
}

// CellCount returns how many target × task-count cells the suite runs.
func (s *Suite) CellCount() int {
	return len(s.Targets) * len(s.TaskCounts)
}

// Run executes the whole suite and returns the aggregated, ranked
// results. It stops early only when ctx is cancelled; individual run
// failures are recorded and skipped over.
func (s *Suite) Run(ctx context.Context) (*SuiteResult, error) {
	if len(s.Targets) == 0 {
		return nil, fmt.Errorf("no targets configured")
	}
	if len(s.TaskCounts) == 0 {
		return nil, fmt.Errorf("no task counts configured")
	}
	iterations := max(s.Iterations, 1)

	hostname, _ := os.Hostname()
	suite := &SuiteResult{
		SessionID:  uuid.NewString(),
		StartedAt:  time.Now(),
		Hostname:   hostname,
		TaskCounts: s.TaskCounts,
		Cells:      make([]CellResult, 0, s.CellCount()),
	}

	s.Logger.Info("starting benchmark session",
		"session", suite.SessionID,
		"targets", len(s.Targets),
		"task_counts", s.TaskCounts,
		"iterations", iterations)

	for _, target := range s.Targets {
		for _, tasks := range s.TaskCounts {
			if err := ctx.Err(); err != nil {
				return suite, err
			}

			if s.Bar != nil {
				s.Bar.Describe(fmt.Sprintf("Measuring: %s (%d tasks)", target.Name, tasks))
			}

			cell := s.runCell(ctx, target, tasks, iterations)
			suite.Cells = append(suite.Cells, cell)

			if s.Bar != nil {
				_ = s.Bar.Add(1)
			}
		}
	}

	RankCells(suite.Cells)
	s.Logger.Info("benchmark session finished",
		"session", suite.SessionID,
		"cells", len(suite.Cells))
	return suite, nil
}

func (s *Suite) runCell(ctx context.Context, target Target, tasks, iterations int) CellResult {
	for w := range s.Warmup {
		s.Logger.Debug("warmup run",
			"target", target.Name, "tasks", tasks, "warmup", w+1)
		_ = s.Runner.Run(ctx, target, tasks)
		s.settle(ctx)
	}

	runs := make([]RunResult, 0, iterations)
	for i := range iterations {
		run := s.Runner.Run(ctx, target, tasks)
		runs = append(runs, run)

		if run.Success {
			s.Logger.Debug("run complete",
				"target", target.Name,
				"tasks", tasks,
				"iteration", i+1,
				"peak_kb", run.PeakKB,
				"wall", run.WallTime.Round(time.Millisecond))
		} else {
			s.Logger.Warn("run failed",
				"target", target.Name,
				"tasks", tasks,
				"iteration", i+1,
				"error", run.ErrorMsg)
		}

		if i < iterations-1 {
			s.settle(ctx)
		}
	}

	return Aggregate(target.Name, tasks, runs)
}

func (s *Suite) settle(ctx context.Context) {
	if s.SettleDelay <= 0 {
		return
	}
	select {
	case <-time.After(s.SettleDelay):
	case <-ctx.Done():
	}
}

// MakeProgressBar builds the suite progress bar sized to its cell
// count. It writes to stderr so the bar cannot interleave with result
// tables on stdout.
func MakeProgressBar(cells int) *progressbar.ProgressBar {
	return progressbar.NewOptions(cells,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Measuring targets"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
	)
}
