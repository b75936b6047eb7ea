package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivmazurenko/membench/internal/harness"
	"github.com/ivmazurenko/membench/internal/report"
)

// runCmd executes the full benchmark suite.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite",
	Long: `Run every configured target at every task count and print a ranked
comparison of peak resident memory.

Each run is an isolated process; memory is sampled from /proc while it
sleeps. SIGINT aborts the suite after the current run.

Examples:
  membench run
  membench run --tasks 1,10000 --iterations 5 --warmup 1
  membench run --targets go,rust_tokio --timeout 3m
  membench run --output json --out-file results.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		suite := harness.NewSuite()
		suite.Targets = cfg.EffectiveTargets()
		suite.TaskCounts = cfg.Run.TaskCounts
		suite.Iterations = cfg.Run.Iterations
		suite.Warmup = cfg.Run.Warmup
		suite.SettleDelay = cfg.Run.SettleDelay()
		suite.Logger = slog.Default()
		suite.Runner.Timeout = cfg.Run.Timeout()
		suite.Runner.SampleRate = cfg.Run.SampleRate

		if cmd.Flags().Changed("tasks") {
			raw, _ := cmd.Flags().GetString("tasks")
			counts, err := parseTaskCounts(raw)
			if err != nil {
				return err
			}
			suite.TaskCounts = counts
		}
		if cmd.Flags().Changed("iterations") {
			suite.Iterations, _ = cmd.Flags().GetInt("iterations")
		}
		if cmd.Flags().Changed("warmup") {
			suite.Warmup, _ = cmd.Flags().GetInt("warmup")
		}
		if cmd.Flags().Changed("timeout") {
			suite.Runner.Timeout, _ = cmd.Flags().GetDuration("timeout")
		}
		if cmd.Flags().Changed("targets") {
			raw, _ := cmd.Flags().GetString("targets")
			selected, err := selectTargets(suite.Targets, raw)
			if err != nil {
				return err
			}
			suite.Targets = selected
		}

		format, _ := cmd.Flags().GetString("output")
		outFile, _ := cmd.Flags().GetString("out-file")

		interactive := format == "table"
		if interactive {
			suite.Bar = harness.MakeProgressBar(suite.CellCount())
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		result, err := suite.Run(ctx)
		if err != nil {
			return fmt.Errorf("benchmark aborted: %w", err)
		}
		if interactive {
			fmt.Fprintln(cmd.OutOrStdout())
		}

		if outFile != "" {
			if err := saveResults(outFile, result); err != nil {
				return err
			}
			slog.Info("results saved", "file", outFile)
		}

		return renderResults(cmd, format, result)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("tasks", "",
		"comma-separated task counts (default from config: 1,10000,100000,1000000)")
	runCmd.Flags().Int("iterations", 1, "iterations per target and task count")
	runCmd.Flags().Int("warmup", 0, "warmup runs per cell, discarded")
	runCmd.Flags().Duration("timeout", 0, "per-run timeout (0 = unbounded, default from config)")
	runCmd.Flags().String("targets", "", "comma-separated target names to run (default: all configured)")
	runCmd.Flags().String("output", "table", "output format: table, json, yaml, or markdown")
	runCmd.Flags().String("out-file", "", "also save raw results as JSON to this file")
}

func parseTaskCounts(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	counts := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid task count %q", p)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func selectTargets(targets []harness.Target, raw string) ([]harness.Target, error) {
	byName := make(map[string]harness.Target, len(targets))
	for _, t := range targets {
		byName[t.Name] = t
	}

	names := strings.Split(raw, ",")
	selected := make([]harness.Target, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		target, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown target %q", name)
		}
		selected = append(selected, target)
	}
	return selected, nil
}

func saveResults(path string, result *harness.SuiteResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return report.WriteJSON(f, result)
}

func renderResults(cmd *cobra.Command, format string, result *harness.SuiteResult) error {
	out := cmd.OutOrStdout()
	switch format {
	case "table":
		report.RenderTables(out, result)
		return nil
	case "json":
		return report.WriteJSON(out, result)
	case "yaml":
		return report.WriteYAML(out, result)
	case "markdown":
		return report.RenderMarkdown(out, result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
