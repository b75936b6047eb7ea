package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivmazurenko/membench/internal/procmem"
)

const stderrCapLimit = 4 << 10

// Runner executes a single target run and measures its peak resident
// memory.
type Runner struct {
	// Timeout bounds one run. Zero means no bound. The sleep workloads
	// finish in ~10s, so the default leaves generous headroom for the
	// million-task runs of slower runtimes.
	Timeout time.Duration

	// SampleRate is how many times per second the poller reads the
	// target's /proc status.
	SampleRate float64
}

// NewRunner returns a runner with the default timeout and sample rate.
func NewRunner() *Runner {
	return &Runner{
		Timeout:    2 * time.Minute,
		SampleRate: 20,
	}
}

// Run launches the target with the given task count, waits for it to
// exit, and reports its peak resident memory. Launch failures, non-zero
// exits, and timeouts are reported in the result rather than as an
// error: a broken target must not abort the rest of the suite.
func (r *Runner) Run(ctx context.Context, target Target, tasks int) RunResult {
	result := RunResult{
		Target: target.Name,
		Tasks:  tasks,
	}

	if err := target.Validate(); err != nil {
		result.ErrorMsg = err.Error()
		return result
	}

	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	argv := target.Argv(tasks)
	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = target.Dir
	if len(target.Env) > 0 {
		cmd.Env = append(cmd.Environ(), target.Env...)
	}

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &capWriter{w: &stderr, limit: stderrCapLimit}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		result.ErrorMsg = fmt.Sprintf("start %q: %v", argv[0], err)
		return result
	}

	poller := procmem.NewPoller(cmd.Process.Pid, r.SampleRate)
	pollCtx, stopPolling := context.WithCancel(context.Background())
	defer stopPolling()

	var g errgroup.Group
	g.Go(func() error {
		defer stopPolling()
		return cmd.Wait()
	})
	g.Go(func() error {
		poller.Run(pollCtx)
		return nil
	})
	waitErr := g.Wait()

	result.WallTime = time.Since(start)
	result.PeakKB = poller.Peak()

	if result.PeakKB == 0 {
		// The target exited before the first poll landed. The wait
		// rusage for this child still knows its own peak.
		if kb, ok := procmem.WaitMaxRSSKB(cmd.ProcessState); ok {
			result.PeakKB = kb
		}
	}

	if waitErr != nil {
		switch {
		case runCtx.Err() == context.DeadlineExceeded:
			result.ErrorMsg = fmt.Sprintf("timed out after %v", r.Timeout)
		case stderr.Len() > 0:
			result.ErrorMsg = fmt.Sprintf("%v: %s", waitErr, bytes.TrimSpace(stderr.Bytes()))
		default:
			result.ErrorMsg = waitErr.Error()
		}
		return result
	}

	result.Success = true
	return result
}

// capWriter keeps only the first limit bytes written to it. Target
// stderr is captured for error messages, not streamed.
type capWriter struct {
	w     *bytes.Buffer
	limit int
}

func (t *capWriter) Write(p []byte) (int, error) {
	if remaining := t.limit - t.w.Len(); remaining > 0 {
		if len(p) > remaining {
			t.w.Write(p[:remaining])
		} else {
			t.w.Write(p)
		}
	}
	return len(p), nil
}
