// Package workload implements the measured workload: spawn N goroutines
// that each sleep for a fixed duration, then wait for all of them.
//
// The workload deliberately does nothing besides sleeping. Its memory
// footprint is dominated by the per-goroutine cost of the runtime, which
// is exactly what the harness measures from the outside.
package workload

import (
	"context"
	"sync"
	"time"
)

// DefaultSleep is the delay each concurrency unit waits for. It matches
// the fixed 10 second delay used by every runtime sample in the suite.
const DefaultSleep = 10 * time.Second

// Sleep spawns n goroutines that each wait for d, then blocks until all
// of them have finished. It returns ctx.Err() if the context is cancelled
// before the units complete, nil otherwise.
//
// n = 0 is valid and returns immediately.
func Sleep(ctx context.Context, n int, d time.Duration) error {
	if n <= 0 {
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
