package workload

import (
	"context"
	"testing"
	"time"
)

func TestSleep_ZeroUnits(t *testing.T) {
	start := time.Now()
	if err := Sleep(context.Background(), 0, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("expected immediate return for n=0, took %v", elapsed)
	}
}

func TestSleep_NegativeUnits(t *testing.T) {
	if err := Sleep(context.Background(), -5, time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSleep_WaitsForAllUnits(t *testing.T) {
	const delay = 50 * time.Millisecond

	start := time.Now()
	if err := Sleep(context.Background(), 1000, delay); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < delay {
		t.Errorf("returned after %v, before the %v delay elapsed", elapsed, delay)
	}
	if elapsed > 10*delay {
		t.Errorf("took %v, expected roughly %v regardless of unit count", elapsed, delay)
	}
}

func TestSleep_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- Sleep(ctx, 100, time.Hour)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Sleep did not return after cancellation")
	}
}

func TestSleep_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	err := Sleep(ctx, 10, time.Hour)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}
