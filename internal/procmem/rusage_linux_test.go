//go:build linux

package procmem

import (
	"os"
	"os/exec"
	"strconv"
	"testing"
)

// allocEnv makes a re-exec of the test binary allocate that many MB,
// touch every page, and exit. It stands in for a target whose resident
// set we know a lower bound for.
const allocEnv = "PROCMEM_TEST_ALLOC_MB"

func TestMain(m *testing.M) {
	if mb := os.Getenv(allocEnv); mb != "" {
		n, err := strconv.Atoi(mb)
		if err != nil {
			os.Exit(2)
		}
		buf := make([]byte, n<<20)
		for i := 0; i < len(buf); i += 4096 {
			buf[i] = 1
		}
		os.Exit(int(buf[0] - 1))
	}
	os.Exit(m.Run())
}

func reapAllocChild(t *testing.T, allocMB int) *os.ProcessState {
	t.Helper()

	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd := exec.Command(exe)
	cmd.Env = append(os.Environ(), allocEnv+"="+strconv.Itoa(allocMB))
	if err := cmd.Run(); err != nil {
		t.Fatalf("helper child failed: %v", err)
	}
	return cmd.ProcessState
}

func TestWaitMaxRSSKB_ReportsChildPeak(t *testing.T) {
	state := reapAllocChild(t, 128)

	kb, ok := WaitMaxRSSKB(state)
	if !ok {
		t.Fatal("expected rusage from reaped child")
	}
	if kb < 128*1024 {
		t.Errorf("expected at least 128 MB peak, got %d KB", kb)
	}
}

func TestWaitMaxRSSKB_ScopedToProcess(t *testing.T) {
	// Reap a large child first, then a small one. The small child's
	// figure must be its own, not an aggregate inherited from the hog.
	hogState := reapAllocChild(t, 128)
	smallState := reapAllocChild(t, 1)

	hogKB, ok := WaitMaxRSSKB(hogState)
	if !ok {
		t.Fatal("expected rusage for hog child")
	}
	smallKB, ok := WaitMaxRSSKB(smallState)
	if !ok {
		t.Fatal("expected rusage for small child")
	}

	if smallKB >= hogKB/4 {
		t.Errorf("small child reported %d KB after a %d KB hog, figure is not per-process", smallKB, hogKB)
	}
}

func TestWaitMaxRSSKB_NilState(t *testing.T) {
	if _, ok := WaitMaxRSSKB(nil); ok {
		t.Fatal("expected no rusage for nil process state")
	}
}
