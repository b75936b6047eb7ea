//go:build linux

package procmem

import (
	"os"
	"syscall"
)

// WaitMaxRSSKB extracts the peak resident set, in kilobytes, from a
// reaped process's wait rusage. The figure is scoped to exactly that
// child, so a fast-exiting target cannot inherit the footprint of
// whatever ran before it. On Linux ru_maxrss is already in kilobytes.
func WaitMaxRSSKB(state *os.ProcessState) (int64, bool) {
	if state == nil {
		return 0, false
	}
	ru, ok := state.SysUsage().(*syscall.Rusage)
	if !ok || ru == nil {
		return 0, false
	}
	return ru.Maxrss, true
}
