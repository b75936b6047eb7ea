//go:build !linux

package procmem

import "os"

// WaitMaxRSSKB is unsupported off Linux.
func WaitMaxRSSKB(state *os.ProcessState) (int64, bool) {
	return 0, false
}
