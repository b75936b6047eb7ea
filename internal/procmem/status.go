// Package procmem reads resident-memory figures for a running process.
//
// On Linux the kernel exposes everything we need in /proc/<pid>/status:
// VmRSS is the current resident set and VmHWM is its high-water mark,
// both in kilobytes. VmHWM is maintained by the kernel and never
// decreases over a process lifetime, so the last read before exit is the
// peak footprint of the whole run.
package procmem

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Sample is one resident-memory observation of a process.
type Sample struct {
	// RSSKB is the current resident set size in kilobytes (VmRSS).
	RSSKB int64
	// PeakKB is the resident high-water mark in kilobytes (VmHWM).
	PeakKB int64
}

// ParseStatus extracts VmRSS and VmHWM from the content of a
// /proc/<pid>/status file. Lines look like:
//
//	VmHWM:	  123456 kB
//	VmRSS:	  120000 kB
//
// Processes without memory accounting (kernel threads) have neither
// line; that is reported as an error.
func ParseStatus(content string) (Sample, error) {
	var s Sample
	var seen bool

	for _, line := range strings.Split(content, "\n") {
		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		switch key {
		case "VmRSS", "VmHWM":
		default:
			continue
		}

		kb, err := parseKBField(rest)
		if err != nil {
			return Sample{}, fmt.Errorf("bad %s line: %w", key, err)
		}
		if key == "VmRSS" {
			s.RSSKB = kb
		} else {
			s.PeakKB = kb
		}
		seen = true
	}

	if !seen {
		return Sample{}, fmt.Errorf("no VmRSS/VmHWM fields in status")
	}
	return s, nil
}

func parseKBField(rest string) (int64, error) {
	fields := strings.Fields(rest)
	if len(fields) < 1 {
		return 0, fmt.Errorf("empty value")
	}
	kb, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", fields[0], err)
	}
	if len(fields) > 1 && fields[1] != "kB" {
		return 0, fmt.Errorf("unexpected unit %q", fields[1])
	}
	return kb, nil
}

// Read returns the current memory sample for pid.
func Read(pid int) (Sample, error) {
	content, err := os.ReadFile(fmt.Sprintf("/proc/%d/status", pid))
	if err != nil {
		return Sample{}, fmt.Errorf("read process status: %w", err)
	}
	return ParseStatus(string(content))
}
