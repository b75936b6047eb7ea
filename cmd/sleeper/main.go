// Command sleeper is the Go sample measured by the benchmark harness.
// It takes a single positional argument, the number of concurrency units
// to spawn, sleeps 10 seconds in each of them, and exits once all are done.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/ivmazurenko/membench/internal/workload"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <num-tasks>\n", os.Args[0])
		os.Exit(1)
	}

	numTasks, err := strconv.Atoi(os.Args[1])
	if err != nil || numTasks < 0 {
		fmt.Fprintf(os.Stderr, "invalid task count %q\n", os.Args[1])
		os.Exit(1)
	}

	if err := workload.Sleep(context.Background(), numTasks, workload.DefaultSleep); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
