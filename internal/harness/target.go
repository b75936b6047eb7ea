// Package harness launches runtime samples and measures their peak
// resident memory. Every target runs in its own process, strictly one at
// a time, so measurements of one runtime cannot perturb another.
package harness

import (
	"fmt"
	"strconv"
	"strings"
)

// TasksPlaceholder is substituted in a target's argv with the task count
// of the current run.
const TasksPlaceholder = "{tasks}"

// DefaultTaskCounts are the task counts every target is measured at.
var DefaultTaskCounts = []int{1, 10_000, 100_000, 1_000_000}

// Target describes one runtime sample: a named command the harness can
// launch with a task count. Samples for other languages are configured
// here too; the harness does not care what is behind the command.
type Target struct {
	Name    string   `mapstructure:"name" json:"name" yaml:"name"`
	Command []string `mapstructure:"command" json:"command" yaml:"command"`
	Dir     string   `mapstructure:"dir" json:"dir,omitempty" yaml:"dir,omitempty"`
	Env     []string `mapstructure:"env" json:"env,omitempty" yaml:"env,omitempty"`
}

// Validate checks that the target can be launched.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target has no name")
	}
	if len(t.Command) == 0 {
		return fmt.Errorf("target %q has no command", t.Name)
	}
	return nil
}

// Argv returns the command line for a run with the given task count.
// Each {tasks} placeholder is replaced; a command without a placeholder
// gets the count appended as the final argument, matching the samples'
// positional-argument convention.
func (t Target) Argv(tasks int) []string {
	n := strconv.Itoa(tasks)

	argv := make([]string, len(t.Command))
	replaced := false
	for i, arg := range t.Command {
		if strings.Contains(arg, TasksPlaceholder) {
			argv[i] = strings.ReplaceAll(arg, TasksPlaceholder, n)
			replaced = true
		} else {
			argv[i] = arg
		}
	}

	if !replaced {
		argv = append(argv, n)
	}
	return argv
}

// DefaultTargets returns the built-in target set: the repository's own
// Go sample. The other runtimes of the comparison are added via config.
func DefaultTargets() []Target {
	return []Target{
		{
			Name:    "go",
			Command: []string{"./sleeper", TasksPlaceholder},
		},
	}
}
