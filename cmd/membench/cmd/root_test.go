package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivmazurenko/membench/internal/harness"
)

func TestRootCommand(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "membench", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommandHelp(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)

	rootCmd.SetArgs([]string{"--help"})
	err := rootCmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "peak resident memory")
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "Usage:")
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"run", "report", "targets"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestParseTaskCounts(t *testing.T) {
	counts, err := parseTaskCounts("1, 10000,100000")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 10_000, 100_000}, counts)
}

func TestParseTaskCounts_Invalid(t *testing.T) {
	for _, raw := range []string{"abc", "1,-5", "1,,2"} {
		_, err := parseTaskCounts(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestRunCommandFlags(t *testing.T) {
	for _, name := range []string{"tasks", "iterations", "warmup", "timeout", "targets", "output", "out-file"} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "missing flag --%s", name)
	}
}

func TestSelectTargets(t *testing.T) {
	targets := []harness.Target{
		{Name: "go", Command: []string{"./sleeper"}},
		{Name: "rust_tokio", Command: []string{"./rust_tokio"}},
		{Name: "nodejs", Command: []string{"node", "main.js"}},
	}

	selected, err := selectTargets(targets, "rust_tokio, go")
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "rust_tokio", selected[0].Name)
	assert.Equal(t, "go", selected[1].Name)

	_, err = selectTargets(targets, "go,no-such-runtime")
	assert.Error(t, err)
}
