package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivmazurenko/membench/internal/harness"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return NewLoader()
}

func TestLoad_Defaults(t *testing.T) {
	loader := newTestLoader(t)
	t.Chdir(t.TempDir())

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []int{1, 10_000, 100_000, 1_000_000}, cfg.Run.TaskCounts)
	assert.Equal(t, 1, cfg.Run.Iterations)
	assert.Equal(t, 2*time.Minute, cfg.Run.Timeout())
	assert.Equal(t, 300*time.Millisecond, cfg.Run.SettleDelay())
	assert.Empty(t, cfg.Targets)
	assert.NotEmpty(t, cfg.EffectiveTargets())
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
log_level: debug
run:
  task_counts: [1, 100]
  iterations: 3
  warmup: 1
targets:
  - name: rust_tokio
    command: ["./rust_tokio", "{tasks}"]
  - name: nodejs
    command: ["node", "index.js"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "membench.yaml"), []byte(content), 0o644))

	loader := newTestLoader(t)
	t.Chdir(dir)

	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []int{1, 100}, cfg.Run.TaskCounts)
	assert.Equal(t, 3, cfg.Run.Iterations)
	assert.Equal(t, 1, cfg.Run.Warmup)
	require.Len(t, cfg.Targets, 2)
	assert.Equal(t, "rust_tokio", cfg.Targets[0].Name)
	assert.Equal(t, []string{"node", "index.js"}, cfg.Targets[1].Command)
	assert.Equal(t, cfg.Targets, cfg.EffectiveTargets())
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "membench.yaml"),
		[]byte("log_level: [not, a, string"), 0o644))

	loader := newTestLoader(t)
	t.Chdir(dir)

	_, err := loader.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"negative iterations", func(c *Config) { c.Run.Iterations = -1 }, "iterations"},
		{"negative warmup", func(c *Config) { c.Run.Warmup = -2 }, "warmup"},
		{"negative timeout", func(c *Config) { c.Run.TimeoutSec = -1 }, "timeout_sec"},
		{"negative task count", func(c *Config) { c.Run.TaskCounts = []int{-1} }, "task count"},
		{
			"duplicate targets",
			func(c *Config) {
				c.Targets = []harness.Target{
					{Name: "go", Command: []string{"./sleeper"}},
					{Name: "go", Command: []string{"./sleeper2"}},
				}
			},
			"duplicate target",
		},
		{
			"invalid target",
			func(c *Config) { c.Targets = []harness.Target{{Name: "empty"}} },
			"no command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: "info"}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
