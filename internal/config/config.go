// Package config holds the benchmark configuration: logging, run
// parameters, and the runtime targets to measure.
package config

import (
	"fmt"
	"time"

	"github.com/ivmazurenko/membench/internal/harness"
)

// Config is the root configuration structure.
type Config struct {
	Verbose  bool   `mapstructure:"verbose"`
	LogLevel string `mapstructure:"log_level"`

	Run     RunConfig        `mapstructure:"run"`
	Targets []harness.Target `mapstructure:"targets"`
}

// RunConfig controls how the suite executes.
type RunConfig struct {
	// TaskCounts are the concurrency levels each target is measured at.
	TaskCounts []int `mapstructure:"task_counts"`

	// Iterations per cell; the reported peak is the median.
	Iterations int `mapstructure:"iterations"`

	// Warmup runs per cell, discarded before measuring.
	Warmup int `mapstructure:"warmup"`

	// TimeoutSec bounds a single run. 0 disables the bound.
	TimeoutSec int `mapstructure:"timeout_sec"`

	// SampleRate is memory polls per second while a target runs.
	SampleRate float64 `mapstructure:"sample_rate"`

	// SettleMS is the pause between consecutive runs.
	SettleMS int `mapstructure:"settle_ms"`
}

// Timeout returns the per-run timeout as a duration.
func (r RunConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSec) * time.Second
}

// SettleDelay returns the inter-run pause as a duration.
func (r RunConfig) SettleDelay() time.Duration {
	return time.Duration(r.SettleMS) * time.Millisecond
}

// Validate checks the configuration for values the harness cannot run
// with.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}

	if c.Run.Iterations < 0 {
		return fmt.Errorf("iterations must be non-negative, got %d", c.Run.Iterations)
	}
	if c.Run.Warmup < 0 {
		return fmt.Errorf("warmup must be non-negative, got %d", c.Run.Warmup)
	}
	if c.Run.TimeoutSec < 0 {
		return fmt.Errorf("timeout_sec must be non-negative, got %d", c.Run.TimeoutSec)
	}
	if c.Run.SampleRate < 0 {
		return fmt.Errorf("sample_rate must be non-negative, got %f", c.Run.SampleRate)
	}

	for _, n := range c.Run.TaskCounts {
		if n < 0 {
			return fmt.Errorf("task count must be non-negative, got %d", n)
		}
	}

	seen := make(map[string]bool, len(c.Targets))
	for _, t := range c.Targets {
		if err := t.Validate(); err != nil {
			return err
		}
		if seen[t.Name] {
			return fmt.Errorf("duplicate target name %q", t.Name)
		}
		seen[t.Name] = true
	}
	return nil
}

// EffectiveTargets returns the configured targets, or the built-in set
// when the config names none.
func (c *Config) EffectiveTargets() []harness.Target {
	if len(c.Targets) > 0 {
		return c.Targets
	}
	return harness.DefaultTargets()
}
