package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without
	// extension).
	ConfigFileName = "membench"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "MEMBENCH"
)

// Loader reads configuration from file, environment, and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader on the global viper instance so cobra flag
// bindings take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// SetConfigFile forces a specific config file instead of the search
// paths.
func (l *Loader) SetConfigFile(path string) {
	l.v.SetConfigFile(path)
}

// Load reads the configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.v.AddConfigPath(".")
	l.v.AddConfigPath("$HOME/.config/membench")
	l.v.AddConfigPath("/etc/membench")

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// No config file is fine: defaults and env vars carry the run.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("verbose", false)
	l.v.SetDefault("log_level", "info")

	l.v.SetDefault("run.task_counts", []int{1, 10_000, 100_000, 1_000_000})
	l.v.SetDefault("run.iterations", 1)
	l.v.SetDefault("run.warmup", 0)
	l.v.SetDefault("run.timeout_sec", 120)
	l.v.SetDefault("run.sample_rate", 20.0)
	l.v.SetDefault("run.settle_ms", 300)
}

// ConfigFileUsed reports the file the loader actually read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
