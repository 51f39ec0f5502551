// Package config provides configuration loading and management.
package config

import (
	"os"
	"time"

	"github.com/user/tempsandbox/pkg/ports"
	"github.com/user/tempsandbox/pkg/sandbox"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for tempsandbox.
type Config struct {
	// Location
	TempDir string `yaml:"temp_dir"`
	WorkDir string `yaml:"work_dir"`

	// Naming
	RandomDir bool `yaml:"random_dir"`

	// Deletion
	Retry RetryConfig `yaml:"retry"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// RetryConfig represents the transient delete retry settings.
type RetryConfig struct {
	MaxRetries int `yaml:"max_retries"`
	BackoffMs  int `yaml:"backoff_ms"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	def := sandbox.DefaultRetryPolicy()
	return Config{
		Retry: RetryConfig{
			MaxRetries: def.MaxRetries,
			BackoffMs:  int(def.Backoff / time.Millisecond),
		},
		LogLevel: ports.LevelWarn.String(),
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Level returns the configured log level.
func (c Config) Level() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}

// RetryPolicy converts the retry settings to a sandbox.RetryPolicy.
// Negative values are clamped to zero.
func (c Config) RetryPolicy() sandbox.RetryPolicy {
	return sandbox.RetryPolicy{
		MaxRetries: max(c.Retry.MaxRetries, 0),
		Backoff:    time.Duration(max(c.Retry.BackoffMs, 0)) * time.Millisecond,
	}
}

// Options converts Config to sandbox.Options for caller.
// Adapters are left nil so sandbox.New picks its defaults.
func (c Config) Options(caller string) sandbox.Options {
	retry := c.RetryPolicy()
	return sandbox.Options{
		Caller:    caller,
		WorkDir:   c.WorkDir,
		TempDir:   c.TempDir,
		RandomDir: c.RandomDir,
		Retry:     &retry,
	}
}
