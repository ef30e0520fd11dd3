// ABOUTME: Configuration loading for the rheap CLI via spf13/viper
// ABOUTME: Grounded on junjiewwang-perf-analysis's pkg/config: defaults, YAML file, env override

// Package config provides configuration management for the rheap CLI.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds every tunable the CLI exposes, so a run doesn't need to
// re-specify every flag in CI.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Log      LogConfig      `mapstructure:"log"`
}

// AnalysisConfig holds the retention analyzer's default tunables.
type AnalysisConfig struct {
	TopN      int     `mapstructure:"top_n"`
	Threshold float64 `mapstructure:"threshold"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// Load reads configuration from configPath, or from the standard
// locations (./rheap.yaml, ./configs/rheap.yaml, /etc/rheap/rheap.yaml)
// if configPath is empty. Environment variables override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("rheap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/rheap")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file: defaults apply.
		} else if os.IsNotExist(err) {
			// Explicit path doesn't exist: defaults apply.
		} else {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("RHEAP")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.top_n", 10)
	v.SetDefault("analysis.threshold", 0.005)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks the configuration for values the CLI cannot act on.
func (c *Config) Validate() error {
	if c.Analysis.TopN < 0 {
		return fmt.Errorf("analysis.top_n must be non-negative")
	}
	if c.Analysis.Threshold < 0 || c.Analysis.Threshold > 1 {
		return fmt.Errorf("analysis.threshold must be in [0,1]")
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be \"json\" or \"text\", got %q", c.Log.Format)
	}
	return nil
}
