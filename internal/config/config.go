package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/filebatch/bgs/batch"
)

// Config represents the complete bgs configuration. Values here are the
// defaults for the group command; command-line flags always win over the
// config file and environment.
type Config struct {
	Grouping GroupingConfig `mapstructure:"grouping"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// GroupingConfig controls how files are collected and grouped
type GroupingConfig struct {
	// Method is the grouping strategy: "sequential" or "compact"
	Method string `mapstructure:"method"`
	// OutputDir is where group descriptors are written
	OutputDir string `mapstructure:"output_dir"`
	// Workers is the stat worker pool size for attribute collection
	Workers int `mapstructure:"workers"`
	// Unordered groups records in stat completion order instead of
	// sorting them by name first; output group membership then varies
	// between runs on the same directory
	Unordered bool `mapstructure:"unordered"`
	// Validate re-checks group sizes after saving
	Validate bool `mapstructure:"validate"`
}

// LoggingConfig controls diagnostic output
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "text" or "json"
	Format string `mapstructure:"format"`
	// File appends logs to the given path instead of stderr
	File string `mapstructure:"file"`
	// Quiet discards all diagnostic output
	Quiet bool `mapstructure:"quiet"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Grouping: GroupingConfig{
			Method:    string(batch.StrategyCompact),
			OutputDir: "groups",
			Workers:   batch.DefaultCollectWorkers,
			Unordered: false,
			Validate:  false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
			Quiet:  false,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("grouping.method", defaults.Grouping.Method)
	viper.SetDefault("grouping.output_dir", defaults.Grouping.OutputDir)
	viper.SetDefault("grouping.workers", defaults.Grouping.Workers)
	viper.SetDefault("grouping.unordered", defaults.Grouping.Unordered)
	viper.SetDefault("grouping.validate", defaults.Grouping.Validate)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.quiet", defaults.Logging.Quiet)
}

// Init wires viper to the config file and BGS_* environment variables.
// A missing config file is not an error; a malformed one is.
func Init() error {
	SetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(ConfigDir())

	viper.SetEnvPrefix("BGS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field values that have a closed set of options
func (c *Config) Validate() error {
	switch batch.Strategy(c.Grouping.Method) {
	case batch.StrategySequential, batch.StrategyCompact:
	default:
		return fmt.Errorf("grouping.method must be one of %v, got %q",
			batch.Strategies(), c.Grouping.Method)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Grouping.Workers <= 0 {
		return fmt.Errorf("grouping.workers must be positive, got %d", c.Grouping.Workers)
	}

	return nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bgs")
	}
	// Fall back to ~/.config/bgs
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bgs"
	}
	return filepath.Join(home, ".config", "bgs")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
