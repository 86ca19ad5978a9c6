// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Tagging struct {
		MappingFile string `mapstructure:"mapping_file" yaml:"mapping_file"`
		Column      int    `mapstructure:"column" yaml:"column"`
		Separator   string `mapstructure:"separator" yaml:"separator"`
		OnRowError  string `mapstructure:"on_row_error" yaml:"on_row_error"`
	} `mapstructure:"tagging" yaml:"tagging"`
}

// InitializeConfig loads defaults, then an optional config file, then
// TXTAG_* environment variables. configFile overrides the search path.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.txtag")
		v.AddConfigPath(".txtag")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TXTAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Plain LOG_LEVEL/LOG_FORMAT are honoured when no prefixed value is set.
	if err := v.BindEnv("log.level", "TXTAG_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind log level: %w", err)
	}
	if err := v.BindEnv("log.format", "TXTAG_LOG_FORMAT", "LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind log format: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("tagging.mapping_file", "")
	v.SetDefault("tagging.column", 2)
	v.SetDefault("tagging.separator", "|||||")
	v.SetDefault("tagging.on_row_error", "abort")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if config.Tagging.Column < 0 {
		return fmt.Errorf("tagging.column must be zero or greater, got: %d", config.Tagging.Column)
	}

	if config.Tagging.Separator == "" {
		return fmt.Errorf("tagging.separator must not be empty")
	}
	if strings.Contains(config.Tagging.Separator, config.CSV.Delimiter) {
		return fmt.Errorf("tagging.separator %q must not contain the CSV delimiter %q",
			config.Tagging.Separator, config.CSV.Delimiter)
	}

	switch config.Tagging.OnRowError {
	case "abort", "skip":
	default:
		return fmt.Errorf("tagging.on_row_error must be 'abort' or 'skip', got: %s", config.Tagging.OnRowError)
	}

	return nil
}
