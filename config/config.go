package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g. CSB_FORMAT.
const EnvPrefix = "CSB"

// Config holds CLI defaults. Command-line flags override these values.
type Config struct {
	Format      string `mapstructure:"format"`
	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	PushURL     string `mapstructure:"push_url"`
	PushJob     string `mapstructure:"push_job"`
}

var validFormats = map[string]bool{"text": true, "json": true, "csv": true}

// Load reads defaults and CSB_* environment overrides.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("format", "text")
	v.SetDefault("log_level", "info")
	v.SetDefault("metrics_addr", "")
	v.SetDefault("push_url", "")
	v.SetDefault("push_job", "cs_balancer")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that may come from either the environment or flags.
func (c Config) Validate() error {
	if !validFormats[c.Format] {
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", c.Format)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.PushJob == "" {
		return fmt.Errorf("push job name must not be empty")
	}
	return nil
}
