// Package config provides configuration loading for the taintinfo CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	// Source is the path of the file holding the kernel taint word.
	Source string `mapstructure:"source"`

	// Color selects colored output: auto, always, or never.
	Color string `mapstructure:"color"`

	// Format is the default output format: text, json, or yaml.
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Source: "/proc/sys/kernel/tainted",
		Color:  "auto",
		Format: "text",
	}
}

// Load loads configuration from file and environment.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".taintinfo"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Environment variables
	v.SetEnvPrefix("TAINTINFO")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", "/proc/sys/kernel/tainted")
	v.SetDefault("color", "auto")
	v.SetDefault("format", "text")
}
