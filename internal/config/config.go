// Package config loads scarlettcfg settings from an optional YAML file, the
// environment and .env files.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/scarlettcfg/internal/amixer"
	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
	"git.home.luguber.info/inful/scarlettcfg/internal/mixer"
)

// DefaultPath is the configuration file read when no path is given.
const DefaultPath = "scarlettcfg.yaml"

// Config is the tool configuration.
type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// DeviceConfig selects the sound card and how to reach it.
type DeviceConfig struct {
	Card           string `yaml:"card"`             // amixer -c argument
	Amixer         string `yaml:"amixer"`           // amixer executable
	USBSyncControl string `yaml:"usb_sync_control"` // product-specific USB sync control name
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig represents metrics export configuration.
type MetricsConfig struct {
	// Textfile is written in Prometheus text format after every run when set.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Card:           amixer.DefaultCard,
			Amixer:         amixer.DefaultBinary,
			USBSyncControl: mixer.DefaultUSBSyncControl,
		},
		Logging: LoggingConfig{
			Level:  LogLevelInfo,
			Format: LogFormatText,
		},
	}
}

// Load reads the configuration at path. A missing file yields the defaults
// unless explicit is set, in which case it is an error. Environment variables
// from .env files are loaded first and ${VAR} references in the file are
// expanded before parsing.
func Load(path string, explicit bool) (*Config, error) {
	loadEnvFiles()

	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse configuration").
				WithContext("path", path).
				Build()
		}
	case stderrors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read configuration").
			WithContext("path", path).
			Build()
	}

	applyEnvOverrides(cfg)
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
