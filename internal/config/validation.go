package config

import (
	"strings"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
)

// Normalize case-folds the enumerated fields. Unknown values are rejected.
func (c *Config) Normalize() error {
	level, err := logLevelNormalizer.NormalizeWithError(string(c.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.level").Build()
	}
	format, err := logFormatNormalizer.NormalizeWithError(string(c.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "invalid logging.format").Build()
	}
	c.Logging.Level, c.Logging.Format = level, format
	c.Device.Card = strings.TrimSpace(c.Device.Card)
	c.Device.Amixer = strings.TrimSpace(c.Device.Amixer)
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Device.Card == "" {
		return errors.ConfigError("device.card must not be empty").Build()
	}
	if c.Device.Amixer == "" {
		return errors.ConfigError("device.amixer must not be empty").Build()
	}
	if strings.TrimSpace(c.Device.USBSyncControl) == "" {
		return errors.ConfigError("device.usb_sync_control must not be empty").Build()
	}
	return nil
}
