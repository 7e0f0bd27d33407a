package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/scarlettcfg/internal/foundation/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvCard, "")
	t.Setenv(EnvAmixer, "")

	cfg, err := Load("", false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "USB", cfg.Device.Card)
	assert.Equal(t, "amixer", cfg.Device.Amixer)
	assert.Equal(t, "Scarlett 18i20 USB-Sync", cfg.Device.USBSyncControl)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvCard, "")
	t.Setenv(EnvAmixer, "")
	t.Setenv("SCARLETT_PROM_DIR", "/var/lib/node_exporter")

	path := writeFile(t, dir, "cfg.yaml", `
device:
  card: "2"
  usb_sync_control: Scarlett 6i6 USB-Sync
logging:
  level: DEBUG
  format: " JSON "
metrics:
  textfile: ${SCARLETT_PROM_DIR}/scarlettcfg.prom
`)
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "2", cfg.Device.Card)
	assert.Equal(t, "amixer", cfg.Device.Amixer)
	assert.Equal(t, "Scarlett 6i6 USB-Sync", cfg.Device.USBSyncControl)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "/var/lib/node_exporter/scarlettcfg.prom", cfg.Metrics.Textfile)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvCard, "1")
	t.Setenv(EnvAmixer, "/opt/alsa/bin/amixer")

	path := writeFile(t, dir, "cfg.yaml", "device:\n  card: USB\n")
	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "1", cfg.Device.Card)
	assert.Equal(t, "/opt/alsa/bin/amixer", cfg.Device.Amixer)
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvCard, "")
	t.Setenv(EnvAmixer, "")
	// Registered so the variable set by the .env file is restored after the test.
	t.Setenv("SCARLETTCFG_TEST_CARD", "")
	require.NoError(t, os.Unsetenv("SCARLETTCFG_TEST_CARD"))

	writeFile(t, dir, ".env", "SCARLETTCFG_TEST_CARD=3\n")
	writeFile(t, dir, DefaultPath, "device:\n  card: ${SCARLETTCFG_TEST_CARD}\n")

	cfg, err := Load("", false)
	require.NoError(t, err)
	assert.Equal(t, "3", cfg.Device.Card)
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "device: [",
		"empty card":   "device:\n  card: \"\"\n",
		"empty amixer": "device:\n  amixer: \" \"\n",
		"empty sync":   "device:\n  usb_sync_control: \"\"\n",
		"bad level":    "logging:\n  level: chatty\n",
		"bad format":   "logging:\n  format: xml\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			t.Setenv(EnvCard, "")
			t.Setenv(EnvAmixer, "")

			_, err := Load(writeFile(t, dir, "cfg.yaml", content), true)
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel("Warning"))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("nonsense"))
	assert.Equal(t, slog.LevelDebug, LogLevelDebug.SlogLevel())
	assert.Equal(t, slog.LevelError, LogLevelError.SlogLevel())
	assert.Equal(t, slog.LevelInfo, LogLevel("").SlogLevel())
	assert.Equal(t, LogFormatText, NormalizeLogFormat(""))
}
