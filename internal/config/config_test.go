package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "dircmp.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `exclude:
  - "*.tmp"
  - "*.log"
  - ".git/"
  - "node_modules/"
parallel: true
progress: false
log:
  level: DEBUG
  format: json
  file: /var/log/dircmp.log
  max_size_mb: 5
`)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, []string{"*.tmp", "*.log", ".git/", "node_modules/"}, cfg.Exclude)
	assert.True(t, cfg.Parallel)
	assert.False(t, cfg.Progress)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "/var/log/dircmp.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups, "unset keys keep defaults")
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/dircmp.yaml")
	require.NoError(t, err, "missing config falls back to defaults")

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `exclude: [
  "*.tmp"
  invalid: syntax
`)

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.NotNil(t, cfg.Exclude)
	assert.Empty(t, cfg.Exclude)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_NullExclude(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "exclude:\n"))
	require.NoError(t, err)

	assert.NotNil(t, cfg.Exclude)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log:\n  level: verbose\n"},
		{"bad format", "log:\n  format: xml\n"},
		{"negative size", "log:\n  max_size_mb: -1\n"},
		{"negative backups", "log:\n  max_backups: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg.Exclude)
	assert.Empty(t, cfg.Exclude, "nothing is hidden from an audit by default")
	assert.False(t, cfg.Parallel)
	assert.True(t, cfg.Progress)
	assert.NoError(t, cfg.Validate())
}
