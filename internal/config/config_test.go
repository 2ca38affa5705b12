package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, "#4285F4", cfg.Theme.ColorFocus)
}

func TestThemeConfig_ModeColor(t *testing.T) {
	theme := DefaultThemeConfig()
	assert.Equal(t, theme.ColorFocus, theme.ModeColor(domain.ModeFocus))
	assert.Equal(t, theme.ColorShortBreak, theme.ModeColor(domain.ModeShortBreak))
	assert.Equal(t, theme.ColorLongBreak, theme.ModeColor(domain.ModeLongBreak))
}

func TestLoad_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "Load should write the default config")

	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, 5, cfg.Log.MaxSizeMB)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "pomo.log"), cfg.Log.File)
	assert.Equal(t, DefaultThemeConfig(), cfg.Theme)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[notifications]
enabled = false

[log]
level = "debug"
file = "/tmp/pomo-test.log"

[theme]
color_focus = "#FF0000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, "/tmp/pomo-test.log", cfg.Log.File)
	assert.Equal(t, "#FF0000", cfg.Theme.ColorFocus)
	assert.Equal(t, DefaultThemeConfig().ColorLongBreak, cfg.Theme.ColorLongBreak, "unset keys keep defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("POMO_NOTIFICATIONS_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Notifications.Enabled)
}

func TestLoad_InvalidLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"chatty\"\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := DefaultConfig()
	cfg.Notifications.Sound = false
	cfg.Log.Level = slog.LevelWarn
	cfg.Theme.IconApp = "⏱"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.Notifications.Sound)
	assert.Equal(t, slog.LevelWarn, loaded.Log.Level)
	assert.Equal(t, "⏱", loaded.Theme.IconApp)
}
