// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/xvierd/pomo/internal/domain"
)

// Config holds all configuration for the pomo application.
// Cycle durations are fixed and not configurable.
type Config struct {
	Notifications NotificationConfig `mapstructure:"notifications"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// LogConfig controls the rotating debug log.
type LogConfig struct {
	Level      slog.Level `mapstructure:"level"`
	File       string     `mapstructure:"file"`
	MaxSizeMB  int        `mapstructure:"max_size_mb"`
	MaxBackups int        `mapstructure:"max_backups"`
	MaxAgeDays int        `mapstructure:"max_age_days"`
	Compress   bool       `mapstructure:"compress"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorFocus      string `mapstructure:"color_focus"`
	ColorShortBreak string `mapstructure:"color_short_break"`
	ColorLongBreak  string `mapstructure:"color_long_break"`
	ColorPaused     string `mapstructure:"color_paused"`
	ColorTitle      string `mapstructure:"color_title"`
	ColorTask       string `mapstructure:"color_task"`
	ColorHelp       string `mapstructure:"color_help"`
	IconApp         string `mapstructure:"icon_app"`
	IconTask        string `mapstructure:"icon_task"`
	IconDone        string `mapstructure:"icon_done"`
	IconPaused      string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:      "#4285F4",
		ColorShortBreak: "#34A853",
		ColorLongBreak:  "#FBBC05",
		ColorPaused:     "#6B7280",
		ColorTitle:      "#6B7280",
		ColorTask:       "#A0AEC0",
		ColorHelp:       "#95A5A6",
		IconApp:         "🍅",
		IconTask:        "○",
		IconDone:        "●",
		IconPaused:      "⏸",
	}
}

// ModeColor returns the accent color for a mode.
func (t ThemeConfig) ModeColor(m domain.Mode) string {
	switch m {
	case domain.ModeShortBreak:
		return t.ColorShortBreak
	case domain.ModeLongBreak:
		return t.ColorLongBreak
	default:
		return t.ColorFocus
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Log: LogConfig{
			Level:      slog.LevelInfo,
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Theme: DefaultThemeConfig(),
	}
}

// Dir returns the application data directory, ~/.pomo.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomo"), nil
}

// GetConfigPath returns the path to the default config file.
func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file at path, creating it with defaults if it does
// not exist. An empty path means the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix("POMO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(path), "pomo.log")
	}

	return &cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("log.level", cfg.Log.Level.String())
	v.Set("log.file", cfg.Log.File)
	v.Set("log.max_size_mb", cfg.Log.MaxSizeMB)
	v.Set("log.max_backups", cfg.Log.MaxBackups)
	v.Set("log.max_age_days", cfg.Log.MaxAgeDays)
	v.Set("log.compress", cfg.Log.Compress)
	v.Set("theme.color_focus", cfg.Theme.ColorFocus)
	v.Set("theme.color_short_break", cfg.Theme.ColorShortBreak)
	v.Set("theme.color_long_break", cfg.Theme.ColorLongBreak)
	v.Set("theme.color_paused", cfg.Theme.ColorPaused)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_task", cfg.Theme.ColorTask)
	v.Set("theme.color_help", cfg.Theme.ColorHelp)
	v.Set("theme.icon_app", cfg.Theme.IconApp)
	v.Set("theme.icon_task", cfg.Theme.IconTask)
	v.Set("theme.icon_done", cfg.Theme.IconDone)
	v.Set("theme.icon_paused", cfg.Theme.IconPaused)

	return v.WriteConfig()
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("notifications.enabled", defaults.Notifications.Enabled)
	v.SetDefault("notifications.sound", defaults.Notifications.Sound)
	v.SetDefault("log.level", defaults.Log.Level.String())
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)
	v.SetDefault("log.compress", defaults.Log.Compress)

	theme := defaults.Theme
	v.SetDefault("theme.color_focus", theme.ColorFocus)
	v.SetDefault("theme.color_short_break", theme.ColorShortBreak)
	v.SetDefault("theme.color_long_break", theme.ColorLongBreak)
	v.SetDefault("theme.color_paused", theme.ColorPaused)
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_task", theme.ColorTask)
	v.SetDefault("theme.color_help", theme.ColorHelp)
	v.SetDefault("theme.icon_app", theme.IconApp)
	v.SetDefault("theme.icon_task", theme.IconTask)
	v.SetDefault("theme.icon_done", theme.IconDone)
	v.SetDefault("theme.icon_paused", theme.IconPaused)
}
