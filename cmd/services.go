package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xvierd/pomo/internal/adapters/notification"
	"github.com/xvierd/pomo/internal/config"
)

// appDeps groups the dependencies initialized at startup.
type appDeps struct {
	config     *config.Config
	configPath string
	logs       *LoggerResult
	logger     *slog.Logger
	notifier   *notification.Notifier
}

// app holds all initialized dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices loads configuration and sets up logging and notifications.
func initializeServices() error {
	path := configPath
	if path == "" {
		var err error
		path, err = config.GetConfigPath()
		if err != nil {
			return err
		}
	}
	app.configPath = path

	cfg, loadErr := config.Load(path)
	if loadErr != nil {
		// If config loading fails, use defaults
		cfg = config.DefaultConfig()
	}
	app.config = cfg

	level := cfg.Log.Level
	if logLevel != "" {
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
	}

	if cfg.Log.File != "" {
		app.logs = SetupLogger(cfg.Log, level)
		app.logger = app.logs.Logger
	} else {
		app.logger = SetupLoggerWithWriter(io.Discard, level)
	}
	if loadErr != nil {
		app.logger.Warn("using default config", "path", path, "error", loadErr)
	}

	if noNotify {
		cfg.Notifications.Enabled = false
	}
	app.notifier = notification.New(cfg.Notifications)

	app.logger.Debug("services initialized", "config", path, "notifications", cfg.Notifications.Enabled)
	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.logs != nil {
		err := app.logs.Close()
		app.logs = nil
		return err
	}
	return nil
}
