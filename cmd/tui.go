package cmd

import (
	"context"
	"fmt"

	"github.com/xvierd/pomo/internal/adapters/tui"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

// runTUI opens the fullscreen timer with mode loaded.
func runTUI(ctx context.Context, mode domain.Mode) error {
	initial, err := domain.SwitchMode(domain.NewTimerState(), mode)
	if err != nil {
		return err
	}

	a, err := tui.NewApp(&app.config.Theme,
		services.WithNotifier(app.notifier),
		services.WithLogger(app.logger),
		services.WithInitialState(initial),
	)
	if err != nil {
		return fmt.Errorf("failed to start timer: %w", err)
	}
	a.EnableTasks(app.logger)
	a.SetNotificationToggle(app.notifier.IsEnabled(), app.notifier.SetEnabled)

	return a.Run(ctx)
}
