package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/adapters/headless"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

// runCmd runs one cycle without the fullscreen interface
var runCmd = &cobra.Command{
	Use:   "run [mode]",
	Short: "Run a single cycle and print each change",
	Long: `Run one focus, short break or long break cycle to completion, printing the
remaining time and caption as plain lines. Interrupt with Ctrl+C to stop early.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := modeFlag
		if len(args) == 1 {
			value = args[0]
		}
		mode, err := resolveMode(value)
		if err != nil {
			return err
		}

		ctx, stop := setupSignalHandler(cmd.Context())
		defer stop()
		return runHeadless(ctx, cmd.OutOrStdout(), mode)
	},
}

// headlessTimerOptions lets tests swap the clock of headless runs.
var headlessTimerOptions []services.TimerOption

// runHeadless drives one cycle of mode, writing changes to w.
func runHeadless(ctx context.Context, w io.Writer, mode domain.Mode) error {
	console := headless.NewConsole(w)
	waiter := headless.NewWaiter(app.notifier)

	opts := append([]services.TimerOption{
		services.WithNotifier(waiter),
		services.WithLogger(app.logger),
	}, headlessTimerOptions...)
	timer, err := services.NewTimerService(console.Handles(), opts...)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	timerErr := make(chan error, 1)
	go func() { timerErr <- timer.Run(runCtx) }()

	banner := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(app.config.Theme.ModeColor(mode)))
	fmt.Fprintln(w, banner.Render(fmt.Sprintf("%s %s", app.config.Theme.IconApp, mode.Label())))

	state, err := headless.RunCycle(ctx, timer, waiter, mode)
	cancel()
	if tErr := <-timerErr; tErr != nil {
		return tErr
	}

	if err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil) {
		fmt.Fprintln(w, "stopped")
		return nil
	}
	if err != nil {
		return err
	}

	app.logger.Info("headless cycle finished", "mode", mode, "completed_pomodoros", state.CompletedPomodoros)
	return nil
}
