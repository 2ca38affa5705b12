package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd prints the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Print the configuration file path and the values in effect after defaults, environment and flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.config
		out := cmd.OutOrStdout()

		notifStatus := "off"
		if cfg.Notifications.Enabled {
			notifStatus = "on"
			if cfg.Notifications.Sound {
				notifStatus = "on (with sound)"
			}
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Config file:    %s\n", app.configPath)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Notifications:  %s\n", notifStatus)
		fmt.Fprintf(out, "  Log level:      %s\n", cfg.Log.Level)
		fmt.Fprintf(out, "  Log file:       %s\n", cfg.Log.File)
		fmt.Fprintf(out, "  Log rotation:   %dMB x %d, %d days\n", cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Colors:")
		fmt.Fprintf(out, "    Focus:        %s\n", cfg.Theme.ColorFocus)
		fmt.Fprintf(out, "    Short break:  %s\n", cfg.Theme.ColorShortBreak)
		fmt.Fprintf(out, "    Long break:   %s\n", cfg.Theme.ColorLongBreak)
		fmt.Fprintf(out, "    Paused:       %s\n", cfg.Theme.ColorPaused)
		fmt.Fprintln(out)
		return nil
	},
}
