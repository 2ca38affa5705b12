// Package cmd provides the CLI commands for the pomo application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	configPath string
	modeFlag   string
	noNotify   bool
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pomo",
	Short: "pomo - A Pomodoro timer for the terminal",
	Long: `pomo is a Pomodoro timer with focus, short break and long break cycles
and an optional task list.

Run "pomo" with no arguments to open the fullscreen timer. When stdout is not
a terminal, pomo runs a single cycle and prints each change instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.pomo/config.toml)")
	rootCmd.PersistentFlags().StringVar(&modeFlag, "mode", "", "Cycle to load: focus, short-break, long-break")
	rootCmd.PersistentFlags().BoolVar(&noNotify, "no-notify", false, "Disable desktop notifications")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Set version - cobra handles --version automatically
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("pomo\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(configCmd)
}

// setupSignalHandler returns a context that is cancelled on interrupt signals.
func setupSignalHandler(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// isTerminal reports whether stdout is an interactive terminal.
var isTerminal = func() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// runRoot opens the fullscreen timer, or a headless cycle without a terminal.
func runRoot(cmd *cobra.Command, args []string) error {
	mode, err := resolveMode(modeFlag)
	if err != nil {
		return err
	}

	ctx, stop := setupSignalHandler(cmd.Context())
	defer stop()

	if !isTerminal() {
		app.logger.Debug("stdout is not a terminal, running headless")
		return runHeadless(ctx, cmd.OutOrStdout(), mode)
	}
	return runTUI(ctx, mode)
}
