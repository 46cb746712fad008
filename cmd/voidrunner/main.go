package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/studiowebux/voidrunner/internal/app"
	"github.com/studiowebux/voidrunner/internal/config"
	"github.com/studiowebux/voidrunner/internal/keybinds"
	"github.com/studiowebux/voidrunner/internal/logging"
	"github.com/studiowebux/voidrunner/internal/tui"
)

var (
	version = "0.1.0"
)

// errRunFailed makes the process exit non-zero after a Failure result
// without printing an extra error line
var errRunFailed = errors.New("run failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voidrunner",
	Short: "voidrunner - terminal code runner",
	Long: `voidrunner keeps one editing session (language, code and program input)
on disk and runs it on a remote execution service.

Run without arguments to start the TUI. The session survives restarts and is
shared by the TUI and the CLI commands.

Examples:
  voidrunner                               # Start interactive TUI
  voidrunner run                           # Run the stored session
  voidrunner run --file main.py            # Replace the code, then run
  voidrunner run --stdin-file input.txt    # Replace the input, then run
  voidrunner session lang python           # Switch language
  voidrunner history --limit 5             # Latest runs
  voidrunner keys --validate               # Check keybinds.json`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Flags shared by the run and session commands
var (
	flagOutput    string
	flagFile      string
	flagLang      string
	flagStdinFile string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(keysCmd)
}

// openApp loads settings and builds the services; logs go to w
func openApp(w io.Writer) (*app.App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(settings.Log.Level)
	if err != nil {
		return nil, err
	}
	return app.Open(settings, logging.New(w, level))
}

// openCLI opens the app with logs on stderr
func openCLI() (*app.App, error) {
	return openApp(os.Stderr)
}

// runTUI starts the interactive TUI, logging to the log file
func runTUI(cmd *cobra.Command) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	logFile, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, config.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	a, err := openApp(logFile)
	if err != nil {
		return err
	}
	defer a.Close()

	registry, err := loadRegistry(a.Settings, a.Logger)
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), a, registry)
}

// loadRegistry reads keybinds.json and logs validation problems
func loadRegistry(settings config.Settings, logger *slog.Logger) (*keybinds.Registry, error) {
	registry, err := keybinds.LoadOrDefault(settings.Keybinds.File)
	if err != nil {
		return nil, err
	}
	result := keybinds.NewValidator().ValidateRegistry(registry)
	for _, e := range result.Errors {
		logger.Warn("keybinding error", "detail", e.Error())
	}
	for _, w := range result.Warnings {
		logger.Info("keybinding warning", "detail", w.Error())
	}
	return registry, nil
}
