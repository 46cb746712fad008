package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/studiowebux/voidrunner/internal/cli"
	"github.com/studiowebux/voidrunner/internal/keybinds"
	releases "github.com/studiowebux/voidrunner/internal/version"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the stored session once",
	Long: `Run the stored session on the execution service and print the result.

--file, --lang and --stdin-file replace parts of the session first; the
change is saved like any edit. The exit code is 1 when the run fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := cli.Run(cmd.Context(), a, cli.RunOptions{
			FilePath:     flagFile,
			Language:     flagLang,
			StdinPath:    flagStdinFile,
			OutputFormat: flagOutput,
			Color:        cli.IsTerminal(os.Stdout),
			Stdin:        cmd.InOrStdin(),
			Out:          cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		if res.IsFailure() {
			return errRunFailed
		}
		return nil
	},
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or edit the stored session",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()

		out, err := cli.FormatSession(a.Session.State(), a.Catalog, flagOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var sessionSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace code, language or input of the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagFile == "" && flagLang == "" && flagStdinFile == "" {
			return fmt.Errorf("nothing to set (use --file, --lang or --stdin-file)")
		}

		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()

		state, err := cli.ApplyEdits(a, cli.EditOptions{
			FilePath:  flagFile,
			Language:  flagLang,
			StdinPath: flagStdinFile,
			Stdin:     cmd.InOrStdin(),
		})
		if err != nil {
			return err
		}
		out, err := cli.FormatSession(state, a.Catalog, flagOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var sessionLangCmd = &cobra.Command{
	Use:   "lang [language]",
	Short: "Switch the session language",
	Long: `Switch the session language. An empty editor gets the language's
starter snippet. Without an argument an interactive picker is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()

		var id string
		if len(args) > 0 {
			id = args[0]
		} else {
			if !cli.IsTerminal(os.Stdin) {
				return fmt.Errorf("no language given (available: %s)", strings.Join(a.Catalog.IDs(), ", "))
			}
			id, err = cli.PromptLanguage(a.Catalog, a.Session.State().Language)
			if err != nil {
				return err
			}
		}

		state, err := cli.ApplyEdits(a, cli.EditOptions{Language: id})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Language: %s\n", a.Catalog.DisplayName(state.Language))
		return nil
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Session.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Session reset")
		return nil
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages [query]",
	Short: "List supported languages",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) > 0 {
			for _, id := range a.Catalog.Suggest(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}

		out, err := cli.FormatLanguages(a.Catalog, a.Session.State().Language, flagOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var (
	historyLimit int
	historyLang  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()
		if a.History == nil {
			return fmt.Errorf("history is disabled (history.enabled: false)")
		}

		entries, err := a.History.List(historyLimit, historyLang)
		if err != nil {
			return err
		}
		out, err := cli.FormatHistory(entries, flagOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()
		if a.History == nil {
			return fmt.Errorf("history is disabled (history.enabled: false)")
		}

		entry, err := a.History.Get(args[0])
		if err != nil {
			return err
		}
		out, err := cli.FormatHistoryEntry(entry, flagOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run statistics per language",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()
		if a.History == nil {
			return fmt.Errorf("history is disabled (history.enabled: false)")
		}

		stats, err := a.History.Stats()
		if err != nil {
			return err
		}
		out, err := cli.FormatStats(stats, flagOutput)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()
		if a.History == nil {
			return fmt.Errorf("history is disabled (history.enabled: false)")
		}

		count, err := a.History.Count()
		if err != nil {
			return err
		}
		if err := a.History.Clear(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d runs\n", count)
		return nil
	},
}

var (
	keysValidate bool
	keysExport   string
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show, validate or export key bindings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openCLI()
		if err != nil {
			return err
		}
		defer a.Close()

		if keysExport != "" {
			if err := keybinds.SaveConfig(keybinds.ExportDefaults(), keysExport); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default keybindings written to %s\n", keysExport)
			return nil
		}

		registry, err := keybinds.LoadOrDefault(a.Settings.Keybinds.File)
		if err != nil {
			return err
		}

		if keysValidate {
			result := keybinds.NewValidator().ValidateRegistry(registry)
			fmt.Fprintln(cmd.OutOrStdout(), result.String())
			if result.HasErrors() {
				return fmt.Errorf("%d keybinding errors", len(result.Errors))
			}
			return nil
		}

		md := keybinds.HelpMarkdown(registry)
		if !cli.IsTerminal(os.Stdout) {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		rendered, err := glamour.Render(md, "auto")
		if err != nil {
			fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&flagFile, "file", "", "Replace the session code with this file")
	runCmd.Flags().StringVar(&flagLang, "lang", "", "Replace the session language")
	runCmd.Flags().StringVar(&flagStdinFile, "stdin-file", "", "Replace the program input with this file (- for stdin)")

	sessionSetCmd.Flags().StringVar(&flagFile, "file", "", "Replace the session code with this file")
	sessionSetCmd.Flags().StringVar(&flagLang, "lang", "", "Replace the session language")
	sessionSetCmd.Flags().StringVar(&flagStdinFile, "stdin-file", "", "Replace the program input with this file (- for stdin)")

	sessionCmd.AddCommand(sessionShowCmd, sessionSetCmd, sessionLangCmd, sessionResetCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of runs to list (0 for all)")
	historyCmd.Flags().StringVar(&historyLang, "lang", "", "Only list runs of this language")
	historyCmd.AddCommand(historyShowCmd, historyStatsCmd, historyClearCmd)

	keysCmd.Flags().BoolVar(&keysValidate, "validate", false, "Validate the keybindings file")
	keysCmd.Flags().StringVar(&keysExport, "export", "", "Write the default keybindings to this path")
}

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "voidrunner %s\n", version)
		if !versionCheck {
			return nil
		}

		update, err := releases.NewChecker("").Check(cmd.Context(), version)
		if err != nil {
			return err
		}
		if update.Available {
			fmt.Fprintf(cmd.OutOrStdout(), "A newer version is available: %s\n%s\n", update.Latest, update.URL)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "You are on the latest version")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check for a newer release")
	rootCmd.AddCommand(versionCmd)
}
