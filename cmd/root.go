// Package cmd implements the priplot CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/priplot/priplot/internal/clierr"
	"github.com/priplot/priplot/internal/config"
	"github.com/priplot/priplot/internal/output"
	"github.com/priplot/priplot/internal/session"
	"github.com/priplot/priplot/internal/task"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagSession string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "priplot",
	Short: "Interactive value-vs-time task prioritization",
	Long: `priplot plots your tasks by value against time on an interactive scatter
plot. Drag points to reprioritize, schedule tasks on a calendar, and
export the ranking to a spreadsheet. Run priplot without arguments to
open the TUI.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runTUI,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || !output.ColorEnabled() {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagSession, "session", "", "path to session file")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError — exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("PRIPLOT_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error — wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig loads the priplot config, creating defaults on first run.
func loadConfig() (*config.Config, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	return config.LoadOrInit(dir)
}

// sessionPath resolves the session file: the --session flag, or the
// default session in the config directory.
func sessionPath(cfg *config.Config) string {
	if flagSession != "" {
		return flagSession
	}
	return cfg.SessionPath()
}

// loadSession opens the session store and reads its task list. A
// missing session file yields an empty list; the file is created on
// first save.
func loadSession(cfg *config.Config) (*task.List, *session.Store, error) {
	store := session.New(sessionPath(cfg))
	if _, err := os.Stat(store.Path()); os.IsNotExist(err) {
		return task.NewList(), store, nil
	}
	list, err := store.Load()
	if err != nil {
		return nil, nil, err
	}
	return list, store, nil
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}
