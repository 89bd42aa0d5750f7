package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ThiagoSantosOFC/starship/internal/adapters/logging"
	"github.com/ThiagoSantosOFC/starship/internal/domain/config"
	"github.com/ThiagoSantosOFC/starship/internal/ports"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	plain   bool
)

var rootCmd = &cobra.Command{
	Use:   "starship-setup",
	Short: "Declarative workstation bootstrap",
	Long: `starship-setup provisions a developer workstation from a declarative
manifest: tools through the system package manager, configuration
repositories, shell startup files, and the starship prompt.

Every step is idempotent; rerunning against a provisioned host is a no-op.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		return 1
	}
	return lastExitCode
}

// lastExitCode lets the apply command report partial and critical failures
// through the process status without treating them as cobra errors.
var lastExitCode int

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "setup.yaml", "setup manifest (.yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable colors and progress UI")

	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(factsCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the CLI logger honoring --verbose.
func newLogger() ports.Logger {
	level := ports.LevelInfo
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewConsoleLogger(
		logging.WithOutput(os.Stderr),
		logging.WithLevel(level),
	)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}
