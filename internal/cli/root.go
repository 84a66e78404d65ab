// Package cli defines Cobra command definitions for the persona CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/persona-dev/persona/internal/tui"
	"github.com/persona-dev/persona/internal/tui/app"
)

var (
	verbose bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "persona",
	Short: "Terminal data-entry for personal response profiles",
	Long: `Persona records personal responses (strengths, weaknesses, habits,
speech tone, nature), keeps an in-progress draft locally with debounced
auto-save, and submits completed responses to a remote document store.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch TUI if TTY, show help otherwise
		if !tui.IsTTY() {
			return cmd.Help()
		}

		env, err := newEnv()
		if err != nil {
			return err
		}

		return tui.Run(app.New(env.sess, env.cfg))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Verbose returns true if --verbose flag is set.
func Verbose() bool {
	return verbose
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print per-item detail for store operations")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(submittedCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
}
