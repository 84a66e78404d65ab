// history.go implements the "persona history" command over the local
// offline copy of submitted responses.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyRemove string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local history of submitted responses",
	Long: `Show the denormalized local history written alongside each submit.
This works without the remote store. Entries can repeat if the same
response was part of more than one submit attempt.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyRemove, "remove", "", "Remove all history entries with the given id")
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	if historyRemove != "" {
		if err := env.local.DeleteResponseFromHistory(historyRemove); err != nil {
			return err
		}
		fmt.Printf("Removed %s from history.\n", historyRemove)
		return nil
	}

	entries, err := env.local.LoadResponseHistory()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("History is empty.")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("  %s  %s\n", entry.SubmittedAt.Format("2006-01-02 15:04"), entry.ID)
		fmt.Printf("    strengths:  %s\n", entry.Strength)
		fmt.Printf("    weaknesses: %s\n", entry.Weakness)
		if verbose {
			fmt.Printf("    habits:     %s\n", entry.Habits)
			fmt.Printf("    tone:       %s\n", entry.SpeechTone)
			fmt.Printf("    nature:     %s\n", entry.Nature)
		}
		fmt.Println()
	}
	fmt.Printf("%d entr(ies).\n", len(entries))
	return nil
}
