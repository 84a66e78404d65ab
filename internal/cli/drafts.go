// drafts.go implements the "persona drafts" command listing pending drafts.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "List your pending draft responses",
	RunE:  runDrafts,
}

func runDrafts(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	user, err := env.requireUser()
	if err != nil {
		return err
	}

	records, err := env.remote.GetUserDraftResponses(cmd.Context(), user)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No pending drafts.")
		return nil
	}

	fmt.Printf("Pending drafts for %s:\n\n", user)
	for _, rec := range records {
		fmt.Printf("  %s\n", rec.ID)
		fmt.Printf("    strengths:  %s\n", rec.Strength)
		fmt.Printf("    weaknesses: %s\n", rec.Weakness)
		if verbose {
			fmt.Printf("    habits:     %s\n", rec.Habits)
			fmt.Printf("    tone:       %s\n", rec.SpeechTone)
			fmt.Printf("    nature:     %s\n", rec.Nature)
		}
		fmt.Printf("    created:    %s\n", rec.CreatedAt)
		fmt.Println()
	}
	fmt.Printf("%d draft(s). Submit with: persona submit\n", len(records))
	return nil
}
