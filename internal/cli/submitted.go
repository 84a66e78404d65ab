// submitted.go implements the "persona submitted" command.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var submittedCmd = &cobra.Command{
	Use:   "submitted",
	Short: "List your submitted responses",
	RunE:  runSubmitted,
}

func runSubmitted(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	user, err := env.requireUser()
	if err != nil {
		return err
	}

	records, err := env.remote.GetUserSubmittedResponses(cmd.Context(), user)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("Nothing submitted yet.")
		return nil
	}

	fmt.Printf("Submitted responses for %s:\n\n", user)
	for _, rec := range records {
		fmt.Printf("  %s\n", rec.ID)
		fmt.Printf("    strengths:  %s\n", rec.Strength)
		fmt.Printf("    weaknesses: %s\n", rec.Weakness)
		// CreatedAt carries the submission time for submitted copies.
		fmt.Printf("    submitted:  %s\n", rec.CreatedAt)
		fmt.Println()
	}
	fmt.Printf("%d response(s).\n", len(records))
	return nil
}
