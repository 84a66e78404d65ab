// submit.go implements the "persona submit" command.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit [id ...]",
	Short: "Submit pending drafts",
	Long: `Submit the identified draft responses. With no ids, asks for
confirmation and then submits every pending draft. The batch is processed
item by item; the outcome of each item is reported individually.`,
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	user, err := env.requireUser()
	if err != nil {
		return err
	}

	if err := env.sess.LoadWorkingSet(cmd.Context()); err != nil {
		return err
	}
	if len(env.sess.WorkingSet()) == 0 {
		fmt.Println("No pending drafts to submit.")
		return nil
	}

	for _, id := range args {
		if err := env.sess.ToggleSelect(id); err != nil {
			return err
		}
	}

	confirmAll := func() bool {
		fmt.Printf("No drafts selected. Submit all %d pending draft(s)? [y/N]: ", len(env.sess.WorkingSet()))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		return answer == "y" || answer == "yes"
	}

	results, err := env.sess.Submit(cmd.Context(), confirmAll)
	if err != nil {
		return err
	}
	if results == nil {
		fmt.Println("Aborted.")
		return nil
	}
	if len(results) == 0 {
		fmt.Println("Nothing was submitted: no pending item has a server id yet.")
		return nil
	}

	submitted := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "  %s  FAILED: %v\n", r.ID, r.Err)
			continue
		}
		submitted++
		if verbose {
			fmt.Printf("  %s  submitted at %s\n", r.ID, r.SubmittedAt.Format("2006-01-02 15:04:05"))
		}
	}

	fmt.Printf("Submitted %d of %d for %s.\n", submitted, len(results), user)
	if submitted < len(results) {
		return fmt.Errorf("%d item(s) failed; already-submitted items are not rolled back", len(results)-submitted)
	}
	return nil
}
