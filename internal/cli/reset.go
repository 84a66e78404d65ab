// reset.go implements the "persona reset" command wiping local state.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe the local profile, draft, and history",
	Long: `Remove all local data: the user profile, any in-progress draft,
and the submitted-response history. Remote records are not touched.`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	fmt.Print("This wipes your local profile, draft, and history. Continue? [y/N]: ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.TrimSpace(strings.ToLower(answer))
	if answer != "y" && answer != "yes" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := env.sess.Reset(); err != nil {
		return err
	}
	fmt.Println("Local data cleared.")
	return nil
}
