// name.go implements the "persona name" command establishing the user.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name <your name>",
	Short: "Set the user name for this session",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runName,
}

func runName(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}

	env, err := newEnv()
	if err != nil {
		return err
	}

	if err := env.sess.SetUserName(name); err != nil {
		return err
	}

	fmt.Printf("Hello, %s.\n", name)
	if env.sess.RecoverableDraft() != nil {
		fmt.Println("You have an unfinished draft; continue it in the persona TUI or discard it with: persona reset")
	}
	return nil
}
