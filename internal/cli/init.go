// init.go implements the "persona init" command writing the default config.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/persona-dev/persona/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the persona data directory",
	Long: `Initialize the .persona/ directory in your home with the default
configuration: store endpoint, project identifier, emulator toggle, and
auto-save debounce.`,
	RunE: runInit,
}

var emulatorFlag bool

func init() {
	initCmd.Flags().BoolVar(&emulatorFlag, "emulator", false, "Point the client at the local emulator")
}

func runInit(cmd *cobra.Command, args []string) error {
	base, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	// Check for an existing config before overwriting.
	configPath := filepath.Join(base, ".persona", "config.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil {
		fmt.Println("Warning: .persona/config.yaml already exists.")
		fmt.Print("Reinitialize? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	cfg.Emulator.Enabled = emulatorFlag

	if err := config.WriteConfig(base, cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", configPath)
	if emulatorFlag {
		fmt.Println("Emulator enabled; start it with: persona serve")
	}
	return nil
}
