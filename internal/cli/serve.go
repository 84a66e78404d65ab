// serve.go implements the "persona serve" command running the local
// document-store emulator.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/persona-dev/persona/internal/config"
	"github.com/persona-dev/persona/internal/docstore"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local document-store emulator",
	Long: `Serve the document-store API over a local SQLite database. The
client connects here when emulator.enabled is true in config.yaml.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	base, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	cfg, err := config.ReadConfig(base)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	store, err := docstore.NewSQLite(filepath.Join(base, ".persona", "emulator.db"))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	addr := fmt.Sprintf("%s:%d", cfg.Emulator.Host, cfg.Emulator.Port)
	srv, err := docstore.NewServer(store, cfg.Store.Project, addr)
	if err != nil {
		return err
	}

	fmt.Printf("Document store listening on %s (project %s)\n", srv.Addr(), cfg.Store.Project)
	return srv.Start()
}
