// env.go wires the stores and session shared by all commands.
package cli

import (
	"fmt"
	"os"

	"github.com/persona-dev/persona/internal/config"
	"github.com/persona-dev/persona/internal/docstore"
	"github.com/persona-dev/persona/internal/localstore"
	"github.com/persona-dev/persona/internal/log"
	"github.com/persona-dev/persona/internal/responses"
	"github.com/persona-dev/persona/internal/session"
)

// env bundles everything a command needs: config, logger, stores, and the
// started session context.
type env struct {
	base   string
	cfg    *config.Config
	logger *log.Logger
	local  *localstore.Store
	remote *responses.Store
	sess   *session.Session
}

// newEnv reads the config (falling back to defaults if none is written),
// opens the local store and logger, connects the document-store client,
// and starts the session.
func newEnv() (*env, error) {
	base, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	cfg, err := config.ReadConfig(base)
	if err != nil {
		// Config not found or invalid, use defaults
		cfg = config.DefaultConfig()
	}

	logger, err := log.NewLogger(base)
	if err != nil {
		return nil, err
	}
	local, err := localstore.NewStore(base)
	if err != nil {
		return nil, err
	}

	client := docstore.NewClient(cfg.StoreURL(), cfg.Store.Project)
	remote := responses.NewStore(client, local, logger)

	sess := session.New(local, remote, logger)
	if err := sess.Start(); err != nil {
		return nil, err
	}

	return &env{
		base:   base,
		cfg:    cfg,
		logger: logger,
		local:  local,
		remote: remote,
		sess:   sess,
	}, nil
}

// requireUser returns the established user name or an actionable error.
func (e *env) requireUser() (string, error) {
	if !e.sess.HasUser() {
		return "", fmt.Errorf("no user set; run: persona name <your name>")
	}
	return e.sess.UserName(), nil
}
