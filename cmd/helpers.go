package cmd

import (
	"fmt"

	"github.com/ziadkadry99/primer/internal/audit"
	"github.com/ziadkadry99/primer/internal/auth"
	"github.com/ziadkadry99/primer/internal/config"
	"github.com/ziadkadry99/primer/internal/db"
	"github.com/ziadkadry99/primer/internal/ghsource"
	"github.com/ziadkadry99/primer/internal/tutorials"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `primer init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openStore opens the configured database. The caller closes it.
func openStore(cfg *config.Config) (*db.DB, *tutorials.Store, error) {
	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return database, tutorials.NewStore(database), nil
}

// newJournal returns the audit recorder over database.
func newJournal(database *db.DB) *audit.Recorder {
	return audit.NewRecorder(audit.NewStore(database))
}

// githubOptions builds client options, resolving the token from the
// environment, config or stored credentials.
func githubOptions(cfg *config.Config) ghsource.Options {
	token, _ := auth.GitHubToken(cfg.GitHub.Token)
	return ghsource.Options{
		Token:   token,
		APIURL:  cfg.GitHub.APIURL,
		Timeout: cfg.GitHub.Timeout,
		Include: cfg.GitHub.Include,
		Exclude: cfg.GitHub.Exclude,
	}
}

// newImporter wires a GitHub client into an importer over store.
func newImporter(cfg *config.Config, store *tutorials.Store) (*tutorials.Importer, error) {
	client, err := ghsource.NewClient(githubOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("creating github client: %w", err)
	}
	return tutorials.NewImporter(store, client), nil
}
