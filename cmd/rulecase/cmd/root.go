package cmd

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/branchwork/rulecase/internal/config"
	"github.com/branchwork/rulecase/internal/store"
)

const Version = "0.1.0"

var (
	configFile string
	dbURL      string
)

var rootCmd = &cobra.Command{
	Use:   "rulecase",
	Short: "rulecase rule-expression engine",
	Long: `rulecase parses two-branch conditional rules (condition ? then : else),
round-trips them through a structured form, and compiles conditions to
in-memory predicates or CASE-WHEN SQL fragments.`,
	Version:      Version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}

// loadConfig loads configuration and applies the --db-url override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	return cfg, nil
}

// openStore opens the configured database and wraps it in a rule store.
// Caller closes the returned DB.
func openStore(cfg *config.Config) (*store.Store, *sqlx.DB, error) {
	db, err := store.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	st, err := store.New(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return st, db, nil
}
