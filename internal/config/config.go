// Package config provides configuration management for the rulecase CLI.
package config

import "github.com/branchwork/rulecase/internal/types"

// Config holds settings shared by the CLI commands.
type Config struct {
	// DatabaseURL is the rule store connection URL (sqlite:// or postgres://).
	DatabaseURL string

	// DefaultTable is the table CASE-WHEN fragments select from when the
	// command line does not name one.
	DefaultTable string

	// MaxExpressionLength overrides the store-boundary expression limit.
	MaxExpressionLength int
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		DatabaseURL:         "sqlite://rulecase.db",
		DefaultTable:        "entities",
		MaxExpressionLength: types.MaxExpressionLength,
	}
}
