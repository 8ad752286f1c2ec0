package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/branchwork/rulecase/internal/types"
)

// Load reads configuration with CLI flags > environment > config file >
// defaults precedence. Environment variables use the RC_ prefix with
// underscores for dots (RC_STORE_DATABASE_URL).
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("store.database_url", "sqlite://rulecase.db")
	v.SetDefault("sql.default_table", "entities")
	v.SetDefault("store.max_expression_length", types.MaxExpressionLength)

	v.SetEnvPrefix("RC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:         v.GetString("store.database_url"),
		DefaultTable:        v.GetString("sql.default_table"),
		MaxExpressionLength: v.GetInt("store.max_expression_length"),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("store.database_url cannot be empty")
	}
	if cfg.DefaultTable == "" {
		return fmt.Errorf("sql.default_table cannot be empty")
	}
	if cfg.MaxExpressionLength <= 0 {
		return fmt.Errorf("store.max_expression_length must be positive, got %d", cfg.MaxExpressionLength)
	}
	return nil
}
