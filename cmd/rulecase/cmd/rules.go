package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchwork/rulecase/internal/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage stored rules",
}

var addRuleName string

var rulesAddCmd = &cobra.Command{
	Use:   "add <expression>",
	Short: "Validate and store a rule expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesAdd,
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored rules",
	Args:  cobra.NoArgs,
	RunE:  runRulesList,
}

var rulesGetCmd = &cobra.Command{
	Use:   "get <rule-id>",
	Short: "Show one stored rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesGet,
}

var rulesRmCmd = &cobra.Command{
	Use:   "rm <rule-id>",
	Short: "Delete a stored rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesRm,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesAddCmd, rulesListCmd, rulesGetCmd, rulesRmCmd)
	rulesAddCmd.Flags().StringVar(&addRuleName, "name", "", "unique rule name (required)")
	rulesAddCmd.MarkFlagRequired("name")
}

func runRulesAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(args[0]) > cfg.MaxExpressionLength {
		return types.ErrExpressionTooLong
	}

	st, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	row, err := st.Create(addRuleName, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), row.RuleID)
	return nil
}

func runRulesList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := st.List()
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.RuleID, r.Name, r.Expression)
	}
	return nil
}

func runRulesGet(cmd *cobra.Command, args []string) error {
	id, err := types.ParseRuleID(args[0])
	if err != nil {
		return fmt.Errorf("invalid rule ID: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	row, err := st.Get(id)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", row.RuleID, row.Name, row.Expression)
	return nil
}

func runRulesRm(cmd *cobra.Command, args []string) error {
	id, err := types.ParseRuleID(args[0])
	if err != nil {
		return fmt.Errorf("invalid rule ID: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return st.Delete(id)
}
