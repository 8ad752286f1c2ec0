package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchwork/rulecase/internal/expr"
	"github.com/branchwork/rulecase/internal/rules"
)

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Parse a rule expression and print its structured form as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	ast, err := expr.Parse(args[0])
	if err != nil {
		return err
	}

	rule, _ := rules.Extract(ast, nil)

	out, err := json.MarshalIndent(rule, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
