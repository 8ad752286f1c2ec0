package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchwork/rulecase/internal/expr"
)

var validateCmd = &cobra.Command{
	Use:   "validate <expression>",
	Short: "Check rule expression syntax (exit code 0/1)",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if !expr.IsValid(args[0]) {
		return fmt.Errorf("invalid expression")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}
