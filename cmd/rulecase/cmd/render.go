package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/branchwork/rulecase/internal/rules"
	"github.com/branchwork/rulecase/internal/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a JSON structured rule from stdin back to expression text",
	Long: `Reads a structured rule (the JSON form printed by 'parse') from stdin and
prints the equivalent expression text. An incomplete if or then group
renders as an empty line; literals outside the safe whitelist fail.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}

	var rule types.StructuredRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return fmt.Errorf("invalid structured rule: %w", err)
	}

	text, err := rules.Serialize(rule)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
