package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchwork/rulecase/internal/expr"
	"github.com/branchwork/rulecase/internal/rules"
)

var (
	sqlTable string
	sqlExec  bool
)

var sqlCmd = &cobra.Command{
	Use:   "sql <expression>",
	Short: "Compile a rule expression to a CASE-WHEN selection fragment",
	Long: `Compiles the rule's branches into
SELECT CASE WHEN <condition> THEN <then> ELSE <else> FROM <table>.
Branch text is copied verbatim from the expression, including token
spellings like '==' that the target SQL dialect may or may not accept.
With --exec the fragment runs against the configured database and the
result column is printed one row per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runSQL,
}

func init() {
	rootCmd.AddCommand(sqlCmd)
	sqlCmd.Flags().StringVar(&sqlTable, "table", "", "table to select from (default from config)")
	sqlCmd.Flags().BoolVar(&sqlExec, "exec", false, "execute the fragment against the database")
}

func runSQL(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	table := sqlTable
	if table == "" {
		table = cfg.DefaultTable
	}

	ast, err := expr.Parse(args[0])
	if err != nil {
		return err
	}

	fragment := rules.ToSQL(ast, table)
	if fragment == "" {
		return fmt.Errorf("expression did not produce a ternary rule")
	}
	fmt.Fprintln(cmd.OutOrStdout(), fragment)

	if !sqlExec {
		return nil
	}

	st, db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	results, err := st.RunFragment(fragment)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintln(cmd.OutOrStdout(), r)
	}
	return nil
}
