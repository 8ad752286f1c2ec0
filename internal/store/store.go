// internal/store/store.go
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/branchwork/rulecase/internal/expr"
	"github.com/branchwork/rulecase/internal/rules"
	"github.com/branchwork/rulecase/internal/types"
)

/*
 * Rule store.
 *
 * CRUD over named rule expressions plus execution of generated CASE-WHEN
 * fragments. Expressions are validated at the write boundary: syntax via
 * the parser, resource limits via the types constants. Enforcing limits at
 * creation time keeps evaluation-time cost bounded; an expression that made
 * it into the store is known to parse and to stay within limits.
 *
 * Timestamps are stored as RFC3339 text to behave identically under the
 * sqlite3 and postgres drivers.
 */

// StoredRule is a persisted rule row.
type StoredRule struct {
	RuleID     types.RuleID `db:"rule_id" json:"ruleId"`
	Name       string       `db:"name" json:"name"`
	Expression string       `db:"expression" json:"expression"`
	CreatedAt  string       `db:"created_at" json:"createdAt"`
	UpdatedAt  string       `db:"updated_at" json:"updatedAt"`
}

// Store persists rules and runs fragments against the connected database.
type Store struct {
	db *sqlx.DB
	q  *Queries
}

// New wraps an open database connection. The schema must already be
// migrated (MigrateUp).
func New(db *sqlx.DB) (*Store, error) {
	q, err := LoadQueries(db)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, q: q}, nil
}

// Create validates and persists a new rule, returning the stored row.
func (s *Store) Create(name, expression string) (StoredRule, error) {
	if err := validateName(name); err != nil {
		return StoredRule{}, err
	}
	if err := ValidateExpression(expression); err != nil {
		return StoredRule{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	row := StoredRule{
		RuleID:     types.NewRuleID(),
		Name:       name,
		Expression: expression,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.q.Exec("create-rule", row.RuleID, row.Name, row.Expression, row.CreatedAt, row.UpdatedAt); err != nil {
		return StoredRule{}, fmt.Errorf("failed to create rule: %w", err)
	}
	return row, nil
}

// Get fetches a rule by ID.
func (s *Store) Get(id types.RuleID) (StoredRule, error) {
	var row StoredRule
	if err := s.q.Get("get-rule", &row, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredRule{}, types.ErrRuleNotFound
		}
		return StoredRule{}, fmt.Errorf("failed to get rule: %w", err)
	}
	return row, nil
}

// GetByName fetches a rule by its unique name.
func (s *Store) GetByName(name string) (StoredRule, error) {
	var row StoredRule
	if err := s.q.Get("get-rule-by-name", &row, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredRule{}, types.ErrRuleNotFound
		}
		return StoredRule{}, fmt.Errorf("failed to get rule: %w", err)
	}
	return row, nil
}

// List returns all rules ordered by ID (UUIDv7, so creation order).
func (s *Store) List() ([]StoredRule, error) {
	var out []StoredRule
	if err := s.q.Select("list-rules", &out); err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	return out, nil
}

// Update replaces a rule's name and expression.
func (s *Store) Update(id types.RuleID, name, expression string) (StoredRule, error) {
	if err := validateName(name); err != nil {
		return StoredRule{}, err
	}
	if err := ValidateExpression(expression); err != nil {
		return StoredRule{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.q.Exec("update-rule", name, expression, now, id)
	if err != nil {
		return StoredRule{}, fmt.Errorf("failed to update rule: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return StoredRule{}, types.ErrRuleNotFound
	}
	return s.Get(id)
}

// Delete removes a rule by ID.
func (s *Store) Delete(id types.RuleID) error {
	res, err := s.q.Exec("delete-rule", id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return types.ErrRuleNotFound
	}
	return nil
}

// RunFragment executes a generated CASE-WHEN selection fragment and returns
// the first result column, one entry per table row. NULL results map to "".
//
// The fragment text is passed through verbatim; whether the dialect accepts
// the expression grammar's token spellings is the caller's concern.
func (s *Store) RunFragment(fragment string) ([]string, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, types.ErrEmptyExpression
	}

	rows, err := s.db.Query(fragment)
	if err != nil {
		return nil, fmt.Errorf("fragment execution failed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v.String)
	}
	return out, rows.Err()
}

// ValidateExpression enforces syntax and resource limits on expression text
// entering the store. Parsing itself is permissive; these limits apply only
// at the persistence boundary.
func ValidateExpression(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return types.ErrEmptyExpression
	}
	if len(expression) > types.MaxExpressionLength {
		return types.ErrExpressionTooLong
	}

	ast, err := expr.Parse(expression)
	if err != nil {
		return err
	}

	rule, _ := rules.Extract(ast, nil)
	if len(rule.If) > types.MaxConditionTerms {
		return types.ErrTooManyConditionTerms
	}
	for _, st := range rule.If {
		if st.Operator == types.OpContainsSet &&
			strings.Count(st.Value, ",")+1 > types.MaxSetMembers {
			return types.ErrTooManySetMembers
		}
	}
	return nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("rule name cannot be empty")
	}
	if len(name) > types.MaxRuleNameLength {
		return types.ErrRuleNameTooLong
	}
	return nil
}
