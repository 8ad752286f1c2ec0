// internal/rules/serialize_test.go
package rules

import (
	"errors"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/branchwork/rulecase/internal/expr"
	"github.com/branchwork/rulecase/internal/types"
)

func TestSerialize_ReproducesOriginalText(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"simple equality", "status == 'active' ? 'enabled' : 'disabled'"},
		{"logical chain", "age > '18' and country == 'US' ? 'eligible' : 'ineligible'"},
		{"contains set", "role.contains({'admin','owner'}) ? 'privileged' : 'standard'"},
		{"contains substring", "name.contains('smith') ? 'match' : 'none'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, _ := Extract(mustParse(t, tt.input), nil)

			got, err := Serialize(rule)
			if err != nil {
				t.Fatalf("Serialize() error = %v, want nil", err)
			}
			if got != tt.input {
				t.Errorf("Serialize() = %q, want %q", got, tt.input)
			}
		})
	}
}

func TestSerialize_IncompleteThenGroup(t *testing.T) {
	rule := types.StructuredRule{
		If:   types.StatementGroup{{Field: "status", Operator: types.OpEquals, Value: "active"}},
		Then: types.StatementGroup{{}}, // no operator, no value
		Else: types.StatementGroup{{Value: "off"}},
	}

	got, err := Serialize(rule)
	if err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if got != "" {
		t.Errorf("Serialize() = %q, want empty string for incomplete then group", got)
	}
}

func TestSerialize_IncompleteIfGroup(t *testing.T) {
	rule := types.StructuredRule{
		Then: types.StatementGroup{{Value: "on"}},
		Else: types.StatementGroup{{Value: "off"}},
	}

	got, err := Serialize(rule)
	if err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if got != "" {
		t.Errorf("Serialize() = %q, want empty string for missing if group", got)
	}
}

func TestSerialize_DefaultsElseToNull(t *testing.T) {
	rule := types.StructuredRule{
		If:   types.StatementGroup{{Field: "status", Operator: types.OpEquals, Value: "active"}},
		Then: types.StatementGroup{{Value: "on"}},
	}

	got, err := Serialize(rule)
	if err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if want := "status == 'active' ? 'on' : null"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_UnsafeLiteralFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		rule types.StructuredRule
	}{
		{
			"quote in comparison value",
			types.StructuredRule{
				If:   types.StatementGroup{{Field: "a", Operator: types.OpEquals, Value: "x' OR '1'='1"}},
				Then: types.StatementGroup{{Value: "on"}},
			},
		},
		{
			"semicolon in branch value",
			types.StructuredRule{
				If:   types.StatementGroup{{Field: "a", Operator: types.OpEquals, Value: "x"}},
				Then: types.StatementGroup{{Value: "on; DROP TABLE rules"}},
			},
		},
		{
			"backslash in set member",
			types.StructuredRule{
				If:   types.StatementGroup{{Field: "a", Operator: types.OpContainsSet, Value: `ok,bad\member`}},
				Then: types.StatementGroup{{Value: "on"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.rule)
			if !errors.Is(err, types.ErrUnsafeLiteralValue) {
				t.Fatalf("Serialize() error = %v, want ErrUnsafeLiteralValue", err)
			}
			if got != "" {
				t.Errorf("Serialize() = %q, want no partial output", got)
			}
		})
	}
}

func TestSerialize_MissingConnectiveDefaultsToAnd(t *testing.T) {
	// Hand-built rules may omit the connective on follow-up statements.
	rule := types.StructuredRule{
		If: types.StatementGroup{
			{Field: "a", Operator: types.OpEquals, Value: "1"},
			{Field: "b", Operator: types.OpEquals, Value: "2"},
		},
		Then: types.StatementGroup{{Value: "on"}},
		Else: types.StatementGroup{{Value: "off"}},
	}

	got, err := Serialize(rule)
	if err != nil {
		t.Fatalf("Serialize() error = %v, want nil", err)
	}
	if want := "a == '1' and b == '2' ? 'on' : 'off'"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

// Round trip: any rule whose literals satisfy the whitelist survives
// serialize -> parse -> extract with identical statements and connectives.
func TestSerialize_RoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	ops := []types.Operator{
		types.OpEquals, types.OpNotEquals,
		types.OpGreaterThan, types.OpLessThan,
		types.OpContainsSubstring, types.OpContainsSet,
	}

	properties.Property("extract(parse(serialize(rule))) == rule", prop.ForAll(
		func(fields []string, opIdx []int, vals []string, useOr []bool, terms int, thenVal, elseVal string) bool {
			rule := types.StructuredRule{
				Then: types.StatementGroup{{Value: thenVal}},
				Else: types.StatementGroup{{Value: elseVal}},
			}
			for i := 0; i < terms; i++ {
				st := types.Statement{
					Field:    fields[i],
					Operator: ops[opIdx[i]],
					Value:    vals[i],
				}
				if st.Operator == types.OpContainsSet {
					// Members must be comma-free to round trip
					st.Value = vals[i] + "," + fields[i]
				}
				if i > 0 {
					st.LogicalOperator = types.LogicalAnd
					if useOr[i] {
						st.LogicalOperator = types.LogicalOr
					}
				}
				rule.If = append(rule.If, st)
			}

			text, err := Serialize(rule)
			if err != nil || text == "" {
				return false
			}
			ast, err := expr.Parse(text)
			if err != nil {
				return false
			}
			got, _ := Extract(ast, nil)
			return reflect.DeepEqual(got, rule)
		},
		gen.SliceOfN(3, gen.Identifier()),
		gen.SliceOfN(3, gen.IntRange(0, len(ops)-1)),
		gen.SliceOfN(3, gen.Identifier()),
		gen.SliceOfN(3, gen.Bool()),
		gen.IntRange(1, 3),
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
