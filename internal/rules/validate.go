// internal/rules/validate.go
package rules

import (
	"fmt"

	"github.com/branchwork/rulecase/internal/types"
)

// ValidateLiteral checks literal text against the safe-character whitelist:
// letters, digits, space, comma, period, underscore, hyphen. Called by the
// serializer for every literal it emits, never by the parser.
func ValidateLiteral(value string) error {
	for _, r := range value {
		if !safeLiteralChar(r) {
			return fmt.Errorf("%w: %q", types.ErrUnsafeLiteralValue, value)
		}
	}
	return nil
}

func safeLiteralChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ' || r == ',' || r == '.' || r == '_' || r == '-':
		return true
	}
	return false
}
