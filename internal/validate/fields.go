// fields.go implements validation of the invalid_fields attribute.
//
// The attribute holds a restriction list: the tag variables of a paper that
// are known to hold bad data. Two storage forms exist - a "|"-joined string
// (CSV, database) and an already-split sequence (JSON) - so there are two
// entry points sharing one per-token check.
//
// Design: split, filter and check are separate pure steps so each failure
// mode stays isolable in tests. Absence of restriction data is never itself
// an error: empty and whitespace-only values validate clean.

package validate

import (
	"fmt"
	"regexp"
	"strings"
)

// identifierRe matches a legal tag variable name: letter or underscore
// first, then letters, digits or underscores. Legacy values (comma-joined
// lists, bare order numbers) can never match.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Variables is the set of configured tag variable names. A nil or empty set
// requests shape-only validation; a populated set additionally requires
// every token to be a member. Callers build it from the tag configuration.
type Variables map[string]struct{}

// NewVariables builds a Variables set from a list of names.
func NewVariables(names []string) Variables {
	v := make(Variables, len(names))
	for _, n := range names {
		v[n] = struct{}{}
	}
	return v
}

// Fields validates a "|"-joined invalid_fields value.
//
// An empty or whitespace-only value is valid: it simply means no fields are
// restricted. Otherwise the value is split on "|", empty tokens are dropped
// (tolerating trailing or doubled separators like "doi|" and "doi||title"),
// and each remaining token is checked in order. The first failing token
// determines the error.
func Fields(value string, allowed Variables) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return FieldList(SplitFields(value), allowed)
}

// FieldList validates an already-split invalid_fields sequence. Elements
// are single tokens; no further splitting is applied, but empty and
// whitespace-only elements are still ignored.
func FieldList(tokens []string, allowed Variables) error {
	for _, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		if err := checkToken(tok, allowed); err != nil {
			return err
		}
	}
	return nil
}

// SplitFields splits a "|"-joined value into trimmed, non-empty tokens.
// Also used by the update-file adapters so splitting stays in one place.
func SplitFields(value string) []string {
	var out []string
	for _, part := range strings.Split(value, "|") {
		if tok := strings.TrimSpace(part); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// checkToken applies the per-token rules in order, short-circuiting at the
// first failure. Shape before membership: a malformed token should report
// as malformed even when it also isn't configured.
func checkToken(tok string, allowed Variables) error {
	if err := Identifier(tok); err != nil {
		return err
	}
	if len(allowed) > 0 {
		if _, ok := allowed[tok]; !ok {
			return fmt.Errorf("%w: %q is not a configured tag variable", ErrUnknownVariable, tok)
		}
	}
	return nil
}

// Identifier validates a single tag variable name against the identifier
// pattern. Commas, hyphens, leading digits and embedded whitespace all fail
// here, which is what turns legacy comma-joined or order-number values into
// a clear diagnostic instead of silent acceptance.
func Identifier(name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("%w: %q is not a legal identifier", ErrIllegalIdentifier, name)
	}
	return nil
}
