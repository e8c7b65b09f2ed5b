// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking. Each error represents a
// distinct validation failure category.
//
// ErrIllegalIdentifier and ErrUnknownVariable are deliberately distinct:
// the first indicates a corrupt or legacy value format, the second stale
// or mistyped tag configuration. Callers and users need to tell them apart.

package validate

import "errors"

var (
	ErrIllegalIdentifier = errors.New("illegal identifier")
	ErrUnknownVariable   = errors.New("unknown tag variable")
	ErrInvalidDOI        = errors.New("invalid doi")
	ErrInvalidURL        = errors.New("invalid url")
	ErrInvalidAuthors    = errors.New("invalid authors")
)
