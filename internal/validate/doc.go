// Package validate provides input validation for papertrack's domain values.
//
// This package enforces data integrity rules at the boundary between user
// input (CSV/JSON update files, CLI arguments) and the storage layer. Each
// validation function returns nil on success or a descriptive error on
// failure.
//
// # Design Philosophy
//
// Malformed input is the expected, first-class outcome of these functions,
// never a fault: validators report it through their error return and callers
// fold the messages into a per-record report. Nothing here panics, blocks,
// or touches shared state, so every function is safe for concurrent use.
//
// # Validation Functions
//
// Fields and FieldList validate the invalid_fields attribute (a restriction
// list of tag variable names). Identifier checks a single variable name.
// DOI, URL and Authors validate the corresponding paper attributes.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrIllegalIdentifier, ErrUnknownVariable, etc.). Use errors.Is() for
// type-safe error checking:
//
//	if errors.Is(err, validate.ErrUnknownVariable) {
//	    // stale or mistyped tag configuration
//	}
package validate
