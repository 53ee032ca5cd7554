package resolve

import (
	"errors"
	"fmt"
)

// IdentityError reports a structurally invalid artifact identity.
type IdentityError struct {
	// Identity is the rejected identity.
	Identity Identity

	// Reason describes what made the identity invalid.
	Reason string
}

// Error implements the error interface.
func (e *IdentityError) Error() string {
	return fmt.Sprintf("invalid artifact identity %q: %s", e.Identity.String(), e.Reason)
}

// UnknownCellError reports an artifact referencing a cell the context
// has no root mapping for.
type UnknownCellError struct {
	// Cell is the unmapped cell name.
	Cell string
}

// Error implements the error interface.
func (e *UnknownCellError) Error() string {
	return fmt.Sprintf("unknown cell %q: no root configured", e.Cell)
}

// SeparatorError reports an unrecognized path separator configuration value.
type SeparatorError struct {
	// Value is the rejected configuration string.
	Value string
}

// Error implements the error interface.
func (e *SeparatorError) Error() string {
	return fmt.Sprintf("unknown path separator %q (expected %q or %q)", e.Value, SeparatorUnix, SeparatorWindows)
}

// IsUnknownCell returns true if the error is an unknown-cell lookup failure.
func IsUnknownCell(err error) bool {
	var e *UnknownCellError
	return errors.As(err, &e)
}

// IsInvalidIdentity returns true if the error is a structural identity failure.
func IsInvalidIdentity(err error) bool {
	var e *IdentityError
	return errors.As(err, &e)
}
