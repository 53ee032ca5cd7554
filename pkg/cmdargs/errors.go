package cmdargs

import (
	"errors"
	"fmt"
)

// InvalidItemTypeError reports a value that was offered as a command-line
// item but does not carry the argument-like capability and is not a list
// thereof. It is never silently dropped: resolution fails and the caller
// aborts the rule or action being processed.
type InvalidItemTypeError struct {
	// Repr is the rejected value's textual representation, for diagnostics.
	Repr string
}

// Error implements the error interface.
func (e *InvalidItemTypeError) Error() string {
	return fmt.Sprintf("expected command line item to be a string, artifact, or label, or list thereof, not `%s`", e.Repr)
}

// QuoteStyleError reports an unrecognized quoting mode at construction time.
type QuoteStyleError struct {
	// Value is the rejected quote option string.
	Value string
}

// Error implements the error interface.
func (e *QuoteStyleError) Error() string {
	return fmt.Sprintf("unknown quoting style %q (the only valid value is %q)", e.Value, "shell")
}

// FrozenMutationError reports an attempted append to a frozen command line.
type FrozenMutationError struct{}

// Error implements the error interface.
func (e *FrozenMutationError) Error() string {
	return "cannot add to a frozen cmd_args value"
}

// IsInvalidItemType returns true if the error is an item-capability failure.
func IsInvalidItemType(err error) bool {
	var e *InvalidItemTypeError
	return errors.As(err, &e)
}
