package cmdargs

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// QuoteStyle selects how rendered arguments are escaped. It is set once
// at construction and never changes afterwards.
type QuoteStyle string

const (
	// QuoteNone passes arguments through unchanged.
	QuoteNone QuoteStyle = ""

	// QuoteShell escapes each argument so it survives a POSIX shell's
	// word-splitting and expansion.
	QuoteShell QuoteStyle = "shell"
)

// ParseQuoteStyle converts the quote option string into a QuoteStyle.
// Unrecognized values fail at construction time, never at resolution.
func ParseQuoteStyle(s string) (QuoteStyle, error) {
	switch s {
	case string(QuoteShell):
		return QuoteShell, nil
	default:
		return QuoteNone, &QuoteStyleError{Value: s}
	}
}

// Apply escapes a single argument according to the quote style.
func (q QuoteStyle) Apply(arg string) (string, error) {
	switch q {
	case QuoteShell:
		quoted, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("cannot shell-quote argument: %w", err)
		}
		return quoted, nil
	default:
		return arg, nil
	}
}

// Options are the rendering modifiers of a command line. All four are
// optional; nil pointers and QuoteNone mean the modifier is absent.
type Options struct {
	// Delimiter joins an item's expanded strings into a single argument.
	// Absent means each expanded string is its own argument.
	Delimiter *string

	// Format is a template with a single {} substitution point, applied
	// to every rendered string before delimiting.
	Format *string

	// Prepend is a literal emitted as a separate argument before each
	// argument an item produces.
	Prepend *string

	// Quote selects the escaping applied to every emitted argument.
	Quote QuoteStyle
}

// applyFormat substitutes s at the template's substitution point.
func applyFormat(format, s string) string {
	return strings.Replace(format, "{}", s, 1)
}
