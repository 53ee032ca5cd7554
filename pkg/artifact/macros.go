package artifact

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/cmdargs"
	"github.com/quarrybuild/quarry/pkg/resolve"
)

// MacroPart is one segment of a macro-substituted string: either a
// literal run of text or the location of an artifact.
type MacroPart struct {
	literal  string
	location *Artifact
}

// Literal creates a literal macro part.
func Literal(s string) MacroPart {
	return MacroPart{literal: s}
}

// Location creates a part that expands to an artifact's resolved path.
func Location(a *Artifact) MacroPart {
	return MacroPart{location: a}
}

// StringWithMacros is a macro-substituted attribute string, already
// resolved to its parts. On a command line it renders as the single
// string obtained by concatenating every part, with locations expanded
// against the resolution context.
type StringWithMacros struct {
	parts []MacroPart
}

var (
	_ starlark.Value        = (*StringWithMacros)(nil)
	_ cmdargs.ArgLike       = (*StringWithMacros)(nil)
	_ cmdargs.FrozenArgLike = (*StringWithMacros)(nil)
)

// NewStringWithMacros creates a macro string from its resolved parts.
func NewStringWithMacros(parts ...MacroPart) *StringWithMacros {
	return &StringWithMacros{parts: append([]MacroPart(nil), parts...)}
}

// String implements starlark.Value.
func (m *StringWithMacros) String() string {
	var sb strings.Builder
	sb.WriteString("<macro_str")
	for _, part := range m.parts {
		sb.WriteString(" ")
		if part.location != nil {
			sb.WriteString(part.location.String())
		} else {
			sb.WriteString(fmt.Sprintf("%q", part.literal))
		}
	}
	sb.WriteString(">")
	return sb.String()
}

// Type implements starlark.Value.
func (m *StringWithMacros) Type() string { return "string_with_macros" }

// Freeze implements starlark.Value.
func (m *StringWithMacros) Freeze() {}

// Frozen implements cmdargs.FrozenArgLike.
func (m *StringWithMacros) Frozen() bool { return true }

// Truth implements starlark.Value.
func (m *StringWithMacros) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (m *StringWithMacros) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: string_with_macros")
}

// AppendCommandLine implements cmdargs.ArgLike. The whole macro string
// yields exactly one argument.
func (m *StringWithMacros) AppendCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	var sb strings.Builder
	for _, part := range m.parts {
		if part.location != nil {
			path, err := rctx.PathFor(part.location.Identity())
			if err != nil {
				return err
			}
			sb.WriteString(path)
			continue
		}
		sb.WriteString(part.literal)
	}
	cli.Push(sb.String())
	return nil
}

// AppendFrozenCommandLine implements cmdargs.FrozenArgLike.
func (m *StringWithMacros) AppendFrozenCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return m.AppendCommandLine(cli, rctx)
}
