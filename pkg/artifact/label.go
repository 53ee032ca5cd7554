package artifact

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/cmdargs"
	"github.com/quarrybuild/quarry/pkg/resolve"
)

// Label is a build-target identity of the form cell//package:name.
// On a command line it renders as its display form.
type Label struct {
	Cell    string
	Package string
	Name    string
}

var (
	_ starlark.Value        = Label{}
	_ cmdargs.ArgLike       = Label{}
	_ cmdargs.FrozenArgLike = Label{}
)

// ParseLabel parses a cell//package:name target string.
func ParseLabel(s string) (Label, error) {
	cell, rest, ok := strings.Cut(s, "//")
	if !ok || cell == "" {
		return Label{}, fmt.Errorf("invalid label %q: expected cell//package:name", s)
	}
	pkg, name, ok := strings.Cut(rest, ":")
	if !ok || name == "" {
		return Label{}, fmt.Errorf("invalid label %q: missing target name", s)
	}
	return Label{Cell: cell, Package: pkg, Name: name}, nil
}

// String implements starlark.Value.
func (l Label) String() string {
	return l.Cell + "//" + l.Package + ":" + l.Name
}

// Type implements starlark.Value.
func (l Label) Type() string { return "label" }

// Freeze implements starlark.Value.
func (l Label) Freeze() {}

// Frozen implements cmdargs.FrozenArgLike.
func (l Label) Frozen() bool { return true }

// Truth implements starlark.Value.
func (l Label) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (l Label) Hash() (uint32, error) {
	return starlark.String(l.String()).Hash()
}

// AppendCommandLine implements cmdargs.ArgLike.
func (l Label) AppendCommandLine(cli *cmdargs.Builder, _ *resolve.Context) error {
	cli.Push(l.String())
	return nil
}

// AppendFrozenCommandLine implements cmdargs.FrozenArgLike.
func (l Label) AppendFrozenCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return l.AppendCommandLine(cli, rctx)
}

// LabelRelativePath is a path interpreted relative to a named cell root.
// It renders as the cell root joined with the path, honoring the
// context's separator convention.
type LabelRelativePath struct {
	Cell string
	Path string
}

var (
	_ starlark.Value        = LabelRelativePath{}
	_ cmdargs.ArgLike       = LabelRelativePath{}
	_ cmdargs.FrozenArgLike = LabelRelativePath{}
)

// String implements starlark.Value.
func (p LabelRelativePath) String() string {
	return fmt.Sprintf("<label_relative_path %s//%s>", p.Cell, p.Path)
}

// Type implements starlark.Value.
func (p LabelRelativePath) Type() string { return "label_relative_path" }

// Freeze implements starlark.Value.
func (p LabelRelativePath) Freeze() {}

// Frozen implements cmdargs.FrozenArgLike.
func (p LabelRelativePath) Frozen() bool { return true }

// Truth implements starlark.Value.
func (p LabelRelativePath) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (p LabelRelativePath) Hash() (uint32, error) {
	return starlark.String(p.Cell + "//" + p.Path).Hash()
}

// AppendCommandLine implements cmdargs.ArgLike.
func (p LabelRelativePath) AppendCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	path, err := rctx.PathFor(resolve.Identity{Cell: p.Cell, Path: p.Path})
	if err != nil {
		return err
	}
	cli.Push(path)
	return nil
}

// AppendFrozenCommandLine implements cmdargs.FrozenArgLike.
func (p LabelRelativePath) AppendFrozenCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return p.AppendCommandLine(cli, rctx)
}
