package tset

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/cmdargs"
	"github.com/quarrybuild/quarry/pkg/resolve"
)

// ArgsProjection is a command-line view over a transitive set: it expands
// to the sequence obtained by resolving every element, in the set's
// traversal order. The projection holds a reference into the shared set
// and shares its lifecycle state.
type ArgsProjection struct {
	set *TransitiveSet
}

var (
	_ starlark.Value        = (*ArgsProjection)(nil)
	_ cmdargs.ArgLike       = (*ArgsProjection)(nil)
	_ cmdargs.FrozenArgLike = (*ArgsProjection)(nil)
)

// Set returns the projected set.
func (p *ArgsProjection) Set() *TransitiveSet { return p.set }

// String implements starlark.Value.
func (p *ArgsProjection) String() string {
	return fmt.Sprintf("<args projection of %s>", p.set.String())
}

// Type implements starlark.Value.
func (p *ArgsProjection) Type() string { return "transitive_set_args_projection" }

// Freeze implements starlark.Value. Freezing the projection freezes the
// underlying set.
func (p *ArgsProjection) Freeze() {
	p.set.Freeze()
}

// Frozen implements cmdargs.FrozenArgLike.
func (p *ArgsProjection) Frozen() bool { return p.set.Frozen() }

// Truth implements starlark.Value.
func (p *ArgsProjection) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (p *ArgsProjection) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: transitive_set_args_projection")
}

// AppendCommandLine implements cmdargs.ArgLike.
func (p *ArgsProjection) AppendCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return p.set.Traverse(func(v starlark.Value) error {
		return cmdargs.AppendValue(cli, v, rctx)
	})
}

// AppendFrozenCommandLine implements cmdargs.FrozenArgLike.
func (p *ArgsProjection) AppendFrozenCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return p.AppendCommandLine(cli, rctx)
}
