package cmdargs

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/resolve"
)

// RunInfo is the provider describing how to run a built target. As a
// command-line fragment it renders exactly as its args value does, which
// makes a RunInfo nestable anywhere a cmd_args item is accepted.
type RunInfo struct {
	args   starlark.Value
	frozen bool
}

var (
	_ starlark.Value    = (*RunInfo)(nil)
	_ starlark.HasAttrs = (*RunInfo)(nil)
	_ ArgLike           = (*RunInfo)(nil)
	_ FrozenArgLike     = (*RunInfo)(nil)
)

// NewRunInfo creates a RunInfo around an argument-like args value.
// A nil args yields an empty command line.
func NewRunInfo(args starlark.Value) *RunInfo {
	if args == nil || args == starlark.None {
		args = NewCommandLine(nil, Options{})
	}
	return &RunInfo{args: args}
}

// String implements starlark.Value.
func (r *RunInfo) String() string {
	return fmt.Sprintf("RunInfo(args=%s)", r.args.String())
}

// Type implements starlark.Value.
func (r *RunInfo) Type() string { return "RunInfo" }

// Freeze implements starlark.Value.
func (r *RunInfo) Freeze() {
	if r.frozen {
		return
	}
	r.frozen = true
	r.args.Freeze()
}

// Frozen reports whether the provider has been frozen.
func (r *RunInfo) Frozen() bool { return r.frozen }

// Truth implements starlark.Value.
func (r *RunInfo) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (r *RunInfo) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: RunInfo")
}

// Attr implements starlark.HasAttrs.
func (r *RunInfo) Attr(name string) (starlark.Value, error) {
	if name == "args" {
		return r.args, nil
	}
	return nil, nil
}

// AttrNames implements starlark.HasAttrs.
func (r *RunInfo) AttrNames() []string {
	return []string{"args"}
}

// AppendCommandLine implements ArgLike.
func (r *RunInfo) AppendCommandLine(cli *Builder, rctx *resolve.Context) error {
	return AppendValue(cli, r.args, rctx)
}

// AppendFrozenCommandLine implements FrozenArgLike.
func (r *RunInfo) AppendFrozenCommandLine(cli *Builder, rctx *resolve.Context) error {
	return r.AppendCommandLine(cli, rctx)
}
