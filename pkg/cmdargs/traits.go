package cmdargs

import (
	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/resolve"
)

// ArgLike is implemented by every value kind that can contribute to a
// command line. AppendCommandLine expands the value into zero or more
// argument strings against the given context, pushing them onto cli in
// order. Implementations must be read-only with respect to the receiver:
// resolution is repeatable and may run concurrently over shared values.
type ArgLike interface {
	AppendCommandLine(cli *Builder, rctx *resolve.Context) error
}

// FrozenArgLike is the read-only counterpart of ArgLike, restricted to
// values that have reached the frozen lifecycle state. Resolution code
// holding values inside frozen providers dispatches through this
// capability so it never re-checks mutability per call.
type FrozenArgLike interface {
	// Frozen reports whether the value is in the frozen lifecycle state.
	// Kinds that are immutable from birth always report true.
	Frozen() bool

	AppendFrozenCommandLine(cli *Builder, rctx *resolve.Context) error
}

// stringArg adapts a literal string to both capability contracts.
type stringArg string

func (s stringArg) AppendCommandLine(cli *Builder, _ *resolve.Context) error {
	cli.Push(string(s))
	return nil
}

func (s stringArg) AppendFrozenCommandLine(cli *Builder, rctx *resolve.Context) error {
	return s.AppendCommandLine(cli, rctx)
}

func (s stringArg) Frozen() bool { return true }

// AsArgLike obtains the argument-like capability of a value, if any.
// Literal strings are handled first; every other kind opts in by
// implementing ArgLike, which is the open extension point for value kinds
// defined outside this package (artifacts, labels, projections, providers).
func AsArgLike(v starlark.Value) (ArgLike, bool) {
	if s, ok := v.(starlark.String); ok {
		return stringArg(s), true
	}
	if al, ok := v.(ArgLike); ok {
		return al, true
	}
	return nil, false
}

// AsArgLikeErr is the error-raising accessor: absence of the capability
// becomes an InvalidItemTypeError carrying the value's representation.
func AsArgLikeErr(v starlark.Value) (ArgLike, error) {
	al, ok := AsArgLike(v)
	if !ok {
		return nil, &InvalidItemTypeError{Repr: v.String()}
	}
	return al, nil
}

// AsFrozenArgLike obtains the frozen argument-like capability. Callers
// treat absence as "not a frozen command-line value"; they are expected
// to have validated the value through AsArgLikeErr already.
func AsFrozenArgLike(v starlark.Value) (FrozenArgLike, bool) {
	if s, ok := v.(starlark.String); ok {
		return stringArg(s), true
	}
	if f, ok := v.(FrozenArgLike); ok && f.Frozen() {
		return f, true
	}
	return nil, false
}
