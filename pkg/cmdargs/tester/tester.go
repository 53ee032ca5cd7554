// Package tester exposes diagnostic entry points for inspecting how a
// value renders on a command line. It exists for tests and debugging
// scripts; production action construction goes through cmdargs directly.
package tester

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/cmdargs"
	"github.com/quarrybuild/quarry/pkg/resolve"
)

// Context returns the fixed resolution context diagnostic scripts run
// against: a root cell at the project root plus a toolchains cell, the
// default output directory, unix separators.
func Context() *resolve.Context {
	fs := resolve.NewArtifactFS(map[string]string{
		"root":       "",
		"toolchains": "toolchains",
	}, resolve.DefaultOutputDir)
	return resolve.NewContext(fs, resolve.SeparatorUnix)
}

// GetArgs renders a value to its full ordered argument list.
func GetArgs(v starlark.Value, rctx *resolve.Context) ([]string, error) {
	al, err := cmdargs.AsArgLikeErr(v)
	if err != nil {
		return nil, err
	}
	cli := cmdargs.NewBuilder()
	if err := al.AppendCommandLine(cli, rctx); err != nil {
		return nil, err
	}
	return cli.Args(), nil
}

// StringifyArg renders a value expected to produce exactly one argument.
func StringifyArg(v starlark.Value, rctx *resolve.Context) (string, error) {
	args, err := GetArgs(v, rctx)
	if err != nil {
		return "", err
	}
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one argument, got %d", len(args))
	}
	return args[0], nil
}

// Builtins returns the get_args and stringify_cli_arg builtins bound to a
// resolution context, for use in diagnostic Starlark scripts.
func Builtins(rctx *resolve.Context) starlark.StringDict {
	return starlark.StringDict{
		"get_args": starlark.NewBuiltin("get_args", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var v starlark.Value
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v); err != nil {
				return nil, err
			}
			rendered, err := GetArgs(v, rctx)
			if err != nil {
				return nil, err
			}
			elems := make([]starlark.Value, len(rendered))
			for i, s := range rendered {
				elems[i] = starlark.String(s)
			}
			return starlark.NewList(elems), nil
		}),
		"stringify_cli_arg": starlark.NewBuiltin("stringify_cli_arg", func(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			var v starlark.Value
			if err := starlark.UnpackArgs(b.Name(), args, kwargs, "value", &v); err != nil {
				return nil, err
			}
			arg, err := StringifyArg(v, rctx)
			if err != nil {
				return nil, err
			}
			return starlark.String(arg), nil
		}),
	}
}
