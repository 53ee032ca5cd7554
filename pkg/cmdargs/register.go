package cmdargs

import (
	"fmt"

	"go.starlark.net/starlark"
)

// RegisterBuiltins installs the cmd_args and run_info constructors into a
// predeclared environment. This is the public surface rule authors see.
func RegisterBuiltins(env starlark.StringDict) {
	env["cmd_args"] = starlark.NewBuiltin("cmd_args", cmdArgsBuiltin)
	env["run_info"] = starlark.NewBuiltin("run_info", runInfoBuiltin)
}

// cmdArgsBuiltin implements cmd_args(*args, delimiter=None, format=None,
// prepend=None, quote=None). Positional items are captured unvalidated;
// the capability check happens when the value is resolved. The quote
// option is the exception: an unrecognized style fails here, at
// construction time.
func cmdArgsBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	opts := Options{}
	for _, kv := range kwargs {
		name := string(kv[0].(starlark.String))
		switch name {
		case "delimiter":
			s, err := unpackStringOption(b, name, kv[1])
			if err != nil {
				return nil, err
			}
			opts.Delimiter = s
		case "format":
			s, err := unpackStringOption(b, name, kv[1])
			if err != nil {
				return nil, err
			}
			opts.Format = s
		case "prepend":
			s, err := unpackStringOption(b, name, kv[1])
			if err != nil {
				return nil, err
			}
			opts.Prepend = s
		case "quote":
			s, err := unpackStringOption(b, name, kv[1])
			if err != nil {
				return nil, err
			}
			if s != nil {
				style, err := ParseQuoteStyle(*s)
				if err != nil {
					return nil, err
				}
				opts.Quote = style
			}
		default:
			return nil, fmt.Errorf("%s: unexpected keyword argument %q", b.Name(), name)
		}
	}
	return NewCommandLine(args, opts), nil
}

// runInfoBuiltin implements run_info(args=None).
func runInfoBuiltin(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var argsVal starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "args?", &argsVal); err != nil {
		return nil, err
	}
	return NewRunInfo(argsVal), nil
}

func unpackStringOption(b *starlark.Builtin, name string, v starlark.Value) (*string, error) {
	if v == starlark.None {
		return nil, nil
	}
	s, ok := starlark.AsString(v)
	if !ok {
		return nil, fmt.Errorf("%s: %s must be a string, got %s", b.Name(), name, v.Type())
	}
	return &s, nil
}
