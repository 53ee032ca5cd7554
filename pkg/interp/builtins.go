package interp

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/artifact"
	"github.com/quarrybuild/quarry/pkg/tset"
)

// registerValueBuiltins installs the constructors for build-graph value
// kinds: artifacts, labels, root-relative paths, macro strings, and
// transitive sets.
func registerValueBuiltins(env starlark.StringDict) {
	env["source_artifact"] = starlark.NewBuiltin("source_artifact", builtinSourceArtifact)
	env["build_artifact"] = starlark.NewBuiltin("build_artifact", builtinBuildArtifact)
	env["output_artifact"] = starlark.NewBuiltin("output_artifact", builtinOutputArtifact)
	env["label"] = starlark.NewBuiltin("label", builtinLabel)
	env["label_relative_path"] = starlark.NewBuiltin("label_relative_path", builtinLabelRelativePath)
	env["macro_str"] = starlark.NewBuiltin("macro_str", builtinMacroStr)
	env["tset"] = starlark.NewBuiltin("tset", builtinTset)
}

func unpackArtifactCoords(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (cell, pkg, path string, err error) {
	err = starlark.UnpackArgs(b.Name(), args, kwargs, "cell", &cell, "package", &pkg, "path", &path)
	return cell, pkg, path, err
}

// builtinSourceArtifact implements source_artifact(cell, package, path).
func builtinSourceArtifact(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	cell, pkg, path, err := unpackArtifactCoords(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return artifact.NewSource(cell, pkg, path), nil
}

// builtinBuildArtifact implements build_artifact(cell, package, path).
func builtinBuildArtifact(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	cell, pkg, path, err := unpackArtifactCoords(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	return artifact.NewBuild(cell, pkg, path), nil
}

// builtinOutputArtifact implements output_artifact(cell, package, path):
// a build artifact declared as an action output.
func builtinOutputArtifact(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	cell, pkg, path, err := unpackArtifactCoords(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	out, err := artifact.NewBuild(cell, pkg, path).AsOutput()
	if err != nil {
		return nil, err
	}
	return out, nil
}

// builtinLabel implements label("cell//package:name").
func builtinLabel(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var s string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "target", &s); err != nil {
		return nil, err
	}
	l, err := artifact.ParseLabel(s)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// builtinLabelRelativePath implements label_relative_path(cell, path).
func builtinLabelRelativePath(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var cell, path string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "cell", &cell, "path", &path); err != nil {
		return nil, err
	}
	return artifact.LabelRelativePath{Cell: cell, Path: path}, nil
}

// builtinMacroStr implements macro_str(*parts): parts are literal strings
// or artifacts whose resolved location is substituted in place.
func builtinMacroStr(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	parts := make([]artifact.MacroPart, 0, len(args))
	for i, v := range args {
		switch x := v.(type) {
		case starlark.String:
			parts = append(parts, artifact.Literal(string(x)))
		case *artifact.Artifact:
			parts = append(parts, artifact.Location(x))
		default:
			return nil, fmt.Errorf("%s: part %d must be a string or artifact, got %s", b.Name(), i, v.Type())
		}
	}
	return artifact.NewStringWithMacros(parts...), nil
}

// builtinTset implements tset(direct=None, children=None).
func builtinTset(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var directVal, childrenVal starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "direct?", &directVal, "children?", &childrenVal); err != nil {
		return nil, err
	}

	var direct []starlark.Value
	if directVal != nil && directVal != starlark.None {
		it, ok := directVal.(starlark.Iterable)
		if !ok {
			return nil, fmt.Errorf("%s: direct must be iterable, got %s", b.Name(), directVal.Type())
		}
		iter := it.Iterate()
		defer iter.Done()
		var x starlark.Value
		for iter.Next(&x) {
			direct = append(direct, x)
		}
	}

	var children []*tset.TransitiveSet
	if childrenVal != nil && childrenVal != starlark.None {
		it, ok := childrenVal.(starlark.Iterable)
		if !ok {
			return nil, fmt.Errorf("%s: children must be iterable, got %s", b.Name(), childrenVal.Type())
		}
		iter := it.Iterate()
		defer iter.Done()
		var x starlark.Value
		for iter.Next(&x) {
			child, ok := x.(*tset.TransitiveSet)
			if !ok {
				return nil, fmt.Errorf("%s: children must be transitive sets, got %s", b.Name(), x.Type())
			}
			children = append(children, child)
		}
	}

	return tset.New(direct, children), nil
}
