// Package tset provides transitive sets: shared, potentially huge
// dependency-set structures built once and referenced by many rules.
// A set is never copied into the command lines that use it; instead an
// args projection renders its elements in traversal order at resolution
// time.
package tset

import (
	"fmt"

	"go.starlark.net/starlark"
)

// TransitiveSet holds direct values plus child sets. The traversal order
// is fixed at construction: depth-first preorder, direct values before
// children, left to right. A child shared between several parents is
// visited once.
type TransitiveSet struct {
	direct   []starlark.Value
	children []*TransitiveSet
	frozen   bool
}

var (
	_ starlark.Value    = (*TransitiveSet)(nil)
	_ starlark.HasAttrs = (*TransitiveSet)(nil)
)

// New creates a transitive set from direct values and child sets.
func New(direct []starlark.Value, children []*TransitiveSet) *TransitiveSet {
	return &TransitiveSet{
		direct:   append([]starlark.Value(nil), direct...),
		children: append([]*TransitiveSet(nil), children...),
	}
}

// Traverse visits every element of the set in its defined order.
func (s *TransitiveSet) Traverse(fn func(v starlark.Value) error) error {
	seen := make(map[*TransitiveSet]bool)
	return s.traverse(seen, fn)
}

func (s *TransitiveSet) traverse(seen map[*TransitiveSet]bool, fn func(v starlark.Value) error) error {
	if seen[s] {
		return nil
	}
	seen[s] = true
	for _, v := range s.direct {
		if err := fn(v); err != nil {
			return err
		}
	}
	for _, child := range s.children {
		if err := child.traverse(seen, fn); err != nil {
			return err
		}
	}
	return nil
}

// String implements starlark.Value.
func (s *TransitiveSet) String() string {
	return fmt.Sprintf("<transitive_set direct=%d children=%d>", len(s.direct), len(s.children))
}

// Type implements starlark.Value.
func (s *TransitiveSet) Type() string { return "transitive_set" }

// Freeze implements starlark.Value.
func (s *TransitiveSet) Freeze() {
	if s.frozen {
		return
	}
	s.frozen = true
	for _, v := range s.direct {
		v.Freeze()
	}
	for _, child := range s.children {
		child.Freeze()
	}
}

// Frozen reports whether the set has been frozen.
func (s *TransitiveSet) Frozen() bool { return s.frozen }

// Truth implements starlark.Value.
func (s *TransitiveSet) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (s *TransitiveSet) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: transitive_set")
}

// Attr implements starlark.HasAttrs.
func (s *TransitiveSet) Attr(name string) (starlark.Value, error) {
	if name == "project_args" {
		return starlark.NewBuiltin("project_args", s.projectArgsMethod), nil
	}
	return nil, nil
}

// AttrNames implements starlark.HasAttrs.
func (s *TransitiveSet) AttrNames() []string {
	return []string{"project_args"}
}

func (s *TransitiveSet) projectArgsMethod(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) > 0 || len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected arguments", b.Name())
	}
	return &ArgsProjection{set: s}, nil
}
