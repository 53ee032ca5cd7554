package cmdargs

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/resolve"
)

// CommandLine is the cmd_args Starlark value: an ordered sequence of
// argument-like items plus rendering modifiers. It is mutable while the
// enclosing rule evaluates and becomes permanently immutable when frozen;
// a frozen CommandLine is freely shareable across concurrent resolutions.
type CommandLine struct {
	items  []starlark.Value
	opts   Options
	frozen bool
}

var (
	_ starlark.Value    = (*CommandLine)(nil)
	_ starlark.HasAttrs = (*CommandLine)(nil)
	_ ArgLike           = (*CommandLine)(nil)
	_ FrozenArgLike     = (*CommandLine)(nil)
)

// NewCommandLine creates a mutable command line from initial items and
// rendering options. Items are validated at use time: resolution, not
// construction, rejects values without the argument-like capability.
func NewCommandLine(items []starlark.Value, opts Options) *CommandLine {
	return &CommandLine{items: append([]starlark.Value(nil), items...), opts: opts}
}

// Add appends further items. It fails once the value is frozen.
func (c *CommandLine) Add(items ...starlark.Value) error {
	if c.frozen {
		return &FrozenMutationError{}
	}
	c.items = append(c.items, items...)
	return nil
}

// Options returns the rendering modifiers, for inspection.
func (c *CommandLine) Options() Options {
	return c.opts
}

// Len reports the number of items added so far.
func (c *CommandLine) Len() int {
	return len(c.items)
}

// String implements starlark.Value.
func (c *CommandLine) String() string {
	var sb strings.Builder
	sb.WriteString("cmd_args(")
	for i, item := range c.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Type implements starlark.Value.
func (c *CommandLine) Type() string { return "cmd_args" }

// Freeze implements starlark.Value. The transition is one-directional:
// there is no way back to the mutable state.
func (c *CommandLine) Freeze() {
	if c.frozen {
		return
	}
	c.frozen = true
	for _, item := range c.items {
		item.Freeze()
	}
}

// Frozen reports whether the value has been frozen.
func (c *CommandLine) Frozen() bool { return c.frozen }

// Truth implements starlark.Value.
func (c *CommandLine) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (c *CommandLine) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: cmd_args")
}

// Attr implements starlark.HasAttrs.
func (c *CommandLine) Attr(name string) (starlark.Value, error) {
	if name == "add" {
		return starlark.NewBuiltin("add", c.addMethod), nil
	}
	return nil, nil
}

// AttrNames implements starlark.HasAttrs.
func (c *CommandLine) AttrNames() []string {
	return []string{"add"}
}

func (c *CommandLine) addMethod(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", b.Name())
	}
	if err := c.Add(args...); err != nil {
		return nil, err
	}
	return c, nil
}

// AppendCommandLine implements ArgLike: the resolution algorithm. Items
// expand in insertion order, then per item: format each string, join with
// the delimiter, emit the prepend token before each resulting argument,
// and quote everything emitted.
func (c *CommandLine) AppendCommandLine(cli *Builder, rctx *resolve.Context) error {
	for pos, item := range c.items {
		scratch := NewBuilder()
		if err := AppendValue(scratch, item, rctx); err != nil {
			return fmt.Errorf("cmd_args item %d: %w", pos, err)
		}
		rendered := scratch.Args()
		if c.opts.Format != nil {
			for i, s := range rendered {
				rendered[i] = applyFormat(*c.opts.Format, s)
			}
		}
		if c.opts.Delimiter != nil && len(rendered) > 0 {
			rendered = []string{strings.Join(rendered, *c.opts.Delimiter)}
		}
		for _, arg := range rendered {
			if c.opts.Prepend != nil {
				pre, err := c.opts.Quote.Apply(*c.opts.Prepend)
				if err != nil {
					return err
				}
				cli.Push(pre)
			}
			quoted, err := c.opts.Quote.Apply(arg)
			if err != nil {
				return err
			}
			cli.Push(quoted)
		}
	}
	return nil
}

// AppendFrozenCommandLine implements FrozenArgLike. Resolution of a frozen
// value is identical to its pre-freeze form.
func (c *CommandLine) AppendFrozenCommandLine(cli *Builder, rctx *resolve.Context) error {
	return c.AppendCommandLine(cli, rctx)
}
