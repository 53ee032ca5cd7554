package cmdargs

import (
	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/resolve"
)

// Builder accumulates the ordered argument strings produced during
// resolution. Item order and the order of an item's expanded strings are
// preserved end-to-end; nothing is reordered, deduplicated, or merged.
type Builder struct {
	args []string
}

// NewBuilder returns an empty argument accumulator.
func NewBuilder() *Builder {
	return &Builder{}
}

// Push appends a single resolved argument.
func (b *Builder) Push(arg string) {
	b.args = append(b.args, arg)
}

// Len reports the number of arguments accumulated so far.
func (b *Builder) Len() int {
	return len(b.args)
}

// Args returns the accumulated argument strings in emission order.
func (b *Builder) Args() []string {
	return b.args
}

// AppendValue expands one command-line item into cli. Lists and tuples
// flatten recursively with no depth limit; anything else dispatches
// through the argument-like capability, and absence of the capability is
// an InvalidItemTypeError.
func AppendValue(cli *Builder, v starlark.Value, rctx *resolve.Context) error {
	switch seq := v.(type) {
	case *starlark.List:
		for i := 0; i < seq.Len(); i++ {
			if err := AppendValue(cli, seq.Index(i), rctx); err != nil {
				return err
			}
		}
		return nil
	case starlark.Tuple:
		for _, elem := range seq {
			if err := AppendValue(cli, elem, rctx); err != nil {
				return err
			}
		}
		return nil
	}
	al, err := AsArgLikeErr(v)
	if err != nil {
		return err
	}
	return al.AppendCommandLine(cli, rctx)
}

// Resolve renders any argument-like value to its final argument list.
func Resolve(v starlark.Value, rctx *resolve.Context) ([]string, error) {
	cli := NewBuilder()
	if err := AppendValue(cli, v, rctx); err != nil {
		return nil, err
	}
	return cli.Args(), nil
}
