package cmdargs

import (
	"reflect"
	"testing"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/resolve"
)

func testContext() *resolve.Context {
	fs := resolve.NewArtifactFS(map[string]string{"root": ""}, "")
	return resolve.NewContext(fs, resolve.SeparatorUnix)
}

func strPtr(s string) *string { return &s }

func list(elems ...string) *starlark.List {
	vals := make([]starlark.Value, len(elems))
	for i, s := range elems {
		vals[i] = starlark.String(s)
	}
	return starlark.NewList(vals)
}

func render(t *testing.T, cl *CommandLine) []string {
	t.Helper()
	args, err := Resolve(cl, testContext())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return args
}

func TestCommandLine_Resolve(t *testing.T) {
	tests := []struct {
		name  string
		items []starlark.Value
		opts  Options
		want  []string
	}{
		{
			name:  "literal strings",
			items: []starlark.Value{starlark.String("--foo"), starlark.String("bar")},
			want:  []string{"--foo", "bar"},
		},
		{
			name:  "empty command line",
			items: nil,
			want:  nil,
		},
		{
			name:  "list flattens",
			items: []starlark.Value{list("a", "b"), starlark.String("c")},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "nested list flattens recursively",
			items: []starlark.Value{starlark.NewList([]starlark.Value{list("a"), list("b", "c")})},
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "delimiter joins one item's strings",
			items: []starlark.Value{list("a", "b")},
			opts:  Options{Delimiter: strPtr("")},
			want:  []string{"ab"},
		},
		{
			name:  "delimiter applies per item",
			items: []starlark.Value{list("a", "b"), list("c", "d")},
			opts:  Options{Delimiter: strPtr(",")},
			want:  []string{"a,b", "c,d"},
		},
		{
			name:  "format on a single string",
			items: []starlark.Value{starlark.String("v")},
			opts:  Options{Format: strPtr("--args={}")},
			want:  []string{"--args=v"},
		},
		{
			name:  "format applies per rendered string",
			items: []starlark.Value{list("a", "b")},
			opts:  Options{Format: strPtr("--args={}")},
			want:  []string{"--args=a", "--args=b"},
		},
		{
			name:  "format before delimiter",
			items: []starlark.Value{list("a", "b")},
			opts:  Options{Format: strPtr("[{}]"), Delimiter: strPtr(",")},
			want:  []string{"[a],[b]"},
		},
		{
			name:  "prepend precedes each rendered argument",
			items: []starlark.Value{list("inc1", "inc2")},
			opts:  Options{Prepend: strPtr("-I")},
			want:  []string{"-I", "inc1", "-I", "inc2"},
		},
		{
			name:  "prepend with delimiter yields one pair per item",
			items: []starlark.Value{list("a", "b")},
			opts:  Options{Prepend: strPtr("-D"), Delimiter: strPtr(",")},
			want:  []string{"-D", "a,b"},
		},
		{
			name:  "shell quote escapes whitespace",
			items: []starlark.Value{starlark.String("a b")},
			opts:  Options{Quote: QuoteShell},
			want:  []string{"'a b'"},
		},
		{
			name:  "shell quote after format and delimiter",
			items: []starlark.Value{list("a", "b")},
			opts:  Options{Format: strPtr("{} "), Delimiter: strPtr(""), Quote: QuoteShell},
			want:  []string{"'a b '"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := NewCommandLine(tt.items, tt.opts)
			got := render(t, cl)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandLine_NestedCommandLine(t *testing.T) {
	inner := NewCommandLine([]starlark.Value{starlark.String("sub1"), starlark.String("sub2")}, Options{})
	outer := NewCommandLine([]starlark.Value{starlark.String("tool"), inner}, Options{})

	got := render(t, outer)
	want := []string{"tool", "sub1", "sub2"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestCommandLine_NestedModifiersDoNotLeak(t *testing.T) {
	// The inner value's format applies to its own strings; the outer
	// delimiter then joins the inner expansion as one item.
	inner := NewCommandLine([]starlark.Value{list("a", "b")}, Options{Format: strPtr("<{}>")})
	outer := NewCommandLine([]starlark.Value{inner}, Options{Delimiter: strPtr(",")})

	got := render(t, outer)
	want := []string{"<a>,<b>"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestCommandLine_InvalidItemType(t *testing.T) {
	cl := NewCommandLine([]starlark.Value{starlark.MakeInt(42)}, Options{})
	_, err := Resolve(cl, testContext())
	if err == nil {
		t.Fatal("expected error for numeric item")
	}
	if !IsInvalidItemType(err) {
		t.Errorf("expected InvalidItemTypeError, got %v", err)
	}
}

func TestCommandLine_Determinism(t *testing.T) {
	cl := NewCommandLine([]starlark.Value{list("a", "b"), starlark.String("c")}, Options{Format: strPtr("({})"), Prepend: strPtr("-x")})
	rctx := testContext()

	first, err := Resolve(cl, rctx)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Resolve(cl, rctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat resolution differs: %q vs %q", first, second)
	}
}

func TestCommandLine_FreezeSemantics(t *testing.T) {
	cl := NewCommandLine([]starlark.Value{starlark.String("a")}, Options{})

	before := render(t, cl)

	if _, ok := AsFrozenArgLike(cl); ok {
		t.Error("mutable command line should not dispatch as frozen")
	}

	cl.Freeze()
	if !cl.Frozen() {
		t.Fatal("Freeze() did not freeze")
	}

	after := render(t, cl)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("frozen resolution differs: %q vs %q", before, after)
	}

	if err := cl.Add(starlark.String("b")); err == nil {
		t.Error("Add on frozen command line should fail")
	}

	frozen, ok := AsFrozenArgLike(cl)
	if !ok {
		t.Fatal("frozen command line should dispatch as frozen")
	}
	cli := NewBuilder()
	if err := frozen.AppendFrozenCommandLine(cli, testContext()); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cli.Args(), before) {
		t.Errorf("frozen dispatch rendered %q, want %q", cli.Args(), before)
	}
}

func TestAsArgLike_Dispatch(t *testing.T) {
	if _, ok := AsArgLike(starlark.String("s")); !ok {
		t.Error("string should dispatch")
	}
	if _, ok := AsArgLike(NewCommandLine(nil, Options{})); !ok {
		t.Error("command line should dispatch")
	}
	if _, ok := AsArgLike(NewRunInfo(nil)); !ok {
		t.Error("run info should dispatch")
	}
	if _, ok := AsArgLike(starlark.MakeInt(1)); ok {
		t.Error("int should not dispatch")
	}
	if _, ok := AsArgLike(starlark.None); ok {
		t.Error("None should not dispatch")
	}

	_, err := AsArgLikeErr(starlark.MakeInt(1))
	if !IsInvalidItemType(err) {
		t.Errorf("expected InvalidItemTypeError, got %v", err)
	}
}

func TestRunInfo_Rendering(t *testing.T) {
	args := NewCommandLine([]starlark.Value{starlark.String("bin"), starlark.String("--flag")}, Options{})
	ri := NewRunInfo(args)

	cl := NewCommandLine([]starlark.Value{ri}, Options{})
	got := render(t, cl)
	want := []string{"bin", "--flag"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}

	// An argless RunInfo renders to nothing.
	empty := NewCommandLine([]starlark.Value{NewRunInfo(nil)}, Options{})
	if got := render(t, empty); len(got) != 0 {
		t.Errorf("empty RunInfo rendered %q", got)
	}

	if _, ok := AsFrozenArgLike(ri); ok {
		t.Error("mutable RunInfo should not dispatch as frozen")
	}
	ri.Freeze()
	if _, ok := AsFrozenArgLike(ri); !ok {
		t.Error("frozen RunInfo should dispatch as frozen")
	}
	if !args.Frozen() {
		t.Error("freezing RunInfo should freeze its args")
	}
}
