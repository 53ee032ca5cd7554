package interp

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/quarrybuild/quarry/pkg/cmdargs/tester"
)

func TestEvaluator_Evaluate(t *testing.T) {
	evaluator := NewEvaluator(5 * time.Second)
	ctx := context.Background()

	tests := []struct {
		name      string
		script    string
		checkFunc func(*testing.T, *Result)
		wantErr   bool
	}{
		{
			name: "simple command line",
			script: `
cmd = cmd_args("--foo", "bar")
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{"--foo", "bar"})
			},
		},
		{
			name: "artifacts resolve to paths",
			script: `
src = source_artifact("root", "lib", "a.c")
out = output_artifact("root", "lib", "liba.a")
cmd = cmd_args("cc", src, "-o", out)
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{
					"cc", "lib/a.c", "-o", "quarry-out/gen/root/lib/liba.a",
				})
			},
		},
		{
			name: "include flags built with prepend",
			script: `
includes = [
    label_relative_path("root", "include"),
    label_relative_path("toolchains", "cc/include"),
]
cmd = cmd_args(includes, prepend="-I")
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{
					"-I", "include", "-I", "toolchains/cc/include",
				})
			},
		},
		{
			name: "transitive set projection",
			script: `
leaf = tset(direct=[source_artifact("root", "dep", "d.c")])
deps = tset(direct=["--deps"], children=[leaf])
cmd = cmd_args(deps.project_args())
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{"--deps", "dep/d.c"})
			},
		},
		{
			name: "macro string and label",
			script: `
cmd = cmd_args(
    macro_str("--dep=", build_artifact("root", "lib", "liba.a")),
    label("root//lib:a"),
)
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{
					"--dep=quarry-out/gen/root/lib/liba.a", "root//lib:a",
				})
			},
		},
		{
			name: "run info nests inside cmd_args",
			script: `
tool = run_info(args=cmd_args(build_artifact("root", "bin", "tool"), "--color"))
cmd = cmd_args(tool, "input.txt")
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{
					"quarry-out/gen/root/bin/tool", "--color", "input.txt",
				})
			},
		},
		{
			name: "functions build command lines",
			script: `
def compile_flags(defines):
    return cmd_args(defines, format="-D{}")

cmd = compile_flags(["A", "B=2"])
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{"-DA", "-DB=2"})
			},
		},
		{
			name: "globals come out frozen and still resolve",
			script: `
cmd = cmd_args("a b", quote="shell")
`,
			checkFunc: func(t *testing.T, r *Result) {
				assertRenders(t, r, "cmd", []string{"'a b'"})
				// Resolution of the frozen global is repeatable.
				assertRenders(t, r, "cmd", []string{"'a b'"})
			},
		},
		{
			name: "syntax error",
			script: `
cmd = cmd_args(
`,
			wantErr: true,
		},
		{
			name: "construction-time quote failure",
			script: `
cmd = cmd_args("a", quote="backslash")
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := evaluator.Evaluate(ctx, "test.star", tt.script)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Evaluate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.checkFunc != nil {
				tt.checkFunc(t, result)
			}
		})
	}
}

func assertRenders(t *testing.T, r *Result, name string, want []string) {
	t.Helper()
	v, ok := r.Globals[name]
	if !ok {
		t.Fatalf("no global %q", name)
	}
	got, err := tester.GetArgs(v, tester.Context())
	if err != nil {
		t.Fatalf("GetArgs(%s) error = %v", name, err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("%s rendered %q, want %q", name, got, want)
	}
}

func TestEvaluator_Determinism(t *testing.T) {
	script := `
cmd = cmd_args(["a", "b"], format="({})", prepend="-x", delimiter=";")
`
	ctx := context.Background()

	var outputs [][]string
	for i := 0; i < 2; i++ {
		result, err := NewEvaluator(time.Second).Evaluate(ctx, "test.star", script)
		if err != nil {
			t.Fatal(err)
		}
		got, err := tester.GetArgs(result.Globals["cmd"], tester.Context())
		if err != nil {
			t.Fatal(err)
		}
		outputs = append(outputs, got)
	}
	if !reflect.DeepEqual(outputs[0], outputs[1]) {
		t.Errorf("independent evaluations differ: %q vs %q", outputs[0], outputs[1])
	}
}
