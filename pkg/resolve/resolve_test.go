package resolve

import (
	"testing"
)

func TestContext_PathFor(t *testing.T) {
	fs := NewArtifactFS(map[string]string{
		"root":       "",
		"third-party": "third-party",
	}, "")

	tests := []struct {
		name    string
		sep     PathSeparator
		id      Identity
		want    string
		wantErr bool
	}{
		{
			name: "source artifact in root cell",
			sep:  SeparatorUnix,
			id:   Identity{Cell: "root", Package: "lib", Path: "a.c"},
			want: "lib/a.c",
		},
		{
			name: "source artifact in mapped cell",
			sep:  SeparatorUnix,
			id:   Identity{Cell: "third-party", Package: "zlib", Path: "inflate.c"},
			want: "third-party/zlib/inflate.c",
		},
		{
			name: "build output",
			sep:  SeparatorUnix,
			id:   Identity{Cell: "root", Package: "lib", Path: "liba.a", BuildOutput: true},
			want: "quarry-out/gen/root/lib/liba.a",
		},
		{
			name: "windows separator",
			sep:  SeparatorWindows,
			id:   Identity{Cell: "root", Package: "lib", Path: "a.c"},
			want: `lib\a.c`,
		},
		{
			name: "empty package",
			sep:  SeparatorUnix,
			id:   Identity{Cell: "root", Path: "README.md"},
			want: "README.md",
		},
		{
			name:    "unknown cell",
			sep:     SeparatorUnix,
			id:      Identity{Cell: "missing", Package: "x", Path: "y"},
			wantErr: true,
		},
		{
			name:    "empty cell",
			sep:     SeparatorUnix,
			id:      Identity{Path: "y"},
			wantErr: true,
		},
		{
			name:    "empty path",
			sep:     SeparatorUnix,
			id:      Identity{Cell: "root", Package: "lib"},
			wantErr: true,
		},
		{
			name:    "escaping path",
			sep:     SeparatorUnix,
			id:      Identity{Cell: "root", Path: "../etc/passwd"},
			wantErr: true,
		},
		{
			name:    "escaping package",
			sep:     SeparatorUnix,
			id:      Identity{Cell: "root", Package: "../..", Path: "etc/passwd"},
			wantErr: true,
		},
		{
			name:    "escaping package in build output",
			sep:     SeparatorUnix,
			id:      Identity{Cell: "root", Package: "lib/..", Path: "a.c", BuildOutput: true},
			wantErr: true,
		},
		{
			name:    "absolute package",
			sep:     SeparatorUnix,
			id:      Identity{Cell: "root", Package: "/lib", Path: "a.c"},
			wantErr: true,
		},
		{
			name: "dotted names are not traversal",
			sep:  SeparatorUnix,
			id:   Identity{Cell: "root", Package: "a..b", Path: "c..d"},
			want: "a..b/c..d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(fs, tt.sep)
			got, err := ctx.PathFor(tt.id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("PathFor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("PathFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContext_PathFor_ErrorClassification(t *testing.T) {
	ctx := NewContext(NewArtifactFS(map[string]string{"root": ""}, ""), SeparatorUnix)

	_, err := ctx.PathFor(Identity{Cell: "missing", Path: "x"})
	if !IsUnknownCell(err) {
		t.Errorf("expected unknown-cell error, got %v", err)
	}
	if IsInvalidIdentity(err) {
		t.Errorf("unknown cell should not classify as invalid identity")
	}

	_, err = ctx.PathFor(Identity{Cell: "root"})
	if !IsInvalidIdentity(err) {
		t.Errorf("expected invalid-identity error, got %v", err)
	}

	_, err = ctx.PathFor(Identity{Cell: "root", Package: "../..", Path: "etc/passwd"})
	if !IsInvalidIdentity(err) {
		t.Errorf("expected invalid-identity error for escaping package, got %v", err)
	}
}

func TestParsePathSeparator(t *testing.T) {
	tests := []struct {
		input   string
		want    PathSeparator
		wantErr bool
	}{
		{input: "", want: SeparatorUnix},
		{input: "unix", want: SeparatorUnix},
		{input: "windows", want: SeparatorWindows},
		{input: "dos", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePathSeparator(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePathSeparator(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePathSeparator(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIdentity_String(t *testing.T) {
	id := Identity{Cell: "root", Package: "lib", Path: "a.c"}
	if got := id.String(); got != "root//lib/a.c" {
		t.Errorf("String() = %q", got)
	}
	id = Identity{Cell: "root", Path: "README.md"}
	if got := id.String(); got != "root//README.md" {
		t.Errorf("String() = %q", got)
	}
}
