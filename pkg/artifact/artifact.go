// Package artifact defines the build-graph value kinds that can appear on
// a command line: source and build artifacts, declared-output wrappers,
// target labels, cell-root-relative paths, and macro-resolved strings.
// Each kind is a Starlark value implementing the cmdargs capabilities.
package artifact

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/quarrybuild/quarry/pkg/cmdargs"
	"github.com/quarrybuild/quarry/pkg/resolve"
)

// Artifact is a file in the build graph, identified by name only. During
// graph construction its location is nominal; the concrete path comes
// from the resolution context at render time. Artifacts are immutable
// from birth.
type Artifact struct {
	id resolve.Identity
}

var (
	_ starlark.Value        = (*Artifact)(nil)
	_ cmdargs.ArgLike       = (*Artifact)(nil)
	_ cmdargs.FrozenArgLike = (*Artifact)(nil)
)

// NewSource creates an artifact in the source tree of a cell.
func NewSource(cell, pkg, path string) *Artifact {
	return &Artifact{id: resolve.Identity{Cell: cell, Package: pkg, Path: path}}
}

// NewBuild creates an artifact produced by an action, living under the
// output directory.
func NewBuild(cell, pkg, path string) *Artifact {
	return &Artifact{id: resolve.Identity{Cell: cell, Package: pkg, Path: path, BuildOutput: true}}
}

// Identity returns the artifact's identity.
func (a *Artifact) Identity() resolve.Identity {
	return a.id
}

// IsBuildOutput reports whether the artifact is produced by an action.
func (a *Artifact) IsBuildOutput() bool {
	return a.id.BuildOutput
}

// AsOutput wraps the artifact as a declared output. Only build artifacts
// can be declared as outputs.
func (a *Artifact) AsOutput() (*OutputArtifact, error) {
	if !a.id.BuildOutput {
		return nil, fmt.Errorf("source artifact %s cannot be declared as an output", a.id.String())
	}
	return &OutputArtifact{inner: a}, nil
}

// String implements starlark.Value.
func (a *Artifact) String() string {
	kind := "source"
	if a.id.BuildOutput {
		kind = "build"
	}
	return fmt.Sprintf("<%s artifact %s>", kind, a.id.String())
}

// Type implements starlark.Value.
func (a *Artifact) Type() string { return "artifact" }

// Freeze implements starlark.Value. Artifacts carry no mutable state.
func (a *Artifact) Freeze() {}

// Frozen implements cmdargs.FrozenArgLike.
func (a *Artifact) Frozen() bool { return true }

// Truth implements starlark.Value.
func (a *Artifact) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (a *Artifact) Hash() (uint32, error) {
	return starlark.String(a.id.String()).Hash()
}

// AppendCommandLine implements cmdargs.ArgLike: an artifact renders as
// its resolved path.
func (a *Artifact) AppendCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	path, err := rctx.PathFor(a.id)
	if err != nil {
		return err
	}
	cli.Push(path)
	return nil
}

// AppendFrozenCommandLine implements cmdargs.FrozenArgLike.
func (a *Artifact) AppendFrozenCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return a.AppendCommandLine(cli, rctx)
}

// OutputArtifact marks an artifact as a declared output of the action the
// command line belongs to. It renders exactly like the wrapped artifact;
// the wrapper exists so action construction can tell outputs from inputs.
type OutputArtifact struct {
	inner *Artifact
}

var (
	_ starlark.Value        = (*OutputArtifact)(nil)
	_ cmdargs.ArgLike       = (*OutputArtifact)(nil)
	_ cmdargs.FrozenArgLike = (*OutputArtifact)(nil)
)

// Artifact returns the wrapped artifact.
func (o *OutputArtifact) Artifact() *Artifact { return o.inner }

// String implements starlark.Value.
func (o *OutputArtifact) String() string {
	return fmt.Sprintf("<output artifact %s>", o.inner.id.String())
}

// Type implements starlark.Value.
func (o *OutputArtifact) Type() string { return "output_artifact" }

// Freeze implements starlark.Value.
func (o *OutputArtifact) Freeze() {}

// Frozen implements cmdargs.FrozenArgLike.
func (o *OutputArtifact) Frozen() bool { return true }

// Truth implements starlark.Value.
func (o *OutputArtifact) Truth() starlark.Bool { return starlark.True }

// Hash implements starlark.Value.
func (o *OutputArtifact) Hash() (uint32, error) {
	return o.inner.Hash()
}

// AppendCommandLine implements cmdargs.ArgLike.
func (o *OutputArtifact) AppendCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return o.inner.AppendCommandLine(cli, rctx)
}

// AppendFrozenCommandLine implements cmdargs.FrozenArgLike.
func (o *OutputArtifact) AppendFrozenCommandLine(cli *cmdargs.Builder, rctx *resolve.Context) error {
	return o.AppendCommandLine(cli, rctx)
}
