// Package resolve translates artifact identities into the concrete path
// strings emitted on a command line. It resolves names, not files: an
// identity resolves successfully whether or not anything exists on disk yet.
package resolve

import (
	"path"
	"strings"
)

// PathSeparator selects the separator convention used for rendered paths.
type PathSeparator string

const (
	// SeparatorUnix renders paths with forward slashes.
	SeparatorUnix PathSeparator = "unix"

	// SeparatorWindows renders paths with backslashes.
	SeparatorWindows PathSeparator = "windows"
)

// ParsePathSeparator converts a configuration string into a PathSeparator.
func ParsePathSeparator(s string) (PathSeparator, error) {
	switch s {
	case "", string(SeparatorUnix):
		return SeparatorUnix, nil
	case string(SeparatorWindows):
		return SeparatorWindows, nil
	default:
		return "", &SeparatorError{Value: s}
	}
}

// apply converts a slash-joined path to the separator convention.
func (p PathSeparator) apply(s string) string {
	if p == SeparatorWindows {
		return strings.ReplaceAll(s, "/", `\`)
	}
	return s
}

// Identity names an artifact within the build graph: the cell it belongs
// to, the package directory within that cell, and the file path within the
// package. BuildOutput marks artifacts produced by actions, which live
// under the output directory rather than the source tree.
type Identity struct {
	Cell        string
	Package     string
	Path        string
	BuildOutput bool
}

// String returns the display form of the identity.
func (id Identity) String() string {
	if id.Package == "" {
		return id.Cell + "//" + id.Path
	}
	return id.Cell + "//" + id.Package + "/" + id.Path
}

func (id Identity) validate() error {
	if id.Cell == "" {
		return &IdentityError{Identity: id, Reason: "empty cell"}
	}
	if id.Path == "" {
		return &IdentityError{Identity: id, Reason: "empty path"}
	}
	if err := id.checkRelative(id.Package, "package"); err != nil {
		return err
	}
	return id.checkRelative(id.Path, "path")
}

// checkRelative rejects components that would resolve outside the cell
// root: absolute prefixes and ".." segments.
func (id Identity) checkRelative(component, name string) error {
	if component == "" {
		return nil
	}
	if strings.HasPrefix(component, "/") {
		return &IdentityError{Identity: id, Reason: name + " must be relative"}
	}
	for _, seg := range strings.Split(component, "/") {
		if seg == ".." {
			return &IdentityError{Identity: id, Reason: name + " must not escape the cell root"}
		}
	}
	return nil
}

// ArtifactFS maps artifact identities onto the project's directory layout.
// It holds two sub-resolvers behind one contract: source artifacts resolve
// under their cell root, build outputs resolve under the output directory.
type ArtifactFS struct {
	cellRoots map[string]string
	outputDir string
}

// DefaultOutputDir is the project-relative directory for generated outputs.
const DefaultOutputDir = "quarry-out"

// NewArtifactFS creates an artifact filesystem from a cell-name to
// project-relative-root mapping. An empty outputDir selects DefaultOutputDir.
func NewArtifactFS(cellRoots map[string]string, outputDir string) *ArtifactFS {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	roots := make(map[string]string, len(cellRoots))
	for cell, root := range cellRoots {
		roots[cell] = root
	}
	return &ArtifactFS{cellRoots: roots, outputDir: outputDir}
}

func (fs *ArtifactFS) sourcePath(id Identity) (string, error) {
	root, ok := fs.cellRoots[id.Cell]
	if !ok {
		return "", &UnknownCellError{Cell: id.Cell}
	}
	return path.Join(root, id.Package, id.Path), nil
}

func (fs *ArtifactFS) outputPath(id Identity) (string, error) {
	if _, ok := fs.cellRoots[id.Cell]; !ok {
		return "", &UnknownCellError{Cell: id.Cell}
	}
	return path.Join(fs.outputDir, "gen", id.Cell, id.Package, id.Path), nil
}

// Context supplies path resolution during command-line rendering. It is a
// read-only snapshot: any number of renders may share one Context.
type Context struct {
	fs  *ArtifactFS
	sep PathSeparator
}

// NewContext pairs an artifact filesystem with a separator convention.
func NewContext(fs *ArtifactFS, sep PathSeparator) *Context {
	return &Context{fs: fs, sep: sep}
}

// Separator reports the path separator convention of this context.
func (c *Context) Separator() PathSeparator {
	return c.sep
}

// PathFor resolves an artifact identity to the path string to emit.
// It fails only on structurally invalid identities; it never inspects
// the filesystem.
func (c *Context) PathFor(id Identity) (string, error) {
	if err := id.validate(); err != nil {
		return "", err
	}
	var (
		p   string
		err error
	)
	if id.BuildOutput {
		p, err = c.fs.outputPath(id)
	} else {
		p, err = c.fs.sourcePath(id)
	}
	if err != nil {
		return "", err
	}
	return c.sep.apply(p), nil
}
