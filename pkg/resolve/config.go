package resolve

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorkspaceConfig describes the project layout a resolution context is
// built from. It is loaded from a quarry.yaml at the workspace root.
type WorkspaceConfig struct {
	// ProjectRoot is the absolute path of the project, used for display
	// and tooling; rendered paths stay project-relative.
	ProjectRoot string `yaml:"project_root,omitempty"`

	// Cells maps cell names to project-relative source roots.
	Cells map[string]string `yaml:"cells,omitempty"`

	// OutputDir is the project-relative directory for generated outputs.
	OutputDir string `yaml:"output_dir,omitempty"`

	// PathSeparator selects the rendered separator convention (unix, windows).
	PathSeparator string `yaml:"path_separator,omitempty"`
}

// DefaultWorkspaceConfig returns the configuration used when no workspace
// file is present: a single root cell at the project root, unix paths.
func DefaultWorkspaceConfig() *WorkspaceConfig {
	return &WorkspaceConfig{
		Cells:         map[string]string{"root": ""},
		OutputDir:     DefaultOutputDir,
		PathSeparator: string(SeparatorUnix),
	}
}

// LoadWorkspaceConfig reads and parses a workspace configuration file,
// filling defaults for absent fields.
func LoadWorkspaceConfig(path string) (*WorkspaceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace config: %w", err)
	}
	cfg := &WorkspaceConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse workspace config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *WorkspaceConfig) applyDefaults() {
	if len(c.Cells) == 0 {
		c.Cells = map[string]string{"root": ""}
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.PathSeparator == "" {
		c.PathSeparator = string(SeparatorUnix)
	}
}

// Context builds a resolution context from the configuration.
func (c *WorkspaceConfig) Context() (*Context, error) {
	sep, err := ParsePathSeparator(c.PathSeparator)
	if err != nil {
		return nil, err
	}
	return NewContext(NewArtifactFS(c.Cells, c.OutputDir), sep), nil
}
