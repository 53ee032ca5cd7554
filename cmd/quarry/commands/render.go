package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quarrybuild/quarry/pkg/cmdargs"
	"github.com/quarrybuild/quarry/pkg/interp"
	"github.com/quarrybuild/quarry/pkg/resolve"
	"github.com/quarrybuild/quarry/pkg/telemetry"
)

func newRenderCommand() *cobra.Command {
	var (
		file      string
		name      string
		separator string
		one       bool
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a cmd_args value to its argument list",
		Long: `Evaluate a build file and resolve one of its globals into the flat
list of argument strings an external process would receive.

Rendering:
  - Evaluates the build file (globals come out frozen)
  - Resolves the named value against the workspace's artifact layout
  - Prints one argument per line on stdout`,
		Example: `  # Render the "cmd" global of a build file
  quarry render --file BUILD.star --name cmd

  # Render with Windows-style paths
  quarry render --file BUILD.star --name cmd --sep windows

  # Assert the value renders to exactly one argument
  quarry render --file BUILD.star --name cc_flag --one`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := telemetry.FromContext(ctx)
			renderID := uuid.NewString()

			cfg, err := loadWorkspaceConfig()
			if err != nil {
				return err
			}
			if separator != "" {
				cfg.PathSeparator = separator
			}
			rctx, err := cfg.Context()
			if err != nil {
				return err
			}

			src, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read build file: %w", err)
			}

			logger.Info().
				Str("render_id", renderID).
				Str("file", file).
				Str("name", name).
				Msg("Rendering command line")

			result, err := interp.NewEvaluator(timeout).Evaluate(ctx, file, string(src))
			if err != nil {
				return err
			}

			value, ok := result.Globals[name]
			if !ok {
				return fmt.Errorf("build file %s has no global named %q", file, name)
			}

			rendered, err := cmdargs.Resolve(value, rctx)
			if err != nil {
				return err
			}
			if one && len(rendered) != 1 {
				return fmt.Errorf("expected %q to render to exactly one argument, got %d", name, len(rendered))
			}

			logger.Debug().
				Str("render_id", renderID).
				Int("args", len(rendered)).
				Dur("eval_time", result.ExecutionTime).
				Msg("Render complete")

			for _, arg := range rendered {
				fmt.Fprintln(cmd.OutOrStdout(), arg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "BUILD.star", "build file to evaluate")
	cmd.Flags().StringVarP(&name, "name", "n", "", "global binding to render")
	cmd.Flags().StringVar(&separator, "sep", "", "path separator convention (unix, windows)")
	cmd.Flags().BoolVar(&one, "one", false, "fail unless exactly one argument is produced")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "evaluation timeout")
	cmd.MarkFlagRequired("name")

	return cmd
}

// loadWorkspaceConfig loads the --config file, falling back to quarry.yaml
// in the current directory, falling back to defaults.
func loadWorkspaceConfig() (*resolve.WorkspaceConfig, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat("quarry.yaml"); err == nil {
			path = "quarry.yaml"
		}
	}
	if path == "" {
		return resolve.DefaultWorkspaceConfig(), nil
	}
	return resolve.LoadWorkspaceConfig(path)
}
