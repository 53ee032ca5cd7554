package commands

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/quarrybuild/quarry/pkg/interp"
	"github.com/quarrybuild/quarry/pkg/telemetry"
)

func newEvalCommand() *cobra.Command {
	var (
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a build file and list its globals",
		Long: `Evaluate a build file without rendering anything, as a smoke check
that it parses, executes, and produces the expected bindings.`,
		Example: `  # Check a build file
  quarry eval --file BUILD.star`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := telemetry.FromContext(ctx)

			src, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read build file: %w", err)
			}

			result, err := interp.NewEvaluator(timeout).Evaluate(ctx, file, string(src))
			if err != nil {
				return err
			}

			logger.Info().
				Str("file", file).
				Int("globals", len(result.Globals)).
				Dur("eval_time", result.ExecutionTime).
				Msg("Evaluation succeeded")

			names := make([]string, 0, len(result.Globals))
			for name := range result.Globals {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, result.Globals[name].Type())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "BUILD.star", "build file to evaluate")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "evaluation timeout")

	return cmd
}
