package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarrybuild/quarry/pkg/telemetry"
)

var (
	// Global flags
	configPath string
	verbose    bool
	jsonOutput bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quarry",
		Short: "Quarry - build command-line assembly tooling",
		Long: `Quarry evaluates build files written in Starlark and renders the
cmd_args values they define into the argument lists external processes
receive when actions execute.

Features:
  - cmd_args construction with format/delimiter/prepend/quote modifiers
  - Artifact path resolution against a configurable workspace layout
  - POSIX- or Windows-style path rendering
  - Transitive set projections over shared dependency structures`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "info"
			if verbose {
				level = "debug"
			}
			format := "console"
			if jsonOutput {
				format = "json"
			}
			logger, err := telemetry.NewLogger(telemetry.LoggingConfig{
				Level:  level,
				Format: format,
				Output: "stderr",
			})
			if err != nil {
				return
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "workspace config file path (quarry.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "log in JSON format")

	// Add subcommands
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newEvalCommand())

	return rootCmd
}
