// Package telemetry provides structured logging for the quarry build
// tooling, built on zerolog.
//
// Loggers travel through context.Context so that library code (the
// Starlark interpreter, the CLI commands) picks up the caller's
// configuration without plumbing a logger parameter everywhere:
//
//	logger, _ := telemetry.NewLogger(telemetry.LoggingConfig{Level: "debug", Format: "console"})
//	ctx = logger.WithContext(ctx)
//	...
//	telemetry.FromContext(ctx).Info().Str("file", name).Msg("evaluating build file")
//
// The pure command-line resolution path never logs; logging happens at
// evaluation and CLI boundaries only.
package telemetry
