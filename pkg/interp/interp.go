// Package interp executes quarry build files: Starlark scripts evaluated
// with the cmd_args construction surface predeclared.
package interp

import (
	"context"
	"fmt"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/quarrybuild/quarry/pkg/cmdargs"
	"github.com/quarrybuild/quarry/pkg/telemetry"
)

// Evaluator executes build files safely, bounded by a timeout.
type Evaluator struct {
	timeout time.Duration
}

// Result is the outcome of evaluating a build file.
type Result struct {
	// Globals are the module's exported bindings. The evaluator freezes
	// them once execution completes, so every cmd_args value held here is
	// in the frozen lifecycle state.
	Globals starlark.StringDict

	// ExecutionTime is how long evaluation took.
	ExecutionTime time.Duration
}

// NewEvaluator creates a new build-file evaluator.
func NewEvaluator(timeout time.Duration) *Evaluator {
	if timeout == 0 {
		timeout = 30 * time.Second // Default timeout
	}
	return &Evaluator{
		timeout: timeout,
	}
}

// Evaluate executes a build file and returns its frozen globals.
func (e *Evaluator) Evaluate(ctx context.Context, filename, src string) (*Result, error) {
	startTime := time.Now()

	evalCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resultCh := make(chan *Result, 1)
	errCh := make(chan error, 1)

	go func() {
		result, err := e.evaluateSync(ctx, filename, src)
		if err != nil {
			errCh <- err
		} else {
			resultCh <- result
		}
	}()

	select {
	case <-evalCtx.Done():
		return nil, fmt.Errorf("build file evaluation timeout after %v", e.timeout)
	case err := <-errCh:
		return nil, err
	case result := <-resultCh:
		result.ExecutionTime = time.Since(startTime)
		return result, nil
	}
}

// evaluateSync performs the actual evaluation synchronously.
func (e *Evaluator) evaluateSync(ctx context.Context, filename, src string) (*Result, error) {
	logger := telemetry.FromContext(ctx).NewComponentLogger("interp")

	thread := &starlark.Thread{
		Name: "quarry",
		Print: func(_ *starlark.Thread, msg string) {
			logger.Debug().Str("file", filename).Msg(msg)
		},
	}

	globals, err := starlark.ExecFile(thread, filename, src, Predeclared())
	if err != nil {
		return nil, fmt.Errorf("build file evaluation failed: %w", err)
	}

	// ExecFile hands back mutable bindings. Construction ends here: freeze
	// everything so resolution only ever sees frozen values.
	globals.Freeze()

	return &Result{Globals: globals}, nil
}

// Predeclared builds the environment build files evaluate in: the
// cmd_args registration surface plus the build-graph value constructors.
func Predeclared() starlark.StringDict {
	env := starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
	}
	cmdargs.RegisterBuiltins(env)
	registerValueBuiltins(env)
	return env
}
