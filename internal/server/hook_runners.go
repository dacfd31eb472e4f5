package server

import (
	"context"

	"github.com/plx/cc-jslint/internal/hooks"
)

// HookLintRunner implements LintRunner using the hooks package.
type HookLintRunner struct {
	debug   bool
	options func() hooks.Options
}

// NewHookLintRunner creates a lint runner. options is consulted on every
// run, so a caller can swap in new settings when its config file changes.
func NewHookLintRunner(debug bool, options func() hooks.Options) *HookLintRunner {
	if options == nil {
		options = hooks.DefaultOptions
	}
	return &HookLintRunner{
		debug:   debug,
		options: options,
	}
}

// Run executes the lint hook with the given payload. The hook's exit code
// is part of the outcome, never an error: a malformed payload exits nonzero
// by contract, and the caller is the one who must reproduce that.
func (r *HookLintRunner) Run(ctx context.Context, input, workingDir string) (*LintOutcome, error) {
	opts := r.options()
	if workingDir != "" {
		opts.WorkingDir = workingDir
	}
	if r.debug {
		opts.Debug = true
	}

	stdout := hooks.NewStringOutputWriter()
	stderr := hooks.NewStringOutputWriter()

	deps := hooks.NewDefaultDependencies()
	deps.Input = hooks.NewStringInputReader(input)
	deps.Stdout = stdout
	deps.Stderr = stderr

	exitCode := hooks.RunLintHook(ctx, opts, deps)

	return &LintOutcome{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}, nil
}
