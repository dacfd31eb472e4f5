package server

import "context"

// LintOutcome is what a single lint hook run produced. Stdout and stderr
// stay separate so a caller can relay them to its own streams, and the
// exit code rides along so the caller can exit with it.
type LintOutcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// LintRunner executes the lint hook against a raw payload.
// workingDir, when nonempty, overrides the configured linter directory.
type LintRunner interface {
	Run(ctx context.Context, input, workingDir string) (*LintOutcome, error)
}
