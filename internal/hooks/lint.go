package hooks

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/plx/cc-jslint/internal/shared"
)

// Options configures the lint hook dispatcher.
type Options struct {
	// Command is the linter executable, e.g. "npm".
	Command string
	// Args are the leading arguments, e.g. ["run", "lint:fix"]. The file
	// path is appended after a "--" separator.
	Args []string
	// WorkingDir is the directory the linter runs in.
	WorkingDir string
	// Extensions are the file suffixes that trigger a lint run.
	Extensions []string
	// Tools are the tool names that trigger a lint run.
	Tools []string
	// Timeout bounds a single linter run. Zero means no timeout.
	Timeout time.Duration
	// SkipPatterns name files the linter should leave alone.
	SkipPatterns []string
	// Debug enables diagnostic output on stderr.
	Debug bool
}

// DefaultOptions returns the stock dispatcher configuration.
func DefaultOptions() Options {
	return Options{
		Command:    "npm",
		Args:       []string{"run", "lint:fix"},
		WorkingDir: "/home/user/plx.github.io",
		Extensions: []string{".js", ".ts", ".jsx", ".tsx"},
		Tools:      []string{"Edit", "Write"},
	}
}

// RunLintHook is the PostToolUse entry point. It reads a hook payload from
// deps.Input, runs the configured linter when the payload names a lintable
// file, and relays the linter's output. The returned value is the process
// exit code: nonzero only when the payload itself cannot be parsed.
func RunLintHook(ctx context.Context, opts Options, deps *Dependencies) int {
	if deps == nil {
		deps = NewDefaultDependencies()
	}

	input, err := ReadHookInput(deps.Input)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, shared.RawErrorStyle.Render(
			fmt.Sprintf("cc-jslint: %v", err)))
		return 1
	}

	if !input.MatchesTool(opts.Tools...) {
		if opts.Debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Ignoring event: %s, tool: %s\n",
				input.HookEventName, input.ToolName)
		}
		return 0
	}

	filePath := input.GetFilePath()
	if filePath == "" {
		if opts.Debug {
			_, _ = fmt.Fprintf(deps.Stderr, "No file path found in input\n")
		}
		return 0
	}

	if !hasLintableExtension(filePath, opts.Extensions) {
		if opts.Debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Not a lintable file: %s\n", filePath)
		}
		return 0
	}

	if pattern := matchSkipPattern(filePath, opts.SkipPatterns); pattern != "" {
		if opts.Debug {
			_, _ = fmt.Fprintf(deps.Stderr, "Skipping %s: matches %q\n", filePath, pattern)
		}
		return 0
	}

	runLinter(ctx, opts, filePath, deps)
	return 0
}

// runLinter invokes the configured linter on filePath and relays its output.
// The linter's exit status is not part of the hook contract: lint failures
// show up in the relayed streams, and the hook still exits 0.
func runLinter(ctx context.Context, opts Options, filePath string, deps *Dependencies) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	args := make([]string, 0, len(opts.Args)+2)
	args = append(args, opts.Args...)
	args = append(args, "--", filePath)

	output, err := deps.Runner.RunContext(ctx, opts.WorkingDir, opts.Command, args...)

	if ctx.Err() == context.DeadlineExceeded {
		_, _ = fmt.Fprintf(deps.Stderr, "Error running linter: timed out after %v\n", opts.Timeout)
		return
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// The linter never ran: missing binary, bad working directory.
			_, _ = fmt.Fprintf(deps.Stderr, "Error running linter: %v\n", err)
			return
		}
		// Nonzero exit falls through; the streams still get relayed.
	}

	if output != nil && len(output.Stdout) > 0 {
		_, _ = fmt.Fprintf(deps.Stdout, "Linter output for %s:\n%s\n", filePath, output.Stdout)
	}
	if output != nil && len(output.Stderr) > 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Linter stderr:\n%s\n", output.Stderr)
	}
}

// hasLintableExtension reports whether path ends in one of the given
// suffixes. Matching is case-sensitive: "App.JS" is not lintable.
func hasLintableExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// matchSkipPattern returns the first skip pattern the path matches, or ""
// when none do. Patterns match as globs against the base name and as plain
// substrings against the full path.
func matchSkipPattern(path string, patterns []string) string {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return pattern
		}
		if pattern != "" && strings.Contains(path, pattern) {
			return pattern
		}
	}
	return ""
}
