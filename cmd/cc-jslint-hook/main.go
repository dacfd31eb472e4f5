// Package main implements the cc-jslint-hook CLI application.
package main

import (
	"context"
	"os"
	"time"

	"github.com/plx/cc-jslint/internal/config"
	"github.com/plx/cc-jslint/internal/hooks"
)

func main() {
	debug := os.Getenv("CC_JSLINT_DEBUG") == "1"
	exitCode := hooks.RunLintHook(context.Background(), loadOptions(debug), nil)
	os.Exit(exitCode)
}

// loadOptions builds dispatcher options from configuration. A missing or
// broken config file must not stop the hook, so it falls back to the stock
// options.
func loadOptions(debug bool) hooks.Options {
	cfg, err := config.Load()
	if err != nil || cfg == nil {
		opts := hooks.DefaultOptions()
		opts.Debug = debug
		return opts
	}
	return lintOptions(cfg, debug)
}

func lintOptions(cfg *config.Config, debug bool) hooks.Options {
	return hooks.Options{
		Command:      cfg.Lint.Command,
		Args:         cfg.Lint.Args,
		WorkingDir:   cfg.Lint.WorkingDir,
		Extensions:   cfg.Lint.Extensions,
		Tools:        cfg.Lint.Tools,
		Timeout:      time.Duration(cfg.Lint.TimeoutSeconds) * time.Second,
		SkipPatterns: cfg.Lint.SkipPatterns,
		Debug:        debug,
	}
}
