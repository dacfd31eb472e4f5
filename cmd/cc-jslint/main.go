package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/plx/cc-jslint/internal/config"
	"github.com/plx/cc-jslint/internal/hooks"
	"github.com/plx/cc-jslint/internal/output"
	"github.com/plx/cc-jslint/internal/server"
	"github.com/plx/cc-jslint/internal/shared"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "hook":
		runHookWithServer()
	case "serve":
		runServe()
	case "status":
		runStatus()
	case "config":
		runConfig()
	case "version":
		fmt.Println("cc-jslint v0.1.0")
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintln(os.Stderr, shared.ErrorStyle.Render(fmt.Sprintf("Unknown command: %s", os.Args[1])))
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `cc-jslint - PostToolUse lint hook for JS/TS files

Usage:
  cc-jslint <command> [arguments]

Commands:
  hook          Run the lint hook (reads a tool-use payload from stdin)
  serve         Run server mode for improved performance
  status        Check server status
  config        Show the effective configuration
  version       Print version information
  help          Show this help message

Examples:
  echo '{"toolName": "Edit", "toolInput": {"file_path": "src/app.ts"}}' | cc-jslint hook
  cc-jslint serve -debug
  cc-jslint status
`)
}

// runHookWithServer reads the payload once, then hands it to the server if
// one is up, or runs the hook in-process. Either way the hook's streams and
// exit code pass through untouched.
func runHookWithServer() {
	debug := os.Getenv("CC_JSLINT_DEBUG") == "1"
	input := readStdin()

	direct := func(payload string) (*server.LintOutcome, error) {
		opts := loadOptions(debug)
		runner := server.NewHookLintRunner(debug, func() hooks.Options { return opts })
		return runner.Run(context.Background(), payload, "")
	}

	outcome, err := server.TryCallWithFallback("lint", input, direct)
	if err != nil {
		fmt.Fprintln(os.Stderr, shared.RawErrorStyle.Render(fmt.Sprintf("cc-jslint: %v", err)))
		os.Exit(1)
	}

	if outcome.Stdout != "" {
		fmt.Print(outcome.Stdout)
	}
	if outcome.Stderr != "" {
		fmt.Fprint(os.Stderr, outcome.Stderr)
	}
	os.Exit(outcome.ExitCode)
}

// readStdin returns the whole payload, or "" on a terminal so the hook can
// report missing input instead of hanging.
func readStdin() string {
	stat, err := os.Stdin.Stat()
	if err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		return ""
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return ""
	}
	return string(data)
}

func runServe() {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	socketFlag := fs.String("socket", "", "Socket path (default: runtime dir)")
	debugFlag := fs.Bool("debug", false, "Debug output from hook runs")
	_ = fs.Parse(os.Args[2:])

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	logger := server.NewStandardLogger()

	debug := *debugFlag || os.Getenv("CC_JSLINT_DEBUG") == "1"

	// Options are re-resolved per run so a config file edit takes effect
	// without restarting the server.
	var optsMu sync.RWMutex
	opts := hooks.DefaultOptions()
	opts.Debug = debug

	cfg, v, err := config.LoadForWatch()
	if err != nil {
		logger.Printf("Config error: %v (using defaults)", err)
	} else {
		opts = lintOptions(cfg, debug)
		config.Watch(v, func(updated *config.Config) {
			optsMu.Lock()
			opts = lintOptions(updated, debug)
			optsMu.Unlock()
			logger.Printf("Configuration reloaded from %s", v.ConfigFileUsed())
		})
	}

	provider := func() hooks.Options {
		optsMu.RLock()
		defer optsMu.RUnlock()
		return opts
	}

	socketPath := *socketFlag
	if socketPath == "" && cfg != nil {
		socketPath = cfg.Server.Socket
	}
	if socketPath == "" {
		socketPath = os.Getenv("CC_JSLINT_SOCKET")
	}
	if socketPath == "" {
		socketPath = server.DefaultSocketPath()
	}

	deps := &server.ServerDependencies{
		LintRunner:  server.NewHookLintRunner(debug, provider),
		LockManager: server.NewSimpleLockManager(),
		Logger:      logger,
	}

	srv := server.NewServer(socketPath, deps)

	logger.Printf("Starting server on %s", socketPath)
	if runErr := srv.Run(); runErr != nil {
		logger.Printf("Server error: %v", runErr)
		os.Exit(1)
	}
}

func runStatus() {
	socketPath := os.Getenv("CC_JSLINT_SOCKET")
	if socketPath == "" {
		socketPath = server.DefaultSocketPath()
	}

	// Check if socket exists
	if _, err := os.Stat(socketPath); os.IsNotExist(err) {
		fmt.Println(shared.WarningStyle.Render("Server: NOT RUNNING"))
		fmt.Printf("Socket: %s (not found)\n", shared.InfoStyle.Render(socketPath))
		os.Exit(1)
	}

	// Try to connect and get stats
	client := server.NewClient(socketPath)
	result, err := client.Call("stats", "")
	if err != nil {
		fmt.Println(shared.ErrorStyle.Render("Server: ERROR"))
		fmt.Printf("Socket: %s\nError: %v\n", shared.InfoStyle.Render(socketPath), err)
		os.Exit(1)
	}

	fmt.Println(shared.SuccessStyle.Render("Server: RUNNING"))
	fmt.Println(result.Output)
}

func runConfig() {
	debug := os.Getenv("CC_JSLINT_DEBUG") == "1"
	opts := loadOptions(debug)

	_, v, err := config.LoadForWatch()
	source := "built-in defaults"
	if err == nil && v.ConfigFileUsed() != "" {
		source = v.ConfigFileUsed()
	}

	fmt.Println(shared.TitleStyle.Render("cc-jslint configuration"))

	command := opts.Command + " " + strings.Join(opts.Args, " ")
	if _, lookErr := exec.LookPath(opts.Command); lookErr != nil {
		command += " (not found in PATH)"
	}

	renderer := output.NewListRenderer()
	fmt.Print(renderer.RenderMap("Lint", map[string]string{
		"command":       command,
		"working_dir":   opts.WorkingDir,
		"extensions":    strings.Join(opts.Extensions, ", "),
		"tools":         strings.Join(opts.Tools, ", "),
		"timeout":       formatTimeout(opts.Timeout),
		"skip_patterns": formatPatterns(opts.SkipPatterns),
	}))
	fmt.Print(renderer.RenderMap("Server", map[string]string{
		"socket": resolveSocketPath(),
		"source": source,
	}))
	fmt.Print(renderer.Render("Search paths", config.SearchPaths()))
}

func formatTimeout(d time.Duration) string {
	if d <= 0 {
		return "none"
	}
	return d.String()
}

func formatPatterns(patterns []string) string {
	if len(patterns) == 0 {
		return "none"
	}
	return strings.Join(patterns, ", ")
}

func resolveSocketPath() string {
	if socketPath := os.Getenv("CC_JSLINT_SOCKET"); socketPath != "" {
		return socketPath
	}
	if cfg, err := config.Load(); err == nil && cfg.Server.Socket != "" {
		return cfg.Server.Socket
	}
	return server.DefaultSocketPath()
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
