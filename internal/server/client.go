// Package server provides a JSON-RPC lint server for cc-jslint.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultDialTimeout is the default timeout for connecting to the server.
	DefaultDialTimeout = 5 * time.Second
)

// Client handles communication with the server using concrete types.
type Client struct {
	socketPath  string
	dialTimeout time.Duration
}

// NewClient creates a new client instance with default timeout.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	return &Client{
		socketPath:  socketPath,
		dialTimeout: DefaultDialTimeout,
	}
}

// NewClientWithTimeout creates a new client instance with custom timeout.
func NewClientWithTimeout(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	return &Client{
		socketPath:  socketPath,
		dialTimeout: timeout,
	}
}

// DefaultSocketPath returns the default socket path.
func DefaultSocketPath() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return filepath.Join(runtime, "cc-jslint", "server.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("cc-jslint-%d.sock", os.Getuid()))
}

// Call executes a method on the server and returns the full result.
func (c *Client) Call(method string, input string) (*Result, error) {
	// Check if socket exists
	if _, err := os.Stat(c.socketPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("server not running (socket not found: %s)", c.socketPath)
	}

	// Connect to server
	d := &net.Dialer{Timeout: c.dialTimeout}
	conn, err := d.DialContext(context.Background(), "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	// Set read/write deadline based on dial timeout
	deadline := time.Now().Add(c.dialTimeout)
	if deadlineErr := conn.SetDeadline(deadline); deadlineErr != nil {
		return nil, fmt.Errorf("set deadline: %w", deadlineErr)
	}

	// Prepare request
	params := MethodParams{
		Input: input,
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	req := Request{
		JSONRPC: jsonRPCVersion,
		ID:      NewRequestID(uuid.NewString()),
		Method:  method,
		Params:  paramsJSON,
	}

	// Send request
	encoder := json.NewEncoder(conn)
	if encErr := encoder.Encode(req); encErr != nil {
		return nil, fmt.Errorf("send request: %w", encErr)
	}

	// Read response
	decoder := json.NewDecoder(conn)
	var resp Response
	if decErr := decoder.Decode(&resp); decErr != nil {
		return nil, fmt.Errorf("read response: %w", decErr)
	}

	// Check for error
	if resp.Error != nil {
		return nil, fmt.Errorf("server error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	// Extract result
	if resp.Result == nil {
		return nil, fmt.Errorf("no result in response")
	}

	return resp.Result, nil
}

// DirectFunc runs the hook in-process when no server can. It receives the
// payload, so stdin is read exactly once no matter which path handles it.
type DirectFunc func(input string) (*LintOutcome, error)

// TryCallWithFallback attempts to call the server, falling back to direct
// execution. On the server path the returned outcome carries the hook's
// relayed streams and exit code from the response.
func TryCallWithFallback(method, input string, directFunc DirectFunc) (*LintOutcome, error) {
	// Check if server mode is disabled
	if os.Getenv("CC_JSLINT_NO_SERVER") == "1" {
		fmt.Fprintf(os.Stderr, "[CC-JSLINT] ✗ Server disabled, using direct mode for %s\n", method)
		return directFunc(input)
	}

	// Try custom socket path if specified
	socketPath := os.Getenv("CC_JSLINT_SOCKET")
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}

	client := NewClient(socketPath)

	// Try server first
	result, err := client.Call(method, input)
	if err == nil {
		// Always show server usage in stderr when successful
		if result.Meta != nil && result.Meta["via"] == "server" {
			fmt.Fprintf(os.Stderr, "[CC-JSLINT] ✓ Using server for %s\n", method)
		}
		return &LintOutcome{
			Stdout:   result.Output,
			Stderr:   result.Stderr,
			ExitCode: result.ExitCode,
		}, nil
	}

	// Always show fallback in stderr with error details for debugging
	fmt.Fprintf(os.Stderr, "[CC-JSLINT] ✗ Server unavailable, using direct mode for %s (error: %v)\n", method, err)

	// Fallback to direct execution
	return directFunc(input)
}
