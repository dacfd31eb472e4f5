package server

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// jsonRPCVersion is the only protocol version this package speaks.
const jsonRPCVersion = "2.0"

// RequestID represents a JSON-RPC request ID (can be string or number).
type RequestID struct {
	value string
}

// NewRequestID creates a RequestID from a string value.
func NewRequestID(value string) RequestID {
	return RequestID{value: value}
}

// String returns the ID's string form.
func (id RequestID) String() string {
	return id.value
}

// MarshalJSON implements json.Marshaler.
func (id RequestID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler. String and number IDs are
// normalized to their string form; null becomes the empty string. Arrays
// and objects are rejected per JSON-RPC 2.0.
func (id *RequestID) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("unmarshal request id: %w", err)
	}

	switch v := raw.(type) {
	case string:
		id.value = v
	case float64:
		id.value = strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		id.value = ""
	default:
		return fmt.Errorf("request id must be a string, number, or null")
	}
	return nil
}

// Request represents a JSON-RPC 2.0 request with concrete types.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      RequestID       `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response with concrete types.
type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      RequestID `json:"id"`
	Result  *Result   `json:"result,omitempty"`
	Error   *Error    `json:"error,omitempty"`
}

// Result represents a successful response. Lint results keep the hook's
// two output streams and exit code separate so the caller can relay them.
type Result struct {
	Output   string            `json:"output"`
	Stderr   string            `json:"stderr,omitempty"`
	ExitCode int               `json:"exit_code,omitempty"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// Error represents a JSON-RPC 2.0 error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

// Standard JSON-RPC 2.0 error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// MethodParams contains parameters for method calls.
type MethodParams struct {
	// Input is the hook payload, verbatim.
	Input string `json:"input"`
	// Project overrides the configured linter working directory.
	Project string `json:"project,omitempty"`
	// Timeout bounds the call, in seconds. Zero means no timeout.
	Timeout int `json:"timeout,omitempty"`
}

// NewErrorResponse creates an error response.
func NewErrorResponse(id RequestID, code int, message string) Response {
	return Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

// NewSuccessResponse creates a success response.
func NewSuccessResponse(id RequestID, output string) Response {
	return Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result: &Result{
			Output: output,
		},
	}
}

// NewLintResponse creates a success response carrying a lint outcome.
func NewLintResponse(id RequestID, outcome *LintOutcome) Response {
	return Response{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result: &Result{
			Output:   outcome.Stdout,
			Stderr:   outcome.Stderr,
			ExitCode: outcome.ExitCode,
			Meta:     map[string]string{"via": "server"},
		},
	}
}
