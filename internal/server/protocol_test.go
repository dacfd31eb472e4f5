package server

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRequestID_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		id       RequestID
		expected string
	}{
		{
			name:     "string ID",
			id:       RequestID{value: "test-id"},
			expected: `"test-id"`,
		},
		{
			name:     "numeric string ID",
			id:       RequestID{value: "123"},
			expected: `"123"`,
		},
		{
			name:     "empty ID",
			id:       RequestID{value: ""},
			expected: `""`,
		},
		{
			name:     "UUID-like ID",
			id:       RequestID{value: "550e8400-e29b-41d4-a716-446655440000"},
			expected: `"550e8400-e29b-41d4-a716-446655440000"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.id)
			if err != nil {
				t.Fatalf("Failed to marshal RequestID: %v", err)
			}

			if string(data) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, string(data))
			}
		})
	}
}

func TestRequestID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{
			name:     "string ID",
			input:    `"test-id"`,
			expected: "test-id",
		},
		{
			name:     "numeric ID",
			input:    `123`,
			expected: "123",
		},
		{
			name:     "null ID",
			input:    `null`,
			expected: "",
		},
		{
			name:     "float ID",
			input:    `123.456`,
			expected: "123.456",
		},
		{
			name:        "invalid JSON",
			input:       `{invalid}`,
			shouldError: true,
		},
		{
			name:        "array ID",
			input:       `["invalid"]`,
			shouldError: true,
		},
		{
			name:        "object ID",
			input:       `{"id": "invalid"}`,
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id RequestID
			err := json.Unmarshal([]byte(tt.input), &id)

			if tt.shouldError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if id.value != tt.expected {
					t.Errorf("Expected value %q, got %q", tt.expected, id.value)
				}
			}
		})
	}
}

func TestNewErrorResponse(t *testing.T) {
	tests := []struct {
		name    string
		id      RequestID
		code    int
		message string
	}{
		{
			name:    "parse error",
			id:      RequestID{value: "1"},
			code:    ParseError,
			message: "Parse error",
		},
		{
			name:    "invalid request",
			id:      RequestID{value: "2"},
			code:    InvalidRequest,
			message: "Invalid Request",
		},
		{
			name:    "method not found",
			id:      RequestID{value: "3"},
			code:    MethodNotFound,
			message: "Method not found",
		},
		{
			name:    "invalid params",
			id:      RequestID{value: "4"},
			code:    InvalidParams,
			message: "Invalid params",
		},
		{
			name:    "internal error",
			id:      RequestID{value: "5"},
			code:    InternalError,
			message: "Internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewErrorResponse(tt.id, tt.code, tt.message)

			if resp.JSONRPC != "2.0" {
				t.Errorf("Expected JSONRPC version 2.0, got %s", resp.JSONRPC)
			}

			if resp.ID.value != tt.id.value {
				t.Errorf("Expected ID %s, got %s", tt.id.value, resp.ID.value)
			}

			if resp.Error == nil {
				t.Fatal("Expected error in response, got nil")
			}

			if resp.Error.Code != tt.code {
				t.Errorf("Expected error code %d, got %d", tt.code, resp.Error.Code)
			}

			if resp.Error.Message != tt.message {
				t.Errorf("Expected error message %q, got %q", tt.message, resp.Error.Message)
			}

			if resp.Result != nil {
				t.Error("Expected nil result in error response")
			}
		})
	}
}

func TestNewSuccessResponse(t *testing.T) {
	tests := []struct {
		name   string
		id     RequestID
		output string
	}{
		{
			name:   "simple output",
			id:     RequestID{value: "1"},
			output: "success",
		},
		{
			name:   "JSON output",
			id:     RequestID{value: "2"},
			output: `{"result": "ok", "data": [1, 2, 3]}`,
		},
		{
			name:   "empty output",
			id:     RequestID{value: "3"},
			output: "",
		},
		{
			name:   "multiline output",
			id:     RequestID{value: "4"},
			output: "line1\nline2\nline3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponse(tt.id, tt.output)

			if resp.JSONRPC != "2.0" {
				t.Errorf("Expected JSONRPC version 2.0, got %s", resp.JSONRPC)
			}

			if resp.ID.value != tt.id.value {
				t.Errorf("Expected ID %s, got %s", tt.id.value, resp.ID.value)
			}

			if resp.Error != nil {
				t.Errorf("Expected nil error in success response, got %v", resp.Error)
			}

			if resp.Result == nil {
				t.Fatal("Expected result in success response, got nil")
			}

			if resp.Result.Output != tt.output {
				t.Errorf("Expected output %q, got %q", tt.output, resp.Result.Output)
			}
		})
	}
}

func TestNewLintResponse(t *testing.T) {
	outcome := &LintOutcome{
		Stdout:   "Linter output for /srv/site/app.ts:\nfixed 2 problems\n\n",
		Stderr:   "Linter stderr:\nwarning\n\n",
		ExitCode: 1,
	}

	resp := NewLintResponse(RequestID{value: "42"}, outcome)

	if resp.JSONRPC != "2.0" {
		t.Errorf("Expected JSONRPC version 2.0, got %s", resp.JSONRPC)
	}

	if resp.Result == nil {
		t.Fatal("Expected result in lint response, got nil")
	}

	if resp.Result.Output != outcome.Stdout {
		t.Errorf("Expected output %q, got %q", outcome.Stdout, resp.Result.Output)
	}

	if resp.Result.Stderr != outcome.Stderr {
		t.Errorf("Expected stderr %q, got %q", outcome.Stderr, resp.Result.Stderr)
	}

	if resp.Result.ExitCode != 1 {
		t.Errorf("Expected exit code 1, got %d", resp.Result.ExitCode)
	}

	if resp.Result.Meta["via"] != "server" {
		t.Errorf("Expected meta via=server, got %v", resp.Result.Meta)
	}
}

func TestResult_WireFormat(t *testing.T) {
	t.Run("quiet fields are omitted", func(t *testing.T) {
		data, err := json.Marshal(&Result{Output: "ok"})
		if err != nil {
			t.Fatalf("Failed to marshal result: %v", err)
		}

		for _, field := range []string{"stderr", "exit_code", "meta"} {
			if strings.Contains(string(data), field) {
				t.Errorf("Expected %q to be omitted, got %s", field, string(data))
			}
		}
	})

	t.Run("lint fields survive the wire", func(t *testing.T) {
		resp := NewLintResponse(RequestID{value: "1"}, &LintOutcome{
			Stdout:   "out",
			Stderr:   "err",
			ExitCode: 1,
		})

		data, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("Failed to marshal response: %v", err)
		}

		var decoded Response
		if unmarshalErr := json.Unmarshal(data, &decoded); unmarshalErr != nil {
			t.Fatalf("Failed to unmarshal response: %v", unmarshalErr)
		}

		if decoded.Result == nil {
			t.Fatal("Expected result, got nil")
		}
		if decoded.Result.Output != "out" {
			t.Errorf("Expected output %q, got %q", "out", decoded.Result.Output)
		}
		if decoded.Result.Stderr != "err" {
			t.Errorf("Expected stderr %q, got %q", "err", decoded.Result.Stderr)
		}
		if decoded.Result.ExitCode != 1 {
			t.Errorf("Expected exit code 1, got %d", decoded.Result.ExitCode)
		}
		if decoded.Result.Meta["via"] != "server" {
			t.Errorf("Expected meta via=server, got %v", decoded.Result.Meta)
		}
	})
}

func TestRequest_Serialization(t *testing.T) {
	req := Request{
		JSONRPC: "2.0",
		ID:      RequestID{value: "test-123"},
		Method:  "lint",
		Params:  json.RawMessage(`{"input": "test code", "project": "myproject"}`),
	}

	// Marshal
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	// Unmarshal
	var decoded Request
	if unmarshalErr := json.Unmarshal(data, &decoded); unmarshalErr != nil {
		t.Fatalf("Failed to unmarshal request: %v", unmarshalErr)
	}

	// Verify fields
	if decoded.JSONRPC != req.JSONRPC {
		t.Errorf("JSONRPC mismatch: expected %s, got %s", req.JSONRPC, decoded.JSONRPC)
	}

	if decoded.ID.value != req.ID.value {
		t.Errorf("ID mismatch: expected %s, got %s", req.ID.value, decoded.ID.value)
	}

	if decoded.Method != req.Method {
		t.Errorf("Method mismatch: expected %s, got %s", req.Method, decoded.Method)
	}

	// Compare params as parsed JSON to ignore formatting differences
	var expectedParams, decodedParams map[string]any
	json.Unmarshal(req.Params, &expectedParams)
	json.Unmarshal(decoded.Params, &decodedParams)

	if len(expectedParams) != len(decodedParams) {
		t.Errorf("Params mismatch: different number of keys")
	}
	for k, v := range expectedParams {
		if decodedParams[k] != v {
			t.Errorf("Params mismatch for key %s: expected %v, got %v", k, v, decodedParams[k])
		}
	}
}

func TestMethodParams_Decode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantInput   string
		wantProject string
		wantTimeout int
	}{
		{
			name:        "full params",
			input:       `{"input": "{\"toolName\": \"Edit\"}", "project": "/srv/site", "timeout": 45}`,
			wantInput:   `{"toolName": "Edit"}`,
			wantProject: "/srv/site",
			wantTimeout: 45,
		},
		{
			name:      "input only",
			input:     `{"input": "test"}`,
			wantInput: "test",
		},
		{
			name:  "empty object",
			input: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params MethodParams
			if err := json.Unmarshal([]byte(tt.input), &params); err != nil {
				t.Fatalf("Failed to unmarshal params: %v", err)
			}

			if params.Input != tt.wantInput {
				t.Errorf("Input mismatch: expected %q, got %q", tt.wantInput, params.Input)
			}

			if params.Project != tt.wantProject {
				t.Errorf("Project mismatch: expected %q, got %q", tt.wantProject, params.Project)
			}

			if params.Timeout != tt.wantTimeout {
				t.Errorf("Timeout mismatch: expected %d, got %d", tt.wantTimeout, params.Timeout)
			}
		})
	}
}
