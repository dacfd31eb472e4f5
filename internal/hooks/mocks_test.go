package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// mockInputReader implements InputReader for tests.
type mockInputReader struct {
	isTerminalFunc func() bool
	readAllFunc    func() ([]byte, error)
}

func (m *mockInputReader) IsTerminal() bool {
	if m.isTerminalFunc != nil {
		return m.isTerminalFunc()
	}
	return false
}

func (m *mockInputReader) ReadAll() ([]byte, error) {
	if m.readAllFunc != nil {
		return m.readAllFunc()
	}
	return nil, nil
}

// mockCommandRunner implements CommandRunner for tests and records every
// invocation so tests can assert on spawn counts and arguments.
type mockCommandRunner struct {
	runContextFunc func(ctx context.Context, dir, name string, args ...string) (*RunOutput, error)

	calls []runnerCall
}

type runnerCall struct {
	dir  string
	name string
	args []string
}

func (m *mockCommandRunner) RunContext(ctx context.Context, dir, name string, args ...string) (*RunOutput, error) {
	m.calls = append(m.calls, runnerCall{dir: dir, name: name, args: args})
	if m.runContextFunc != nil {
		return m.runContextFunc(ctx, dir, name, args...)
	}
	return &RunOutput{}, nil
}

// createTestDependencies builds a Dependencies with the given stdin payload
// and runner, capturing stdout and stderr in buffers.
func createTestDependencies(stdin string, runner *mockCommandRunner) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	deps := &Dependencies{
		Runner: runner,
		Input: &mockInputReader{
			isTerminalFunc: func() bool { return false },
			readAllFunc: func() ([]byte, error) {
				return []byte(stdin), nil
			},
		},
		Stdout: stdout,
		Stderr: stderr,
	}
	return deps, stdout, stderr
}

// mustMarshalJSON marshals v or panics. For building test fixtures only.
func mustMarshalJSON(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal JSON: %v", err))
	}
	return data
}
