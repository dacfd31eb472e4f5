package hooks

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoInput indicates stdin had no hook payload to read (terminal or empty).
var ErrNoInput = errors.New("no input provided")

// HookInput is the JSON document Claude Code writes to a hook's stdin.
// Dispatch reads only toolName and toolInput; the session fields come
// along on every event.
type HookInput struct {
	ToolName     string          `json:"toolName"`
	ToolInput    json.RawMessage `json:"toolInput,omitempty"`
	ToolResponse json.RawMessage `json:"toolResponse,omitempty"`

	HookEventName  string `json:"hook_event_name,omitempty"`
	SessionID      string `json:"session_id,omitempty"`
	TranscriptPath string `json:"transcript_path,omitempty"`
	CWD            string `json:"cwd,omitempty"`
}

// ReadHookInput reads and parses the hook payload from the given reader.
// Returns ErrNoInput when the reader is a terminal or yields no bytes.
// A payload that is not valid JSON is an error the caller must not swallow:
// it is the one condition under which a hook exits nonzero.
func ReadHookInput(input InputReader) (*HookInput, error) {
	if input.IsTerminal() {
		return nil, ErrNoInput
	}

	data, err := input.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoInput
	}

	var hookInput HookInput
	if err := json.Unmarshal(data, &hookInput); err != nil {
		return nil, fmt.Errorf("parse hook input: %w", err)
	}

	return &hookInput, nil
}

// GetFilePath extracts toolInput.file_path. Returns "" when toolInput is
// absent, not an object, or file_path is missing or not a string.
func (h *HookInput) GetFilePath() string {
	if len(h.ToolInput) == 0 {
		return ""
	}

	var toolInput map[string]any
	if err := json.Unmarshal(h.ToolInput, &toolInput); err != nil {
		return ""
	}

	filePath, ok := toolInput["file_path"].(string)
	if !ok {
		return ""
	}
	return filePath
}

// MatchesTool reports whether ToolName equals one of the given names.
// Comparison is case-sensitive: "edit" does not match "Edit".
func (h *HookInput) MatchesTool(names ...string) bool {
	for _, name := range names {
		if h.ToolName == name {
			return true
		}
	}
	return false
}
