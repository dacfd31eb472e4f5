package hooks

import (
	"strings"
	"sync"
)

// StringInputReader serves a fixed payload as hook input. The server uses it
// to hand a request body to the hook core without touching os.Stdin.
type StringInputReader struct {
	data string
	read bool
}

// NewStringInputReader returns an InputReader over the given payload.
func NewStringInputReader(data string) *StringInputReader {
	return &StringInputReader{data: data}
}

// ReadAll returns the payload once; subsequent calls return nothing.
func (r *StringInputReader) ReadAll() ([]byte, error) {
	if r.read {
		return nil, nil
	}
	r.read = true
	return []byte(r.data), nil
}

// IsTerminal always reports false: a string payload is never a TTY.
func (r *StringInputReader) IsTerminal() bool {
	return false
}

// StringOutputWriter collects writes into a string, safe for concurrent use.
type StringOutputWriter struct {
	mu  sync.Mutex
	buf strings.Builder
}

// NewStringOutputWriter returns an empty output collector.
func NewStringOutputWriter() *StringOutputWriter {
	return &StringOutputWriter{}
}

func (w *StringOutputWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// String returns everything written so far.
func (w *StringOutputWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}
