package server

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Lock represents a resource lock.
type Lock struct {
	Resource   string
	Holder     string
	AcquiredAt time.Time
}

// SimpleLockManager implements LockManager with in-memory locks. Acquire is
// non-blocking: contention means the caller runs without the server instead.
type SimpleLockManager struct {
	mu    sync.RWMutex
	locks map[string]*Lock
}

// NewSimpleLockManager creates a new lock manager.
func NewSimpleLockManager() *SimpleLockManager {
	return &SimpleLockManager{
		locks: make(map[string]*Lock),
	}
}

// Acquire attempts to acquire a lock for a resource.
func (m *SimpleLockManager) Acquire(key, holder string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.locks[key]; exists {
		return false // Already locked
	}

	m.locks[key] = &Lock{
		Resource:   key,
		Holder:     holder,
		AcquiredAt: time.Now(),
	}
	return true
}

// Release releases a lock for a resource.
func (m *SimpleLockManager) Release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, key)
}

// StandardLogger implements Logger on top of slog. The serve command sets
// the default slog handler before constructing the server.
type StandardLogger struct {
	logger *slog.Logger
}

// NewStandardLogger creates a logger backed by slog.Default().
func NewStandardLogger() *StandardLogger {
	return &StandardLogger{
		logger: slog.Default(),
	}
}

// Printf formats and logs at info level.
func (l *StandardLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Println logs at info level.
func (l *StandardLogger) Println(v ...any) {
	l.logger.Info(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
