// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/kanban/internal/domain"
)

// Ensure mocks implement their domain ports.
var (
	_ domain.Clock       = (*MockClock)(nil)
	_ domain.IDGenerator = (*SequentialIDs)(nil)
	_ domain.StateStore  = (*MockStateStore)(nil)
	_ domain.Logger      = (*RecordingLogger)(nil)
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// SequentialIDs is a deterministic domain.IDGenerator producing "<prefix>-new1", "<prefix>-new2", ...
type SequentialIDs struct {
	counters map[string]int
	mu       sync.Mutex
}

// NewSequentialIDs creates a new SequentialIDs.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{counters: make(map[string]int)}
}

// NewID returns the next id for prefix. Prefixes are counted independently.
func (s *SequentialIDs) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counters[prefix]++
	return fmt.Sprintf("%s-new%d", prefix, s.counters[prefix])
}

// MockStateStore is an in-memory domain.StateStore.
// Fields are ordered to minimize memory padding.
type MockStateStore struct {
	Data     map[string][]byte
	GetErr   error
	SetErr   error
	SetCalls int
	mu       sync.Mutex
}

// NewMockStateStore creates a new MockStateStore with an initialized map.
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{Data: make(map[string][]byte)}
}

// Get returns the stored value, or nil if missing.
func (m *MockStateStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	v, ok := m.Data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Set stores value under key. SetCalls counts attempts, including failed ones.
func (m *MockStateStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Data[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes key.
func (m *MockStateStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}

// Writes returns the number of Set calls so far.
func (m *MockStateStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SetCalls
}

// LogEntry is one message captured by RecordingLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// RecordingLogger is a domain.Logger that keeps every message.
type RecordingLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (l *RecordingLogger) record(level, category, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Debug records a debug message.
func (l *RecordingLogger) Debug(category, msg string) { l.record("DEBUG", category, msg) }

// Info records an info message.
func (l *RecordingLogger) Info(category, msg string) { l.record("INFO", category, msg) }

// Warn records a warning.
func (l *RecordingLogger) Warn(category, msg string) { l.record("WARN", category, msg) }

// Error records an error.
func (l *RecordingLogger) Error(category, msg string) { l.record("ERROR", category, msg) }

// Count returns how many entries have the given level.
func (l *RecordingLogger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}
