package domain

import (
	"time"
)

// StateStore is the key-value backend that holds persisted board state.
type StateStore interface {
	// Get returns the raw value stored under key. Returns nil, nil if the key is missing.
	Get(key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// IDGenerator creates unique identifiers for tasks, columns, entries and comments.
type IDGenerator interface {
	// NewID returns a fresh id of the form "<prefix>-<suffix>".
	NewID(prefix string) string
}

// Logger records diagnostics by category.
type Logger interface {
	Debug(category, msg string)
	Info(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// NopLogger discards every message.
type NopLogger struct{}

func (NopLogger) Debug(string, string) {}
func (NopLogger) Info(string, string)  {}
func (NopLogger) Warn(string, string)  {}
func (NopLogger) Error(string, string) {}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
