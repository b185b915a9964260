// Package boardfile reads and writes board exports as YAML or JSON.
package boardfile

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/kanban/internal/domain"
)

// Supported formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// CurrentVersion is the export layout version written by Encode.
const CurrentVersion = 1

// File is the on-disk export layout.
type File struct {
	ExportedAt time.Time       `json:"exportedAt" yaml:"exportedAt"`
	Columns    []domain.Column `json:"columns" yaml:"columns"`
	Tasks      []domain.Task   `json:"tasks" yaml:"tasks"`
	Version    int             `json:"version" yaml:"version"`
}

// ParseFormat normalizes a format name. An empty name means YAML.
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, name)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", domain.ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Encode writes state to w in the given format.
func Encode(w io.Writer, state domain.BoardState, format string, exportedAt time.Time) error {
	f := File{
		Version:    CurrentVersion,
		ExportedAt: exportedAt.UTC(),
		Columns:    state.Columns,
		Tasks:      state.Tasks,
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}
	return nil
}

// Decode reads and validates an export from r.
func Decode(r io.Reader, format string) (domain.BoardState, error) {
	var f File
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return domain.BoardState{}, fmt.Errorf("%w: %v", domain.ErrInvalidBoardFile, err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&f); err != nil {
			return domain.BoardState{}, fmt.Errorf("%w: %v", domain.ErrInvalidBoardFile, err)
		}
	default:
		return domain.BoardState{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, format)
	}

	if f.Version > CurrentVersion {
		return domain.BoardState{}, fmt.Errorf("%w: version %d is newer than %d", domain.ErrInvalidBoardFile, f.Version, CurrentVersion)
	}

	state := domain.BoardState{Columns: f.Columns, Tasks: f.Tasks}
	if state.Columns == nil {
		state.Columns = []domain.Column{}
	}
	if state.Tasks == nil {
		state.Tasks = []domain.Task{}
	}
	for i := range state.Tasks {
		state.Tasks[i].Normalize()
	}
	if err := Validate(state); err != nil {
		return domain.BoardState{}, err
	}
	return state, nil
}

// Validate checks ids are present and unique and every task sits in a listed column.
// An empty column list is allowed; the board falls back to its default columns.
func Validate(state domain.BoardState) error {
	columns := make(map[string]bool, len(state.Columns))
	for i, c := range state.Columns {
		if c.ID == "" {
			return fmt.Errorf("%w: column #%d has no id", domain.ErrInvalidBoardFile, i+1)
		}
		if columns[c.ID] {
			return fmt.Errorf("%w: duplicate column id %q", domain.ErrInvalidBoardFile, c.ID)
		}
		columns[c.ID] = true
	}

	tasks := make(map[string]bool, len(state.Tasks))
	for i, t := range state.Tasks {
		if t.ID == "" {
			return fmt.Errorf("%w: task #%d has no id", domain.ErrInvalidBoardFile, i+1)
		}
		if tasks[t.ID] {
			return fmt.Errorf("%w: duplicate task id %q", domain.ErrInvalidBoardFile, t.ID)
		}
		tasks[t.ID] = true
		if len(columns) > 0 && !columns[t.ColumnID] {
			return fmt.Errorf("%w: task %q is in unknown column %q", domain.ErrInvalidBoardFile, t.ID, t.ColumnID)
		}
	}
	return nil
}
