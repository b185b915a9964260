package board

import (
	"fmt"
	"strings"

	"github.com/runoshun/kanban/internal/domain"
)

// AddColumnInput contains the parameters for adding a column.
type AddColumnInput struct {
	Position *int // Inserted at Position when 0 <= Position <= len, else appended
	Title    string
	Color    string
}

// AddColumn inserts a new column and returns its id.
// Empty title and color default to "Column N" and the next palette color.
func (s *Store) AddColumn(in AddColumnInput) string {
	var id string
	_ = s.mutate("add_column", func() (bool, error) {
		n := len(s.columns)
		col := domain.Column{
			ID:    s.ids.NewID("col"),
			Title: strings.TrimSpace(in.Title),
			Color: in.Color,
		}
		if col.Title == "" {
			col.Title = fmt.Sprintf("Column %d", n+1)
		}
		if col.Color == "" {
			col.Color = domain.PaletteColor(n)
		}
		at := n
		if in.Position != nil && *in.Position >= 0 && *in.Position <= n {
			at = *in.Position
		}
		s.columns = append(s.columns[:at:at], append([]domain.Column{col}, s.columns[at:]...)...)
		id = col.ID
		return true, nil
	})
	return id
}

// RenameColumn sets a column title. A blank title becomes "Untitled column".
func (s *Store) RenameColumn(id, title string) error {
	return s.mutate("rename_column", func() (bool, error) {
		i := s.columnIndex(id)
		if i < 0 {
			return false, fmt.Errorf("rename %q: %w", id, domain.ErrColumnNotFound)
		}
		title = strings.TrimSpace(title)
		if title == "" {
			title = domain.UntitledColumn
		}
		s.columns[i].Title = title
		return true, nil
	})
}

// SetColumnColor sets a column color. An empty color picks the palette entry
// for the column's index.
func (s *Store) SetColumnColor(id, color string) error {
	return s.mutate("set_column_color", func() (bool, error) {
		i := s.columnIndex(id)
		if i < 0 {
			return false, fmt.Errorf("color %q: %w", id, domain.ErrColumnNotFound)
		}
		if color == "" {
			color = domain.PaletteColor(i)
		}
		s.columns[i].Color = color
		return true, nil
	})
}

// RemoveColumn deletes a column and moves its tasks to the new first column.
// The last remaining column cannot be removed.
func (s *Store) RemoveColumn(id string) error {
	return s.mutate("remove_column", func() (bool, error) {
		if len(s.columns) <= 1 {
			return false, domain.ErrLastColumn
		}
		i := s.columnIndex(id)
		if i < 0 {
			return false, fmt.Errorf("remove %q: %w", id, domain.ErrColumnNotFound)
		}
		s.columns = append(s.columns[:i:i], s.columns[i+1:]...)
		fallback := s.columns[0].ID
		moved := 0
		for j := range s.tasks {
			if s.tasks[j].ColumnID == id {
				s.tasks[j].ColumnID = fallback
				moved++
			}
		}
		if s.ui.DragOverColumnID == id {
			s.ui.DragOverColumnID = ""
		}
		if s.ui.DraggedColumnID == id {
			s.ui.DraggedColumnID = ""
		}
		s.logger.Info(catStore, fmt.Sprintf("removed column %s, moved %d task(s) to %s", id, moved, fallback))
		return true, nil
	})
}

// ReorderColumn moves a column to toIndex, clamped to the valid range.
func (s *Store) ReorderColumn(id string, toIndex int) error {
	return s.mutate("reorder_column", func() (bool, error) {
		if !s.reorderColumn(id, toIndex) {
			return false, fmt.Errorf("reorder %q: %w", id, domain.ErrColumnNotFound)
		}
		return true, nil
	})
}

func (s *Store) reorderColumn(id string, toIndex int) bool {
	from := s.columnIndex(id)
	if from < 0 {
		return false
	}
	target := max(0, min(toIndex, len(s.columns)-1))
	col := s.columns[from]
	rest := append(s.columns[:from:from], s.columns[from+1:]...)
	s.columns = append(rest[:target:target], append([]domain.Column{col}, rest[target:]...)...)
	return true
}
