package tool

import (
	"context"

	"github.com/runoshun/kanban/internal/board"
)

// table maps tool names to handlers.
func (d *Dispatcher) table() map[string]handler {
	return map[string]handler{
		CreateTask:        d.createTask,
		UpdateTask:        d.updateTask,
		MoveTask:          d.moveTask,
		DeleteTask:        d.deleteTask,
		GetBoardState:     d.getBoardState,
		AddTimeEntry:      d.addTimeEntry,
		AddComment:        d.addComment,
		OpenTaskModal:     d.openTaskModal,
		AssignTask:        d.assignTask,
		UnassignTask:      d.unassignTask,
		SetFilters:        d.setFilters,
		ClearFilters:      d.clearFilters,
		OpenProfilePanel:  d.openProfilePanel,
		CloseProfilePanel: d.closeProfilePanel,
		UpdateProfile:     d.updateProfile,
		AddColumn:         d.addColumn,
		RenameColumn:      d.renameColumn,
		RemoveColumn:      d.removeColumn,
		ReorderColumn:     d.reorderColumn,
		SetColumnColor:    d.setColumnColor,
	}
}

// IDResult is returned by tools that create something.
type IDResult struct {
	ID string `json:"id"`
}

func (d *Dispatcher) createTask(_ context.Context, p Payload) (any, error) {
	id, err := d.store.CreateTask(board.CreateTaskInput{
		Title:       p.String("title"),
		Description: p.String("description"),
		ColumnID:    p.String("columnId"),
		AssigneeID:  p.String("assigneeId"),
	})
	if err != nil {
		return nil, err
	}
	return IDResult{ID: id}, nil
}

func (d *Dispatcher) updateTask(_ context.Context, p Payload) (any, error) {
	return nil, d.store.UpdateTask(board.UpdateTaskInput{
		ID:          p.String("id"),
		Title:       p.OptString("title"),
		Description: p.OptString("description"),
		ColumnID:    p.OptString("columnId"),
		AssigneeID:  p.OptString("assigneeId"),
	})
}

func (d *Dispatcher) moveTask(_ context.Context, p Payload) (any, error) {
	return nil, d.store.MoveTask(board.MoveTaskInput{
		ID:         p.String("id"),
		ToColumnID: p.String("toColumnId"),
		Position:   p.OptInt("position"),
	})
}

func (d *Dispatcher) deleteTask(_ context.Context, p Payload) (any, error) {
	return nil, d.store.DeleteTask(p.String("id"))
}

func (d *Dispatcher) getBoardState(_ context.Context, _ Payload) (any, error) {
	return d.store.Snapshot(), nil
}

func (d *Dispatcher) addTimeEntry(_ context.Context, p Payload) (any, error) {
	return nil, d.store.AddTimeEntry(p.String("taskId"), *p.OptInt("minutes"), p.String("note"))
}

func (d *Dispatcher) addComment(_ context.Context, p Payload) (any, error) {
	return nil, d.store.AddComment(p.String("taskId"), p.String("text"))
}

func (d *Dispatcher) openTaskModal(_ context.Context, p Payload) (any, error) {
	return nil, d.store.OpenTaskModal(p.String("id"))
}

func (d *Dispatcher) assignTask(_ context.Context, p Payload) (any, error) {
	// null and "" both clear.
	return nil, d.store.AssignTask(p.String("id"), p.String("assigneeId"))
}

func (d *Dispatcher) unassignTask(_ context.Context, p Payload) (any, error) {
	return nil, d.store.UnassignTask(p.String("id"))
}

func (d *Dispatcher) setFilters(_ context.Context, p Payload) (any, error) {
	d.store.SetFilters(board.SetFiltersInput{
		SearchQuery:  p.OptString("searchQuery"),
		AssigneeID:   p.OptString("assigneeId"),
		ShowOnlyMine: p.OptBool("showOnlyMine"),
	})
	return nil, nil
}

func (d *Dispatcher) clearFilters(_ context.Context, _ Payload) (any, error) {
	d.store.ClearFilters()
	return nil, nil
}

func (d *Dispatcher) openProfilePanel(_ context.Context, _ Payload) (any, error) {
	d.store.OpenProfilePanel()
	return nil, nil
}

func (d *Dispatcher) closeProfilePanel(_ context.Context, _ Payload) (any, error) {
	d.store.CloseProfilePanel()
	return nil, nil
}

func (d *Dispatcher) updateProfile(_ context.Context, p Payload) (any, error) {
	return nil, d.store.UpdateProfile(board.UpdateProfileInput{
		Name:   p.OptString("name"),
		Role:   p.OptString("role"),
		Email:  p.OptString("email"),
		Status: p.OptString("status"),
	})
}

func (d *Dispatcher) addColumn(_ context.Context, p Payload) (any, error) {
	id := d.store.AddColumn(board.AddColumnInput{
		Title:    p.String("title"),
		Color:    p.String("color"),
		Position: p.OptInt("position"),
	})
	return IDResult{ID: id}, nil
}

func (d *Dispatcher) renameColumn(_ context.Context, p Payload) (any, error) {
	return nil, d.store.RenameColumn(p.String("id"), p.String("title"))
}

func (d *Dispatcher) removeColumn(_ context.Context, p Payload) (any, error) {
	return nil, d.store.RemoveColumn(p.String("id"))
}

func (d *Dispatcher) reorderColumn(_ context.Context, p Payload) (any, error) {
	return nil, d.store.ReorderColumn(p.String("id"), *p.OptInt("position"))
}

func (d *Dispatcher) setColumnColor(_ context.Context, p Payload) (any, error) {
	return nil, d.store.SetColumnColor(p.String("id"), p.String("color"))
}
