// Package domain contains core board entities, pure board rules and ports.
package domain

import (
	"encoding/json"
	"time"
)

// Task is a unit of work on the board.
// TotalMinutes is a cached sum maintained by the time-entry command only.
type Task struct {
	ID           string      `json:"id" yaml:"id"`
	Title        string      `json:"title" yaml:"title"`
	Description  string      `json:"description" yaml:"description"`
	ColumnID     string      `json:"columnId" yaml:"columnId"`
	AssigneeID   string      `json:"assigneeId" yaml:"assigneeId,omitempty"` // Empty = unassigned
	TimeEntries  []TimeEntry `json:"timeEntries" yaml:"timeEntries"`
	Comments     []Comment   `json:"comments" yaml:"comments"`
	TotalMinutes int         `json:"totalMinutes" yaml:"totalMinutes"`
}

// TimeEntry is one logged block of work. Entries are append-only.
type TimeEntry struct {
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	ID        string    `json:"id" yaml:"id"`
	Note      string    `json:"note" yaml:"note"`
	Minutes   int       `json:"minutes" yaml:"minutes"`
}

// Comment is a note attached to a task. Comments are append-only.
type Comment struct {
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
}

// IsAssigned reports whether the task has an assignee.
func (t *Task) IsAssigned() bool {
	return t.AssigneeID != ""
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	c := t
	c.TimeEntries = append(make([]TimeEntry, 0, len(t.TimeEntries)), t.TimeEntries...)
	c.Comments = append(make([]Comment, 0, len(t.Comments)), t.Comments...)
	return c
}

// CloneTasks deep-copies a task list.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

// taskJSON mirrors Task on the wire, where an unassigned task carries null.
type taskJSON struct {
	AssigneeID *string `json:"assigneeId"`
	taskAlias
}

type taskAlias Task

// MarshalJSON encodes an empty assignee as null.
func (t Task) MarshalJSON() ([]byte, error) {
	out := taskJSON{taskAlias: taskAlias(t.Clone())}
	if t.AssigneeID != "" {
		id := t.AssigneeID
		out.AssigneeID = &id
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts null or missing list fields and normalizes them to empty slices.
func (t *Task) UnmarshalJSON(data []byte) error {
	var in taskJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*t = Task(in.taskAlias)
	t.AssigneeID = ""
	if in.AssigneeID != nil {
		t.AssigneeID = *in.AssigneeID
	}
	t.Normalize()
	return nil
}

// Normalize replaces nil list fields with empty slices.
func (t *Task) Normalize() {
	if t.TimeEntries == nil {
		t.TimeEntries = []TimeEntry{}
	}
	if t.Comments == nil {
		t.Comments = []Comment{}
	}
}
