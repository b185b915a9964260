package domain

import "errors"

// Domain errors.
// Every board command returns nil when applied; any of these means state is unchanged.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrColumnNotFound     = errors.New("column not found")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyComment       = errors.New("comment cannot be empty")
	ErrInvalidMinutes     = errors.New("minutes must be a positive integer")
	ErrUnresolvedAssignee = errors.New("assignee could not be resolved")
	ErrNoChange           = errors.New("no change")
	ErrLastColumn         = errors.New("board must keep at least one column")
	ErrUnknownTool        = errors.New("unknown tool")
	ErrInvalidPayload     = errors.New("invalid tool payload")
	ErrNothingSelected    = errors.New("no tasks selected")
	ErrConfigExists       = errors.New("config file already exists")
	ErrUnsupportedFormat  = errors.New("unsupported board file format")
	ErrInvalidBoardFile   = errors.New("invalid board file")
	ErrUnknownBackend     = errors.New("unknown storage backend")
)
