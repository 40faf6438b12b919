package domain

import "errors"

var (
	// ErrTodoNotFound covers both "does not exist" and "owned by another
	// user"; callers must not be able to tell the two apart.
	ErrTodoNotFound    = errors.New("todo not found")
	ErrSubtaskNotFound = errors.New("subtask not found")
	ErrInvalidField    = errors.New("invalid field value")
)
