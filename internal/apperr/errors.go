package apperr

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyNote = errors.New("note text is empty")
)
