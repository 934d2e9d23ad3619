package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource conflict")
	ErrCheckCompleted   = errors.New("accountability check already completed")
	ErrStepMismatch     = errors.New("step completions do not match plan steps")
	ErrDuplicateRequest = errors.New("duplicate client request")
	ErrInvalidInput     = errors.New("invalid input")
)
