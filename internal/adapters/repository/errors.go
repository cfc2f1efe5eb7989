package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("client not found")
	ErrTooManyRecords = errors.New("too many client records")
	ErrDuplicateID    = errors.New("duplicate client identifier")
)
