package models

import "errors"

var (
	// ErrNotFound is returned when a lookup by id, username or role id yields no record
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a request misses a required field
	ErrInvalidInput = errors.New("invalid input")
)
