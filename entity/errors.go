package entity

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a uniqueness rule.
	ErrDuplicate = errors.New("duplicate record")
	// ErrInvalidInput marks domain validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
