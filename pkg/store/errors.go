package store

import "errors"

var (
	// ErrNotFound is returned by single-record getters when no row matches.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable is returned when no usable backend handle exists.
	ErrUnavailable = errors.New("user database unavailable")

	// ErrBackend wraps errors reported by the backend engine.
	ErrBackend = errors.New("user database error")

	// ErrInvalidValue is returned for non-positive realm option values.
	ErrInvalidValue = errors.New("realm option value must be positive")

	// ErrInvalidRecord is returned when a record lacks its key.
	ErrInvalidRecord = errors.New("invalid record")
)
