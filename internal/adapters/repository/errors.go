package repository

import "errors"

// Sentinel kinds for chart store errors.
var (
	ErrNotFound    = errors.New("point chart not found")
	ErrInvalidFile = errors.New("invalid chart file")
	ErrInvalidKey  = errors.New("invalid chart key")
)
