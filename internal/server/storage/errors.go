package storage

import "errors"

// Common storage errors
var (
	// ErrStateNotFound indicates that no user-state document is stored for the project
	ErrStateNotFound = errors.New("user state not found")

	// ErrInvalidKey indicates an empty document key
	ErrInvalidKey = errors.New("invalid user state key")
)
