package project

import "errors"

var (
	// ErrNotLoaded is returned by operations that need a loaded project
	ErrNotLoaded = errors.New("no project loaded")

	// ErrLoadSuperseded is returned when another load started while this one
	// was fetching documents
	ErrLoadSuperseded = errors.New("project load superseded")

	// ErrMapNotFound is returned for a dashboard map index that does not exist
	ErrMapNotFound = errors.New("dashboard map not found")

	// ErrBookmarkNotFound is returned for an unknown bookmark id
	ErrBookmarkNotFound = errors.New("bookmark not found")
)
