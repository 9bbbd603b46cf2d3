package storage

import (
	"context"
	"time"
)

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// SaveLastUpdate saves the updated_at of the last applied change
	// notification of a project
	SaveLastUpdate(ctx context.Context, projectURL string, updatedAt time.Time) error

	// GetLastUpdate retrieves the last applied change of a project
	// Returns zero time if no change has been applied yet
	GetLastUpdate(ctx context.Context, projectURL string) (time.Time, error)

	// SetCurrentProject remembers the project CLI commands work on by default
	SetCurrentProject(ctx context.Context, projectURL string) error

	// GetCurrentProject returns ErrNotFound if no project was selected
	GetCurrentProject(ctx context.Context) (string, error)
}
