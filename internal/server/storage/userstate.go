package storage

import (
	"context"
	"time"
)

//go:generate moq -out userstate_mock.go . UserStateStorage

// UserState is a stored user-state (mcp) document of a project.
type UserState struct {
	UpdatedAt time.Time
	Path      string // путь mcp файла относительно styles dir
	Document  []byte
}

// UserStateStorage defines interface for user-state document persistence
type UserStateStorage interface {
	// GetUserState retrieves the document stored under path
	// Returns ErrStateNotFound if nothing was stored yet
	GetUserState(ctx context.Context, path string) (*UserState, error)

	// PutUserState creates or replaces the document stored under path
	PutUserState(ctx context.Context, path string, doc []byte) error
}
