package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/cartosync/internal/server/storage"
)

var _ storage.UserStateStorage = (*Storage)(nil)

// GetUserState retrieves the user-state document stored under path
func (s *Storage) GetUserState(ctx context.Context, path string) (*storage.UserState, error) {
	if path == "" {
		return nil, storage.ErrInvalidKey
	}

	query := `
		SELECT path, document, updated_at
		FROM user_states
		WHERE path = ?
	`

	state := &storage.UserState{}
	err := s.db.QueryRowContext(ctx, query, path).Scan(
		&state.Path,
		&state.Document,
		&state.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get user state: %w", err)
	}

	return state, nil
}

// PutUserState creates or replaces the user-state document stored under path
func (s *Storage) PutUserState(ctx context.Context, path string, doc []byte) error {
	if path == "" {
		return storage.ErrInvalidKey
	}

	query := `
		INSERT INTO user_states (path, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, path, doc, s.now().UTC()); err != nil {
		return fmt.Errorf("failed to save user state: %w", err)
	}

	return nil
}
