package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cartosync/internal/client/storage"
)

const (
	keyCurrentProject = "current_project"
)

// SaveLastUpdate saves the updated_at of the last applied change of a project
func (s *Storage) SaveLastUpdate(ctx context.Context, projectURL string, updatedAt time.Time) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketLastUpdate)
		if bucket == nil {
			return fmt.Errorf("last update bucket not found")
		}

		// Храним наносекунды unix времени
		value := make([]byte, 8)
		binary.BigEndian.PutUint64(value, uint64(updatedAt.UnixNano()))

		if err := bucket.Put([]byte(projectURL), value); err != nil {
			return fmt.Errorf("failed to save last update: %w", err)
		}
		return nil
	})
}

// GetLastUpdate retrieves the last applied change of a project
// Returns zero time if no change has been applied yet
func (s *Storage) GetLastUpdate(ctx context.Context, projectURL string) (time.Time, error) {
	var updatedAt time.Time

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketLastUpdate)
		if bucket == nil {
			return fmt.Errorf("last update bucket not found")
		}

		value := bucket.Get([]byte(projectURL))
		if value == nil {
			return nil
		}
		updatedAt = time.Unix(0, int64(binary.BigEndian.Uint64(value)))
		return nil
	})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get last update: %w", err)
	}

	return updatedAt, nil
}

// SetCurrentProject remembers the default project of CLI commands
func (s *Storage) SetCurrentProject(ctx context.Context, projectURL string) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		if err := bucket.Put([]byte(keyCurrentProject), []byte(projectURL)); err != nil {
			return fmt.Errorf("failed to save current project: %w", err)
		}
		return nil
	})
}

// GetCurrentProject returns the default project of CLI commands
func (s *Storage) GetCurrentProject(ctx context.Context) (string, error) {
	var projectURL string

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}
		value := bucket.Get([]byte(keyCurrentProject))
		if value == nil {
			return storage.ErrNotFound
		}
		projectURL = string(value)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get current project: %w", err)
	}

	return projectURL, nil
}
