package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/cartosync/internal/client/storage"
	"github.com/iudanet/cartosync/pkg/api"
)

var projectsKey = []byte("list")

// SaveProjects replaces the cached project list
func (s *Storage) SaveProjects(ctx context.Context, projects []api.Project) error {
	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProjects)
		if bucket == nil {
			return fmt.Errorf("projects bucket not found")
		}

		data, err := json.Marshal(projects)
		if err != nil {
			return fmt.Errorf("failed to marshal projects: %w", err)
		}

		if err := bucket.Put(projectsKey, data); err != nil {
			return fmt.Errorf("failed to save projects: %w", err)
		}
		return nil
	})
}

// GetProjects returns the cached project list
func (s *Storage) GetProjects(ctx context.Context) ([]api.Project, error) {
	var projects []api.Project

	err := s.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketProjects)
		if bucket == nil {
			return fmt.Errorf("projects bucket not found")
		}

		data := bucket.Get(projectsKey)
		if data == nil {
			return storage.ErrNotFound
		}

		// данные bbolt валидны только внутри транзакции, Unmarshal копирует их
		if err := json.Unmarshal(data, &projects); err != nil {
			return fmt.Errorf("failed to unmarshal projects: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return projects, nil
}
