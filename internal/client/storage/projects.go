package storage

import (
	"context"

	"github.com/iudanet/cartosync/pkg/api"
)

//go:generate moq -out projects_mock.go . ProjectCache

// ProjectCache keeps the last successfully fetched project list for
// offline listing.
type ProjectCache interface {
	// SaveProjects replaces the cached list
	SaveProjects(ctx context.Context, projects []api.Project) error

	// GetProjects returns ErrNotFound if nothing was cached yet
	GetProjects(ctx context.Context) ([]api.Project, error)
}
