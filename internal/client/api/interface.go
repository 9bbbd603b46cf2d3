package api

import (
	"context"

	"github.com/iudanet/cartosync/internal/models"
	"github.com/iudanet/cartosync/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI is the server surface the synchronization engine talks to.
type ClientAPI interface {
	GetProjects(ctx context.Context) ([]api.Project, error)
	GetProjectDocument(ctx context.Context, p api.Project) (*models.ProjectDocument, error)
	PutProjectDocument(ctx context.Context, p api.Project, doc *models.ProjectDocument) error
	GetUserState(ctx context.Context, p api.Project) (*models.UserStateDocument, error)
	PutUserState(ctx context.Context, p api.Project, doc *models.UserStateDocument) error
}

var _ ClientAPI = (*Client)(nil)
