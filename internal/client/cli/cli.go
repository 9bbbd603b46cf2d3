// Package cli implements the cartosync command line client on top of the
// project engine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpClient "github.com/iudanet/cartosync/internal/client/api"
	"github.com/iudanet/cartosync/internal/client/catalog"
	"github.com/iudanet/cartosync/internal/client/iocli"
	"github.com/iudanet/cartosync/internal/client/layer"
	"github.com/iudanet/cartosync/internal/client/project"
	"github.com/iudanet/cartosync/internal/client/storage"
	"github.com/iudanet/cartosync/pkg/api"
)

// ErrNoProject is returned when a command needs a project and none was
// given or selected with "use".
var ErrNoProject = errors.New("no project selected, run 'cartosync use <project>' or pass --project")

// Cli runs the commands against one server.
type Cli struct {
	io           iocli.IO
	apiClient    httpClient.ClientAPI
	catalog      *catalog.Catalog
	metadata     storage.MetadataStorage
	binder       project.Binder
	logger       *slog.Logger
	saveDebounce time.Duration
}

// New creates a Cli. binder opens the live channel of loaded projects.
func New(
	io iocli.IO,
	apiClient httpClient.ClientAPI,
	catalog *catalog.Catalog,
	metadata storage.MetadataStorage,
	binder project.Binder,
	logger *slog.Logger,
	saveDebounce time.Duration,
) *Cli {
	return &Cli{
		io:           io,
		apiClient:    apiClient,
		catalog:      catalog,
		metadata:     metadata,
		binder:       binder,
		logger:       logger,
		saveDebounce: saveDebounce,
	}
}

// resolveProject находит проект по url или по выбранному ранее проекту
func (c *Cli) resolveProject(ctx context.Context, url string) (api.Project, error) {
	if url == "" {
		current, err := c.metadata.GetCurrentProject(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return api.Project{}, ErrNoProject
			}
			return api.Project{}, fmt.Errorf("failed to get current project: %w", err)
		}
		url = current
	}

	if _, err := c.catalog.Load(ctx); err != nil {
		return api.Project{}, err
	}
	return c.catalog.Find(url)
}

// openProject загружает проект в новое хранилище; вызывающий обязан выгрузить его
func (c *Cli) openProject(ctx context.Context, url string, binder project.Binder, editor layer.Editor, opts project.Options) (*project.Store, error) {
	p, err := c.resolveProject(ctx, url)
	if err != nil {
		return nil, err
	}

	if editor == nil {
		editor = keepEditor
	}
	opts.Metadata = c.metadata
	if opts.SaveDebounce == 0 {
		opts.SaveDebounce = c.saveDebounce
	}

	store := project.NewStore(c.apiClient, binder, editor, c.logger, opts)
	if err := store.LoadProject(ctx, p); err != nil {
		return nil, err
	}
	return store, nil
}

// withProject выполняет fn над загруженным проектом без live канала.
// Выгрузка сохраняет все отложенные изменения.
func (c *Cli) withProject(ctx context.Context, url string, editor layer.Editor, fn func(*project.Store) error) error {
	store, err := c.openProject(ctx, url, detachedBinder{}, editor, project.Options{})
	if err != nil {
		return err
	}
	defer store.UnloadProject()
	return fn(store)
}
