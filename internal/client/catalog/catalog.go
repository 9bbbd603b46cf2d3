// Package catalog loads the list of projects offered by the server and
// resolves route keys to projects.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	httpClient "github.com/iudanet/cartosync/internal/client/api"
	"github.com/iudanet/cartosync/internal/client/promise"
	"github.com/iudanet/cartosync/internal/client/storage"
	"github.com/iudanet/cartosync/pkg/api"
)

var (
	// ErrNotLoaded is returned when the catalog has no successfully loaded list
	ErrNotLoaded = errors.New("project catalog not loaded")

	// ErrProjectNotFound is returned when no project matches a route key
	ErrProjectNotFound = errors.New("project not found")
)

// Catalog holds the project list of the last successful load.
type Catalog struct {
	apiClient httpClient.ClientAPI
	cache     storage.ProjectCache
	logger    *slog.Logger
	loaded    *promise.Promise[[]api.Project]
	projects  []api.Project
	mu        sync.Mutex
	ok        bool
}

// New creates a catalog. cache may be nil.
func New(apiClient httpClient.ClientAPI, cache storage.ProjectCache, logger *slog.Logger) *Catalog {
	return &Catalog{
		apiClient: apiClient,
		cache:     cache,
		logger:    logger,
		loaded:    promise.New[[]api.Project](),
	}
}

// Load fetches the project list once. On failure the catalog is left empty
// and the error is returned; there is no retry.
func (c *Catalog) Load(ctx context.Context) ([]api.Project, error) {
	c.mu.Lock()
	// ожидающие до первого Load получают результат этого Load,
	// последующие загрузки начинают новый цикл
	if c.loaded.Settled() {
		c.loaded = promise.New[[]api.Project]()
	}
	p := c.loaded
	c.mu.Unlock()

	projects, err := c.apiClient.GetProjects(ctx)
	if err != nil {
		c.mu.Lock()
		c.projects = nil
		c.ok = false
		c.mu.Unlock()

		err = fmt.Errorf("failed to load projects: %w", err)
		p.Reject(err)
		return nil, err
	}

	c.mu.Lock()
	c.projects = slices.Clone(projects)
	c.ok = true
	c.mu.Unlock()

	c.logger.Info("Projects loaded", "count", len(projects))

	if c.cache != nil {
		if err := c.cache.SaveProjects(ctx, projects); err != nil {
			c.logger.Warn("Failed to cache project list", "error", err)
		}
	}

	p.Resolve(slices.Clone(projects))
	return projects, nil
}

// Loaded blocks until the current load completes and returns its result.
func (c *Catalog) Loaded(ctx context.Context) ([]api.Project, error) {
	c.mu.Lock()
	p := c.loaded
	c.mu.Unlock()

	return p.Wait(ctx)
}

// Projects returns the loaded list in server order.
func (c *Catalog) Projects() []api.Project {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.projects)
}

// Resolve returns the project identified by its folder and mml file name.
func (c *Catalog) Resolve(base, mml string) (api.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.projects {
		if p.MML == mml && (p.Base == base || isRoot(p.Base) && isRoot(base)) {
			return p, true
		}
	}
	return api.Project{}, false
}

// ResolveURL returns the project whose URL() equals url.
func (c *Catalog) ResolveURL(url string) (api.Project, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.projects {
		if p.URL() == url {
			return p, true
		}
	}
	return api.Project{}, false
}

// Find resolves url and reports why it could not.
func (c *Catalog) Find(url string) (api.Project, error) {
	c.mu.Lock()
	ok := c.ok
	c.mu.Unlock()

	if !ok {
		return api.Project{}, ErrNotLoaded
	}
	p, found := c.ResolveURL(url)
	if !found {
		return api.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, url)
	}
	return p, nil
}

// Cached returns the project list stored by the last successful load,
// possibly from an earlier run.
func (c *Catalog) Cached(ctx context.Context) ([]api.Project, error) {
	if c.cache == nil {
		return nil, storage.ErrNotFound
	}
	projects, err := c.cache.GetProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached projects: %w", err)
	}
	return projects, nil
}

func isRoot(base string) bool {
	return base == "" || base == "."
}
