package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	httpClient "github.com/iudanet/cartosync/internal/client/api"
	"github.com/iudanet/cartosync/internal/client/storage"
	"github.com/iudanet/cartosync/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProjects = []api.Project{
	{Base: "x", MML: "a.mml", MCP: "a.mcp", AvailableMSS: []string{"s1", "s2"}},
	{Base: ".", MML: "world.mml", MCP: "world.mcp"},
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCatalog_Load(t *testing.T) {
	client := &httpClient.ClientAPIMock{
		GetProjectsFunc: func(ctx context.Context) ([]api.Project, error) {
			return testProjects, nil
		},
	}
	cache := &storage.ProjectCacheMock{
		SaveProjectsFunc: func(ctx context.Context, projects []api.Project) error {
			return nil
		},
	}
	c := New(client, cache, testLogger())

	projects, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProjects, projects)
	assert.Equal(t, testProjects, c.Projects())

	require.Len(t, cache.SaveProjectsCalls(), 1)
	assert.Equal(t, testProjects, cache.SaveProjectsCalls()[0].Projects)
	assert.Len(t, client.GetProjectsCalls(), 1)
}

func TestCatalog_LoadFailureLeavesCatalogEmpty(t *testing.T) {
	errNetwork := errors.New("connection refused")
	fail := false
	client := &httpClient.ClientAPIMock{
		GetProjectsFunc: func(ctx context.Context) ([]api.Project, error) {
			if fail {
				return nil, errNetwork
			}
			return testProjects, nil
		},
	}
	c := New(client, nil, testLogger())

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	fail = true
	_, err = c.Load(context.Background())
	assert.ErrorIs(t, err, errNetwork)
	assert.Empty(t, c.Projects())

	_, ok := c.Resolve("x", "a.mml")
	assert.False(t, ok)
	_, err = c.Find("x/a.mml")
	assert.ErrorIs(t, err, ErrNotLoaded)

	// Ожидание возвращает результат последней загрузки
	_, err = c.Loaded(context.Background())
	assert.ErrorIs(t, err, errNetwork)
}

func TestCatalog_LoadedReleasesEarlyWaiters(t *testing.T) {
	release := make(chan struct{})
	client := &httpClient.ClientAPIMock{
		GetProjectsFunc: func(ctx context.Context) ([]api.Project, error) {
			<-release
			return testProjects, nil
		},
	}
	c := New(client, nil, testLogger())

	// Ожидающий начинает ждать до вызова Load
	results := make(chan []api.Project, 2)
	for range 2 {
		go func() {
			projects, err := c.Loaded(context.Background())
			assert.NoError(t, err)
			results <- projects
		}()
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Load(context.Background())
		done <- err
	}()
	close(release)
	require.NoError(t, <-done)

	for range 2 {
		select {
		case projects := <-results:
			assert.Equal(t, testProjects, projects)
		case <-time.After(time.Second):
			t.Fatal("waiter was not released")
		}
	}

	// После загрузки Loaded сразу возвращает тот же результат
	projects, err := c.Loaded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testProjects, projects)
}

func TestCatalog_Resolve(t *testing.T) {
	client := &httpClient.ClientAPIMock{
		GetProjectsFunc: func(ctx context.Context) ([]api.Project, error) {
			return testProjects, nil
		},
	}
	c := New(client, nil, testLogger())
	_, err := c.Load(context.Background())
	require.NoError(t, err)

	p, ok := c.Resolve("x", "a.mml")
	require.True(t, ok)
	assert.Equal(t, "a.mcp", p.MCP)

	// Корневой проект находится и по пустой базе
	p, ok = c.Resolve("", "world.mml")
	require.True(t, ok)
	assert.Equal(t, "world.mcp", p.MCP)

	_, ok = c.Resolve("y", "a.mml")
	assert.False(t, ok)

	p, ok = c.ResolveURL("world.mml")
	require.True(t, ok)
	assert.Equal(t, ".", p.Base)

	p, err = c.Find("x/a.mml")
	require.NoError(t, err)
	assert.Equal(t, "a.mml", p.MML)

	_, err = c.Find("x/missing.mml")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCatalog_Cached(t *testing.T) {
	c := New(&httpClient.ClientAPIMock{}, nil, testLogger())
	_, err := c.Cached(context.Background())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	cache := &storage.ProjectCacheMock{
		GetProjectsFunc: func(ctx context.Context) ([]api.Project, error) {
			return testProjects[:1], nil
		},
	}
	c = New(&httpClient.ClientAPIMock{}, cache, testLogger())
	projects, err := c.Cached(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}
