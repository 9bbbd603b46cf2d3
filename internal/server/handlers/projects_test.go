package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/cartosync/internal/server/middleware"
	"github.com/iudanet/cartosync/internal/server/storage"
	"github.com/iudanet/cartosync/pkg/api"
)

// memoryStates хранит user-state документы в памяти
func memoryStates() *storage.UserStateStorageMock {
	var mu sync.Mutex
	docs := make(map[string][]byte)
	return &storage.UserStateStorageMock{
		GetUserStateFunc: func(ctx context.Context, path string) (*storage.UserState, error) {
			mu.Lock()
			defer mu.Unlock()
			doc, ok := docs[path]
			if !ok {
				return nil, storage.ErrStateNotFound
			}
			return &storage.UserState{Path: path, Document: doc, UpdatedAt: time.Unix(0, 0)}, nil
		},
		PutUserStateFunc: func(ctx context.Context, path string, doc []byte) error {
			mu.Lock()
			defer mu.Unlock()
			docs[path] = doc
			return nil
		},
	}
}

func setupStylesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"osm/osm.mml":    `{"Stylesheet":["base.mss"],"Layer":[]}`,
		"osm/base.mss":   "Map {}",
		"root.mml":       `{"Stylesheet":[]}`,
		"nested/a/b.mml": `{}`,
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}
	return dir
}

func setupServer(t *testing.T, states storage.UserStateStorage, limiter *middleware.RateLimiter) (*httptest.Server, string) {
	t.Helper()
	server, dir, _ := setupServerWithChanges(t, states, limiter)
	return server, dir
}

func setupServerWithChanges(t *testing.T, states storage.UserStateStorage, limiter *middleware.RateLimiter) (*httptest.Server, string, *ChangesHandler) {
	t.Helper()
	dir := setupStylesDir(t)
	logger := setupTestLogger()

	changes := NewChangesHandler(logger, dir)
	rt := Router{
		Projects:   NewProjectsHandler(logger, dir, states),
		Changes:    changes,
		Health:     NewHealthHandler(logger, "test", changes),
		WriteLimit: limiter,
		Logger:     logger,
	}
	server := httptest.NewServer(rt.Handler())
	t.Cleanup(func() {
		changes.CloseAll()
		server.Close()
	})
	return server, dir, changes
}

func doRequest(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestProjectsHandler_List(t *testing.T) {
	server, _ := setupServer(t, memoryStates(), nil)

	status, body := doRequest(t, http.MethodGet, server.URL+"/api/v1/projects", "")
	require.Equal(t, http.StatusOK, status)

	var resp api.ProjectsResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Projects, 3)

	urls := make([]string, 0, len(resp.Projects))
	for _, p := range resp.Projects {
		urls = append(urls, p.URL())
	}
	assert.ElementsMatch(t, []string{"osm/osm.mml", "root.mml", "nested/a/b.mml"}, urls)
}

func TestProjectsHandler_MML(t *testing.T) {
	server, dir := setupServer(t, memoryStates(), nil)
	base := server.URL + "/api/v1/projects/"

	t.Run("get nested", func(t *testing.T) {
		status, body := doRequest(t, http.MethodGet, base+"osm/osm.mml", "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"Stylesheet":["base.mss"],"Layer":[]}`, body)
	})

	t.Run("get root project", func(t *testing.T) {
		status, body := doRequest(t, http.MethodGet, base+"root.mml", "")
		assert.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"Stylesheet":[]}`, body)
	})

	t.Run("get missing", func(t *testing.T) {
		status, body := doRequest(t, http.MethodGet, base+"osm/absent.mml", "")
		assert.Equal(t, http.StatusNotFound, status)
		assert.JSONEq(t, `{"error":"project not found"}`, body)
	})

	t.Run("put valid", func(t *testing.T) {
		status, _ := doRequest(t, http.MethodPut, base+"osm/osm.mml", `{"Stylesheet":["roads.mss"],"Layer":[]}`)
		assert.Equal(t, http.StatusNoContent, status)

		data, err := os.ReadFile(filepath.Join(dir, "osm", "osm.mml"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"Stylesheet":["roads.mss"],"Layer":[]}`, string(data))
	})

	t.Run("post invalid keeps file", func(t *testing.T) {
		status, body := doRequest(t, http.MethodPost, base+"root.mml", `{"Stylesheet":`)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Contains(t, body, "invalid document")

		data, err := os.ReadFile(filepath.Join(dir, "root.mml"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"Stylesheet":[]}`, string(data))
	})

	t.Run("put into missing folder", func(t *testing.T) {
		status, _ := doRequest(t, http.MethodPut, base+"absent/x.mml", `{}`)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("escaping path", func(t *testing.T) {
		status, _ := doRequest(t, http.MethodGet, base+"..%2F..%2Fetc%2Fpasswd.mml", "")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("unknown extension", func(t *testing.T) {
		status, _ := doRequest(t, http.MethodGet, base+"osm/base.mss", "")
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestProjectsHandler_MCP(t *testing.T) {
	states := memoryStates()
	server, _ := setupServer(t, states, nil)
	base := server.URL + "/api/v1/projects/"

	// Пустое состояние для существующего проекта
	status, body := doRequest(t, http.MethodGet, base+"osm/osm.mcp", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{}`, body)

	status, _ = doRequest(t, http.MethodGet, base+"osm/absent.mcp", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, http.MethodPut, base+"osm/osm.mcp", `{"bookmarkedMaps":[{"title":"x"}]}`)
	assert.Equal(t, http.StatusNoContent, status)
	require.Len(t, states.PutUserStateCalls(), 1)
	assert.Equal(t, "osm/osm.mcp", states.PutUserStateCalls()[0].Path)

	status, body = doRequest(t, http.MethodGet, base+"osm/osm.mcp", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"bookmarkedMaps":[{"title":"x"}]}`, body)

	// Не JSON объект отклоняется
	status, _ = doRequest(t, http.MethodPost, base+"root.mcp", `[1]`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Len(t, states.PutUserStateCalls(), 1)

	// mcp без проекта не сохраняется
	status, _ = doRequest(t, http.MethodPut, base+"absent.mcp", `{}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProjectsHandler_MCPStorageError(t *testing.T) {
	states := &storage.UserStateStorageMock{
		GetUserStateFunc: func(ctx context.Context, path string) (*storage.UserState, error) {
			return nil, errors.New("disk failure")
		},
		PutUserStateFunc: func(ctx context.Context, path string, doc []byte) error {
			return errors.New("disk failure")
		},
	}
	server, _ := setupServer(t, states, nil)
	base := server.URL + "/api/v1/projects/"

	status, body := doRequest(t, http.MethodGet, base+"osm/osm.mcp", "")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.NotContains(t, body, "disk failure")

	status, _ = doRequest(t, http.MethodPut, base+"osm/osm.mcp", `{}`)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestRouter_WriteLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute, setupTestLogger())
	t.Cleanup(limiter.Stop)
	server, _ := setupServer(t, memoryStates(), limiter)
	url := server.URL + "/api/v1/projects/osm/osm.mcp"

	status, _ := doRequest(t, http.MethodPut, url, `{}`)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = doRequest(t, http.MethodPut, url, `{}`)
	assert.Equal(t, http.StatusTooManyRequests, status)

	status, _ = doRequest(t, http.MethodGet, url, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_Health(t *testing.T) {
	server, _ := setupServer(t, memoryStates(), nil)

	status, body := doRequest(t, http.MethodGet, server.URL+"/api/v1/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","version":"test","connections":0}`, body)
}
