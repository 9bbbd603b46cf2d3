package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iudanet/cartosync/internal/models"
	"github.com/iudanet/cartosync/pkg/api"
)

// Client представляет HTTP клиент для взаимодействия с сервером проектов
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetProjects fetches the list of projects.
func (c *Client) GetProjects(ctx context.Context) ([]api.Project, error) {
	var resp api.ProjectsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/projects", nil, &resp); err != nil {
		return nil, fmt.Errorf("get projects request failed: %w", err)
	}
	if resp.Projects == nil {
		resp.Projects = []api.Project{}
	}
	return resp.Projects, nil
}

// GetProjectDocument fetches the mml document of p.
func (c *Client) GetProjectDocument(ctx context.Context, p api.Project) (*models.ProjectDocument, error) {
	var doc models.ProjectDocument
	if err := c.doRequest(ctx, http.MethodGet, ProjectPath(p.Base, p.MML), nil, &doc); err != nil {
		return nil, fmt.Errorf("get project document %s failed: %w", p.MML, err)
	}
	return &doc, nil
}

// PutProjectDocument replaces the mml document of p.
func (c *Client) PutProjectDocument(ctx context.Context, p api.Project, doc *models.ProjectDocument) error {
	if err := c.doRequest(ctx, http.MethodPut, ProjectPath(p.Base, p.MML), doc, nil); err != nil {
		return fmt.Errorf("put project document %s failed: %w", p.MML, err)
	}
	return nil
}

// GetUserState fetches the mcp document of p.
func (c *Client) GetUserState(ctx context.Context, p api.Project) (*models.UserStateDocument, error) {
	var doc models.UserStateDocument
	if err := c.doRequest(ctx, http.MethodGet, ProjectPath(p.Base, p.MCP), nil, &doc); err != nil {
		return nil, fmt.Errorf("get user state %s failed: %w", p.MCP, err)
	}
	return &doc, nil
}

// PutUserState replaces the mcp document of p.
func (c *Client) PutUserState(ctx context.Context, p api.Project, doc *models.UserStateDocument) error {
	if err := c.doRequest(ctx, http.MethodPut, ProjectPath(p.Base, p.MCP), doc, nil); err != nil {
		return fmt.Errorf("put user state %s failed: %w", p.MCP, err)
	}
	return nil
}

// ProjectPath returns the API path of a file inside a project folder.
// Projects in the root of the styles directory have base ".".
func ProjectPath(base, file string) string {
	var segments []string
	if base != "" && base != "." {
		for _, s := range strings.Split(base, "/") {
			segments = append(segments, url.PathEscape(s))
		}
	}
	segments = append(segments, url.PathEscape(file))
	return "/api/v1/projects/" + strings.Join(segments, "/")
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	reqURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &StatusError{Code: resp.StatusCode, Message: errResp.Error}
		}
		return &StatusError{Code: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
