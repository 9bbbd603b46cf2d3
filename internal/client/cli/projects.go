package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/cartosync/internal/client/storage"
	"github.com/iudanet/cartosync/pkg/api"
)

const timeLayout = "2006-01-02 15:04:05"

// runProjects печатает список проектов; при offline или недоступном сервере
// используется сохраненный список
func (c *Cli) runProjects(ctx context.Context, offline bool) error {
	var (
		projects []api.Project
		err      error
	)
	if !offline {
		projects, err = c.catalog.Load(ctx)
		if err != nil {
			c.logger.Warn("Server unavailable, using cached projects", "error", err)
		}
	}
	if offline || err != nil {
		projects, err = c.catalog.Cached(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no cached projects, connect to the server first")
			}
			return err
		}
		c.io.Println("(cached)")
	}

	if len(projects) == 0 {
		c.io.Println("No projects found.")
		return nil
	}

	current, _ := c.metadata.GetCurrentProject(ctx)

	c.io.Printf("Found %d project(s):\n", len(projects))
	for _, p := range projects {
		marker := " "
		if p.URL() == current {
			marker = "*"
		}
		c.io.Printf("%s %-40s %3d style(s)  %s\n", marker, p.URL(), len(p.AvailableMSS), p.LastChange.Local().Format(timeLayout))
	}
	return nil
}

// runUse запоминает проект для последующих команд
func (c *Cli) runUse(ctx context.Context, url string) error {
	p, err := c.resolveProject(ctx, url)
	if err != nil {
		return err
	}
	if err := c.metadata.SetCurrentProject(ctx, p.URL()); err != nil {
		return fmt.Errorf("failed to save current project: %w", err)
	}
	c.io.Printf("Using project %s\n", p.URL())
	return nil
}
