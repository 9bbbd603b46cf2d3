package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/cartosync/internal/client/project"
	"github.com/iudanet/cartosync/internal/models"
)

func (c *Cli) runShow(ctx context.Context, url string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		p, _ := store.Project()
		c.io.Printf("Project: %s\n", p.URL())

		if last, err := c.metadata.GetLastUpdate(ctx, p.URL()); err == nil && !last.IsZero() {
			c.io.Printf("Last update: %s\n", last.Local().Format(timeLayout))
		}
		if opts, err := store.MapOptions(); err == nil {
			center := opts.Center()
			c.io.Printf("Map: %s center=%s zoom=%g\n", opts.SRS, formatCoords(center), opts.Zoom())
		}
		if params, err := store.MapParams(); err == nil {
			c.io.Printf("Render query: %s\n", params.Query().Encode())
		}

		c.io.Println()
		c.printStyles(store)
		c.io.Println()
		c.printLayers(store.Layers())
		c.io.Println()
		user := store.UserState()
		c.printDashboard(user.DashboardMaps)
		c.io.Println()
		c.printBookmarks(user.BookmarkedMaps)
		return nil
	})
}

func (c *Cli) runStyleList(ctx context.Context, url string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		c.printStyles(store)
		return nil
	})
}

// runStyleToggle переключает стили по очереди; порядок сохраняется в документе проекта
func (c *Cli) runStyleToggle(ctx context.Context, url string, names []string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		for _, name := range names {
			if err := store.ToggleStyle(name); err != nil {
				return fmt.Errorf("failed to toggle style %s: %w", name, err)
			}
		}
		c.printStyles(store)
		return nil
	})
}

func (c *Cli) printStyles(store *project.Store) {
	view := store.Styles()
	c.io.Println("Styles:")
	if len(view.Active) == 0 {
		c.io.Println("  (none)")
	}
	for _, e := range view.Active {
		c.io.Printf("  %s %s\n", checkbox(e.Active), e.Style)
	}
	if len(view.Unlisted) > 0 {
		c.io.Printf("  unlisted: %s\n", strings.Join(view.Unlisted, ", "))
	}
}

func (c *Cli) printLayers(layers []models.Layer) {
	c.io.Println("Layers:")
	if len(layers) == 0 {
		c.io.Println("  (none)")
	}
	for i, l := range layers {
		kind := "-"
		if l.Datasource != nil {
			kind = string(l.Datasource.Type())
		}
		c.io.Printf("  %2d %s %-24s %s\n", i, checkbox(l.Active()), layerName(l), kind)
	}
}

func (c *Cli) printDashboard(maps []models.DashboardMap) {
	c.io.Println("Dashboard maps:")
	if len(maps) == 0 {
		c.io.Println("  (none)")
	}
	for i, m := range maps {
		c.io.Printf("  %2d center=%s zoom=%g at %d,%d size %dx%d\n",
			i, formatCoords(m.Coords), m.Zoom, m.Col, m.Row, m.SizeX, m.SizeY)
	}
}

func (c *Cli) printBookmarks(bookmarks []models.Bookmark) {
	c.io.Println("Bookmarks:")
	if len(bookmarks) == 0 {
		c.io.Println("  (none)")
	}
	for _, b := range bookmarks {
		c.io.Printf("  %s %-20s center=%s zoom=%g\n", b.ID, b.Title, formatCoords(b.Coords), b.Zoom)
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func layerName(l models.Layer) string {
	if l.Name != "" {
		return l.Name
	}
	if l.ID != "" {
		return l.ID
	}
	return "(unnamed)"
}

func formatCoords(c [2]float64) string {
	return fmt.Sprintf("%g,%g", c[0], c[1])
}
