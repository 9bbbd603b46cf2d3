package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/cartosync/internal/client/project"
	"github.com/iudanet/cartosync/internal/models"
)

func (c *Cli) runDashboardList(ctx context.Context, url string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		c.printDashboard(store.UserState().DashboardMaps)
		return nil
	})
}

// runDashboardAdd добавляет карту; без center и zoom она повторяет последнюю карту
func (c *Cli) runDashboardAdd(ctx context.Context, url string, m *models.DashboardMap) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		added, err := store.AddDashboardMap(m)
		if err != nil {
			return err
		}
		c.io.Printf("Added map center=%s zoom=%g\n", formatCoords(added.Coords), added.Zoom)
		return nil
	})
}

func (c *Cli) runDashboardRemove(ctx context.Context, url string, index int) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		if err := store.RemoveDashboardMap(index); err != nil {
			return err
		}
		c.printDashboard(store.UserState().DashboardMaps)
		return nil
	})
}

func (c *Cli) runBookmarkList(ctx context.Context, url string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		c.printBookmarks(store.UserState().BookmarkedMaps)
		return nil
	})
}

// runBookmarkAdd сохраняет вид карты дашборда с индексом index
func (c *Cli) runBookmarkAdd(ctx context.Context, url string, index int, title string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		b, err := store.BookmarkDashboardMap(index, title)
		if err != nil {
			return err
		}
		c.io.Printf("Bookmark %s saved as %s\n", b.Title, b.ID)
		return nil
	})
}

func (c *Cli) runBookmarkRemove(ctx context.Context, url, id string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		if err := store.RemoveBookmark(id); err != nil {
			return err
		}
		c.io.Printf("Bookmark %s removed\n", id)
		return nil
	})
}

func (c *Cli) runBookmarkRestore(ctx context.Context, url, id string) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		m, err := store.RestoreBookmark(id)
		if err != nil {
			return err
		}
		c.io.Printf("Added map center=%s zoom=%g\n", formatCoords(m.Coords), m.Zoom)
		return nil
	})
}

// settingsUpdate описывает изменения настроек; nil поля не меняются
type settingsUpdate struct {
	sidebarWidth     *int
	loggingHeight    *int
	sidebarCollapsed *bool
}

func (c *Cli) runSettings(ctx context.Context, url string, u settingsUpdate) error {
	return c.withProject(ctx, url, nil, func(store *project.Store) error {
		err := store.UpdateAppSettings(func(s *models.AppSettings) {
			if u.sidebarWidth != nil {
				s.SidebarWidth = *u.sidebarWidth
			}
			if u.loggingHeight != nil {
				s.LoggingHeight = *u.loggingHeight
			}
			if u.sidebarCollapsed != nil {
				s.SidebarCollapsed = *u.sidebarCollapsed
			}
		})
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		s := store.UserState().AppSettings
		c.io.Printf("sidebar width:     %s\n", formatSize(s.SidebarWidth))
		c.io.Printf("logging height:    %s\n", formatSize(s.LoggingHeight))
		c.io.Printf("sidebar collapsed: %t\n", s.SidebarCollapsed)
		return nil
	})
}

func formatSize(v int) string {
	if v == models.UnsetSize {
		return "unset"
	}
	return fmt.Sprint(v)
}
