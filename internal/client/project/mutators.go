package project

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/iudanet/cartosync/internal/client/layer"
	"github.com/iudanet/cartosync/internal/models"
)

// ToggleStyle switches a style on or off and writes the resulting active
// order into the project document.
func (s *Store) ToggleStyle(name string) error {
	if !s.isLoaded() {
		return ErrNotLoaded
	}
	s.styles.ToggleStyle(name)

	s.mu.Lock()
	s.mapTime = s.now()
	s.mu.Unlock()

	s.redraw()
	return nil
}

// AddDashboardMap appends a map to the dashboard. With a nil map the new
// one shows the viewport of the last map, or the map options' defaults.
func (s *Store) AddDashboardMap(m *models.DashboardMap) (models.DashboardMap, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.DashboardMap{}, ErrNotLoaded
	}

	next := models.DashboardMap{SizeX: models.DefaultMapSizeX, SizeY: models.DefaultMapSizeY}
	switch {
	case m != nil:
		next = *m
		if next.SizeX == 0 {
			next.SizeX = models.DefaultMapSizeX
		}
		if next.SizeY == 0 {
			next.SizeY = models.DefaultMapSizeY
		}
	case len(s.user.DashboardMaps) > 0:
		last := s.user.DashboardMaps[len(s.user.DashboardMaps)-1]
		next.Coords = last.Coords
		next.Zoom = last.Zoom
	default:
		opts, err := s.doc.MapOptions()
		if err != nil {
			s.logger.Warn("Invalid map options, using defaults", "error", err)
			opts = models.MapOptions{}.Normalize()
		}
		next.Coords = opts.Center()
		next.Zoom = opts.Zoom()
	}
	if m == nil {
		next.Row = nextRow(s.user.DashboardMaps)
	}
	s.user.DashboardMaps = append(s.user.DashboardMaps, next)
	s.mu.Unlock()

	s.changed(ChangeDashboardMaps)
	return next, nil
}

// UpdateDashboardMap replaces the map at index, for example after it was
// moved, resized or panned.
func (s *Store) UpdateDashboardMap(index int, m models.DashboardMap) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if index < 0 || index >= len(s.user.DashboardMaps) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrMapNotFound, index)
	}
	if s.user.DashboardMaps[index] == m {
		s.mu.Unlock()
		return nil
	}
	s.user.DashboardMaps[index] = m
	s.mu.Unlock()

	s.changed(ChangeDashboardMaps)
	return nil
}

// RemoveDashboardMap removes the map at index.
func (s *Store) RemoveDashboardMap(index int) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	if index < 0 || index >= len(s.user.DashboardMaps) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrMapNotFound, index)
	}
	s.user.DashboardMaps = slices.Delete(s.user.DashboardMaps, index, index+1)
	s.mu.Unlock()

	s.changed(ChangeDashboardMaps)
	return nil
}

// AddBookmark stores a named viewport. An empty ID is replaced by a new UUID.
func (s *Store) AddBookmark(b models.Bookmark) (models.Bookmark, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.Bookmark{}, ErrNotLoaded
	}
	s.user.BookmarkedMaps = append(s.user.BookmarkedMaps, b)
	s.mu.Unlock()

	s.changed(ChangeBookmarks)
	return b, nil
}

// BookmarkDashboardMap stores the viewport of the dashboard map at index.
func (s *Store) BookmarkDashboardMap(index int, title string) (models.Bookmark, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.Bookmark{}, ErrNotLoaded
	}
	if index < 0 || index >= len(s.user.DashboardMaps) {
		s.mu.Unlock()
		return models.Bookmark{}, fmt.Errorf("%w: %d", ErrMapNotFound, index)
	}
	m := s.user.DashboardMaps[index]
	s.mu.Unlock()

	return s.AddBookmark(models.Bookmark{Title: title, Coords: m.Coords, Zoom: m.Zoom})
}

// RemoveBookmark deletes every bookmark with the given id.
func (s *Store) RemoveBookmark(id string) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	before := len(s.user.BookmarkedMaps)
	s.user.BookmarkedMaps = slices.DeleteFunc(s.user.BookmarkedMaps, func(b models.Bookmark) bool {
		return b.ID == id
	})
	removed := len(s.user.BookmarkedMaps) != before
	s.mu.Unlock()

	if !removed {
		return fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	s.changed(ChangeBookmarks)
	return nil
}

// RestoreBookmark adds a dashboard map showing the bookmarked viewport.
func (s *Store) RestoreBookmark(id string) (models.DashboardMap, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.DashboardMap{}, ErrNotLoaded
	}
	idx := slices.IndexFunc(s.user.BookmarkedMaps, func(b models.Bookmark) bool { return b.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return models.DashboardMap{}, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
	}
	b := s.user.BookmarkedMaps[idx]
	row := nextRow(s.user.DashboardMaps)
	s.mu.Unlock()

	return s.AddDashboardMap(&models.DashboardMap{Coords: b.Coords, Zoom: b.Zoom, Row: row})
}

// UpdateAppSettings applies fn to the app settings. A save is scheduled only
// if fn actually changed something.
func (s *Store) UpdateAppSettings(fn func(*models.AppSettings)) error {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	before := s.user.Clone().AppSettings
	fn(&s.user.AppSettings)
	changed := !before.Equal(s.user.AppSettings)
	s.mu.Unlock()

	if changed {
		s.changed(ChangeAppSettings)
	}
	return nil
}

// AddLayer opens the layer editor for l (nil for the default layer) and
// appends the result.
func (s *Store) AddLayer(ctx context.Context, l *models.Layer) (bool, error) {
	if !s.isLoaded() {
		return false, ErrNotLoaded
	}
	added, err := s.layers.AddLayer(ctx, l)
	s.afterLayerEdit()
	return added, err
}

// EditLayer opens the layer editor for the layer at index.
func (s *Store) EditLayer(ctx context.Context, index int) (layer.Outcome, error) {
	if !s.isLoaded() {
		return layer.OutcomeCancelled, ErrNotLoaded
	}
	outcome, err := s.layers.EditLayer(ctx, index)
	s.afterLayerEdit()
	return outcome, err
}

// CopyLayer copies the layer at index through the layer editor.
func (s *Store) CopyLayer(ctx context.Context, index int) (bool, error) {
	if !s.isLoaded() {
		return false, ErrNotLoaded
	}
	added, err := s.layers.CopyLayer(ctx, index)
	s.afterLayerEdit()
	return added, err
}

// ToggleLayer switches the layer at index on or off.
func (s *Store) ToggleLayer(index int) error {
	if !s.isLoaded() {
		return ErrNotLoaded
	}
	return s.layers.ToggleLayer(index)
}

// afterLayerEdit применяет обновление, отложенное на время редактирования
func (s *Store) afterLayerEdit() {
	s.mu.Lock()
	pending := s.pendingRefresh && !s.layers.Editing()
	if pending {
		s.pendingRefresh = false
	}
	ctx := s.bindContextLocked()
	gen := s.gen
	s.mu.Unlock()

	if pending {
		s.refreshDocument(ctx, gen)
	}
}

func (s *Store) isLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project != nil
}

// nextRow возвращает первую свободную строку под картами дашборда
func nextRow(maps []models.DashboardMap) int {
	row := 0
	for _, m := range maps {
		row = max(row, m.Row+m.SizeY)
	}
	return row
}
