package project

import (
	"context"

	"github.com/iudanet/cartosync/internal/client/live"
	"github.com/iudanet/cartosync/internal/models"
)

// handleEvent обрабатывает событие канала; gen отсекает события канала предыдущего проекта
func (s *Store) handleEvent(ctx context.Context, gen uint64, ev live.Event) {
	s.mu.Lock()
	if s.gen != gen || s.project == nil {
		s.mu.Unlock()
		return
	}
	url := s.project.URL()
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.HandleEvent(ev)
	}
	if ev.Kind != live.KindSuccess {
		return
	}

	if !s.tracker.Accept(ev.UpdatedAt) {
		last, _ := s.tracker.Last()
		s.logger.Debug("Skipping stale update",
			"project", url,
			"updated_at", ev.UpdatedAt,
			"last_update", last)
		return
	}

	if s.metadata != nil {
		if err := s.metadata.SaveLastUpdate(ctx, url, ev.UpdatedAt); err != nil {
			s.logger.Warn("Failed to save last update", "project", url, "error", err)
		}
	}

	if ev.UpdatedMML {
		s.mu.Lock()
		deferred := s.layers.Editing()
		if deferred {
			s.pendingRefresh = true
		}
		s.mu.Unlock()

		if deferred {
			s.logger.Debug("Layer edit open, deferring document refresh", "project", url)
		} else {
			s.refreshDocument(ctx, gen)
		}
	}

	s.mu.Lock()
	s.mapTime = s.now()
	s.mu.Unlock()
	s.redraw()
}

// refreshDocument перечитывает документ проекта после изменения на сервере.
// Обновление не запускает сохранение документа.
func (s *Store) refreshDocument(ctx context.Context, gen uint64) {
	s.mu.Lock()
	if s.gen != gen || s.project == nil {
		s.mu.Unlock()
		return
	}
	p := *s.project
	s.mu.Unlock()

	doc, err := s.apiClient.GetProjectDocument(ctx, p)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("Failed to refresh project document", "project", p.URL(), "error", err)
		}
		return
	}
	if doc == nil {
		doc = &models.ProjectDocument{}
	}

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	// несохраненные локальные слои важнее серверной копии
	keepLayers := s.saveDoc != nil && s.saveDoc.Pending()
	s.applying++
	s.mu.Unlock()

	s.styles.SetProjectStyles(doc.Stylesheet)
	if !keepLayers {
		s.layers.SetLayers(doc.Layer)
	}

	s.mu.Lock()
	s.applying--
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	doc.Stylesheet = s.styles.ProjectStyles()
	if keepLayers {
		doc.Layer = s.layers.Layers()
	}
	s.doc = doc
	s.mu.Unlock()

	s.logger.Info("Project document refreshed",
		"project", p.URL(),
		"styles", len(doc.Stylesheet),
		"layers", len(doc.Layer),
		"kept_local_layers", keepLayers)
	s.emit(ChangeDocument)
}

func (s *Store) redraw() {
	params, err := s.MapParams()
	if err != nil {
		return
	}
	if s.renderer != nil {
		s.renderer.Redraw(params)
	}
	s.emit(ChangeRedraw)
}

func (s *Store) bindContextLocked() context.Context {
	if s.bindCtx == nil {
		return context.Background()
	}
	return s.bindCtx
}
