package project

// Change identifies what part of the store changed.
type Change int

const (
	ChangeLoaded Change = iota
	ChangeUnloaded
	ChangeStyles
	ChangeLayers
	ChangeDashboardMaps
	ChangeBookmarks
	ChangeAppSettings
	// ChangeDocument документ проекта обновлен с сервера
	ChangeDocument
	// ChangeRedraw отрисованная карта устарела
	ChangeRedraw
)

func (c Change) String() string {
	switch c {
	case ChangeLoaded:
		return "loaded"
	case ChangeUnloaded:
		return "unloaded"
	case ChangeStyles:
		return "styles"
	case ChangeLayers:
		return "layers"
	case ChangeDashboardMaps:
		return "dashboard_maps"
	case ChangeBookmarks:
		return "bookmarks"
	case ChangeAppSettings:
		return "app_settings"
	case ChangeDocument:
		return "document"
	case ChangeRedraw:
		return "redraw"
	default:
		return "unknown"
	}
}

// OnChange registers fn for every change of the store. It is called without
// the store lock held. The returned function removes the listener.
func (s *Store) OnChange(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) emit(c Change) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// watchModels подписывает хранилище на изменения модели стилей и реестра слоев
func (s *Store) watchModels() {
	s.styles.OnChange(func() { s.modelChanged(ChangeStyles) })
	s.layers.OnChange(func() { s.modelChanged(ChangeLayers) })
}

// modelChanged переносит модель в документ проекта и запускает его сохранение.
// Изменения во время загрузки и обновления с сервера не сохраняются.
func (s *Store) modelChanged(c Change) {
	s.mu.Lock()
	if !s.armed || s.applying > 0 || s.doc == nil {
		s.mu.Unlock()
		return
	}
	switch c {
	case ChangeStyles:
		s.doc.Stylesheet = s.styles.ProjectStyles()
	case ChangeLayers:
		s.doc.Layer = s.layers.Layers()
	}
	s.saveDoc.Trigger()
	s.mu.Unlock()

	s.emit(c)
}

// changed запускает сохранение пользовательского состояния, если наблюдатели взведены
func (s *Store) changed(c Change) {
	s.mu.Lock()
	if s.armed {
		s.saveUser.Trigger()
	}
	s.mu.Unlock()

	s.emit(c)
}
