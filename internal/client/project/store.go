// Package project owns the state of the loaded project: its project
// document, the per-user state document, the style order and the layer list.
// Local mutations are persisted through debounced saves, server push
// notifications are merged in through the live channel.
package project

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	httpClient "github.com/iudanet/cartosync/internal/client/api"
	"github.com/iudanet/cartosync/internal/client/debounce"
	"github.com/iudanet/cartosync/internal/client/layer"
	"github.com/iudanet/cartosync/internal/client/live"
	"github.com/iudanet/cartosync/internal/client/notify"
	"github.com/iudanet/cartosync/internal/client/promise"
	"github.com/iudanet/cartosync/internal/client/storage"
	"github.com/iudanet/cartosync/internal/client/style"
	"github.com/iudanet/cartosync/internal/models"
	"github.com/iudanet/cartosync/pkg/api"
)

// DefaultSaveDebounce пауза после последнего изменения перед сохранением
const DefaultSaveDebounce = 1000 * time.Millisecond

// Options holds the optional collaborators of a store.
type Options struct {
	Sink         notify.Sink
	Renderer     Renderer
	Metadata     storage.MetadataStorage
	Now          func() time.Time
	SaveDebounce time.Duration
}

// Store owns one loaded project at a time.
type Store struct {
	apiClient httpClient.ClientAPI
	binder    Binder
	sink      notify.Sink
	renderer  Renderer
	metadata  storage.MetadataStorage
	logger    *slog.Logger
	now       func() time.Time
	styles    *style.Model
	layers    *layer.Registry
	tracker   *live.Tracker
	window    time.Duration

	// swapMu упорядочивает установку и снятие проекта
	swapMu         sync.Mutex
	mu             sync.Mutex
	project        *api.Project
	doc            *models.ProjectDocument
	user           *models.UserStateDocument
	channel        Channel
	bindCtx        context.Context
	cancelBind     context.CancelFunc
	loaded         *promise.Promise[api.Project]
	saveDoc        *debounce.Debouncer
	saveUser       *debounce.Debouncer
	listeners      map[int]func(Change)
	mapTime        time.Time
	gen            uint64
	nextID         int
	applying       int
	armed          bool
	pendingRefresh bool
}

// NewStore creates a store with nothing loaded.
func NewStore(apiClient httpClient.ClientAPI, binder Binder, editor layer.Editor, logger *slog.Logger, opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SaveDebounce <= 0 {
		opts.SaveDebounce = DefaultSaveDebounce
	}
	s := &Store{
		apiClient: apiClient,
		binder:    binder,
		sink:      opts.Sink,
		renderer:  opts.Renderer,
		metadata:  opts.Metadata,
		logger:    logger,
		now:       opts.Now,
		styles:    style.NewModel(),
		layers:    layer.NewRegistry(editor, logger),
		tracker:   live.NewTracker(),
		window:    opts.SaveDebounce,
		listeners: make(map[int]func(Change)),
	}
	s.watchModels()
	return s
}

// LoadProject tears down the current project, fetches both documents of p
// in parallel and, only if both arrive, populates the store, binds the live
// channel and arms the persistence watchers.
func (s *Store) LoadProject(ctx context.Context, p api.Project) error {
	s.UnloadProject()

	ready := promise.New[api.Project]()
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.loaded = ready
	s.mu.Unlock()

	s.logger.Info("Loading project", "project", p.URL())

	var (
		doc  *models.ProjectDocument
		user *models.UserStateDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = s.apiClient.GetProjectDocument(gctx, p)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.apiClient.GetUserState(gctx, p)
		return err
	})
	if err := g.Wait(); err != nil {
		err = fmt.Errorf("failed to load project %s: %w", p.URL(), err)
		ready.Reject(err)
		return err
	}

	if doc == nil {
		doc = &models.ProjectDocument{}
	}
	if user == nil {
		user = models.NewUserStateDocument()
	}

	bindCtx, cancel := context.WithCancel(context.Background())
	if !s.install(gen, p, doc, user, bindCtx, cancel) {
		cancel()
		ready.Reject(ErrLoadSuperseded)
		return ErrLoadSuperseded
	}

	ch, err := s.binder.Bind(bindCtx, p, func(ev live.Event) { s.handleEvent(bindCtx, gen, ev) })

	s.mu.Lock()
	stale := s.gen != gen
	if err == nil && !stale {
		s.channel = ch
		s.saveDoc = debounce.New(s.window, s.persistProjectDocument)
		s.saveUser = debounce.New(s.window, s.persistUserState)
		s.armed = true
	}
	s.mu.Unlock()

	if stale {
		// пока канал открывался, началась другая загрузка
		if err == nil {
			ch.Close()
		}
		cancel()
		ready.Reject(ErrLoadSuperseded)
		return ErrLoadSuperseded
	}
	if err != nil {
		s.unloadIfCurrent(gen)
		err = fmt.Errorf("failed to bind live channel: %w", err)
		ready.Reject(err)
		return err
	}

	s.logger.Info("Project loaded",
		"project", p.URL(),
		"styles", len(doc.Stylesheet),
		"layers", len(doc.Layer),
		"dashboard_maps", len(user.DashboardMaps),
		"bookmarks", len(user.BookmarkedMaps))

	ready.Resolve(p)
	s.emit(ChangeLoaded)
	return nil
}

// install заполняет модели и состояние загруженными документами.
// Возвращает false, если загрузка gen уже вытеснена.
func (s *Store) install(gen uint64, p api.Project, doc *models.ProjectDocument, user *models.UserStateDocument, bindCtx context.Context, cancel context.CancelFunc) bool {
	s.swapMu.Lock()
	defer s.swapMu.Unlock()

	s.mu.Lock()
	stale := s.gen != gen
	s.mu.Unlock()
	if stale {
		return false
	}

	s.styles.SetStyles(p.AvailableMSS)
	s.styles.SetProjectStyles(doc.Stylesheet)
	s.layers.SetLayers(doc.Layer)
	// повторы в Stylesheet схлопываются так же, как в модели
	doc.Stylesheet = s.styles.ProjectStyles()

	s.mu.Lock()
	project := p
	s.project = &project
	s.doc = doc
	s.user = user
	s.bindCtx = bindCtx
	s.cancelBind = cancel
	s.mapTime = s.now()
	s.mu.Unlock()

	s.tracker.Clear()
	if s.renderer != nil {
		// карта уже отображается, более старые уведомления не нужны
		s.tracker.Bind(s.now())
	}
	return true
}

// UnloadProject disarms the watchers, flushes pending saves, closes the
// live channel and resets every collection. It is a no-op when nothing is
// loaded.
func (s *Store) UnloadProject() {
	s.swapMu.Lock()
	url, ok := s.teardown()
	s.swapMu.Unlock()
	s.unloaded(url, ok)
}

// unloadIfCurrent снимает проект, только если он установлен загрузкой gen
func (s *Store) unloadIfCurrent(gen uint64) {
	s.swapMu.Lock()
	s.mu.Lock()
	current := s.gen == gen
	s.mu.Unlock()

	var (
		url string
		ok  bool
	)
	if current {
		url, ok = s.teardown()
	}
	s.swapMu.Unlock()
	s.unloaded(url, ok)
}

func (s *Store) unloaded(url string, ok bool) {
	if ok {
		s.logger.Info("Project unloaded", "project", url)
		s.emit(ChangeUnloaded)
	}
}

func (s *Store) teardown() (string, bool) {
	s.mu.Lock()
	if s.project == nil {
		s.mu.Unlock()
		return "", false
	}
	s.armed = false
	saveDoc, saveUser := s.saveDoc, s.saveUser
	ch, cancel := s.channel, s.cancelBind
	url := s.project.URL()
	s.mu.Unlock()

	// отложенные сохранения выполняются до сброса состояния
	if saveDoc != nil {
		saveDoc.Flush()
		saveDoc.Stop()
	}
	if saveUser != nil {
		saveUser.Flush()
		saveUser.Stop()
	}

	if cancel != nil {
		cancel()
	}
	if ch != nil {
		ch.Close()
	}

	s.mu.Lock()
	s.gen++
	s.project = nil
	s.doc = nil
	s.user = nil
	s.channel = nil
	s.bindCtx = nil
	s.cancelBind = nil
	s.loaded = nil
	s.saveDoc = nil
	s.saveUser = nil
	s.mapTime = time.Time{}
	s.pendingRefresh = false
	s.mu.Unlock()

	s.styles.Reset()
	s.layers.SetLayers(nil)
	s.tracker.Clear()
	return url, true
}

// ProjectLoaded returns the future of the current load, or nil if no
// project was ever loaded since the last unload.
func (s *Store) ProjectLoaded() *promise.Promise[api.Project] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Project returns the loaded project.
func (s *Store) Project() (api.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return api.Project{}, false
	}
	return *s.project, true
}

// Document returns a copy of the project document, or nil.
func (s *Store) Document() *models.ProjectDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil
	}
	return s.doc.Clone()
}

// UserState returns a copy of the user state document. Without a loaded
// project it returns the empty defaults.
func (s *Store) UserState() *models.UserStateDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return models.NewUserStateDocument()
	}
	return s.user.Clone()
}

// StylesView is a read-only snapshot of the style order.
type StylesView struct {
	Available []string
	Active    []style.Entry
	Known     []string
	Unlisted  []string
}

// Styles returns a snapshot of the style order.
func (s *Store) Styles() StylesView {
	return StylesView{
		Available: s.styles.Styles(),
		Active:    s.styles.ActiveStyles(),
		Known:     s.styles.KnownStyles(),
		Unlisted:  s.styles.Unlisted(),
	}
}

// Layers returns a copy of the layer list.
func (s *Store) Layers() []models.Layer {
	return s.layers.Layers()
}

// MapOptions returns the normalized map options of the project document.
func (s *Store) MapOptions() (models.MapOptions, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return models.MapOptions{}, ErrNotLoaded
	}
	return s.doc.MapOptions()
}

// MapParams returns the query of the rendered map of the loaded project.
func (s *Store) MapParams() (MapParams, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapParamsLocked()
}

func (s *Store) mapParamsLocked() (MapParams, error) {
	if s.project == nil {
		return MapParams{}, ErrNotLoaded
	}
	return MapParams{
		MML:  s.project.MML,
		Base: s.project.Base,
		MSS:  s.styles.ProjectStyles(),
		T:    s.mapTime.UnixMilli(),
	}, nil
}

// ChannelState returns the state of the live channel, StateClosed when
// nothing is bound.
func (s *Store) ChannelState() live.State {
	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()

	if ch == nil {
		return live.StateClosed
	}
	return ch.State()
}

// WsID returns the id the server assigned to the current live connection,
// empty when nothing is bound or no connection is open yet.
func (s *Store) WsID() string {
	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()

	if ch == nil {
		return ""
	}
	return ch.WsID()
}

// OnChannelEvent registers fn for every event of the currently bound live
// channel. Binding a new project drops the subscription. Without a bound
// channel it does nothing.
func (s *Store) OnChannelEvent(fn func(live.Event)) func() {
	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()

	if ch == nil {
		return func() {}
	}
	return ch.Subscribe(fn)
}

// LastUpdate returns updated_at of the last applied success notification.
func (s *Store) LastUpdate() (time.Time, bool) {
	return s.tracker.Last()
}
