package project

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	httpClient "github.com/iudanet/cartosync/internal/client/api"
	"github.com/iudanet/cartosync/internal/client/layer"
	"github.com/iudanet/cartosync/internal/client/live"
	"github.com/iudanet/cartosync/internal/client/notify"
	"github.com/iudanet/cartosync/internal/client/storage"
	"github.com/iudanet/cartosync/internal/client/style"
	"github.com/iudanet/cartosync/internal/models"
	"github.com/iudanet/cartosync/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWindow = 30 * time.Millisecond

var testProject = api.Project{
	Base:         "x",
	MML:          "a.mml",
	MCP:          "a.mcp",
	AvailableMSS: []string{"s1", "s2"},
}

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeServer хранит документы и считает запросы
type fakeServer struct {
	client  *httpClient.ClientAPIMock
	doc     string
	user    string
	userErr error
	mu      sync.Mutex
}

func newFakeServer(doc, user string) *fakeServer {
	f := &fakeServer{doc: doc, user: user}
	f.client = &httpClient.ClientAPIMock{
		GetProjectDocumentFunc: func(ctx context.Context, p api.Project) (*models.ProjectDocument, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			var d models.ProjectDocument
			if err := json.Unmarshal([]byte(f.doc), &d); err != nil {
				return nil, err
			}
			return &d, nil
		},
		GetUserStateFunc: func(ctx context.Context, p api.Project) (*models.UserStateDocument, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.userErr != nil {
				return nil, f.userErr
			}
			var u models.UserStateDocument
			if err := json.Unmarshal([]byte(f.user), &u); err != nil {
				return nil, err
			}
			return &u, nil
		},
		PutProjectDocumentFunc: func(ctx context.Context, p api.Project, doc *models.ProjectDocument) error {
			return nil
		},
		PutUserStateFunc: func(ctx context.Context, p api.Project, doc *models.UserStateDocument) error {
			return nil
		},
	}
	return f
}

func (f *fakeServer) setDoc(doc string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = doc
}

// fakeBinder запоминает обработчик событий канала
type fakeBinder struct {
	mock    *BinderMock
	channel *ChannelMock
	onEvent func(live.Event)
	closed  atomic.Bool
	mu      sync.Mutex
}

func newFakeBinder() *fakeBinder {
	b := &fakeBinder{}
	b.channel = &ChannelMock{
		CloseFunc: func() { b.closed.Store(true) },
		StateFunc: func() live.State {
			if b.closed.Load() {
				return live.StateClosed
			}
			return live.StateOpen
		},
		WsIDFunc:      func() string { return "ws-1" },
		SubscribeFunc: func(fn func(live.Event)) func() { return func() {} },
	}
	b.mock = &BinderMock{
		BindFunc: func(ctx context.Context, p api.Project, onEvent func(live.Event)) (Channel, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.onEvent = onEvent
			b.closed.Store(false)
			return b.channel, nil
		},
	}
	return b
}

func (b *fakeBinder) send(ev live.Event) {
	b.mu.Lock()
	fn := b.onEvent
	b.mu.Unlock()
	fn(ev)
}

func success(at time.Time, mml bool) live.Event {
	return live.Event{Kind: live.KindSuccess, Lines: []string{"Updated"}, UpdatedAt: at, UpdatedMML: mml}
}

type fixture struct {
	store    *Store
	server   *fakeServer
	binder   *fakeBinder
	editor   *layer.EditorMock
	renderer *RendererMock
}

func newFixture(t *testing.T, doc, user string, opts Options) *fixture {
	t.Helper()

	f := &fixture{
		server: newFakeServer(doc, user),
		binder: newFakeBinder(),
		editor: &layer.EditorMock{
			EditFunc: func(ctx context.Context, l models.Layer) (layer.Result, error) {
				return layer.Saved(l), nil
			},
		},
	}
	if opts.SaveDebounce == 0 {
		opts.SaveDebounce = testWindow
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return baseTime }
	}
	f.store = NewStore(f.server.client, f.binder.mock, f.editor, slog.New(slog.NewTextHandler(io.Discard, nil)), opts)
	t.Cleanup(f.store.UnloadProject)
	return f
}

const sampleDoc = `{
	"Stylesheet": ["s1"],
	"Layer": [{"id": "roads", "name": "roads", "Datasource": {"type": "postgis", "table": "roads"}}],
	"Map": {"BBOX": [0, 0, 100, 50], "DefaultZoom": 5},
	"name": "sample"
}`

func TestStore_LoadProject(t *testing.T) {
	f := newFixture(t, `{"Stylesheet":["s1"],"Layer":[]}`, `{}`, Options{})

	require.Nil(t, f.store.ProjectLoaded())
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	styles := f.store.Styles()
	assert.Equal(t, []style.Entry{{Style: "s1", Active: true}}, styles.Active)
	assert.Equal(t, []string{"s1", "s2"}, styles.Available)
	assert.Equal(t, []string{"s2"}, styles.Unlisted)

	user := f.store.UserState()
	assert.Empty(t, user.DashboardMaps)
	assert.Empty(t, user.BookmarkedMaps)
	assert.Equal(t, -1, user.AppSettings.SidebarWidth)
	assert.Equal(t, -1, user.AppSettings.LoggingHeight)

	loaded := f.store.ProjectLoaded()
	require.NotNil(t, loaded)
	p, err := loaded.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x/a.mml", p.URL())

	assert.Equal(t, live.StateOpen, f.store.ChannelState())
	require.Len(t, f.binder.mock.BindCalls(), 1)

	// Загрузка сама по себе ничего не сохраняет
	time.Sleep(3 * testWindow)
	assert.Empty(t, f.server.client.PutProjectDocumentCalls())
	assert.Empty(t, f.server.client.PutUserStateCalls())
}

func TestStore_LoadNormalizesStylesheet(t *testing.T) {
	f := newFixture(t, `{"Stylesheet":["s1","s2","s1"],"Layer":[]}`, `{}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	assert.Equal(t, []string{"s1", "s2"}, f.store.Document().Stylesheet)
	params, err := f.store.MapParams()
	require.NoError(t, err)
	assert.Equal(t, f.store.Document().Stylesheet, params.MSS)
}

func TestStore_LoadSupersededDuringBind(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	open := func() live.State { return live.StateOpen }
	first := &ChannelMock{CloseFunc: func() {}, StateFunc: open}
	second := &ChannelMock{CloseFunc: func() {}, StateFunc: open}

	binding := make(chan struct{})
	release := make(chan struct{})
	var binds atomic.Int32
	f.binder.mock.BindFunc = func(ctx context.Context, p api.Project, onEvent func(live.Event)) (Channel, error) {
		if binds.Add(1) == 1 {
			close(binding)
			<-release
			return first, nil
		}
		return second, nil
	}

	other := testProject
	other.MML = "b.mml"
	other.MCP = "b.mcp"

	firstErr := make(chan error, 1)
	go func() { firstErr <- f.store.LoadProject(context.Background(), testProject) }()
	<-binding

	require.NoError(t, f.store.LoadProject(context.Background(), other))
	close(release)

	require.ErrorIs(t, <-firstErr, ErrLoadSuperseded)
	assert.Len(t, first.CloseCalls(), 1)

	p, ok := f.store.Project()
	require.True(t, ok)
	assert.Equal(t, "x/b.mml", p.URL())
	assert.Equal(t, live.StateOpen, f.store.ChannelState())

	f.store.UnloadProject()
	assert.Len(t, second.CloseCalls(), 1)
	assert.Len(t, first.CloseCalls(), 1)
}

func TestStore_BindFailureUnloads(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	f.binder.mock.BindFunc = func(ctx context.Context, p api.Project, onEvent func(live.Event)) (Channel, error) {
		return nil, errors.New("bad url")
	}

	err := f.store.LoadProject(context.Background(), testProject)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad url")

	_, ok := f.store.Project()
	assert.False(t, ok)
	assert.Empty(t, f.store.Layers())
	assert.Empty(t, f.store.Styles().Active)
}

func TestStore_LoadProjectIsAtomic(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	f.server.userErr = errors.New("mcp unavailable")

	err := f.store.LoadProject(context.Background(), testProject)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mcp unavailable")

	// Ни одна модель не изменилась
	assert.Empty(t, f.store.Styles().Active)
	assert.Empty(t, f.store.Styles().Available)
	assert.Empty(t, f.store.Layers())
	assert.Nil(t, f.store.Document())
	assert.Empty(t, f.binder.mock.BindCalls())

	_, ok := f.store.Project()
	assert.False(t, ok)

	loaded := f.store.ProjectLoaded()
	require.NotNil(t, loaded)
	_, err = loaded.Wait(context.Background())
	assert.Error(t, err)
}

func TestStore_UnloadResetsToVirginState(t *testing.T) {
	virgin := newFixture(t, sampleDoc, `{}`, Options{})

	f := newFixture(t, sampleDoc, `{"bookmarkedMaps":[{"id":"b1","title":"home"}],"dashboardMaps":[{"sizeX":4,"sizeY":3}]}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))
	require.NotEmpty(t, f.store.Layers())

	f.store.UnloadProject()

	assert.Equal(t, virgin.store.Styles(), f.store.Styles())
	assert.Empty(t, f.store.Styles().Active)
	assert.Empty(t, f.store.Styles().Known)
	assert.Empty(t, f.store.Layers())
	assert.Equal(t, virgin.store.UserState(), f.store.UserState())
	assert.Nil(t, f.store.Document())
	assert.Nil(t, f.store.ProjectLoaded())
	assert.Equal(t, live.StateClosed, f.store.ChannelState())
	assert.Len(t, f.binder.channel.CloseCalls(), 1)

	// Повторная выгрузка ничего не делает
	f.store.UnloadProject()
	assert.Len(t, f.binder.channel.CloseCalls(), 1)

	// Повторная загрузка ведет себя как первая
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))
	assert.Equal(t, []style.Entry{{Style: "s1", Active: true}}, f.store.Styles().Active)
}

func TestStore_DebouncedSaveCollapsesBurst(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	for i := range 5 {
		_, err := f.store.AddBookmark(models.Bookmark{Title: "b", Zoom: float64(i)})
		require.NoError(t, err)
	}

	require.Eventually(t, func() bool {
		return len(f.server.client.PutUserStateCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(3 * testWindow)
	calls := f.server.client.PutUserStateCalls()
	require.Len(t, calls, 1)
	// Сохранено состояние после последнего изменения
	assert.Len(t, calls[0].Doc.BookmarkedMaps, 5)
	assert.Equal(t, "x/a.mml", calls[0].P.URL())
	assert.Empty(t, f.server.client.PutProjectDocumentCalls())
}

func TestStore_DocumentsSaveIndependently(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	require.NoError(t, f.store.ToggleStyle("s2"))
	_, err := f.store.AddDashboardMap(nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(f.server.client.PutProjectDocumentCalls()) == 1 &&
			len(f.server.client.PutUserStateCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	doc := f.server.client.PutProjectDocumentCalls()[0].Doc
	assert.Equal(t, []string{"s1", "s2"}, doc.Stylesheet)
	// Неизвестные ключи документа сохраняются
	assert.Contains(t, doc.Extra, "name")
}

func TestStore_SaveFailureIsDropped(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	var attempts atomic.Int32
	f.server.client.PutUserStateFunc = func(ctx context.Context, p api.Project, doc *models.UserStateDocument) error {
		attempts.Add(1)
		return errors.New("disk full")
	}
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	_, err := f.store.AddBookmark(models.Bookmark{Title: "one"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return attempts.Load() == 1 }, time.Second, 5*time.Millisecond)

	// Повтора нет, пока не случится новое изменение
	time.Sleep(3 * testWindow)
	assert.Equal(t, int32(1), attempts.Load())

	_, err = f.store.AddBookmark(models.Bookmark{Title: "two"})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return attempts.Load() == 2 }, time.Second, 5*time.Millisecond)

	calls := f.server.client.PutUserStateCalls()
	assert.Len(t, calls[1].Doc.BookmarkedMaps, 2)
}

func TestStore_UnloadFlushesPendingSaves(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{SaveDebounce: time.Hour})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	_, err := f.store.AddBookmark(models.Bookmark{Title: "home"})
	require.NoError(t, err)
	assert.Empty(t, f.server.client.PutUserStateCalls())

	f.store.UnloadProject()
	require.Len(t, f.server.client.PutUserStateCalls(), 1)
	assert.Len(t, f.server.client.PutUserStateCalls()[0].Doc.BookmarkedMaps, 1)
}

func TestStore_StaleNotificationsAreDiscarded(t *testing.T) {
	renderer := &RendererMock{RedrawFunc: func(params MapParams) {}}
	f := newFixture(t, sampleDoc, `{}`, Options{Renderer: renderer})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	t1 := baseTime.Add(2 * time.Second)
	t0 := baseTime.Add(time.Second)

	f.binder.send(success(t1, false))
	assert.Len(t, renderer.RedrawCalls(), 1)

	f.binder.send(success(t0, false))
	f.binder.send(success(t1, false))
	assert.Len(t, renderer.RedrawCalls(), 1)

	// Уведомление старше отображаемой карты тоже отбрасывается
	f.binder.send(success(baseTime.Add(-time.Minute), false))
	assert.Len(t, renderer.RedrawCalls(), 1)

	last, ok := f.store.LastUpdate()
	require.True(t, ok)
	assert.True(t, last.Equal(t1))
	assert.Len(t, f.server.client.GetProjectDocumentCalls(), 1)
}

func TestStore_ServerDocumentChangeRefreshes(t *testing.T) {
	metadata := &storage.MetadataStorageMock{
		SaveLastUpdateFunc: func(ctx context.Context, projectURL string, updatedAt time.Time) error {
			return nil
		},
	}
	f := newFixture(t, sampleDoc, `{}`, Options{Metadata: metadata})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	f.server.setDoc(`{"Stylesheet":["s2","s1"],"Layer":[]}`)
	f.binder.send(success(baseTime.Add(time.Second), true))

	assert.Len(t, f.server.client.GetProjectDocumentCalls(), 2)
	assert.Equal(t, []style.Entry{{Style: "s2", Active: true}, {Style: "s1", Active: true}}, f.store.Styles().Active)
	assert.Empty(t, f.store.Layers())
	assert.Equal(t, []string{"s2", "s1"}, f.store.Document().Stylesheet)

	require.Len(t, metadata.SaveLastUpdateCalls(), 1)
	assert.Equal(t, "x/a.mml", metadata.SaveLastUpdateCalls()[0].ProjectURL)

	// Обновление с сервера не сохраняется обратно
	time.Sleep(3 * testWindow)
	assert.Empty(t, f.server.client.PutProjectDocumentCalls())
}

func TestStore_RefreshDeferredWhileEditingLayer(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	editing := make(chan struct{})
	release := make(chan struct{})
	f.editor.EditFunc = func(ctx context.Context, l models.Layer) (layer.Result, error) {
		close(editing)
		<-release
		return layer.Cancelled(), nil
	}
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	done := make(chan error, 1)
	go func() {
		_, err := f.store.EditLayer(context.Background(), 0)
		done <- err
	}()
	<-editing

	f.server.setDoc(`{"Stylesheet":["s2"],"Layer":[]}`)
	f.binder.send(success(baseTime.Add(time.Second), true))

	// Пока редактор открыт, документ не перечитывается
	assert.Len(t, f.server.client.GetProjectDocumentCalls(), 1)
	assert.Len(t, f.store.Layers(), 1)

	close(release)
	require.NoError(t, <-done)

	assert.Len(t, f.server.client.GetProjectDocumentCalls(), 2)
	assert.Empty(t, f.store.Layers())
	assert.Equal(t, []string{"s2"}, f.store.Document().Stylesheet)
}

func TestStore_SavedLayerEditSurvivesDeferredRefresh(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{SaveDebounce: time.Hour})
	editing := make(chan struct{})
	release := make(chan struct{})
	f.editor.EditFunc = func(ctx context.Context, l models.Layer) (layer.Result, error) {
		close(editing)
		<-release
		l.Name = "roads_edited"
		return layer.Saved(l), nil
	}
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	done := make(chan error, 1)
	go func() {
		_, err := f.store.EditLayer(context.Background(), 0)
		done <- err
	}()
	<-editing

	f.server.setDoc(`{"Stylesheet":["s2"],"Layer":[{"id":"roads","name":"roads"}]}`)
	f.binder.send(success(baseTime.Add(time.Second), true))

	close(release)
	require.NoError(t, <-done)

	// Документ перечитан: стили с сервера, слои из несохраненной правки
	assert.Len(t, f.server.client.GetProjectDocumentCalls(), 2)
	require.Len(t, f.store.Layers(), 1)
	assert.Equal(t, "roads_edited", f.store.Layers()[0].Name)
	assert.Equal(t, []string{"s2"}, f.store.Document().Stylesheet)
	assert.Equal(t, "roads_edited", f.store.Document().Layer[0].Name)

	f.store.Flush()
	calls := f.server.client.PutProjectDocumentCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "roads_edited", calls[0].Doc.Layer[0].Name)
	assert.Equal(t, []string{"s2"}, calls[0].Doc.Stylesheet)
}

func TestStore_ChannelAccessors(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})

	assert.Empty(t, f.store.WsID())
	f.store.OnChannelEvent(func(live.Event) {})()
	assert.Empty(t, f.binder.channel.SubscribeCalls())

	require.NoError(t, f.store.LoadProject(context.Background(), testProject))
	assert.Equal(t, "ws-1", f.store.WsID())

	unsubscribe := f.store.OnChannelEvent(func(live.Event) {})
	defer unsubscribe()
	assert.Len(t, f.binder.channel.SubscribeCalls(), 1)
}

func TestStore_ForwardsEventsToSink(t *testing.T) {
	sink := &notify.SinkMock{HandleEventFunc: func(ev live.Event) {}}
	f := newFixture(t, sampleDoc, `{}`, Options{Sink: sink})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	f.binder.send(live.Event{Kind: live.KindWarning, Lines: []string{"w1", "w2"}})

	require.Len(t, sink.HandleEventCalls(), 1)
	assert.Equal(t, live.KindWarning, sink.HandleEventCalls()[0].Ev.Kind)
	// Предупреждение не вызывает перечитывание документа
	assert.Len(t, f.server.client.GetProjectDocumentCalls(), 1)
}

func TestStore_IgnoresEventsOfPreviousBinding(t *testing.T) {
	sink := &notify.SinkMock{HandleEventFunc: func(ev live.Event) {}}
	f := newFixture(t, sampleDoc, `{}`, Options{Sink: sink})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	stale := f.binder.onEvent
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	stale(live.Event{Kind: live.KindError, Lines: []string{"Error: old"}})
	assert.Empty(t, sink.HandleEventCalls())
}

func TestStore_DashboardMaps(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	first, err := f.store.AddDashboardMap(nil)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{50, 25}, first.Coords)
	assert.Equal(t, float64(5), first.Zoom)
	assert.Equal(t, 4, first.SizeX)
	assert.Equal(t, 3, first.SizeY)
	assert.Equal(t, 0, first.Row)

	moved := first
	moved.Coords = [2]float64{10, 10}
	moved.Zoom = 8
	require.NoError(t, f.store.UpdateDashboardMap(0, moved))

	// Новая карта повторяет вид последней
	second, err := f.store.AddDashboardMap(nil)
	require.NoError(t, err)
	assert.Equal(t, [2]float64{10, 10}, second.Coords)
	assert.Equal(t, float64(8), second.Zoom)
	assert.Equal(t, 3, second.Row)

	require.NoError(t, f.store.RemoveDashboardMap(0))
	maps := f.store.UserState().DashboardMaps
	require.Len(t, maps, 1)
	assert.Equal(t, second, maps[0])

	assert.ErrorIs(t, f.store.RemoveDashboardMap(5), ErrMapNotFound)
	assert.ErrorIs(t, f.store.UpdateDashboardMap(-1, moved), ErrMapNotFound)
}

func TestStore_Bookmarks(t *testing.T) {
	f := newFixture(t, sampleDoc, `{"dashboardMaps":[{"coords":[8.8,53.1],"zoom":12,"sizeX":4,"sizeY":3}]}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	b, err := f.store.BookmarkDashboardMap(0, "Bremen")
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Bremen", b.Title)
	assert.Equal(t, [2]float64{8.8, 53.1}, b.Coords)
	assert.Equal(t, float64(12), b.Zoom)

	restored, err := f.store.RestoreBookmark(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Coords, restored.Coords)
	assert.Equal(t, b.Zoom, restored.Zoom)
	assert.Equal(t, 4, restored.SizeX)
	assert.Len(t, f.store.UserState().DashboardMaps, 2)

	require.NoError(t, f.store.RemoveBookmark(b.ID))
	assert.Empty(t, f.store.UserState().BookmarkedMaps)

	assert.ErrorIs(t, f.store.RemoveBookmark(b.ID), ErrBookmarkNotFound)
	_, err = f.store.RestoreBookmark("missing")
	assert.ErrorIs(t, err, ErrBookmarkNotFound)
	_, err = f.store.BookmarkDashboardMap(9, "x")
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestStore_UpdateAppSettings(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	// Изменение без разницы не сохраняется
	require.NoError(t, f.store.UpdateAppSettings(func(s *models.AppSettings) {
		s.SidebarWidth = models.UnsetSize
	}))
	time.Sleep(3 * testWindow)
	assert.Empty(t, f.server.client.PutUserStateCalls())

	require.NoError(t, f.store.UpdateAppSettings(func(s *models.AppSettings) {
		s.SidebarWidth = 0
		s.SidebarCollapsed = true
	}))
	require.Eventually(t, func() bool {
		return len(f.server.client.PutUserStateCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	settings := f.server.client.PutUserStateCalls()[0].Doc.AppSettings
	assert.Equal(t, 0, settings.SidebarWidth)
	assert.True(t, settings.SidebarCollapsed)
}

func TestStore_LayerOperationsSaveDocument(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})
	require.NoError(t, f.store.LoadProject(context.Background(), testProject))

	added, err := f.store.CopyLayer(context.Background(), 0)
	require.NoError(t, err)
	require.True(t, added)
	require.NoError(t, f.store.ToggleLayer(1))

	require.Eventually(t, func() bool {
		return len(f.server.client.PutProjectDocumentCalls()) == 1
	}, time.Second, 5*time.Millisecond)

	doc := f.server.client.PutProjectDocumentCalls()[0].Doc
	require.Len(t, doc.Layer, 2)
	assert.Equal(t, "roads_copy", doc.Layer[1].Name)
	assert.Equal(t, models.LayerStatusOff, doc.Layer[1].Status)

	f.editor.EditFunc = func(ctx context.Context, l models.Layer) (layer.Result, error) {
		return layer.Removed(), nil
	}
	outcome, err := f.store.EditLayer(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, layer.OutcomeRemoved, outcome)
	assert.Len(t, f.store.Document().Layer, 1)
}

func TestStore_MapParams(t *testing.T) {
	var tick atomic.Int64
	now := func() time.Time {
		return baseTime.Add(time.Duration(tick.Add(1)) * time.Millisecond)
	}
	f := newFixture(t, sampleDoc, `{}`, Options{Now: now})

	_, err := f.store.MapParams()
	assert.ErrorIs(t, err, ErrNotLoaded)

	require.NoError(t, f.store.LoadProject(context.Background(), testProject))
	before, err := f.store.MapParams()
	require.NoError(t, err)
	assert.Equal(t, "a.mml", before.MML)
	assert.Equal(t, "x", before.Base)
	assert.Equal(t, []string{"s1"}, before.MSS)

	require.NoError(t, f.store.ToggleStyle("s2"))
	after, err := f.store.MapParams()
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, after.MSS)
	assert.Greater(t, after.T, before.T)

	q := after.Query()
	assert.Equal(t, "s1,s2", q.Get("mss"))
	assert.Equal(t, "a.mml", q.Get("mml"))
	assert.Equal(t, "x", q.Get("base"))
	assert.NotEmpty(t, q.Get("t"))
}

func TestStore_OperationsRequireLoadedProject(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})

	assert.ErrorIs(t, f.store.ToggleStyle("s1"), ErrNotLoaded)
	_, err := f.store.AddDashboardMap(nil)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = f.store.AddBookmark(models.Bookmark{})
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, f.store.UpdateAppSettings(func(*models.AppSettings) {}), ErrNotLoaded)
	_, err = f.store.AddLayer(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, f.store.ToggleLayer(0), ErrNotLoaded)
	assert.ErrorIs(t, f.store.SaveProjectDocument(), ErrNotLoaded)
	assert.ErrorIs(t, f.store.SaveUserStateDocument(), ErrNotLoaded)
	_, err = f.store.MapOptions()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestStore_OnChange(t *testing.T) {
	f := newFixture(t, sampleDoc, `{}`, Options{})

	var (
		mu      sync.Mutex
		changes []Change
	)
	remove := f.store.OnChange(func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, c)
	})
	defer remove()

	require.NoError(t, f.store.LoadProject(context.Background(), testProject))
	require.NoError(t, f.store.ToggleStyle("s2"))
	f.store.UnloadProject()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Change{ChangeLoaded, ChangeStyles, ChangeRedraw, ChangeUnloaded}, changes)
}
