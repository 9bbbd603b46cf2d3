package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/iudanet/cartosync/internal/server/projects"
	"github.com/iudanet/cartosync/pkg/api"
)

const (
	// DuplicateWindow подавляет повтор одинаковых сообщений
	DuplicateWindow = 2 * time.Second

	writeWait = 10 * time.Second
)

// ChangesHandler pushes change notifications of a project over websocket
// connections and keeps track of the open ones.
type ChangesHandler struct {
	logger    *slog.Logger
	sessions  map[string]*session
	now       func() time.Time
	upgrader  websocket.Upgrader
	stylesDir string
	mu        sync.Mutex
}

// NewChangesHandler creates a handler for projects in stylesDir.
func NewChangesHandler(logger *slog.Logger, stylesDir string) *ChangesHandler {
	return &ChangesHandler{
		logger:    logger,
		sessions:  make(map[string]*session),
		now:       time.Now,
		stylesDir: stylesDir,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// session одно websocket соединение
type session struct {
	lastSent time.Time
	conn     *websocket.Conn
	cancel   context.CancelFunc
	now      func() time.Time
	id       string
	lastMsg  []byte
	writeMu  sync.Mutex
}

// send пишет сообщение, если оно отличается от предыдущего или
// предыдущее было отправлено раньше DuplicateWindow
func (s *session) send(msg api.ChangeMessage) error {
	buf, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.now()
	if bytes.Equal(buf, s.lastMsg) && now.Sub(s.lastSent) <= DuplicateWindow {
		return nil
	}
	_ = s.conn.SetWriteDeadline(now.Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, buf); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	s.lastMsg = buf
	s.lastSent = now
	return nil
}

func (s *session) close(code int, text string) {
	s.writeMu.Lock()
	_ = s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(writeWait))
	s.writeMu.Unlock()
	s.cancel()
}

// Connections returns the number of open change subscriptions.
func (h *ChangesHandler) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// CloseAll closes every open connection, used on server shutdown.
func (h *ChangesHandler) CloseAll() {
	h.mu.Lock()
	sessions := make([]*session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.close(websocket.CloseGoingAway, "server shutdown")
	}
}

// Changes обрабатывает GET /api/v1/changes?mml=&mss=&base=
func (h *ChangesHandler) Changes(w http.ResponseWriter, r *http.Request) {
	mmlPath, mss, err := h.styleParams(r)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader уже ответил клиенту
		h.logger.Warn("Websocket upgrade failed", "error", err)
		return
	}

	// контекст запроса не отменяется после hijack
	ctx, cancel := context.WithCancel(context.Background())
	s := &session{
		conn:   conn,
		cancel: cancel,
		now:    h.now,
		id:     uuid.NewString(),
	}
	h.register(s)
	defer func() {
		cancel()
		h.unregister(s)
		_ = conn.Close()
	}()

	logger := h.logger.With("wsid", s.id, "mml", r.URL.Query().Get("mml"))
	logger.Info("Change subscription opened")

	// Входящие сообщения не нужны: чтение только для обнаружения закрытия
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					logger.Debug("Websocket read failed", "error", err)
				}
				return
			}
		}
	}()

	if err := s.send(api.ChangeMessage{WsID: s.id}); err != nil {
		logger.Warn("Failed to send wsid", "error", err)
		return
	}

	watcher, err := projects.NewWatcher(mmlPath, mss, logger)
	if err != nil {
		logger.Error("Failed to create watcher", "error", err)
		_ = s.send(api.ChangeMessage{Error: api.StringPtr(err.Error())})
		return
	}

	for u := range watcher.Run(ctx) {
		if err := s.send(changeMessage(u)); err != nil {
			logger.Warn("Closing change subscription", "error", err)
			return
		}
	}
	logger.Info("Change subscription closed")
}

func (h *ChangesHandler) register(s *session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
}

func (h *ChangesHandler) unregister(s *session) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
}

// styleParams разбирает mml, mss и base в пути внутри styles dir.
// mss задается списком через запятую.
func (h *ChangesHandler) styleParams(r *http.Request) (string, []string, error) {
	q := r.URL.Query()
	mml := q.Get("mml")
	if mml == "" {
		return "", nil, errors.New("missing mml param")
	}
	base := q.Get("base")

	mmlPath, err := projects.Resolve(h.stylesDir, projects.Join(base, mml))
	if err != nil {
		return "", nil, err
	}

	var mss []string
	if list := q.Get("mss"); list != "" {
		for _, name := range strings.Split(list, ",") {
			p, err := projects.Resolve(h.stylesDir, projects.Join(base, name))
			if err != nil {
				return "", nil, err
			}
			mss = append(mss, p)
		}
	}
	return mmlPath, mss, nil
}

// changeMessage переводит обновление наблюдателя в сообщение клиенту
func changeMessage(u projects.Update) api.ChangeMessage {
	if u.Err == nil {
		return api.ChangeMessage{
			UpdatedAt:  api.TimePtr(u.Time),
			UpdatedMML: api.BoolPtr(u.UpdatedMML),
		}
	}

	var parseErr *projects.ParseError
	var missing *projects.MissingFilesError
	switch {
	case errors.As(u.Err, &parseErr):
		return api.ChangeMessage{
			Error:     api.StringPtr(parseErr.Err.Error()),
			FullError: parseErr.Error(),
			Filename:  api.StringPtr(parseErr.Filename),
			Line:      parseErr.Line,
			Column:    parseErr.Column,
		}
	case errors.As(u.Err, &missing):
		return api.ChangeMessage{
			Error: api.StringPtr("missing files"),
			Files: missing.Files,
		}
	default:
		return api.ChangeMessage{Error: api.StringPtr(u.Err.Error())}
	}
}
