package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iudanet/cartosync/internal/server/projects"
	"github.com/iudanet/cartosync/internal/server/storage"
	"github.com/iudanet/cartosync/pkg/api"
)

// MaxDocumentSize ограничивает размер тела PUT/POST запросов
const MaxDocumentSize = 10 << 20

// ProjectsHandler serves the project list and the mml and mcp documents of
// the projects found in the styles directory.
type ProjectsHandler struct {
	logger    *slog.Logger
	states    storage.UserStateStorage
	stylesDir string
}

// NewProjectsHandler creates a handler over stylesDir. User-state documents
// are kept in states.
func NewProjectsHandler(logger *slog.Logger, stylesDir string, states storage.UserStateStorage) *ProjectsHandler {
	return &ProjectsHandler{
		logger:    logger,
		states:    states,
		stylesDir: stylesDir,
	}
}

// List обрабатывает GET /api/v1/projects
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := projects.Discover(h.stylesDir)
	if err != nil {
		h.logger.Error("Failed to discover projects", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, api.ProjectsResponse{Projects: list})
}

// Document обрабатывает GET, PUT и POST /api/v1/projects/{base...}/{file}
// для .mml и .mcp файлов
func (h *ProjectsHandler) Document(w http.ResponseWriter, r *http.Request) {
	rel, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "invalid path")
		return
	}

	switch path.Ext(rel) {
	case projects.MMLExt:
		h.mml(w, r, rel)
	case projects.MCPExt:
		h.mcp(w, r, rel)
	default:
		writeError(w, h.logger, http.StatusNotFound, "not found")
	}
}

func (h *ProjectsHandler) mml(w http.ResponseWriter, r *http.Request, rel string) {
	fileName, err := projects.Resolve(h.stylesDir, rel)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.serveFile(w, r, fileName)
	case http.MethodPut, http.MethodPost:
		if _, err := os.Stat(filepath.Dir(fileName)); err != nil {
			writeError(w, h.logger, http.StatusNotFound, projects.ErrProjectNotFound.Error())
			return
		}
		body := http.MaxBytesReader(w, r.Body, MaxDocumentSize)
		if err := projects.WriteChecked(fileName, body, projects.CheckMML); err != nil {
			h.writeFailed(w, rel, err)
			return
		}
		h.logger.Info("Project document saved", "path", rel)
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ProjectsHandler) mcp(w http.ResponseWriter, r *http.Request, rel string) {
	if _, err := projects.Resolve(h.stylesDir, rel); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	key := path.Clean(rel)
	mmlRel := strings.TrimSuffix(key, projects.MCPExt) + projects.MMLExt
	mmlFile, _ := projects.Resolve(h.stylesDir, mmlRel)

	switch r.Method {
	case http.MethodGet:
		state, err := h.states.GetUserState(r.Context(), key)
		if err == nil {
			w.Header().Set("Content-Type", "application/json")
			http.ServeContent(w, r, "", state.UpdatedAt, bytes.NewReader(state.Document))
			return
		}
		if !errors.Is(err, storage.ErrStateNotFound) {
			h.logger.Error("Failed to get user state", "path", key, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "internal error")
			return
		}
		// пустое состояние для существующего проекта
		if _, err := os.Stat(mmlFile); err != nil {
			writeError(w, h.logger, http.StatusNotFound, projects.ErrProjectNotFound.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}\n"))
	case http.MethodPut, http.MethodPost:
		if _, err := os.Stat(mmlFile); err != nil {
			writeError(w, h.logger, http.StatusNotFound, projects.ErrProjectNotFound.Error())
			return
		}
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
		if err != nil {
			writeError(w, h.logger, http.StatusRequestEntityTooLarge, "document too large")
			return
		}
		if err := projects.CheckJSON(data); err != nil {
			writeError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}
		if err := h.states.PutUserState(r.Context(), key, data); err != nil {
			h.logger.Error("Failed to save user state", "path", key, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "internal error")
			return
		}
		h.logger.Debug("User state saved", "path", key, "bytes", len(data))
		w.WriteHeader(http.StatusNoContent)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *ProjectsHandler) serveFile(w http.ResponseWriter, r *http.Request, fileName string) {
	f, err := os.Open(fileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeError(w, h.logger, http.StatusNotFound, projects.ErrProjectNotFound.Error())
			return
		}
		h.logger.Error("Failed to open project document", "file", fileName, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal error")
		return
	}
	defer func() { _ = f.Close() }()

	var modTime time.Time
	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			writeError(w, h.logger, http.StatusNotFound, projects.ErrProjectNotFound.Error())
			return
		}
		modTime = info.ModTime()
	}

	w.Header().Set("Content-Type", "application/json")
	http.ServeContent(w, r, "", modTime, f)
}

// writeFailed различает ошибки проверки документа и ошибки записи
func (h *ProjectsHandler) writeFailed(w http.ResponseWriter, rel string, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeError(w, h.logger, http.StatusRequestEntityTooLarge, "document too large")
	case errors.Is(err, projects.ErrInvalidDocument):
		h.logger.Warn("Rejected project document", "path", rel, "error", err)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Failed to write project document", "path", rel, "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "internal error")
	}
}
