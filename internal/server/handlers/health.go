package handlers

import (
	"log/slog"
	"net/http"
)

// ConnectionCounter reports the number of open change subscriptions.
type ConnectionCounter interface {
	Connections() int
}

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	logger  *slog.Logger
	conns   ConnectionCounter
	version string
}

// NewHealthHandler создает новый handler для health check. conns may be nil.
func NewHealthHandler(logger *slog.Logger, version string, conns ConnectionCounter) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		conns:   conns,
		version: version,
	}
}

// HealthResponse представляет ответ health check
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version,omitempty"`
	Connections int    `json:"connections"`
}

// Health обрабатывает GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
	}
	if h.conns != nil {
		resp.Connections = h.conns.Connections()
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
