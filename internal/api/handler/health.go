package handler

import (
	"net/http"

	"github.com/Manfred-Klatt/nooktrivia-server/internal/api/response"
	"github.com/Manfred-Klatt/nooktrivia-server/internal/storage"
)

// HealthHandler handles liveness and readiness endpoints
type HealthHandler struct {
	storage storage.Storage
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage storage.Storage) *HealthHandler {
	return &HealthHandler{
		storage: storage,
	}
}

// Health handles GET /api/v1/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}

// HealthDB handles GET /api/v1/health/db
func (h *HealthHandler) HealthDB(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
