package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"prompt-nodes/execution"
	"prompt-nodes/preset"
)

func RegisterRoutes(manager *execution.Manager, catalog *preset.Catalog, hub *execution.Hub, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h := &handler{manager: manager, catalog: catalog, hub: hub, logger: logger}

	// Node descriptors
	r.Get("/api/object_info", h.listNodes)
	r.Get("/api/object_info/{class}", h.getNode)

	// Execution
	r.Post("/api/nodes/{class}/execute", h.executeNode)
	r.Get("/api/history", h.listHistory)
	r.Get("/api/history/{id}", h.getHistory)
	r.Delete("/api/history/{id}", h.deleteHistory)

	// Presets
	r.Get("/api/presets", h.getPresets)
	r.Post("/api/prompt/preview", h.previewPrompt)

	// WebSocket
	r.Get("/api/ws", h.handleWS)

	return r
}

type handler struct {
	manager *execution.Manager
	catalog *preset.Catalog
	hub     *execution.Hub
	logger  *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
