package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"prompt-nodes/execution"
	"prompt-nodes/node"
)

func (h *handler) listNodes(w http.ResponseWriter, r *http.Request) {
	infos := h.manager.Registry().List()
	byClass := make(map[string]node.Info, len(infos))
	for _, info := range infos {
		byClass[info.Class] = info
	}
	writeJSON(w, http.StatusOK, byClass)
}

func (h *handler) getNode(w http.ResponseWriter, r *http.Request) {
	class := chi.URLParam(r, "class")
	n, ok := h.manager.Registry().Get(class)
	if !ok {
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, n.Info())
}

func (h *handler) executeNode(w http.ResponseWriter, r *http.Request) {
	class := chi.URLParam(r, "class")
	var req struct {
		Inputs node.Inputs `json:"inputs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Inputs == nil {
		req.Inputs = node.Inputs{}
	}

	e, err := h.manager.Run(r.Context(), class, req.Inputs)
	if err != nil {
		switch {
		case errors.Is(err, execution.ErrUnknownNode):
			http.Error(w, "node not found", http.StatusNotFound)
		case errors.Is(err, node.ErrBadInput):
			writeJSON(w, http.StatusBadRequest, e)
		default:
			h.logger.Warn("execution failed", zap.String("class", class), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, e)
		}
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *handler) listHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.manager.List())
}

func (h *handler) getHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.manager.Get(id)
	if !ok {
		http.Error(w, "execution not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *handler) deleteHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.manager.Delete(id); err != nil {
		if errors.Is(err, execution.ErrNotFound) {
			http.Error(w, "execution not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to delete execution", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
