package api

import (
	"encoding/json"
	"net/http"

	"prompt-nodes/prompt"
)

type presetView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Positive string `json:"positive,omitempty"`
	Negative string `json:"negative,omitempty"`
}

func (h *handler) getPresets(w http.ResponseWriter, r *http.Request) {
	presets := h.catalog.Presets()
	views := make([]presetView, len(presets))
	for i, p := range presets {
		views[i] = presetView{ID: p.ID(), Name: p.Name, Positive: p.Positive, Negative: p.Negative}
	}
	writeJSON(w, http.StatusOK, views)
}

// previewRequest mirrors the node inputs that affect the composed text.
type previewRequest struct {
	Positive   string   `json:"positive"`
	Negative   string   `json:"negative"`
	Selections []string `json:"selections"`
	IDs        string   `json:"ids"`

	PresetsEnabled  *bool `json:"presets_enabled"`
	IDsEnabled      *bool `json:"ids_enabled"`
	NegativeEnabled *bool `json:"negative_enabled"`
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// previewPrompt composes the final texts without encoding them.
func (h *handler) previewPrompt(w http.ResponseWriter, r *http.Request) {
	var body previewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(body.Selections) > prompt.MaxSelections {
		http.Error(w, "too many selections", http.StatusBadRequest)
		return
	}

	req := prompt.Request{
		Positive:        body.Positive,
		Negative:        body.Negative,
		IDs:             body.IDs,
		PresetsEnabled:  boolOr(body.PresetsEnabled, true),
		IDsEnabled:      boolOr(body.IDsEnabled, true),
		NegativeEnabled: boolOr(body.NegativeEnabled, true),
	}
	for i, name := range body.Selections {
		if name != "" && name != "None" {
			req.Selections[i] = prompt.Select(name)
		}
	}
	writeJSON(w, http.StatusOK, prompt.Compose(h.catalog, req))
}
