package httpadapter

import (
	"encoding/json"
	"net/http"
)

type moderationToggle struct {
	CheckEnabled bool `json:"check_enabled"`
}

// handleToggleModeration switches the content filter on or off at runtime.
func (h *Handler) handleToggleModeration(w http.ResponseWriter, r *http.Request) {
	var p moderationToggle
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	if err := h.moderation.SetEnabled(r.Context(), p.CheckEnabled); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
