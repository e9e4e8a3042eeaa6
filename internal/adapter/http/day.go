package httpadapter

import (
	"encoding/json"
	"net/http"
)

type dayPayload struct {
	CurrentDate int `json:"current_date"`
}

// handleAdvanceDay moves the virtual clock forward. Re-setting the same day
// is allowed; moving backwards is rejected by the use case.
func (h *Handler) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	var p dayPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if p.CurrentDate < 0 {
		badRequest(w, "current_date must not be negative")
		return
	}

	day, err := h.days.Advance(r.Context(), p.CurrentDate)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dayPayload{CurrentDate: day})
}
