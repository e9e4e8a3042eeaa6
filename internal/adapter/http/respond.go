package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"prism-ads/internal/core/domain"
)

// errorResponse is the uniform error body of the API.
type errorResponse struct {
	Msg string `json:"msg"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// headers are already out; nothing left to do but note it
		slog.Default().Error("encode response error", slog.Any("error", err))
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Msg: msg})
}

// respondError maps an application error to a status code in one place.
// Anything that is not a domain.Error is an internal fault and is logged
// without leaking details to the caller.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var appErr *domain.Error
	if !errors.As(err, &appErr) {
		h.logger.Error("internal error", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Msg: "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindAccessDenied:
		status = http.StatusForbidden
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindBusinessRule:
		// Disallowed content reads as a malformed campaign body, the other
		// rule violations as a state conflict.
		if errors.Is(err, domain.ErrDisallowedContent) {
			status = http.StatusBadRequest
		} else {
			status = http.StatusConflict
		}
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindDependency:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, errorResponse{Msg: appErr.Message})
}
