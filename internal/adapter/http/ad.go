package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
)

type adView struct {
	AdID         uuid.UUID `json:"ad_id"`
	AdTitle      string    `json:"ad_title"`
	AdText       string    `json:"ad_text"`
	AdvertiserID uuid.UUID `json:"advertiser_id"`
}

type clickRequest struct {
	ClientID uuid.UUID `json:"client_id"`
}

func toAdView(ad *port.Ad) adView {
	return adView{
		AdID:         ad.ID,
		AdTitle:      ad.Title,
		AdText:       ad.Text,
		AdvertiserID: ad.AdvertiserID,
	}
}

// handleShowAd picks the best ad for the client given by the `client_id`
// query parameter and records the impression as part of the same request.
func (h *Handler) handleShowAd(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.URL.Query().Get("client_id"))
	if err != nil {
		badRequest(w, "invalid client_id")
		return
	}

	ad, err := h.ads.ShowAd(r.Context(), clientID)
	if err != nil {
		if h.metrics != nil && errors.Is(err, domain.ErrNoAdAvailable) {
			h.metrics.AdsUnavailable.Inc()
		}
		h.respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.AdsServed.Inc()
	}
	writeJSON(w, http.StatusOK, toAdView(ad))
}

// handleClick records a click on a previously shown ad. Repeats succeed with
// no further effect, so the endpoint always answers 204 once the first
// impression exists.
func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	adID, err := uuid.Parse(chi.URLParam(r, "adId"))
	if err != nil {
		badRequest(w, "invalid ad id")
		return
	}
	var req clickRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID == uuid.Nil {
		badRequest(w, "invalid JSON")
		return
	}

	if err = h.ads.Click(r.Context(), req.ClientID, adID); err != nil {
		h.respondError(w, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ClicksRecorded.Inc()
	}
	w.WriteHeader(http.StatusNoContent)
}
