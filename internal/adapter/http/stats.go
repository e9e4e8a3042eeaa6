package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
)

type statView struct {
	ImpressionsCount int64   `json:"impressions_count"`
	ClicksCount      int64   `json:"clicks_count"`
	Conversion       float64 `json:"conversion"`
	SpentImpressions float64 `json:"spent_impressions"`
	SpentClicks      float64 `json:"spent_clicks"`
	SpentTotal       float64 `json:"spent_total"`
}

type dailyStatView struct {
	statView
	Date int `json:"date"`
}

func toStatView(s domain.Stat) statView {
	return statView{
		ImpressionsCount: s.ImpressionsCount,
		ClicksCount:      s.ClicksCount,
		Conversion:       s.Conversion,
		SpentImpressions: s.SpentImpressions,
		SpentClicks:      s.SpentClicks,
		SpentTotal:       s.SpentTotal,
	}
}

func toDailyStatViews(stats []domain.DailyStat) []dailyStatView {
	views := make([]dailyStatView, 0, len(stats))
	for _, s := range stats {
		views = append(views, dailyStatView{statView: toStatView(s.Stat), Date: s.Day})
	}
	return views
}

func (h *Handler) handleCampaignStat(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "campaignId"))
	if err != nil {
		badRequest(w, "invalid campaign id")
		return
	}

	stat, err := h.stats.CampaignStat(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatView(stat))
}

func (h *Handler) handleCampaignStatDaily(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "campaignId"))
	if err != nil {
		badRequest(w, "invalid campaign id")
		return
	}

	stats, err := h.stats.CampaignStatDaily(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDailyStatViews(stats))
}

func (h *Handler) handleAdvertiserStat(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "advertiserId"))
	if err != nil {
		badRequest(w, "invalid advertiser id")
		return
	}

	stat, err := h.stats.AdvertiserStat(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatView(stat))
}

func (h *Handler) handleAdvertiserStatDaily(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "advertiserId"))
	if err != nil {
		badRequest(w, "invalid advertiser id")
		return
	}

	stats, err := h.stats.AdvertiserStatDaily(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDailyStatViews(stats))
}

// handleServiceMetrics serves the service-wide aggregate. Values within the
// cache window may repeat while new events arrive.
func (h *Handler) handleServiceMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.stats.ServiceMetrics(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
