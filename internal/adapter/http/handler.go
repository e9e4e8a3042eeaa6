package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"prism-ads/internal/core/port"
	"prism-ads/internal/metrics"
)

// Handler is the inbound HTTP adapter. It binds the REST surface to the
// inbound ports and owns nothing but decoding, validation and encoding.
type Handler struct {
	ads        port.AdUseCase
	campaigns  port.CampaignUseCase
	stats      port.StatUseCase
	days       port.DayUseCase
	directory  port.DirectoryUseCase
	moderation port.ModerationUseCase
	metrics    *metrics.Metrics
	logger     *slog.Logger
	router     chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(
	ads port.AdUseCase,
	campaigns port.CampaignUseCase,
	stats port.StatUseCase,
	days port.DayUseCase,
	directory port.DirectoryUseCase,
	moderation port.ModerationUseCase,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Handler {
	h := &Handler{
		ads:        ads,
		campaigns:  campaigns,
		stats:      stats,
		days:       days,
		directory:  directory,
		moderation: moderation,
		metrics:    m,
		logger:     logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.instrument)

	r.Get("/ping", h.handlePing)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/clients", func(r chi.Router) {
		r.Post("/bulk", h.handleUpsertClients)
		r.Get("/{clientId}", h.handleGetClient)
	})

	r.Route("/advertisers", func(r chi.Router) {
		r.Post("/bulk", h.handleUpsertAdvertisers)
		r.Put("/toggle/swears", h.handleToggleModeration)
		r.Get("/{advertiserId}", h.handleGetAdvertiser)

		r.Route("/{advertiserId}/campaigns", func(r chi.Router) {
			r.Post("/", h.handleCreateCampaign)
			r.Get("/", h.handleListCampaigns)
			r.Get("/generate", h.handleGenerateAdText)
			r.Get("/{campaignId}", h.handleReadCampaign)
			r.Put("/{campaignId}", h.handleUpdateCampaign)
			r.Delete("/{campaignId}", h.handleDeleteCampaign)
			r.Put("/{campaignId}/attach", h.handleAttachImage)
		})
	})

	r.Post("/ml-scores", h.handleUpsertRelevance)
	r.Post("/time/advance", h.handleAdvanceDay)

	r.Route("/ads", func(r chi.Router) {
		r.Get("/", h.handleShowAd)
		r.Post("/{adId}/click", h.handleClick)
	})

	r.Route("/stats", func(r chi.Router) {
		r.Get("/static", h.handleServiceMetrics)
		r.Get("/campaigns/{campaignId}", h.handleCampaignStat)
		r.Get("/campaigns/{campaignId}/daily", h.handleCampaignStatDaily)
		r.Get("/advertisers/{advertiserId}/campaigns", h.handleAdvertiserStat)
		r.Get("/advertisers/{advertiserId}/campaigns/daily", h.handleAdvertiserStatDaily)
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

// instrument records request count and latency per chi route pattern.
func (h *Handler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		h.metrics.RecordRequest(r.Method, route, ww.Status(), time.Since(start))
	})
}

func (h *Handler) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, "pong")
}
