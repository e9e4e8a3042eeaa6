package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
)

type clientPayload struct {
	ClientID uuid.UUID     `json:"client_id"`
	Login    string        `json:"login"`
	Age      int           `json:"age"`
	Location string        `json:"location"`
	Gender   domain.Gender `json:"gender"`
}

func (p clientPayload) validate() string {
	switch {
	case p.ClientID == uuid.Nil:
		return "client_id is required"
	case p.Age < 0 || p.Age > 100:
		return "age must be between 0 and 100"
	case !p.Gender.Valid():
		return "gender must be MALE or FEMALE"
	}
	return ""
}

type advertiserPayload struct {
	AdvertiserID uuid.UUID `json:"advertiser_id"`
	Name         string    `json:"name"`
}

type relevancePayload struct {
	ClientID     uuid.UUID `json:"client_id"`
	AdvertiserID uuid.UUID `json:"advertiser_id"`
	Score        int       `json:"score"`
}

// handleUpsertClients bulk-replaces clients by id.
func (h *Handler) handleUpsertClients(w http.ResponseWriter, r *http.Request) {
	var payload []clientPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	clients := make([]domain.Client, 0, len(payload))
	for _, p := range payload {
		if msg := p.validate(); msg != "" {
			badRequest(w, msg)
			return
		}
		clients = append(clients, domain.Client{
			ID:       p.ClientID,
			Login:    p.Login,
			Age:      p.Age,
			Location: p.Location,
			Gender:   p.Gender,
		})
	}

	if err := h.directory.UpsertClients(r.Context(), clients); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payload)
}

func (h *Handler) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "clientId"))
	if err != nil {
		badRequest(w, "invalid client id")
		return
	}

	client, err := h.directory.GetClient(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clientPayload{
		ClientID: client.ID,
		Login:    client.Login,
		Age:      client.Age,
		Location: client.Location,
		Gender:   client.Gender,
	})
}

// handleUpsertAdvertisers bulk-replaces advertisers by id.
func (h *Handler) handleUpsertAdvertisers(w http.ResponseWriter, r *http.Request) {
	var payload []advertiserPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		badRequest(w, "invalid JSON")
		return
	}

	advertisers := make([]domain.Advertiser, 0, len(payload))
	for _, p := range payload {
		if p.AdvertiserID == uuid.Nil {
			badRequest(w, "advertiser_id is required")
			return
		}
		advertisers = append(advertisers, domain.Advertiser{ID: p.AdvertiserID, Name: p.Name})
	}

	if err := h.directory.UpsertAdvertisers(r.Context(), advertisers); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payload)
}

func (h *Handler) handleGetAdvertiser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "advertiserId"))
	if err != nil {
		badRequest(w, "invalid advertiser id")
		return
	}

	adv, err := h.directory.GetAdvertiser(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, advertiserPayload{AdvertiserID: adv.ID, Name: adv.Name})
}

// handleUpsertRelevance replaces the ML score of a (client, advertiser) pair.
func (h *Handler) handleUpsertRelevance(w http.ResponseWriter, r *http.Request) {
	var p relevancePayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if p.Score < 0 {
		badRequest(w, "score must not be negative")
		return
	}

	rel := domain.Relevance{
		ClientID:     p.ClientID,
		AdvertiserID: p.AdvertiserID,
		Score:        p.Score,
	}
	if err := h.directory.UpsertRelevance(r.Context(), rel); err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
