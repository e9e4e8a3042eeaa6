package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"prism-ads/internal/core/domain"
	"prism-ads/internal/core/port"
)

const maxImageSize = 20 << 20

type targetingPayload struct {
	AgeFrom  *int                 `json:"age_from,omitempty"`
	AgeTo    *int                 `json:"age_to,omitempty"`
	Location *string              `json:"location,omitempty"`
	Gender   *domain.TargetGender `json:"gender,omitempty"`
}

type campaignPayload struct {
	ImpressionsLimit  int64             `json:"impressions_limit"`
	ClicksLimit       int64             `json:"clicks_limit"`
	CostPerImpression float64           `json:"cost_per_impression"`
	CostPerClick      float64           `json:"cost_per_click"`
	AdTitle           string            `json:"ad_title"`
	AdText            string            `json:"ad_text"`
	StartDate         int               `json:"start_date"`
	EndDate           int               `json:"end_date"`
	Targeting         *targetingPayload `json:"targeting,omitempty"`
}

type campaignView struct {
	campaignPayload
	CampaignID   uuid.UUID `json:"campaign_id"`
	AdvertiserID uuid.UUID `json:"advertiser_id"`
	ImagePath    *string   `json:"image_path,omitempty"`
}

type campaignImageView struct {
	CampaignID uuid.UUID `json:"campaign_id"`
	Path       string    `json:"path"`
}

type generatedTextView struct {
	AdText string `json:"ad_text"`
}

func (p campaignPayload) validate() string {
	switch {
	case p.ImpressionsLimit < 0 || p.ClicksLimit < 0:
		return "limits must not be negative"
	case p.CostPerImpression < 0 || p.CostPerClick < 0:
		return "costs must not be negative"
	case p.StartDate < 0 || p.EndDate < 0:
		return "dates must not be negative"
	}
	if t := p.Targeting; t != nil {
		if t.AgeFrom != nil && (*t.AgeFrom < 0 || *t.AgeFrom > 100) {
			return "age_from must be between 0 and 100"
		}
		if t.AgeTo != nil && (*t.AgeTo < 0 || *t.AgeTo > 100) {
			return "age_to must be between 0 and 100"
		}
		if t.Gender != nil && !t.Gender.Valid() {
			return "targeting gender must be MALE, FEMALE or ALL"
		}
	}
	return ""
}

func (p campaignPayload) toInput() port.CampaignInput {
	in := port.CampaignInput{
		ImpressionsLimit:  p.ImpressionsLimit,
		ClicksLimit:       p.ClicksLimit,
		CostPerImpression: p.CostPerImpression,
		CostPerClick:      p.CostPerClick,
		AdTitle:           p.AdTitle,
		AdText:            p.AdText,
		StartDay:          p.StartDate,
		EndDay:            p.EndDate,
	}
	if p.Targeting != nil {
		in.Targeting = domain.Targeting{
			AgeFrom:  p.Targeting.AgeFrom,
			AgeTo:    p.Targeting.AgeTo,
			Location: p.Targeting.Location,
			Gender:   p.Targeting.Gender,
		}
	}
	return in
}

func toCampaignView(c *domain.Campaign) campaignView {
	return campaignView{
		campaignPayload: campaignPayload{
			ImpressionsLimit:  c.ImpressionsLimit,
			ClicksLimit:       c.ClicksLimit,
			CostPerImpression: c.CostPerImpression,
			CostPerClick:      c.CostPerClick,
			AdTitle:           c.AdTitle,
			AdText:            c.AdText,
			StartDate:         c.StartDay,
			EndDate:           c.EndDay,
			Targeting: &targetingPayload{
				AgeFrom:  c.Targeting.AgeFrom,
				AgeTo:    c.Targeting.AgeTo,
				Location: c.Targeting.Location,
				Gender:   c.Targeting.Gender,
			},
		},
		CampaignID:   c.ID,
		AdvertiserID: c.AdvertiserID,
		ImagePath:    c.ImagePath,
	}
}

// campaignIDs binds the {advertiserId} and optional {campaignId} parameters.
func campaignIDs(r *http.Request) (advertiserID, campaignID uuid.UUID, err error) {
	advertiserID, err = uuid.Parse(chi.URLParam(r, "advertiserId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	if raw := chi.URLParam(r, "campaignId"); raw != "" {
		campaignID, err = uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, uuid.Nil, err
		}
	}
	return advertiserID, campaignID, nil
}

func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	advertiserID, _, err := campaignIDs(r)
	if err != nil {
		badRequest(w, "invalid advertiser id")
		return
	}
	var p campaignPayload
	if err = json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if msg := p.validate(); msg != "" {
		badRequest(w, msg)
		return
	}

	campaign, err := h.campaigns.Create(r.Context(), advertiserID, p.toInput())
	if err != nil {
		h.countModerationHit(err)
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCampaignView(campaign))
}

func (h *Handler) handleReadCampaign(w http.ResponseWriter, r *http.Request) {
	advertiserID, campaignID, err := campaignIDs(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	campaign, err := h.campaigns.Read(r.Context(), campaignID, advertiserID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCampaignView(campaign))
}

func (h *Handler) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	advertiserID, campaignID, err := campaignIDs(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}
	var p campaignPayload
	if err = json.NewDecoder(r.Body).Decode(&p); err != nil {
		badRequest(w, "invalid JSON")
		return
	}
	if msg := p.validate(); msg != "" {
		badRequest(w, msg)
		return
	}

	campaign, err := h.campaigns.Update(r.Context(), campaignID, advertiserID, p.toInput())
	if err != nil {
		h.countModerationHit(err)
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCampaignView(campaign))
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	advertiserID, campaignID, err := campaignIDs(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	if err = h.campaigns.Delete(r.Context(), campaignID, advertiserID); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	advertiserID, _, err := campaignIDs(r)
	if err != nil {
		badRequest(w, "invalid advertiser id")
		return
	}
	page, err := intQuery(r, "page")
	if err != nil {
		badRequest(w, "invalid page")
		return
	}
	size, err := intQuery(r, "size")
	if err != nil {
		badRequest(w, "invalid size")
		return
	}

	campaigns, err := h.campaigns.List(r.Context(), advertiserID, page, size)
	if err != nil {
		h.respondError(w, err)
		return
	}

	views := make([]campaignView, 0, len(campaigns))
	for i := range campaigns {
		views = append(views, toCampaignView(&campaigns[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

// handleAttachImage accepts a multipart upload under the `file` field, sniffs
// the content type and stores the image for the campaign.
func (h *Handler) handleAttachImage(w http.ResponseWriter, r *http.Request) {
	advertiserID, campaignID, err := campaignIDs(r)
	if err != nil {
		badRequest(w, "invalid id")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "file field is required")
		return
	}
	defer file.Close()

	if header.Size <= 0 {
		badRequest(w, "cannot read file size")
		return
	}
	if header.Size > maxImageSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Msg: "file too big"})
		return
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		badRequest(w, "cannot read file")
		return
	}
	head = head[:n]

	mime := http.DetectContentType(head)
	ext, ok := strings.CutPrefix(mime, "image/")
	if !ok {
		badRequest(w, "file is not an image")
		return
	}

	body := io.MultiReader(bytes.NewReader(head), file)
	path, err := h.campaigns.AttachImage(r.Context(), campaignID, advertiserID, body, ext, header.Size)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaignImageView{CampaignID: campaignID, Path: path})
}

// handleGenerateAdText produces ad copy from the `ad_title` query parameter.
func (h *Handler) handleGenerateAdText(w http.ResponseWriter, r *http.Request) {
	advertiserID, _, err := campaignIDs(r)
	if err != nil {
		badRequest(w, "invalid advertiser id")
		return
	}
	adTitle := r.URL.Query().Get("ad_title")
	if adTitle == "" {
		badRequest(w, "ad_title is required")
		return
	}

	text, err := h.campaigns.GenerateText(r.Context(), advertiserID, adTitle)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generatedTextView{AdText: text})
}

func (h *Handler) countModerationHit(err error) {
	if h.metrics != nil && errors.Is(err, domain.ErrDisallowedContent) {
		h.metrics.ModerationHits.Inc()
	}
}

// intQuery parses an optional non-negative integer query parameter.
func intQuery(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil, strconv.ErrSyntax
	}
	return &v, nil
}
