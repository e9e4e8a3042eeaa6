package domain

import (
	"time"

	"github.com/google/uuid"
)

// Impression is a record of an ad being shown to a client. Impressions are
// append-only facts: at most one ever exists per (client, campaign) pair and
// the cost is a snapshot taken at event time, immune to later campaign edits.
type Impression struct {
	ID                uuid.UUID
	CampaignID        uuid.UUID
	ClientID          uuid.UUID
	Day               int
	CostPerImpression float64
	CreatedAt         time.Time
}

// Click is a record of a click on a previously shown ad. Same append-only
// and per-pair uniqueness rules as Impression; a Click can only exist after
// an Impression for the same pair.
type Click struct {
	ID           uuid.UUID
	CampaignID   uuid.UUID
	ClientID     uuid.UUID
	Day          int
	CostPerClick float64
	CreatedAt    time.Time
}
