package domain

import "github.com/google/uuid"

// Advertiser owns campaigns. Upsert-by-id semantics, same as Client.
type Advertiser struct {
	ID   uuid.UUID
	Name string
}

// Relevance is an externally supplied affinity score between a client and
// an advertiser. It only participates in ad ranking.
type Relevance struct {
	ClientID     uuid.UUID
	AdvertiserID uuid.UUID
	Score        int
}
