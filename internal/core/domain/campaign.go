package domain

import (
	"time"

	"github.com/google/uuid"
)

// TargetGender is the gender constraint of a campaign's targeting. Unlike
// the client Gender it admits ALL.
type TargetGender string

const (
	TargetMale   TargetGender = "MALE"
	TargetFemale TargetGender = "FEMALE"
	TargetAll    TargetGender = "ALL"
)

// Valid reports whether g is a known targeting gender.
func (g TargetGender) Valid() bool {
	return g == TargetMale || g == TargetFemale || g == TargetAll
}

// Matches reports whether the constraint admits the given client gender.
func (g TargetGender) Matches(cg Gender) bool {
	return g == TargetAll || string(g) == string(cg)
}

// Targeting is the optional demographic/geographic window of a campaign.
// Nil fields mean "no constraint".
type Targeting struct {
	AgeFrom  *int
	AgeTo    *int
	Location *string
	Gender   *TargetGender
}

// Campaign is a time-boxed, capacity-limited advertisement. Day bounds are
// virtual days, not wall-clock dates. Deleted campaigns stay in storage:
// their historical impressions and clicks keep counting toward stats.
type Campaign struct {
	ID                uuid.UUID
	AdvertiserID      uuid.UUID
	ImpressionsLimit  int64
	ClicksLimit       int64
	CostPerImpression float64
	CostPerClick      float64
	AdTitle           string
	AdText            string
	StartDay          int
	EndDay            int
	Targeting         Targeting
	ImagePath         *string
	Deleted           bool
	CreatedAt         time.Time
}

// Started reports whether the campaign has begun on the given virtual day.
// Once started, its capacity and time bounds are frozen.
func (c Campaign) Started(day int) bool {
	return day >= c.StartDay
}

// ActiveOn reports whether the campaign's serving window covers the day.
func (c Campaign) ActiveOn(day int) bool {
	return c.StartDay <= day && day <= c.EndDay
}
