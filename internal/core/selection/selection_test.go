package selection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prism-ads/internal/core/domain"
)

func intPtr(v int) *int                            { return &v }
func strPtr(v string) *string                      { return &v }
func genderPtr(v domain.TargetGender) *domain.TargetGender { return &v }

func testClient() domain.Client {
	return domain.Client{
		ID:       uuid.New(),
		Login:    "ann",
		Age:      25,
		Location: "Berlin",
		Gender:   domain.GenderFemale,
	}
}

func openCampaign() domain.Campaign {
	return domain.Campaign{
		ID:               uuid.New(),
		AdvertiserID:     uuid.New(),
		ImpressionsLimit: 100,
		ClicksLimit:      50,
		StartDay:         0,
		EndDay:           30,
	}
}

func TestEligible(t *testing.T) {
	client := testClient()

	tests := []struct {
		name string
		mod  func(*Candidate)
		day  int
		want bool
	}{
		{"open campaign", func(c *Candidate) {}, 5, true},
		{"deleted", func(c *Candidate) { c.Campaign.Deleted = true }, 5, false},
		{"before start", func(c *Candidate) { c.Campaign.StartDay = 10 }, 5, false},
		{"after end", func(c *Candidate) { c.Campaign.EndDay = 4 }, 5, false},
		{"window edge start", func(c *Candidate) { c.Campaign.StartDay = 5 }, 5, true},
		{"window edge end", func(c *Candidate) { c.Campaign.EndDay = 5 }, 5, true},
		{"age_from above client", func(c *Candidate) { c.Campaign.Targeting.AgeFrom = intPtr(30) }, 5, false},
		{"age_from at client", func(c *Candidate) { c.Campaign.Targeting.AgeFrom = intPtr(25) }, 5, true},
		{"age_to below client", func(c *Candidate) { c.Campaign.Targeting.AgeTo = intPtr(20) }, 5, false},
		{"location mismatch", func(c *Candidate) { c.Campaign.Targeting.Location = strPtr("Paris") }, 5, false},
		{"location match", func(c *Candidate) { c.Campaign.Targeting.Location = strPtr("Berlin") }, 5, true},
		{"gender mismatch", func(c *Candidate) { c.Campaign.Targeting.Gender = genderPtr(domain.TargetMale) }, 5, false},
		{"gender ALL", func(c *Candidate) { c.Campaign.Targeting.Gender = genderPtr(domain.TargetAll) }, 5, true},
		{"gender exact", func(c *Candidate) { c.Campaign.Targeting.Gender = genderPtr(domain.TargetFemale) }, 5, true},
		{"already shown", func(c *Candidate) { c.Shown = true }, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := Candidate{Campaign: openCampaign()}
			tt.mod(&cand)
			assert.Equal(t, tt.want, Eligible(cand, client, tt.day))
		})
	}
}

func TestEligibleOverrunTolerance(t *testing.T) {
	client := testClient()

	cand := Candidate{Campaign: openCampaign()}
	cand.Campaign.ImpressionsLimit = 10

	// 104% of the limit is still within tolerance.
	cand.Impressions = 10
	assert.True(t, Eligible(cand, client, 1))

	// 110% exceeds the 104.9% threshold.
	cand.Impressions = 11
	assert.False(t, Eligible(cand, client, 1))
}

func TestScoreFavorsProfit(t *testing.T) {
	// Client age 25; A pays nothing but is more relevant, B pays well.
	a := Candidate{Campaign: openCampaign(), Relevance: 2}
	b := Candidate{Campaign: openCampaign(), Relevance: 1}
	b.Campaign.CostPerImpression = 5
	b.Campaign.CostPerClick = 3

	// profit(A)=0, relevance(A)=0.5; profit(B)=4.0, relevance(B)=0.25.
	assert.Greater(t, Score(b), Score(a))

	client := testClient()
	picked, ok := Pick([]Candidate{a, b}, client, 1)
	require.True(t, ok)
	assert.Equal(t, b.Campaign.ID, picked.Campaign.ID)
}

func TestScoreLimitBonusAndPenalty(t *testing.T) {
	fresh := Candidate{Campaign: openCampaign()}
	assert.InDelta(t, 0.15, Score(fresh), 1e-9) // full pacing bonus, nothing else

	half := fresh
	half.Impressions = 50
	half.Clicks = 25
	assert.InDelta(t, 0.075, Score(half), 1e-9)

	// Penalty only applies once clicks overshoot the limit.
	atLimit := fresh
	atLimit.Clicks = 50
	over := fresh
	over.Clicks = 55
	assert.Greater(t, Score(atLimit), Score(over))

	overRatio := float64(55) / 50
	wantOver := 0.15*((1-0)+(1-overRatio))/2 - 0.05*overRatio
	assert.InDelta(t, wantOver, Score(over), 1e-9)
}

func TestScoreZeroLimits(t *testing.T) {
	// Campaigns with zero limits must not divide by zero; ratios count as 0.
	c := Candidate{Campaign: openCampaign()}
	c.Campaign.ImpressionsLimit = 0
	c.Campaign.ClicksLimit = 0
	c.Impressions = 3
	assert.InDelta(t, 0.15, Score(c), 1e-9)
}

func TestPickTieBreaksOnSmallestID(t *testing.T) {
	client := testClient()

	low := Candidate{Campaign: openCampaign()}
	high := Candidate{Campaign: openCampaign()}
	low.Campaign.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high.Campaign.ID = uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	for _, pool := range [][]Candidate{{low, high}, {high, low}} {
		picked, ok := Pick(pool, client, 1)
		require.True(t, ok)
		assert.Equal(t, low.Campaign.ID, picked.Campaign.ID)
	}
}

func TestPickEmptyPool(t *testing.T) {
	client := testClient()

	_, ok := Pick(nil, client, 1)
	assert.False(t, ok)

	// A pool with only ineligible campaigns is the same as an empty one.
	gone := Candidate{Campaign: openCampaign()}
	gone.Campaign.Deleted = true
	_, ok = Pick([]Candidate{gone}, client, 1)
	assert.False(t, ok)
}
