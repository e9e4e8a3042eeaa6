// Package selection implements the campaign eligibility filter and the
// composite ranking score that pick the single ad shown per request. It is
// pure: candidates come in with their delivery counters already attached and
// no storage is touched.
package selection

import (
	"bytes"

	"prism-ads/internal/core/domain"
)

// overrunTolerance lets a campaign finish a near-complete serving cycle:
// it stays eligible until delivered impressions reach 104.9% of the limit.
const overrunTolerance = 1.049

// Candidate is one campaign with the per-campaign and per-client context the
// filter and the scorer need.
type Candidate struct {
	Campaign domain.Campaign

	// Delivered counters across all clients.
	Impressions int64
	Clicks      int64

	// Relevance score between the requesting client and the campaign's
	// advertiser; zero when no score was ever supplied.
	Relevance int

	// Shown is true when the requesting client already has an impression
	// for this campaign.
	Shown bool
}

// Eligible reports whether the candidate may be shown to the client on the
// given virtual day.
func Eligible(c Candidate, client domain.Client, day int) bool {
	camp := c.Campaign
	if camp.Deleted {
		return false
	}
	if !camp.ActiveOn(day) {
		return false
	}
	t := camp.Targeting
	if t.AgeFrom != nil && *t.AgeFrom > client.Age {
		return false
	}
	if t.AgeTo != nil && *t.AgeTo < client.Age {
		return false
	}
	if t.Location != nil && *t.Location != client.Location {
		return false
	}
	if t.Gender != nil && !t.Gender.Matches(client.Gender) {
		return false
	}
	if c.Shown {
		return false
	}
	if float64(c.Impressions) >= float64(camp.ImpressionsLimit)*overrunTolerance {
		return false
	}
	return true
}

// Score computes the composite ranking value:
//
//	profit        = 0.5 * (cost_per_impression + cost_per_click)
//	relevance     = 0.25 * relevance_score
//	limit_bonus   = 0.15 * ((1 - impression_ratio) + (1 - click_ratio)) / 2
//	click_penalty = -0.05 * click_ratio, only once clicks overshoot the limit
//
// The limit bonus paces under-delivered campaigns; the penalty discourages
// campaigns that already blew their click budget.
func Score(c Candidate) float64 {
	camp := c.Campaign

	var impressionRatio, clickRatio float64
	if camp.ImpressionsLimit > 0 {
		impressionRatio = float64(c.Impressions) / float64(camp.ImpressionsLimit)
	}
	if camp.ClicksLimit > 0 {
		clickRatio = float64(c.Clicks) / float64(camp.ClicksLimit)
	}

	profit := 0.5 * (camp.CostPerImpression + camp.CostPerClick)
	relevance := 0.25 * float64(c.Relevance)
	limitBonus := 0.15 * ((1 - impressionRatio) + (1 - clickRatio)) / 2

	var clickPenalty float64
	if c.Clicks > camp.ClicksLimit {
		clickPenalty = -0.05 * clickRatio
	}

	return profit + relevance + limitBonus + clickPenalty
}

// Pick filters the pool down to eligible candidates and returns the one with
// the maximum score. Exact ties resolve to the lexicographically smallest
// campaign id so repeated requests over an unchanged pool are deterministic.
// The second return is false when nothing is eligible.
func Pick(pool []Candidate, client domain.Client, day int) (Candidate, bool) {
	var (
		best      Candidate
		bestScore float64
		found     bool
	)
	for _, c := range pool {
		if !Eligible(c, client, day) {
			continue
		}
		s := Score(c)
		if !found || s > bestScore || (s == bestScore && lessID(c.Campaign, best.Campaign)) {
			best, bestScore, found = c, s, true
		}
	}
	return best, found
}

func lessID(a, b domain.Campaign) bool {
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}
