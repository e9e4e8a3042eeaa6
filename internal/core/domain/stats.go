package domain

// Stat is a derived aggregate over the impression/click history of one
// campaign, one advertiser or the whole service. It is never stored.
type Stat struct {
	ImpressionsCount int64
	ClicksCount      int64
	Conversion       float64 // clicks per impression, in percent
	SpentImpressions float64
	SpentClicks      float64
	SpentTotal       float64
}

// DailyStat is a Stat bucketed by virtual day. Days without any impression
// or click in scope are omitted, not zero-filled.
type DailyStat struct {
	Stat
	Day int
}

// ServiceMetrics is the service-wide aggregate plus entity counts. It is
// served through a short-lived cache, so two reads within the cache window
// may return identical values even while new events arrive.
type ServiceMetrics struct {
	ImpressionsCount  int64   `json:"impressions_count"`
	ClicksCount       int64   `json:"clicks_count"`
	AdvertisersCount  int64   `json:"advertisers_count"`
	ClientsCount      int64   `json:"clients_count"`
	CampaignsCount    int64   `json:"campaigns_count"`
	Conversion        float64 `json:"conversion"`
	IncomeImpressions float64 `json:"income_impressions"`
	IncomeClicks      float64 `json:"income_clicks"`
	IncomeTotal       float64 `json:"income_total"`
}

// ConversionRate returns clicks/impressions in percent, zero when there are
// no impressions.
func ConversionRate(impressions, clicks int64) float64 {
	if impressions == 0 {
		return 0
	}
	return float64(clicks) / float64(impressions) * 100
}
