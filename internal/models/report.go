// Package models defines the shared data types exchanged between
// storage, the aggregation core and the HTTP API.
package models

import "github.com/brightloop/pulseboard/internal/formula"

// DailyMetricRow is one calendar day of metrics as ingested from the
// upstream trackers.  Numeric fields use the tolerant formula types so
// quoted numbers, nulls and garbage decode to zero instead of failing
// the whole batch.
type DailyMetricRow struct {
	Date string `json:"date"`

	// Ad platform metrics.
	AdSpend           formula.Float `json:"ad_spend"`
	AdClicks          formula.Count `json:"ad_clicks"`
	AdPurchases       formula.Count `json:"ad_purchases"`
	AdConversionValue formula.Float `json:"ad_conversion_value"`

	// Site analytics metrics.
	ActiveUsers           formula.Count `json:"active_users"`
	Sessions              formula.Count `json:"sessions"`
	CartAdds              formula.Count `json:"cart_adds"`
	GA4Purchases          formula.Count `json:"ga4_purchases"`
	GA4Revenue            formula.Float `json:"ga4_revenue"`
	OverallConversionRate formula.Float `json:"overall_conversion_rate"`

	// Storefront order metrics.
	OrderCount   formula.Count `json:"order_count"`
	OrderRevenue formula.Float `json:"order_revenue"`
	NewMembers   formula.Count `json:"new_members"`
}

// WeeklySummary is the aggregate of a date range of daily rows.
//
// ROAS divides the ad platform's reported conversion value by spend;
// MER divides storefront order revenue by spend.  The two numerators
// come from different systems and must never be conflated.
type WeeklySummary struct {
	Revenue           float64 `json:"revenue"`
	Orders            int64   `json:"orders"`
	AdSpend           float64 `json:"ad_spend"`
	AdClicks          int64   `json:"ad_clicks"`
	AdPurchases       int64   `json:"ad_purchases"`
	AdConversionValue float64 `json:"ad_conversion_value"`
	ActiveUsers       int64   `json:"active_users"`
	Sessions          int64   `json:"sessions"`
	CartAdds          int64   `json:"cart_adds"`
	GA4Purchases      int64   `json:"ga4_purchases"`
	GA4Revenue        float64 `json:"ga4_revenue"`
	NewMembers        int64   `json:"new_members"`

	MER        float64 `json:"mer"`
	ROAS       float64 `json:"roas"`
	AOV        float64 `json:"aov"`
	Conversion float64 `json:"conversion"`
}
