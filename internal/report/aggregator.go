// Package report collapses ordered per-day metric rows into a single
// aggregated summary for an arbitrary date range.  The caller is
// responsible for range filtering; no date logic happens here.
package report

import (
	"github.com/brightloop/pulseboard/internal/formula"
	"github.com/brightloop/pulseboard/internal/models"
)

// Aggregate reduces rows to one WeeklySummary.  Counters are summed,
// the daily conversion rate is averaged, and MER/ROAS/AOV are recomputed
// from the summed aggregates rather than averaged from per-day ratios.
//
// An empty input yields a fully zeroed summary.  The function is pure and
// never fails: malformed numerics were already coerced to zero at decode
// time by the formula types.
func Aggregate(rows []models.DailyMetricRow) models.WeeklySummary {
	var s models.WeeklySummary
	if len(rows) == 0 {
		return s
	}

	var convSum float64
	for _, r := range rows {
		s.AdSpend += float64(r.AdSpend)
		s.AdClicks += int64(r.AdClicks)
		s.AdPurchases += int64(r.AdPurchases)
		s.AdConversionValue += float64(r.AdConversionValue)
		s.ActiveUsers += int64(r.ActiveUsers)
		s.Sessions += int64(r.Sessions)
		s.CartAdds += int64(r.CartAdds)
		s.GA4Purchases += int64(r.GA4Purchases)
		s.GA4Revenue += float64(r.GA4Revenue)
		s.Orders += int64(r.OrderCount)
		s.Revenue += float64(r.OrderRevenue)
		s.NewMembers += int64(r.NewMembers)
		convSum += float64(r.OverallConversionRate)
	}

	// ROAS uses the platform-reported conversion value as numerator,
	// MER the storefront revenue.
	s.MER = formula.MER(s.Revenue, s.AdSpend)
	s.ROAS = formula.SafeDiv(s.AdConversionValue, s.AdSpend)
	s.AOV = formula.AOV(s.Revenue, s.Orders)
	s.Conversion = convSum / float64(len(rows))

	return s
}
