package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightloop/pulseboard/internal/formula"
	"github.com/brightloop/pulseboard/internal/models"
)

func row(date string, spend, convValue, revenue float64, orders int64) models.DailyMetricRow {
	return models.DailyMetricRow{
		Date:              date,
		AdSpend:           formula.Float(spend),
		AdConversionValue: formula.Float(convValue),
		OrderRevenue:      formula.Float(revenue),
		OrderCount:        formula.Count(orders),
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, models.WeeklySummary{}, s)

	s = Aggregate([]models.DailyMetricRow{})
	assert.Zero(t, s.Revenue)
	assert.Zero(t, s.MER)
	assert.Zero(t, s.ROAS)
	assert.Zero(t, s.AOV)
	assert.Zero(t, s.Conversion)
}

func TestAggregateSingleRowIdempotence(t *testing.T) {
	// Aggregating one row must reduce to that row's own recomputed
	// ratios, not a copy of any stored ratio.
	r := row("2025-07-01", 500, 1500, 2000, 8)
	s := Aggregate([]models.DailyMetricRow{r})

	assert.Equal(t, 2000.0/500.0, s.MER)
	assert.Equal(t, 1500.0/500.0, s.ROAS)
	assert.Equal(t, 2000.0/8.0, s.AOV)
}

func TestAggregateSums(t *testing.T) {
	rows := []models.DailyMetricRow{
		{
			Date: "2025-07-01", AdSpend: 100, AdClicks: 10, AdPurchases: 1,
			AdConversionValue: 300, ActiveUsers: 50, Sessions: 80, CartAdds: 12,
			GA4Purchases: 2, GA4Revenue: 350, OverallConversionRate: 2.0,
			OrderCount: 3, OrderRevenue: 400, NewMembers: 5,
		},
		{
			Date: "2025-07-02", AdSpend: 200, AdClicks: 30, AdPurchases: 2,
			AdConversionValue: 500, ActiveUsers: 70, Sessions: 120, CartAdds: 18,
			GA4Purchases: 4, GA4Revenue: 650, OverallConversionRate: 4.0,
			OrderCount: 5, OrderRevenue: 600, NewMembers: 7,
		},
	}

	s := Aggregate(rows)

	assert.Equal(t, 300.0, s.AdSpend)
	assert.Equal(t, int64(40), s.AdClicks)
	assert.Equal(t, int64(3), s.AdPurchases)
	assert.Equal(t, 800.0, s.AdConversionValue)
	assert.Equal(t, int64(120), s.ActiveUsers)
	assert.Equal(t, int64(200), s.Sessions)
	assert.Equal(t, int64(30), s.CartAdds)
	assert.Equal(t, int64(6), s.GA4Purchases)
	assert.Equal(t, 1000.0, s.GA4Revenue)
	assert.Equal(t, int64(8), s.Orders)
	assert.Equal(t, 1000.0, s.Revenue)
	assert.Equal(t, int64(12), s.NewMembers)

	// Conversion is the mean of daily rates, not re-derived.
	assert.Equal(t, 3.0, s.Conversion)
}

func TestAggregateROASIsNotMER(t *testing.T) {
	// Regression guard: ROAS comes from platform conversion value, MER
	// from storefront revenue.  Rows where the two numerators differ must
	// produce different ratios.
	rows := []models.DailyMetricRow{
		row("2025-07-01", 1000, 500, 2000, 10),
		row("2025-07-02", 1000, 1500, 2000, 10),
	}
	s := Aggregate(rows)

	assert.Equal(t, 1.0, s.ROAS) // 2000/2000
	assert.Equal(t, 2.0, s.MER)  // 4000/2000
	assert.NotEqual(t, s.ROAS, s.MER)
}

func TestAggregateZeroSpendSafety(t *testing.T) {
	rows := []models.DailyMetricRow{
		row("2025-07-01", 0, 500, 2000, 0),
		row("2025-07-02", 0, 300, 1000, 0),
	}
	s := Aggregate(rows)

	assert.Zero(t, s.MER)
	assert.Zero(t, s.ROAS)
	assert.Zero(t, s.AOV)
	assert.Equal(t, 3000.0, s.Revenue)
}

func TestAggregateEndToEndScenario(t *testing.T) {
	rows := []models.DailyMetricRow{
		row("2025-07-01", 1000, 500, 2000, 10),
		row("2025-07-02", 1000, 1500, 2000, 10),
		row("2025-07-03", 1000, 1000, 2000, 10),
	}
	s := Aggregate(rows)

	assert.Equal(t, 3000.0, s.AdSpend)
	assert.Equal(t, 1.0, s.ROAS) // 3000/3000
	assert.Equal(t, 2.0, s.MER)  // 6000/3000
	assert.Equal(t, 200.0, s.AOV) // 6000/30
}

func TestAggregateMalformedInputRows(t *testing.T) {
	// Rows decoded from a partially garbage payload aggregate as zeros
	// instead of poisoning the summary.
	payload := `[
		{"date":"2025-07-01","ad_spend":"broken","order_revenue":null,"order_count":"x"},
		{"date":"2025-07-02","ad_spend":100,"ad_conversion_value":250,"order_revenue":300,"order_count":2}
	]`
	var rows []models.DailyMetricRow
	require.NoError(t, json.Unmarshal([]byte(payload), &rows))

	s := Aggregate(rows)
	assert.Equal(t, 100.0, s.AdSpend)
	assert.Equal(t, 300.0, s.Revenue)
	assert.Equal(t, 2.5, s.ROAS)
	assert.Equal(t, 3.0, s.MER)
	assert.Equal(t, 150.0, s.AOV)
}
