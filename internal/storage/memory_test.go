package storage

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightloop/pulseboard/internal/models"
)

func TestInMemoryDailyMetricsRangeQuery(t *testing.T) {
	repo := NewInMemoryDailyMetricsRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []models.DailyMetricRow{
		{Date: "2025-07-03", AdSpend: 30},
		{Date: "2025-07-01", AdSpend: 10},
		{Date: "2025-07-05", AdSpend: 50},
		{Date: "2025-07-02", AdSpend: 20},
	}))

	rows, err := repo.ListRange(ctx, "2025-07-02", "2025-07-03")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Inclusive bounds, ordered by date.
	assert.Equal(t, "2025-07-02", rows[0].Date)
	assert.Equal(t, "2025-07-03", rows[1].Date)
}

func TestInMemoryDailyMetricsUpsertReplaces(t *testing.T) {
	repo := NewInMemoryDailyMetricsRepo()
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []models.DailyMetricRow{{Date: "2025-07-01", AdSpend: 10}}))
	require.NoError(t, repo.Upsert(ctx, []models.DailyMetricRow{{Date: "2025-07-01", AdSpend: 99}}))

	rows, err := repo.ListRange(ctx, "2025-07-01", "2025-07-01")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 99.0, float64(rows[0].AdSpend))

	// Rows without a date are skipped, not stored.
	require.NoError(t, repo.Upsert(ctx, []models.DailyMetricRow{{AdSpend: 5}}))
	rows, err = repo.ListRange(ctx, "0000-01-01", "9999-12-31")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestInMemoryAdRepoReplaceWeek(t *testing.T) {
	repo := NewInMemoryAdRepo()
	ctx := context.Background()

	week := "2025-06-30"
	require.NoError(t, repo.ReplaceCreatives(ctx, week, []models.RawAdRow{
		{ID: "a", AdID: "ad-1", Metrics: json.RawMessage(`{"spend":1}`)},
		{ID: "b", AdID: "ad-2"},
	}))

	rows, err := repo.ListCreatives(ctx, week)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	// Replacing swaps the whole week.
	require.NoError(t, repo.ReplaceCreatives(ctx, week, []models.RawAdRow{{ID: "c", AdID: "ad-3"}}))
	rows, err = repo.ListCreatives(ctx, week)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ad-3", rows[0].AdID)

	// Other weeks are untouched and empty.
	rows, err = repo.ListCreatives(ctx, "2025-07-07")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInMemoryAdRepoAdsets(t *testing.T) {
	repo := NewInMemoryAdRepo()
	ctx := context.Background()

	week := "2025-06-30"
	require.NoError(t, repo.ReplaceAdsets(ctx, week, []models.AdsetRow{
		{ID: "1", AdsetID: "as-1", AdsetName: "Prospecting", Spend: 120},
	}))

	rows, err := repo.ListAdsets(ctx, week)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Prospecting", rows[0].AdsetName)
}
