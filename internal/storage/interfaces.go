package storage

import (
	"context"

	"github.com/brightloop/pulseboard/internal/models"
)

// =============================================
// DAILY METRICS REPOSITORY
// =============================================

// DailyMetricsRepo stores one metric row per calendar day.  Dates are
// ISO "2006-01-02" strings and range queries are inclusive on both ends.
type DailyMetricsRepo interface {
	// ListRange returns the rows with from <= date <= to, ordered by date.
	ListRange(ctx context.Context, from, to string) ([]models.DailyMetricRow, error)
	// Upsert inserts or replaces rows keyed by date.
	Upsert(ctx context.Context, rows []models.DailyMetricRow) error
}

// =============================================
// AD / ADSET REPOSITORY
// =============================================

// AdRepo stores the raw ad-creative and ad-set rows for each reporting
// week.  Ingestion replaces a whole week at a time; there is no
// incremental patching of individual rows.
type AdRepo interface {
	ListCreatives(ctx context.Context, weekStart string) ([]models.RawAdRow, error)
	ReplaceCreatives(ctx context.Context, weekStart string, rows []models.RawAdRow) error

	ListAdsets(ctx context.Context, weekStart string) ([]models.AdsetRow, error)
	ReplaceAdsets(ctx context.Context, weekStart string, rows []models.AdsetRow) error
}
