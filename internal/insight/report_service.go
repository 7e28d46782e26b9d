// Package insight is the service layer between storage and the HTTP API.
// It wires repositories and the cache around the pure aggregation and
// normalization cores.
package insight

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brightloop/pulseboard/internal/cache"
	"github.com/brightloop/pulseboard/internal/metrics"
	"github.com/brightloop/pulseboard/internal/models"
	"github.com/brightloop/pulseboard/internal/report"
	"github.com/brightloop/pulseboard/internal/storage"
)

// ReportService serves daily rows and aggregated summaries.
type ReportService struct {
	repo    storage.DailyMetricsRepo
	cache   cache.SummaryCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(repo storage.DailyMetricsRepo, c cache.SummaryCache, m *metrics.Metrics, logger *zap.Logger) *ReportService {
	return &ReportService{repo: repo, cache: c, metrics: m, logger: logger}
}

// ListDaily returns the stored rows for an inclusive date range.
func (s *ReportService) ListDaily(ctx context.Context, from, to string) ([]models.DailyMetricRow, error) {
	rows, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		s.metrics.RecordStorageError("list_daily")
		return nil, fmt.Errorf("listing daily metrics %s..%s: %w", from, to, err)
	}
	return rows, nil
}

// Summary returns the aggregated summary for a date range, reading
// through the cache.  A cached entry is served as-is; otherwise the rows
// are fetched and collapsed by the aggregator, and the result cached.
func (s *ReportService) Summary(ctx context.Context, from, to string) (models.WeeklySummary, error) {
	key := cache.RangeKey(from, to)
	if cached, ok := s.cache.Get(ctx, key); ok {
		s.metrics.RecordCache(true)
		return *cached, nil
	}
	s.metrics.RecordCache(false)

	rows, err := s.repo.ListRange(ctx, from, to)
	if err != nil {
		s.metrics.RecordStorageError("summary")
		return models.WeeklySummary{}, fmt.Errorf("loading rows for summary %s..%s: %w", from, to, err)
	}

	summary := report.Aggregate(rows)
	s.metrics.RecordSummary(len(rows))
	s.cache.Set(ctx, key, summary)

	s.logger.Debug("summary computed",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("rows", len(rows)),
	)
	return summary, nil
}

// UpsertDaily stores a batch of daily rows, replacing any existing row
// for the same date.
func (s *ReportService) UpsertDaily(ctx context.Context, rows []models.DailyMetricRow) error {
	if err := s.repo.Upsert(ctx, rows); err != nil {
		s.metrics.RecordStorageError("upsert_daily")
		return fmt.Errorf("upserting %d daily rows: %w", len(rows), err)
	}
	s.logger.Info("daily metrics upserted", zap.Int("rows", len(rows)))
	return nil
}
