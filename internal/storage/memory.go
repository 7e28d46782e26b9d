package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/brightloop/pulseboard/internal/models"
)

// InMemoryDailyMetricsRepo is a thread-safe in-memory implementation of
// DailyMetricsRepo.  It backs tests and lets the service come up without
// PostgreSQL.
type InMemoryDailyMetricsRepo struct {
	mu   sync.RWMutex
	rows map[string]models.DailyMetricRow
}

// NewInMemoryDailyMetricsRepo creates an empty in-memory repo.
func NewInMemoryDailyMetricsRepo() *InMemoryDailyMetricsRepo {
	return &InMemoryDailyMetricsRepo{rows: make(map[string]models.DailyMetricRow)}
}

// ListRange returns rows with from <= date <= to ordered by date.  ISO
// dates compare correctly as strings, so no time parsing is needed.
func (r *InMemoryDailyMetricsRepo) ListRange(_ context.Context, from, to string) ([]models.DailyMetricRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.DailyMetricRow, 0, len(r.rows))
	for date, row := range r.rows {
		if date >= from && date <= to {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// Upsert inserts or replaces rows keyed by date.  Rows without a date are
// skipped rather than rejected.
func (r *InMemoryDailyMetricsRepo) Upsert(_ context.Context, rows []models.DailyMetricRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		if row.Date == "" {
			continue
		}
		r.rows[row.Date] = row
	}
	return nil
}

// InMemoryAdRepo is a thread-safe in-memory implementation of AdRepo.
type InMemoryAdRepo struct {
	mu        sync.RWMutex
	creatives map[string][]models.RawAdRow
	adsets    map[string][]models.AdsetRow
}

// NewInMemoryAdRepo creates an empty in-memory ad repo.
func NewInMemoryAdRepo() *InMemoryAdRepo {
	return &InMemoryAdRepo{
		creatives: make(map[string][]models.RawAdRow),
		adsets:    make(map[string][]models.AdsetRow),
	}
}

// ListCreatives returns the stored raw ad rows for a week in insertion
// order.  The slice is copied to avoid external mutation.
func (r *InMemoryAdRepo) ListCreatives(_ context.Context, weekStart string) ([]models.RawAdRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.RawAdRow(nil), r.creatives[weekStart]...), nil
}

// ReplaceCreatives swaps out the whole week's rows.
func (r *InMemoryAdRepo) ReplaceCreatives(_ context.Context, weekStart string, rows []models.RawAdRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creatives[weekStart] = append([]models.RawAdRow(nil), rows...)
	return nil
}

// ListAdsets returns the stored ad-set rows for a week in insertion order.
func (r *InMemoryAdRepo) ListAdsets(_ context.Context, weekStart string) ([]models.AdsetRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.AdsetRow(nil), r.adsets[weekStart]...), nil
}

// ReplaceAdsets swaps out the whole week's ad sets.
func (r *InMemoryAdRepo) ReplaceAdsets(_ context.Context, weekStart string, rows []models.AdsetRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adsets[weekStart] = append([]models.AdsetRow(nil), rows...)
	return nil
}
