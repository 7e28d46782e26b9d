package insight

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/brightloop/pulseboard/internal/ads"
	"github.com/brightloop/pulseboard/internal/formula"
	"github.com/brightloop/pulseboard/internal/metrics"
	"github.com/brightloop/pulseboard/internal/models"
	"github.com/brightloop/pulseboard/internal/storage"
)

// AdService serves normalized per-ad metrics and scored ad-set reports.
type AdService struct {
	repo    storage.AdRepo
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAdService constructs an AdService.
func NewAdService(repo storage.AdRepo, m *metrics.Metrics, logger *zap.Logger) *AdService {
	return &AdService{repo: repo, metrics: m, logger: logger}
}

// WeeklyAds returns the deduplicated per-ad metrics for one reporting
// week, sorted by spend descending.  The map from the normalizer is
// rebuilt in full on every call.
func (s *AdService) WeeklyAds(ctx context.Context, weekStart string) ([]models.AdMetrics, error) {
	rows, err := s.repo.ListCreatives(ctx, weekStart)
	if err != nil {
		s.metrics.RecordStorageError("list_creatives")
		return nil, fmt.Errorf("listing ad creatives for week %s: %w", weekStart, err)
	}

	byID, discarded := ads.Normalize(rows)
	s.metrics.RecordNormalization(len(byID), discarded)
	if discarded > 0 {
		// Duplicates are dropped by contract, but divergent carousel
		// variants would be silent data loss, so make it visible.
		s.logger.Warn("discarded duplicate ad rows",
			zap.String("week_start", weekStart),
			zap.Int("discarded", discarded),
		)
	}

	out := make([]models.AdMetrics, 0, len(byID))
	for _, m := range byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spend != out[j].Spend {
			return out[i].Spend > out[j].Spend
		}
		return out[i].AdID < out[j].AdID
	})
	return out, nil
}

// ReplaceWeeklyAds swaps out the stored raw ad rows for one week.
func (s *AdService) ReplaceWeeklyAds(ctx context.Context, weekStart string, rows []models.RawAdRow) error {
	if err := s.repo.ReplaceCreatives(ctx, weekStart, rows); err != nil {
		s.metrics.RecordStorageError("replace_creatives")
		return fmt.Errorf("replacing ad creatives for week %s: %w", weekStart, err)
	}
	s.logger.Info("ad creatives replaced",
		zap.String("week_start", weekStart),
		zap.Int("rows", len(rows)),
	)
	return nil
}

// AdsetReport is one ad set's stored counters with derived ratios and
// the targeting assessment attached.
type AdsetReport struct {
	AdsetID     string                      `json:"adset_id"`
	AdsetName   string                      `json:"adset_name"`
	Spend       float64                     `json:"spend"`
	Impressions int64                       `json:"impressions"`
	Clicks      int64                       `json:"clicks"`
	Purchases   int64                       `json:"purchases"`
	ROAS        float64                     `json:"roas"`
	CTR         float64                     `json:"ctr"`
	CVR         float64                     `json:"cvr"`
	CPA         float64                     `json:"cpa"`
	Targeting   *models.TargetingConfig    `json:"targeting,omitempty"`
	Assessment  models.TargetingAssessment `json:"assessment"`
}

// WeeklyAdsets returns the ad sets for one week, each with recomputed
// ratios and a fresh targeting assessment.  Unparseable targeting JSON
// degrades to the nil-config assessment rather than failing the report.
func (s *AdService) WeeklyAdsets(ctx context.Context, weekStart string) ([]AdsetReport, error) {
	rows, err := s.repo.ListAdsets(ctx, weekStart)
	if err != nil {
		s.metrics.RecordStorageError("list_adsets")
		return nil, fmt.Errorf("listing adsets for week %s: %w", weekStart, err)
	}

	out := make([]AdsetReport, 0, len(rows))
	for _, row := range rows {
		cfg := ads.ParseTargeting(row.Targeting)
		out = append(out, AdsetReport{
			AdsetID:     row.AdsetID,
			AdsetName:   row.AdsetName,
			Spend:       float64(row.Spend),
			Impressions: int64(row.Impressions),
			Clicks:      int64(row.Clicks),
			Purchases:   int64(row.Purchases),
			ROAS:        float64(row.ROAS),
			CTR:         formula.CTR(int64(row.Clicks), int64(row.Impressions)),
			CVR:         formula.CVR(int64(row.Purchases), int64(row.Clicks)),
			CPA:         formula.CPA(float64(row.Spend), int64(row.Purchases)),
			Targeting:   cfg,
			Assessment:  ads.Assess(cfg),
		})
	}
	return out, nil
}

// ReplaceWeeklyAdsets swaps out the stored ad-set rows for one week.
func (s *AdService) ReplaceWeeklyAdsets(ctx context.Context, weekStart string, rows []models.AdsetRow) error {
	if err := s.repo.ReplaceAdsets(ctx, weekStart, rows); err != nil {
		s.metrics.RecordStorageError("replace_adsets")
		return fmt.Errorf("replacing adsets for week %s: %w", weekStart, err)
	}
	s.logger.Info("adsets replaced",
		zap.String("week_start", weekStart),
		zap.Int("rows", len(rows)),
	)
	return nil
}
