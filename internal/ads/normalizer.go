// Package ads normalizes raw ad-creative rows into canonical per-ad
// metrics and scores ad-set audience-targeting configurations.
package ads

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/brightloop/pulseboard/internal/formula"
	"github.com/brightloop/pulseboard/internal/models"
)

// originalAdTag marks a row as a carousel variant of a canonical ad.
const originalAdTag = "original_ad_id:"

// carouselSuffix matches the trailing "[n/m]" card index Meta appends to
// carousel variant names.
var carouselSuffix = regexp.MustCompile(`\s*\[\d+/\d+\]\s*$`)

// adMetricsPayload is the JSON metrics blob stored on a raw row.  All
// fields decode tolerantly; a row whose blob cannot be parsed at all is
// treated as all zeros.
type adMetricsPayload struct {
	Spend       formula.Float `json:"spend"`
	Impressions formula.Count `json:"impressions"`
	Clicks      formula.Count `json:"clicks"`
	Purchases   formula.Count `json:"purchases"`
	ConvValue   formula.Float `json:"conversion_value"`
	ROAS        formula.Float `json:"roas"`
}

// CanonicalAdID resolves the identity a row's metrics belong to: the
// original_ad_id tag when present, else the row's ad id, else the row id.
func CanonicalAdID(row models.RawAdRow) string {
	for _, tag := range row.Tags {
		if strings.HasPrefix(tag, originalAdTag) {
			if id := strings.TrimSpace(strings.TrimPrefix(tag, originalAdTag)); id != "" {
				return id
			}
		}
	}
	if row.AdID != "" {
		return row.AdID
	}
	return row.ID
}

// CleanAdName strips the trailing carousel-index suffix from a display
// name, so "Summer Sale [2/5]" and "Summer Sale [3/5]" render identically.
func CleanAdName(name string) string {
	return strings.TrimSpace(carouselSuffix.ReplaceAllString(name, ""))
}

// Normalize deduplicates raw rows by canonical ad id and computes the
// standard derived ratios for each surviving row.  When several rows map
// to the same canonical id only the first encountered row's metrics are
// kept; carousel variants of one ad report identical performance, so
// later duplicates are discarded without merging.  The number of
// discarded rows is returned so callers can surface silent data loss if
// variants ever diverge.
func Normalize(rows []models.RawAdRow) (map[string]models.AdMetrics, int) {
	out := make(map[string]models.AdMetrics, len(rows))
	discarded := 0

	for _, row := range rows {
		id := CanonicalAdID(row)
		if _, seen := out[id]; seen {
			discarded++
			continue
		}

		var p adMetricsPayload
		if len(row.Metrics) > 0 {
			// A malformed blob leaves p zeroed; the row still gets an entry.
			_ = json.Unmarshal(row.Metrics, &p)
		}

		spend := float64(p.Spend)
		out[id] = models.AdMetrics{
			AdID:         id,
			AdName:       CleanAdName(row.AdName),
			CampaignName: row.CampaignName,
			Spend:        spend,
			Impressions:  int64(p.Impressions),
			Clicks:       int64(p.Clicks),
			Purchases:    int64(p.Purchases),
			ConvValue:    float64(p.ConvValue),
			ROAS:         formula.ROAS(float64(p.ROAS), float64(p.ConvValue), spend),
			CTR:          formula.CTR(int64(p.Clicks), int64(p.Impressions)),
			CVR:          formula.CVR(int64(p.Purchases), int64(p.Clicks)),
			CPA:          formula.CPA(spend, int64(p.Purchases)),
		}
	}

	return out, discarded
}
