package models

import (
	"encoding/json"

	"github.com/brightloop/pulseboard/internal/formula"
)

// GenderUnrestricted is the marker value meaning an ad set delivers to
// all genders.
const GenderUnrestricted = "all"

// RawAdRow is one ad-creative row exactly as ingested.  Carousel
// variants of the same ad arrive as separate rows carrying an
// "original_ad_id:<id>" tag; the normalizer collapses them.
type RawAdRow struct {
	ID           string          `json:"id"`
	AdID         string          `json:"ad_id"`
	AdName       string          `json:"ad_name"`
	CampaignName string          `json:"campaign_name"`
	Tags         []string        `json:"tags,omitempty"`
	WeekStart    string          `json:"week_start,omitempty"`
	Metrics      json.RawMessage `json:"metrics,omitempty"`
}

// AdMetrics is the canonical per-ad record after deduplication, with
// the standard derived ratios attached.  CTR and CVR are percentages.
type AdMetrics struct {
	AdID         string  `json:"ad_id"`
	AdName       string  `json:"ad_name"`
	CampaignName string  `json:"campaign_name"`
	Spend        float64 `json:"spend"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	Purchases    int64   `json:"purchases"`
	ConvValue    float64 `json:"conversion_value"`
	ROAS         float64 `json:"roas"`
	CTR          float64 `json:"ctr"`
	CVR          float64 `json:"cvr"`
	CPA          float64 `json:"cpa"`
}

// AdsetRow is one ad set's stored weekly counters plus its raw
// targeting configuration blob.
type AdsetRow struct {
	ID          string          `json:"id"`
	AdsetID     string          `json:"adset_id"`
	AdsetName   string          `json:"adset_name"`
	Spend       formula.Float   `json:"spend"`
	Impressions formula.Count   `json:"impressions"`
	Clicks      formula.Count   `json:"clicks"`
	Purchases   formula.Count   `json:"purchases"`
	ROAS        formula.Float   `json:"roas"`
	WeekStart   string          `json:"week_start,omitempty"`
	Targeting   json.RawMessage `json:"targeting,omitempty"`
}

// TargetingConfig is the decoded audience configuration of an ad set.
type TargetingConfig struct {
	AgeRange          string   `json:"age_range"`
	Genders           []string `json:"genders,omitempty"`
	Locations         []string `json:"locations,omitempty"`
	Interests         []string `json:"interests,omitempty"`
	CustomAudiences   []string `json:"custom_audiences,omitempty"`
	ExcludedAudiences []string `json:"excluded_audiences,omitempty"`
}

// TargetingAssessment is the scored review of one targeting
// configuration.  Score is on a 0..10 scale with one decimal.
type TargetingAssessment struct {
	Score float64 `json:"score"`

	AgeAssessment      string `json:"age_assessment,omitempty"`
	GenderAssessment   string `json:"gender_assessment,omitempty"`
	InterestAssessment string `json:"interest_assessment,omitempty"`
	AudienceAssessment string `json:"audience_assessment,omitempty"`

	Strengths   []string `json:"strengths,omitempty"`
	Weaknesses  []string `json:"weaknesses,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
