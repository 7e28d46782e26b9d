package ads

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brightloop/pulseboard/internal/formula"
	"github.com/brightloop/pulseboard/internal/models"
)

// baseScore is the neutral starting point for a targeting configuration;
// each rule adjusts it independently and the result is clamped to [0,10].
const baseScore = 5.0

// ParseTargeting decodes a raw targeting JSON blob.  Empty, null or
// unparseable payloads return nil; Assess treats nil as "no targeting
// data" rather than an error.
func ParseTargeting(raw json.RawMessage) *models.TargetingConfig {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	var cfg models.TargetingConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil
	}
	return &cfg
}

// Assess scores one ad-set's audience configuration.  Each rule reads
// only the raw input and contributes an independent delta, so evaluation
// order does not affect the score; the fixed order below only makes the
// message lists deterministic.
func Assess(cfg *models.TargetingConfig) models.TargetingAssessment {
	var a models.TargetingAssessment
	if cfg == nil {
		a.Weaknesses = append(a.Weaknesses, "no targeting data")
		a.Suggestions = append(a.Suggestions, "configure audience targeting for this ad set")
		return a
	}

	score := baseScore

	// Age range
	age := strings.TrimSpace(cfg.AgeRange)
	switch {
	case age == "18+" || age == "18-65+" || strings.Contains(age, "65+"):
		score -= 1
		a.AgeAssessment = fmt.Sprintf("age range %s is effectively unrestricted", age)
		a.Weaknesses = append(a.Weaknesses, "age range covers nearly the entire adult population")
		a.Suggestions = append(a.Suggestions, "narrow the age range to the segments that actually purchase")
	case age != "":
		score += 0.5
		a.AgeAssessment = fmt.Sprintf("age range %s is deliberately scoped", age)
		a.Strengths = append(a.Strengths, fmt.Sprintf("age range narrowed to %s", age))
	}

	// Gender
	if restrictsGender(cfg.Genders) {
		score += 0.5
		a.GenderAssessment = "delivery restricted by gender"
		a.Strengths = append(a.Strengths, "gender targeting: "+strings.Join(cfg.Genders, ", "))
	} else {
		a.GenderAssessment = "no gender restriction"
	}

	// Interests
	switch n := len(cfg.Interests); {
	case n == 0:
		score -= 1
		a.InterestAssessment = "no interest targeting configured"
		a.Weaknesses = append(a.Weaknesses, "no interests selected")
		a.Suggestions = append(a.Suggestions, "add interest targeting to sharpen the audience")
	case n < 5:
		a.InterestAssessment = fmt.Sprintf("%d interests configured", n)
		a.Weaknesses = append(a.Weaknesses, "too few interests to segment the audience meaningfully")
	case n < 10:
		score += 0.5
		a.InterestAssessment = fmt.Sprintf("%d interests configured", n)
	default:
		score += 1
		a.InterestAssessment = fmt.Sprintf("%d interests configured", n)
		a.Strengths = append(a.Strengths, "broad interest coverage: "+strings.Join(cfg.Interests[:5], ", ")+", ...")
	}

	// Custom audiences
	if len(cfg.CustomAudiences) > 0 {
		score += 1
		a.AudienceAssessment = fmt.Sprintf("%d custom audiences attached", len(cfg.CustomAudiences))
		a.Strengths = append(a.Strengths, fmt.Sprintf("uses %d custom audiences", len(cfg.CustomAudiences)))
	} else {
		a.AudienceAssessment = "no custom audiences"
		a.Suggestions = append(a.Suggestions, "create a lookalike or retargeting audience from existing customers")
	}

	// Locations are informational only.
	if len(cfg.Locations) > 0 {
		a.Strengths = append(a.Strengths, "geo targeting: "+strings.Join(cfg.Locations, ", "))
	}

	a.Score = formula.Round1(formula.Clamp(score, 0, 10))
	return a
}

// restrictsGender reports whether the gender list actually narrows
// delivery.  An empty list or the unrestricted marker means it does not.
func restrictsGender(genders []string) bool {
	if len(genders) == 0 {
		return false
	}
	for _, g := range genders {
		if !strings.EqualFold(strings.TrimSpace(g), models.GenderUnrestricted) {
			return true
		}
	}
	return false
}
