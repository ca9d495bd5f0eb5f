package match

import (
	"fmt"
	"strings"

	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/util"
)

// Component names and weights. Weights are fixed and sum to 1.
const (
	ComponentAudience   = "audience"
	ComponentTone       = "tone"
	ComponentFormat     = "format"
	ComponentAspiration = "aspiration"

	audienceWeight   = 0.35
	toneWeight       = 0.30
	formatWeight     = 0.20
	aspirationWeight = 0.15

	// adjacentCredit is the partial score for a one-step ordinal mismatch or
	// a broad wildcard on either side; unknownCredit applies when either side
	// carries no value at all.
	adjacentCredit = 0.6
	unknownCredit  = 0.5
)

// Audience sub-weights.
const (
	ageSubWeight       = 0.30
	incomeSubWeight    = 0.20
	lifestyleSubWeight = 0.25
	occasionSubWeight  = 0.15
	vibeSubWeight      = 0.10
)

// Tone sub-weights.
const (
	humorSubWeight     = 0.35
	energySubWeight    = 0.25
	formalitySubWeight = 0.20
	warmthSubWeight    = 0.20
)

// numericFalloff is the distance (on the 1-10 scale) over which a value
// outside the preferred band decays linearly to zero credit.
const numericFalloff = 3.0

// intentOccasionFit maps a video's intent to the brand occasions it serves.
var intentOccasionFit = map[string][]string{
	"entertain": {"casual_dining", "bar", "brunch", "late_night"},
	"educate":   {"casual_dining", "coffee", "date_night"},
	"inspire":   {"date_night", "special_occasion", "brunch"},
	"promote":   {"casual_dining", "bar", "special_occasion", "late_night"},
}

// Score runs the four weighted components. Callers must only invoke it after
// hard filters pass.
func Score(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) ([]domain.SoftScoreComponent, float64) {
	components := []domain.SoftScoreComponent{
		scoreAudience(video, brand),
		scoreTone(video, brand),
		scoreFormat(video, brand),
		scoreAspiration(video, brand),
	}

	overall := 0.0
	for i := range components {
		components[i].Weighted = components[i].Score * components[i].Weight
		overall += components[i].Weighted
	}

	return components, util.Clamp(overall, 0, 1)
}

func scoreAudience(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.SoftScoreComponent {
	age := ordinalAffinity(domain.AgeCodeScale, video.Audience.AgeCode, brand.Audience.AgeCode)
	income := ordinalAffinity(domain.IncomeScale, video.Audience.PriceTier, brand.Audience.Income)
	lifestyle := overlapAffinity(video.Audience.LifestyleTags, brand.Audience.LifestyleTags)
	occasion := overlapAffinity(video.Audience.Occasions, brand.Audience.Occasions)
	vibe := overlapAffinity(video.Audience.Vibes, brand.Audience.Vibes)

	score := age*ageSubWeight + income*incomeSubWeight + lifestyle*lifestyleSubWeight +
		occasion*occasionSubWeight + vibe*vibeSubWeight

	var strong []string
	if age >= 1 {
		strong = append(strong, "age")
	}
	if lifestyle >= adjacentCredit {
		strong = append(strong, "lifestyle")
	}
	if occasion >= adjacentCredit {
		strong = append(strong, "occasions")
	}

	detail := "limited audience overlap"
	if len(strong) > 0 {
		detail = "aligned on " + strings.Join(strong, ", ")
	}

	return domain.SoftScoreComponent{
		Name:   ComponentAudience,
		Weight: audienceWeight,
		Score:  util.Clamp(score, 0, 1),
		Detail: detail,
	}
}

// ordinalAffinity: exact match scores 1, adjacent tiers or a broad wildcard
// on either side score partial credit, unknown on either side scores half.
func ordinalAffinity(scale []string, a, b string) float64 {
	if a == "" || b == "" {
		return unknownCredit
	}
	if a == b {
		return 1
	}
	if a == domain.Broad || b == domain.Broad {
		return adjacentCredit
	}
	if domain.OrdinalAdjacent(scale, a, b) {
		return adjacentCredit
	}
	return 0
}

// overlapAffinity scores two tag sets by the fraction of brand tags the video
// covers. Either side empty means unknown.
func overlapAffinity(videoTags, brandTags []string) float64 {
	if len(videoTags) == 0 || len(brandTags) == 0 {
		return unknownCredit
	}

	shared := 0
	for _, tag := range brandTags {
		if util.Contains(videoTags, tag) {
			shared++
		}
	}

	return float64(shared) / float64(len(brandTags))
}

func scoreTone(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.SoftScoreComponent {
	humor := humorAffinity(brand.Tone.HumorLevel, video.Tone.HumorPresent)
	energy := bandAffinity(video.Tone.Energy, brand.Tone.Energy)
	formality := bandAffinity(video.Tone.Formality, brand.Tone.Formality)
	warmth := bandAffinity(video.Tone.Warmth, brand.Tone.Warmth)

	score := humor*humorSubWeight + energy*energySubWeight +
		formality*formalitySubWeight + warmth*warmthSubWeight

	detail := "tone partially compatible"
	if score >= 0.75 {
		detail = "tone closely matches brand preferences"
	} else if score < 0.4 {
		detail = "tone diverges from brand preferences"
	}

	return domain.SoftScoreComponent{
		Name:   ComponentTone,
		Weight: toneWeight,
		Score:  util.Clamp(score, 0, 1),
		Detail: detail,
	}
}

// humorAffinity scores humor presence against the brand's stated level. A
// "none" preference penalizes humor without zeroing it out.
func humorAffinity(level string, present bool) float64 {
	switch level {
	case "none":
		if present {
			return 0.3
		}
		return 1.0
	case "high":
		if present {
			return 1.0
		}
		return 0.2
	case "":
		return unknownCredit
	default: // moderate and anything coarser
		if present {
			return 0.9
		}
		return 0.5
	}
}

// bandAffinity scores a numeric tone value against the brand's preferred
// band: full credit inside, linear falloff outside, half credit when either
// side is unknown.
func bandAffinity(value *float64, band *domain.Band) float64 {
	if value == nil || band == nil {
		return unknownCredit
	}
	if band.Contains(*value) {
		return 1
	}

	distance := band.Min - *value
	if *value > band.Max {
		distance = *value - band.Max
	}

	return util.Clamp(1-distance/numericFalloff, 0, 1)
}

func scoreFormat(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.SoftScoreComponent {
	score := intentFit(video.Intent, brand.Audience.Occasions)

	var perks []string
	if video.HasRepeatableFormat {
		score += 0.25
		perks = append(perks, "repeatable format")
	}
	if util.Contains(video.CTATypes, "visit") {
		score += 0.15
		perks = append(perks, "visit-driving call to action")
	}

	detail := fmt.Sprintf("intent %q against brand occasions", video.Intent)
	if len(perks) > 0 {
		detail += "; " + strings.Join(perks, ", ")
	}

	return domain.SoftScoreComponent{
		Name:   ComponentFormat,
		Weight: formatWeight,
		Score:  util.Clamp(score, 0, 1),
		Detail: detail,
	}
}

func intentFit(intent string, occasions []string) float64 {
	if intent == "" || len(occasions) == 0 {
		return unknownCredit
	}

	fits, ok := intentOccasionFit[intent]
	if !ok {
		return unknownCredit
	}

	for _, occasion := range occasions {
		if util.Contains(fits, occasion) {
			return 0.6
		}
	}
	return 0.3
}

func scoreAspiration(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.SoftScoreComponent {
	score := aspirationAffinity(brand.Ambition.Aspiration, brand.Ambition.CurrentTier, video.QualityTier)

	detail := fmt.Sprintf("%s-tier video against %s brand aspiring to %s",
		video.QualityTier, brand.Ambition.CurrentTier, brand.Ambition.Aspiration)

	return domain.SoftScoreComponent{
		Name:   ComponentAspiration,
		Weight: aspirationWeight,
		Score:  score,
		Detail: detail,
	}
}

// aspirationAffinity compares the video's quality tier against the brand's
// current tier and ambition. Under level_up, exactly one tier above current
// is the maximum: upward mismatch is rewarded, equal-tier is not.
func aspirationAffinity(aspiration, currentTier, videoTier string) float64 {
	ci := domain.OrdinalIndex(domain.QualityTierScale, currentTier)
	vi := domain.OrdinalIndex(domain.QualityTierScale, videoTier)
	if ci < 0 || vi < 0 {
		return unknownCredit
	}

	delta := vi - ci

	switch aspiration {
	case "level_up":
		switch {
		case delta == 1:
			return 1.0
		case delta > 1:
			return 0.5
		case delta == 0:
			return 0.4
		default:
			return 0.2
		}
	case "transform":
		switch {
		case delta >= 2:
			return 1.0
		case delta == 1:
			return 0.7
		case delta == 0:
			return 0.3
		default:
			return 0.1
		}
	default: // maintain
		switch {
		case delta == 0:
			return 1.0
		case delta == 1:
			return 0.7
		case delta == -1:
			return 0.5
		default:
			return 0.2
		}
	}
}
