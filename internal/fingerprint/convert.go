package fingerprint

import (
	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/util"
)

// Feasibility penalties per ordinal tier. Base is 1.0; penalties subtract.
var (
	actorPenalties = map[string]float64{
		"solo":       0,
		"duo":        0.10,
		"small_team": 0.25,
		"large_team": 0.40,
	}
	setupPenalties = map[string]float64{
		"none":      0,
		"minimal":   0.05,
		"moderate":  0.20,
		"extensive": 0.35,
	}
	skillPenalties = map[string]float64{
		"none":             0,
		"basic_editing":    0.05,
		"advanced_editing": 0.20,
		"professional":     0.35,
	}
)

// Risk increments per ordinal tier, normalized by the maximum possible sum.
var (
	edgeRisk = map[string]float64{
		"squeaky_clean": 0,
		"mild":          0.15,
		"edgy":          0.35,
		"provocative":   0.60,
	}
	humorRisk = map[string]float64{
		"none":     0,
		"safe":     0.10,
		"moderate": 0.30,
		"risky":    0.55,
	}
	controversyRisk = map[string]float64{
		"low":    0,
		"medium": 0.30,
		"high":   0.60,
	}

	maxRiskSum = 0.60 + 0.55 + 0.60
)

// Quality-tier thresholds on the blended execution/distinctiveness score.
const (
	tierLowCeiling    = 0.4
	tierMediumCeiling = 0.7
)

// Brand defaults applied when a synthesis document omits a field.
const (
	defaultTeamSize    = "solo"
	defaultSkill       = "basic_editing"
	defaultTime        = "under_2hr"
	defaultSpace       = "normal"
	defaultContentEdge = "mild"
	defaultHumorRisk   = "safe"
	defaultAgeCode     = domain.Broad
	defaultIncome      = "mid"
	defaultAmbition    = "maintain"
)

// SignalsToVideoFingerprint projects canonical signals into the objective
// per-video shape. Pure: no I/O, no defaults beyond the derived scalars.
func SignalsToVideoFingerprint(videoID string, signals *domain.VideoSignals, embedding []float64) *domain.VideoFingerprint {
	fp := &domain.VideoFingerprint{
		VideoID:     videoID,
		Feasibility: 1.0,
		Embedding:   embedding,
	}

	if signals == nil {
		fp.QualityBaseline = neutralMidpoint
		fp.QualityTier = qualityTier(fp.QualityBaseline)
		return fp
	}

	fp.ContentFormat = signals.ContentFormat
	fp.Intent = signals.Intent

	fp.Feasibility = feasibilityScore(signals)
	fp.Risk = riskScore(signals)

	fp.QualityBaseline = qualityBaseline(signals)
	fp.QualityTier = qualityTier(fp.QualityBaseline)

	fp.Audience = domain.AudienceSignals{
		AgeCode:       signals.AgeCode,
		PriceTier:     signals.PriceTier,
		LifestyleTags: signals.LifestyleTags,
		Occasions:     signals.Occasions,
		Vibes:         signals.Vibes,
	}

	fp.Tone = domain.ToneProfile{
		Energy:          signals.Energy,
		Warmth:          signals.Warmth,
		Formality:       signals.Formality,
		SelfSeriousness: signals.SelfSeriousness,
		HumorTypes:      signals.HumorTypes,
		HumorPresent:    len(signals.HumorTypes) > 0,
	}

	fp.Environment = domain.EnvironmentNeeds{
		RequiredSetting:   signals.RequiredSetting,
		SpaceRequired:     signals.SpaceRequired,
		FeaturesCustomers: signals.FeaturesCustomers != nil && *signals.FeaturesCustomers,
		Equipment:         signals.Equipment,
	}

	fp.Replication = domain.ReplicationNeeds{
		ActorCount:      signals.ActorCount,
		SetupComplexity: signals.SetupComplexity,
		SkillRequired:   signals.SkillRequired,
		TimeRequired:    signals.TimeRequired,
	}

	fp.RiskFactors = domain.RiskFactors{
		ContentEdge:          signals.ContentEdge,
		HumorRisk:            signals.HumorRisk,
		ControversyPotential: signals.ControversyPotential,
	}

	fp.HasRepeatableFormat = signals.HasRepeatableFormat != nil && *signals.HasRepeatableFormat
	fp.CTATypes = signals.CTATypes

	return fp
}

// feasibilityScore starts at 1.0 and subtracts a fixed penalty per ordinal
// tier of actor count, setup complexity, and skill, clamped to [0,1].
// Unknown tiers subtract nothing.
func feasibilityScore(s *domain.VideoSignals) float64 {
	score := 1.0
	score -= actorPenalties[s.ActorCount]
	score -= setupPenalties[s.SetupComplexity]
	score -= skillPenalties[s.SkillRequired]
	return util.Clamp(score, 0, 1)
}

// riskScore sums fixed increments per risk tier and normalizes by the
// maximum possible sum.
func riskScore(s *domain.VideoSignals) float64 {
	sum := edgeRisk[s.ContentEdge] + humorRisk[s.HumorRisk] + controversyRisk[s.ControversyPotential]
	return util.Clamp(sum/maxRiskSum, 0, 1)
}

// qualityBaseline blends execution composite with distinctiveness, each
// missing term contributing the neutral midpoint.
func qualityBaseline(s *domain.VideoSignals) float64 {
	execution := executionComposite(s)
	distinctiveness := neutralMidpoint
	if s.Distinctiveness != nil {
		distinctiveness = *s.Distinctiveness
	}
	return util.Clamp(execution*0.6+distinctiveness*0.4, 0, 1)
}

func qualityTier(baseline float64) string {
	switch {
	case baseline < tierLowCeiling:
		return "low"
	case baseline < tierMediumCeiling:
		return "medium"
	default:
		return "high"
	}
}

// ComputeBrandFingerprint projects a synthesis document into the preference
// shape, filling documented defaults for absent fields. Confidence is higher
// when a narrative summary backed the synthesis.
func ComputeBrandFingerprint(doc *domain.BrandSynthesis) *domain.BrandFingerprint {
	if doc == nil {
		return nil
	}

	fp := &domain.BrandFingerprint{
		BrandID:   doc.BrandID,
		Name:      doc.Name,
		Embedding: doc.ContentEmbedding,
	}

	fp.Audience = domain.TargetAudience{
		AgeCode:       defaulted(doc.TargetAgeCode, defaultAgeCode),
		Income:        defaulted(doc.TargetIncome, defaultIncome),
		LifestyleTags: doc.LifestyleTags,
		Occasions:     doc.Occasions,
		Vibes:         doc.Vibes,
	}

	fp.Constraints = domain.OperationalConstraints{
		TeamSize: defaulted(doc.TeamSize, defaultTeamSize),
		MaxSkill: defaulted(doc.MaxSkill, defaultSkill),
		MaxTime:  defaulted(doc.MaxTime, defaultTime),
	}

	settings := doc.AvailableSettings
	if len(settings) == 0 {
		settings = []string{"indoor"}
	}
	equipment := doc.Equipment
	if len(equipment) == 0 {
		equipment = []string{"smartphone"}
	}

	fp.Environment = domain.EnvironmentAvailability{
		Settings:                settings,
		Space:                   defaulted(doc.SpaceAvailable, defaultSpace),
		AllowFeaturingCustomers: doc.AllowFeaturingCustomers == nil || *doc.AllowFeaturingCustomers,
		Equipment:               equipment,
	}

	fp.Tone = domain.TonePreferences{
		HumorLevel:  defaulted(doc.HumorLevel, inferHumorLevel(doc.ToneDescriptors)),
		Energy:      doc.EnergyBand,
		Formality:   doc.FormalityBand,
		Warmth:      doc.WarmthBand,
		Descriptors: doc.ToneDescriptors,
	}

	fp.Risk = domain.RiskTolerance{
		MaxContentEdge: defaulted(doc.MaxContentEdge, defaultContentEdge),
		MaxHumorRisk:   defaulted(doc.MaxHumorRisk, defaultHumorRisk),
	}

	fp.Ambition = domain.AmbitionLevel{
		CurrentTier: defaulted(doc.CurrentQualityTier, "medium"),
		Aspiration:  defaulted(doc.Ambition, defaultAmbition),
	}

	if doc.NarrativeSummary != "" {
		fp.Confidence = 0.7
	} else {
		fp.Confidence = 0.5
	}

	return fp
}

func defaulted(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// inferHumorLevel derives a coarse humor preference from tone descriptors
// when the synthesis carries no explicit humor level.
func inferHumorLevel(descriptors []string) string {
	for _, d := range descriptors {
		switch d {
		case "playful", "funny", "irreverent", "witty":
			return "high"
		case "serious", "formal", "refined", "elegant":
			return "none"
		}
	}
	return "moderate"
}
