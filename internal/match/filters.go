package match

import (
	"fmt"

	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/util"
)

// Filter names, in fixed evaluation order.
const (
	FilterEnvironment   = "environment"
	FilterReplicability = "replicability"
	FilterRisk          = "risk"
)

// settingCoverage maps a brand's declared setting to the specific settings it
// covers. "indoor" and "mixed" act as supersets.
var settingCoverage = map[string][]string{
	"indoor":  {"indoor", "kitchen", "dining_room", "bar", "counter", "storefront"},
	"mixed":   {"indoor", "outdoor", "kitchen", "dining_room", "bar", "counter", "storefront", "street", "patio"},
	"outdoor": {"outdoor", "street", "patio"},
}

type filterFunc func(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.HardFilterResult

// hardFilters is the ordered pipeline. Evaluation short-circuits on the
// first failure; later filters never run.
var hardFilters = []filterFunc{
	environmentFilter,
	replicabilityFilter,
	riskFilter,
}

// RunFilters evaluates the pipeline. The returned slice holds results up to
// and including the first failure.
func RunFilters(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) ([]domain.HardFilterResult, bool) {
	results := make([]domain.HardFilterResult, 0, len(hardFilters))

	for _, filter := range hardFilters {
		result := filter(video, brand)
		results = append(results, result)
		if !result.Passed {
			return results, false
		}
	}

	return results, true
}

func environmentFilter(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.HardFilterResult {
	result := domain.HardFilterResult{Name: FilterEnvironment, Passed: true}

	required := video.Environment.RequiredSetting
	if required != "" && !settingAvailable(required, brand.Environment.Settings) {
		result.Passed = false
		result.Reason = fmt.Sprintf("video requires %s setting not available to the brand", required)
		return result
	}

	// Ordinal space sufficiency: required space must not exceed available.
	if !domain.OrdinalWithin(domain.SpaceScale, video.Environment.SpaceRequired, brand.Environment.Space) {
		result.Passed = false
		result.Reason = fmt.Sprintf("video needs %s space but brand has %s",
			video.Environment.SpaceRequired, brand.Environment.Space)
		return result
	}

	if video.Environment.FeaturesCustomers && !brand.Environment.AllowFeaturingCustomers {
		result.Passed = false
		result.Reason = "video features customers on camera, which the brand disallows"
		return result
	}

	return result
}

func settingAvailable(required string, available []string) bool {
	for _, setting := range available {
		if setting == required {
			return true
		}
		if covered, ok := settingCoverage[setting]; ok && util.Contains(covered, required) {
			return true
		}
	}
	return false
}

func replicabilityFilter(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.HardFilterResult {
	result := domain.HardFilterResult{Name: FilterReplicability, Passed: true}

	if !domain.OrdinalWithin(domain.ActorCountScale, video.Replication.ActorCount, brand.Constraints.TeamSize) {
		result.Passed = false
		result.Reason = fmt.Sprintf("video needs a %s but brand can field %s",
			video.Replication.ActorCount, brand.Constraints.TeamSize)
		return result
	}

	if !domain.OrdinalWithin(domain.SkillScale, video.Replication.SkillRequired, brand.Constraints.MaxSkill) {
		result.Passed = false
		result.Reason = fmt.Sprintf("video requires %s skill beyond brand ceiling %s",
			video.Replication.SkillRequired, brand.Constraints.MaxSkill)
		return result
	}

	if !domain.OrdinalWithin(domain.TimeScale, video.Replication.TimeRequired, brand.Constraints.MaxTime) {
		result.Passed = false
		result.Reason = fmt.Sprintf("video takes %s to produce, over brand limit %s",
			video.Replication.TimeRequired, brand.Constraints.MaxTime)
		return result
	}

	if len(video.Environment.Equipment) > 0 && !equipmentAvailable(video.Environment.Equipment, brand.Environment.Equipment) {
		result.Passed = false
		result.Reason = "video requires equipment the brand does not have"
		return result
	}

	return result
}

// equipmentAvailable passes when at least one required item is a smartphone
// or present in the brand's inventory.
func equipmentAvailable(required, available []string) bool {
	for _, item := range required {
		if item == "smartphone" || util.Contains(available, item) {
			return true
		}
	}
	return false
}

func riskFilter(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) domain.HardFilterResult {
	result := domain.HardFilterResult{Name: FilterRisk, Passed: true}

	if !domain.OrdinalWithin(domain.ContentEdgeScale, video.RiskFactors.ContentEdge, brand.Risk.MaxContentEdge) {
		result.Passed = false
		result.Reason = fmt.Sprintf("content edge %s exceeds brand tolerance %s",
			video.RiskFactors.ContentEdge, brand.Risk.MaxContentEdge)
		return result
	}

	if !domain.OrdinalWithin(domain.HumorRiskScale, video.RiskFactors.HumorRisk, brand.Risk.MaxHumorRisk) {
		result.Passed = false
		result.Reason = fmt.Sprintf("humor risk %s exceeds brand tolerance %s",
			video.RiskFactors.HumorRisk, brand.Risk.MaxHumorRisk)
		return result
	}

	// Absolute ceiling: high controversy is out regardless of ordinal
	// comparisons unless the brand sits at the most permissive edge tier.
	mostPermissive := domain.ContentEdgeScale[len(domain.ContentEdgeScale)-1]
	if video.RiskFactors.ControversyPotential == "high" && brand.Risk.MaxContentEdge != mostPermissive {
		result.Passed = false
		result.Reason = "high controversy potential is rejected outright for this brand"
		return result
	}

	return result
}
