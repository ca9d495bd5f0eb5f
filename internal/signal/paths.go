package signal

import "github.com/partie/brandmatch-go/internal/domain"

type fieldKind int

const (
	kindFloat fieldKind = iota
	kindString
	kindStringList
	kindBool
)

// fieldSpec is one row of the canonical-signal table. Paths are ordered
// candidates across schema shapes: the first one yielding a typed, in-range
// value wins. New observer versions add paths, not new types.
type fieldSpec struct {
	key      string
	kind     fieldKind
	min, max float64  // bounds, kindFloat only
	scale    []string // accepted values, ordinal kindString only
	paths    []string
	versions []string // schema versions whose coverage expects this key
	assign   func(*domain.VideoSignals, any)
}

var allVersions = []string{domain.SchemaV1, domain.SchemaV2}

// fieldTable is the complete canonical-signal path table. v2 names are the
// flattened current columns; analysis.* paths are the v1 nested payload;
// trailing variants cover historical field renames.
var fieldTable = []fieldSpec{
	// Execution quality, [0,1]
	{
		key: "coherence", kind: kindFloat, min: 0, max: 1,
		paths:    []string{"coherence", "analysis.quality.coherence", "analysis.coherence_score"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.Coherence = &f },
	},
	{
		key: "distinctiveness", kind: kindFloat, min: 0, max: 1,
		paths:    []string{"distinctiveness", "analysis.quality.distinctiveness", "analysis.uniqueness"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.Distinctiveness = &f },
	},
	{
		key: "message_alignment", kind: kindFloat, min: 0, max: 1,
		paths:    []string{"message_alignment", "analysis.quality.message_alignment", "analysis.quality.alignment"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.MessageAlignment = &f },
	},
	{
		key: "confidence", kind: kindFloat, min: 1, max: 10,
		paths:    []string{"confidence", "analysis.confidence", "analysis.meta.confidence"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.Confidence = &f },
	},

	// Tone, [1,10]
	{
		key: "energy", kind: kindFloat, min: 1, max: 10,
		paths:    []string{"energy", "analysis.tone.energy", "analysis.tone.energy_level"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.Energy = &f },
	},
	{
		key: "warmth", kind: kindFloat, min: 1, max: 10,
		paths:    []string{"warmth", "analysis.tone.warmth"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.Warmth = &f },
	},
	{
		key: "formality", kind: kindFloat, min: 1, max: 10,
		paths:    []string{"formality", "analysis.tone.formality"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.Formality = &f },
	},
	{
		key: "self_seriousness", kind: kindFloat, min: 1, max: 10,
		paths:    []string{"self_seriousness", "analysis.tone.self_seriousness", "analysis.tone.seriousness"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.SelfSeriousness = &f },
	},

	// Production, [0,1]
	{
		key: "audio_quality", kind: kindFloat, min: 0, max: 1,
		paths:    []string{"audio_quality", "analysis.production.audio_quality", "analysis.production.audio"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.AudioQuality = &f },
	},
	{
		key: "lighting_quality", kind: kindFloat, min: 0, max: 1,
		paths:    []string{"lighting_quality", "analysis.production.lighting_quality", "analysis.production.lighting"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { f := v.(float64); s.LightingQuality = &f },
	},

	// Categoricals
	{
		key: "content_format", kind: kindString,
		paths:    []string{"content_format", "analysis.content.format", "analysis.format"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.ContentFormat = v.(string) },
	},
	{
		key: "intent", kind: kindString,
		paths:    []string{"intent", "analysis.content.intent", "analysis.purpose"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.Intent = v.(string) },
	},
	{
		key: "age_code", kind: kindString,
		paths:    []string{"age_code", "analysis.audience.age_code", "analysis.audience.age_range"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.AgeCode = v.(string) },
	},
	{
		key: "accessibility", kind: kindString,
		paths:    []string{"accessibility", "analysis.audience.accessibility"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.Accessibility = v.(string) },
	},
	{
		key: "price_tier", kind: kindString, scale: domain.IncomeScale,
		paths:    []string{"price_tier", "analysis.audience.price_tier", "analysis.audience.price_point"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.PriceTier = v.(string) },
	},
	{
		key: "actor_count", kind: kindString, scale: domain.ActorCountScale,
		paths:    []string{"actor_count", "analysis.replication.actor_count", "analysis.replication.people_required"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.ActorCount = v.(string) },
	},
	{
		key: "setup_complexity", kind: kindString, scale: domain.SetupComplexityScale,
		paths:    []string{"setup_complexity", "analysis.replication.setup_complexity", "analysis.replication.setup"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.SetupComplexity = v.(string) },
	},
	{
		key: "skill_required", kind: kindString, scale: domain.SkillScale,
		paths:    []string{"skill_required", "analysis.replication.skill_required", "analysis.replication.skill"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.SkillRequired = v.(string) },
	},
	{
		key: "time_required", kind: kindString, scale: domain.TimeScale,
		paths:    []string{"time_required", "analysis.replication.time_required", "analysis.replication.time_estimate"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.TimeRequired = v.(string) },
	},
	{
		key: "required_setting", kind: kindString,
		paths:    []string{"required_setting", "analysis.environment.required_setting", "analysis.environment.setting"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.RequiredSetting = v.(string) },
	},
	{
		key: "space_required", kind: kindString, scale: domain.SpaceScale,
		paths:    []string{"space_required", "analysis.environment.space_required", "analysis.environment.space"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.SpaceRequired = v.(string) },
	},
	{
		key: "content_edge", kind: kindString, scale: domain.ContentEdgeScale,
		paths:    []string{"content_edge", "analysis.risk.content_edge", "analysis.risk.edginess"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.ContentEdge = v.(string) },
	},
	{
		key: "humor_risk", kind: kindString, scale: domain.HumorRiskScale,
		paths:    []string{"humor_risk", "analysis.risk.humor_risk"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.HumorRisk = v.(string) },
	},
	{
		key: "controversy_potential", kind: kindString, scale: domain.ControversyScale,
		paths:    []string{"controversy_potential", "analysis.risk.controversy_potential", "analysis.risk.controversy"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.ControversyPotential = v.(string) },
	},

	// Multi-valued
	{
		key: "humor_types", kind: kindStringList,
		paths:    []string{"humor_types", "analysis.tone.humor_types", "analysis.tone.humor"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.HumorTypes = v.([]string) },
	},
	{
		key: "vibes", kind: kindStringList,
		paths:    []string{"vibes", "analysis.audience.vibes", "analysis.vibe_tags"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.Vibes = v.([]string) },
	},
	{
		key: "occasions", kind: kindStringList,
		paths:    []string{"occasions", "analysis.audience.occasions"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.Occasions = v.([]string) },
	},
	{
		key: "cta_types", kind: kindStringList,
		paths:    []string{"cta_types", "analysis.content.cta_types", "analysis.content.calls_to_action"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.CTATypes = v.([]string) },
	},
	{
		key: "lifestyle_tags", kind: kindStringList,
		paths:    []string{"lifestyle_tags", "analysis.audience.lifestyle_tags", "analysis.audience.lifestyle"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.LifestyleTags = v.([]string) },
	},
	{
		key: "equipment", kind: kindStringList,
		paths:    []string{"equipment", "analysis.replication.equipment", "analysis.replication.gear"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { s.Equipment = v.([]string) },
	},
	{
		key: "subtext", kind: kindStringList,
		paths:    []string{"subtext", "analysis.personality.subtext"},
		versions: []string{domain.SchemaV2},
		assign:   func(s *domain.VideoSignals, v any) { s.Subtext = v.([]string) },
	},
	{
		key: "traits", kind: kindStringList,
		paths:    []string{"traits", "analysis.personality.traits"},
		versions: []string{domain.SchemaV2},
		assign:   func(s *domain.VideoSignals, v any) { s.Traits = v.([]string) },
	},
	{
		key: "service_ethos", kind: kindStringList,
		paths:    []string{"service_ethos", "analysis.personality.service_ethos"},
		versions: []string{domain.SchemaV2},
		assign:   func(s *domain.VideoSignals, v any) { s.ServiceEthos = v.([]string) },
	},

	// Flags
	{
		key: "has_repeatable_format", kind: kindBool,
		paths:    []string{"has_repeatable_format", "analysis.content.has_repeatable_format", "analysis.content.repeatable"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { b := v.(bool); s.HasRepeatableFormat = &b },
	},
	{
		key: "features_customers", kind: kindBool,
		paths:    []string{"features_customers", "analysis.environment.features_customers", "analysis.environment.customers_on_camera"},
		versions: allVersions,
		assign:   func(s *domain.VideoSignals, v any) { b := v.(bool); s.FeaturesCustomers = &b },
	},
}

// versionExpects reports whether the key belongs to the given schema
// version's expectation set.
func versionExpects(spec fieldSpec, version string) bool {
	for _, v := range spec.versions {
		if v == version {
			return true
		}
	}
	return false
}

// expectedKeys counts canonical keys the given schema version should carry.
func expectedKeys(version string) int {
	count := 0
	for _, spec := range fieldTable {
		if versionExpects(spec, version) {
			count++
		}
	}
	return count
}
