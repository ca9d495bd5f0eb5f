package domain

// SchemaVersion identifies the shape of the raw observation a signal record
// was extracted from. New observer releases add versions; old records are
// never rewritten.
const (
	SchemaV1 = "v1" // nested analysis payload (legacy)
	SchemaV2 = "v2" // flattened direct columns
)

// VideoSignals is the canonical per-video signal record. Every field is
// optional: absent values stay nil or empty, never zero-filled. Numeric
// bounds are enforced at extraction time, not here.
type VideoSignals struct {
	SchemaVersion string `json:"schema_version"`

	// Execution quality, all in [0,1]
	Coherence        *float64 `json:"coherence,omitempty"`
	Distinctiveness  *float64 `json:"distinctiveness,omitempty"`
	MessageAlignment *float64 `json:"message_alignment,omitempty"`

	// Observer confidence in its own analysis, [1,10]
	Confidence *float64 `json:"confidence,omitempty"`

	// Tone, all in [1,10]
	Energy          *float64 `json:"energy,omitempty"`
	Warmth          *float64 `json:"warmth,omitempty"`
	Formality       *float64 `json:"formality,omitempty"`
	SelfSeriousness *float64 `json:"self_seriousness,omitempty"`

	// Production, [0,1]
	AudioQuality    *float64 `json:"audio_quality,omitempty"`
	LightingQuality *float64 `json:"lighting_quality,omitempty"`

	// Single-valued categoricals
	ContentFormat        string `json:"content_format,omitempty"`
	Intent               string `json:"intent,omitempty"`
	AgeCode              string `json:"age_code,omitempty"`
	Accessibility        string `json:"accessibility,omitempty"`
	PriceTier            string `json:"price_tier,omitempty"`
	ActorCount           string `json:"actor_count,omitempty"`
	SetupComplexity      string `json:"setup_complexity,omitempty"`
	SkillRequired        string `json:"skill_required,omitempty"`
	TimeRequired         string `json:"time_required,omitempty"`
	RequiredSetting      string `json:"required_setting,omitempty"`
	SpaceRequired        string `json:"space_required,omitempty"`
	ContentEdge          string `json:"content_edge,omitempty"`
	HumorRisk            string `json:"humor_risk,omitempty"`
	ControversyPotential string `json:"controversy_potential,omitempty"`

	// Multi-valued
	HumorTypes    []string `json:"humor_types,omitempty"`
	Vibes         []string `json:"vibes,omitempty"`
	Occasions     []string `json:"occasions,omitempty"`
	CTATypes      []string `json:"cta_types,omitempty"`
	LifestyleTags []string `json:"lifestyle_tags,omitempty"`
	Equipment     []string `json:"equipment,omitempty"`

	// Free text
	Subtext      []string `json:"subtext,omitempty"`
	Traits       []string `json:"traits,omitempty"`
	ServiceEthos []string `json:"service_ethos,omitempty"`

	// Flags
	HasRepeatableFormat *bool `json:"has_repeatable_format,omitempty"`
	FeaturesCustomers   *bool `json:"features_customers,omitempty"`
}

// MergeFrom fills each absent field of s from other, field by field. Whole
// records are never replaced wholesale: a newer direct-column record keeps
// its own values and only borrows what it lacks from older payload shapes.
func (s *VideoSignals) MergeFrom(other *VideoSignals) {
	if other == nil {
		return
	}

	mergeFloat := func(dst **float64, src *float64) {
		if *dst == nil && src != nil {
			v := *src
			*dst = &v
		}
	}
	mergeString := func(dst *string, src string) {
		if *dst == "" && src != "" {
			*dst = src
		}
	}
	mergeSlice := func(dst *[]string, src []string) {
		if len(*dst) == 0 && len(src) > 0 {
			*dst = append([]string(nil), src...)
		}
	}
	mergeBool := func(dst **bool, src *bool) {
		if *dst == nil && src != nil {
			v := *src
			*dst = &v
		}
	}

	mergeFloat(&s.Coherence, other.Coherence)
	mergeFloat(&s.Distinctiveness, other.Distinctiveness)
	mergeFloat(&s.MessageAlignment, other.MessageAlignment)
	mergeFloat(&s.Confidence, other.Confidence)
	mergeFloat(&s.Energy, other.Energy)
	mergeFloat(&s.Warmth, other.Warmth)
	mergeFloat(&s.Formality, other.Formality)
	mergeFloat(&s.SelfSeriousness, other.SelfSeriousness)
	mergeFloat(&s.AudioQuality, other.AudioQuality)
	mergeFloat(&s.LightingQuality, other.LightingQuality)

	mergeString(&s.ContentFormat, other.ContentFormat)
	mergeString(&s.Intent, other.Intent)
	mergeString(&s.AgeCode, other.AgeCode)
	mergeString(&s.Accessibility, other.Accessibility)
	mergeString(&s.PriceTier, other.PriceTier)
	mergeString(&s.ActorCount, other.ActorCount)
	mergeString(&s.SetupComplexity, other.SetupComplexity)
	mergeString(&s.SkillRequired, other.SkillRequired)
	mergeString(&s.TimeRequired, other.TimeRequired)
	mergeString(&s.RequiredSetting, other.RequiredSetting)
	mergeString(&s.SpaceRequired, other.SpaceRequired)
	mergeString(&s.ContentEdge, other.ContentEdge)
	mergeString(&s.HumorRisk, other.HumorRisk)
	mergeString(&s.ControversyPotential, other.ControversyPotential)

	mergeSlice(&s.HumorTypes, other.HumorTypes)
	mergeSlice(&s.Vibes, other.Vibes)
	mergeSlice(&s.Occasions, other.Occasions)
	mergeSlice(&s.CTATypes, other.CTATypes)
	mergeSlice(&s.LifestyleTags, other.LifestyleTags)
	mergeSlice(&s.Equipment, other.Equipment)
	mergeSlice(&s.Subtext, other.Subtext)
	mergeSlice(&s.Traits, other.Traits)
	mergeSlice(&s.ServiceEthos, other.ServiceEthos)

	mergeBool(&s.HasRepeatableFormat, other.HasRepeatableFormat)
	mergeBool(&s.FeaturesCustomers, other.FeaturesCustomers)
}

// IsEmpty reports whether no signal was populated at all.
func (s *VideoSignals) IsEmpty() bool {
	if s == nil {
		return true
	}
	return !hasAnySignal(s)
}

func hasAnySignal(s *VideoSignals) bool {
	if s.Coherence != nil || s.Distinctiveness != nil || s.MessageAlignment != nil ||
		s.Confidence != nil || s.Energy != nil || s.Warmth != nil ||
		s.Formality != nil || s.SelfSeriousness != nil ||
		s.AudioQuality != nil || s.LightingQuality != nil {
		return true
	}
	if s.ContentFormat != "" || s.Intent != "" || s.AgeCode != "" ||
		s.Accessibility != "" || s.PriceTier != "" || s.ActorCount != "" ||
		s.SetupComplexity != "" || s.SkillRequired != "" || s.TimeRequired != "" ||
		s.RequiredSetting != "" || s.SpaceRequired != "" || s.ContentEdge != "" ||
		s.HumorRisk != "" || s.ControversyPotential != "" {
		return true
	}
	if len(s.HumorTypes) > 0 || len(s.Vibes) > 0 || len(s.Occasions) > 0 ||
		len(s.CTATypes) > 0 || len(s.LifestyleTags) > 0 || len(s.Equipment) > 0 ||
		len(s.Subtext) > 0 || len(s.Traits) > 0 || len(s.ServiceEthos) > 0 {
		return true
	}
	return s.HasRepeatableFormat != nil || s.FeaturesCustomers != nil
}
