package domain

// Band is an inclusive preferred range on a 1-10 numeric tone attribute.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the band.
func (b *Band) Contains(v float64) bool {
	return b != nil && v >= b.Min && v <= b.Max
}

// BrandSynthesis is the document produced by the (out-of-scope) preference
// elicitation dialogue. Most fields are optional; conversion applies
// documented defaults.
type BrandSynthesis struct {
	BrandID          string `json:"brand_id"`
	Name             string `json:"name,omitempty"`
	NarrativeSummary string `json:"narrative_summary,omitempty"`

	TargetAgeCode string   `json:"target_age_code,omitempty"`
	TargetIncome  string   `json:"target_income,omitempty"`
	LifestyleTags []string `json:"lifestyle_tags,omitempty"`
	Occasions     []string `json:"occasions,omitempty"`
	Vibes         []string `json:"vibes,omitempty"`

	TeamSize string `json:"team_size,omitempty"`
	MaxSkill string `json:"max_skill,omitempty"`
	MaxTime  string `json:"max_time,omitempty"`

	AvailableSettings       []string `json:"available_settings,omitempty"`
	SpaceAvailable          string   `json:"space_available,omitempty"`
	AllowFeaturingCustomers *bool    `json:"allow_featuring_customers,omitempty"`
	Equipment               []string `json:"equipment,omitempty"`

	HumorLevel      string   `json:"humor_level,omitempty"`
	EnergyBand      *Band    `json:"energy_band,omitempty"`
	FormalityBand   *Band    `json:"formality_band,omitempty"`
	WarmthBand      *Band    `json:"warmth_band,omitempty"`
	ToneDescriptors []string `json:"tone_descriptors,omitempty"`

	MaxContentEdge string `json:"max_content_edge,omitempty"`
	MaxHumorRisk   string `json:"max_humor_risk,omitempty"`

	CurrentQualityTier string `json:"current_quality_tier,omitempty"`
	Ambition           string `json:"ambition,omitempty"`

	ContentEmbedding []float64 `json:"content_embedding,omitempty"`
}

type TargetAudience struct {
	AgeCode       string   `json:"age_code"`
	Income        string   `json:"income"`
	LifestyleTags []string `json:"lifestyle_tags,omitempty"`
	Occasions     []string `json:"occasions,omitempty"`
	Vibes         []string `json:"vibes,omitempty"`
}

type OperationalConstraints struct {
	TeamSize string `json:"team_size"`
	MaxSkill string `json:"max_skill"`
	MaxTime  string `json:"max_time"`
}

type EnvironmentAvailability struct {
	Settings                []string `json:"settings"`
	Space                   string   `json:"space"`
	AllowFeaturingCustomers bool     `json:"allow_featuring_customers"`
	Equipment               []string `json:"equipment"`
}

type TonePreferences struct {
	HumorLevel  string   `json:"humor_level"`
	Energy      *Band    `json:"energy,omitempty"`
	Formality   *Band    `json:"formality,omitempty"`
	Warmth      *Band    `json:"warmth,omitempty"`
	Descriptors []string `json:"descriptors,omitempty"`
}

type RiskTolerance struct {
	MaxContentEdge string `json:"max_content_edge"`
	MaxHumorRisk   string `json:"max_humor_risk"`
}

type AmbitionLevel struct {
	CurrentTier string `json:"current_tier"`
	Aspiration  string `json:"aspiration"`
}

// BrandFingerprint is the "what is wanted" shape: preferences and constraints
// projected from a synthesis document plus defaults.
type BrandFingerprint struct {
	BrandID string `json:"brand_id"`
	Name    string `json:"name,omitempty"`

	Audience    TargetAudience          `json:"audience"`
	Constraints OperationalConstraints  `json:"constraints"`
	Environment EnvironmentAvailability `json:"environment"`
	Tone        TonePreferences         `json:"tone"`
	Risk        RiskTolerance           `json:"risk"`
	Ambition    AmbitionLevel           `json:"ambition"`

	Embedding  []float64 `json:"embedding,omitempty"`
	Confidence float64   `json:"confidence"`
}
