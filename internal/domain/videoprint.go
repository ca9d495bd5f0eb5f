package domain

// AudienceSignals carries who a video plays to.
type AudienceSignals struct {
	AgeCode       string   `json:"age_code,omitempty"`
	PriceTier     string   `json:"price_tier,omitempty"`
	LifestyleTags []string `json:"lifestyle_tags,omitempty"`
	Occasions     []string `json:"occasions,omitempty"`
	Vibes         []string `json:"vibes,omitempty"`
}

// ToneProfile carries how a video sounds and feels.
type ToneProfile struct {
	Energy          *float64 `json:"energy,omitempty"`
	Warmth          *float64 `json:"warmth,omitempty"`
	Formality       *float64 `json:"formality,omitempty"`
	SelfSeriousness *float64 `json:"self_seriousness,omitempty"`
	HumorTypes      []string `json:"humor_types,omitempty"`
	HumorPresent    bool     `json:"humor_present"`
}

// EnvironmentNeeds are the physical requirements of reproducing a video.
type EnvironmentNeeds struct {
	RequiredSetting   string   `json:"required_setting,omitempty"`
	SpaceRequired     string   `json:"space_required,omitempty"`
	FeaturesCustomers bool     `json:"features_customers"`
	Equipment         []string `json:"equipment,omitempty"`
}

// ReplicationNeeds are the people/skill/time requirements.
type ReplicationNeeds struct {
	ActorCount      string `json:"actor_count,omitempty"`
	SetupComplexity string `json:"setup_complexity,omitempty"`
	SkillRequired   string `json:"skill_required,omitempty"`
	TimeRequired    string `json:"time_required,omitempty"`
}

// RiskFactors are the ordinal risk attributes of the content itself.
type RiskFactors struct {
	ContentEdge          string `json:"content_edge,omitempty"`
	HumorRisk            string `json:"humor_risk,omitempty"`
	ControversyPotential string `json:"controversy_potential,omitempty"`
}

// VideoFingerprint is the objective "what it is" shape of one video, derived
// from its canonical signals, never independently mutated.
type VideoFingerprint struct {
	VideoID       string `json:"video_id"`
	ContentFormat string `json:"content_format,omitempty"`
	Intent        string `json:"intent,omitempty"`

	// Feasibility in [0,1]: how reproducible the format is (1 = trivial).
	Feasibility float64 `json:"feasibility"`
	// Risk in [0,1]: normalized sum of ordinal risk increments.
	Risk float64 `json:"risk"`
	// QualityBaseline in [0,1]: blended execution/distinctiveness score.
	QualityBaseline float64 `json:"quality_baseline"`
	QualityTier     string  `json:"quality_tier"`

	Audience    AudienceSignals  `json:"audience"`
	Tone        ToneProfile      `json:"tone"`
	Environment EnvironmentNeeds `json:"environment"`
	Replication ReplicationNeeds `json:"replication"`
	RiskFactors RiskFactors      `json:"risk_factors"`

	HasRepeatableFormat bool     `json:"has_repeatable_format"`
	CTATypes            []string `json:"cta_types,omitempty"`

	Embedding []float64 `json:"embedding,omitempty"`
}
