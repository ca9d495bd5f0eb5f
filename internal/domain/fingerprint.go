package domain

import "time"

// ExecutionCompositeVersion tags the canonical execution-quality weighting so
// stored fingerprints can be told apart from ones computed under deprecated
// formulas.
const ExecutionCompositeVersion = "v3"

// QualityLayer (L1) aggregates service fit and execution quality.
type QualityLayer struct {
	// ServiceFit is the mean of per-video quality ratings (1-10 scale).
	// Nil when no video in the set was rated.
	ServiceFit *float64 `json:"service_fit,omitempty"`
	// ExecutionQuality is the per-video composite averaged across videos, [0,1].
	ExecutionQuality float64 `json:"execution_quality"`
	RatedVideos      int     `json:"rated_videos"`
}

// PersonalityLayer (L2) aggregates tone and likeness attributes.
type PersonalityLayer struct {
	Energy          *float64 `json:"energy,omitempty"`
	Warmth          *float64 `json:"warmth,omitempty"`
	Formality       *float64 `json:"formality,omitempty"`
	SelfSeriousness *float64 `json:"self_seriousness,omitempty"`
	Confidence      *float64 `json:"confidence,omitempty"`

	// Modes over single-valued categoricals; empty means unknown.
	AgeCode       string `json:"age_code,omitempty"`
	Accessibility string `json:"accessibility,omitempty"`
	PriceTier     string `json:"price_tier,omitempty"`
	Edginess      string `json:"edginess,omitempty"`

	// Top-3 by frequency, first-seen tie-break.
	HumorTypes []string `json:"humor_types,omitempty"`
	Vibes      []string `json:"vibes,omitempty"`
	Occasions  []string `json:"occasions,omitempty"`
	CTATypes   []string `json:"cta_types,omitempty"`

	// Deduplicated free text.
	Subtext      []string `json:"subtext,omitempty"`
	Traits       []string `json:"traits,omitempty"`
	ServiceEthos []string `json:"service_ethos,omitempty"`
}

// ProductionLayer (L3) aggregates production attributes.
type ProductionLayer struct {
	AudioQuality           *float64 `json:"audio_quality,omitempty"`
	LightingQuality        *float64 `json:"lighting_quality,omitempty"`
	HasRepeatableFormatPct float64  `json:"has_repeatable_format_pct"`
	NamedFormats           []string `json:"named_formats,omitempty"`
}

// ProfileFingerprint is the aggregate representation of one profile's video
// set. Ephemeral: recomputed on demand, persisted only when a caller chooses to.
type ProfileFingerprint struct {
	ProfileID   string `json:"profile_id,omitempty"`
	ProfileName string `json:"profile_name,omitempty"`

	Centroid     []float64          `json:"centroid"`
	VideoWeights map[string]float64 `json:"video_weights"`

	Quality     QualityLayer     `json:"quality"`
	Personality PersonalityLayer `json:"personality"`
	Production  ProductionLayer  `json:"production"`

	Confidence       float64  `json:"confidence"`
	MissingDataNotes []string `json:"missing_data_notes,omitempty"`
	URLsNotFound     []string `json:"urls_not_found,omitempty"`

	Summary    string    `json:"summary"`
	VideoCount int       `json:"video_count"`
	ComputedAt time.Time `json:"computed_at"`
}
