package domain

// HardFilterResult is the outcome of one eligibility predicate.
type HardFilterResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// SoftScoreComponent is one weighted compatibility component. Score is the
// raw [0,1] component score; Weighted = Score * Weight.
type SoftScoreComponent struct {
	Name     string  `json:"name"`
	Weight   float64 `json:"weight"`
	Score    float64 `json:"score"`
	Weighted float64 `json:"weighted"`
	Detail   string  `json:"detail,omitempty"`
}

// MatchSummary is the compact per-dimension view of a successful match.
type MatchSummary struct {
	AudienceFit         float64 `json:"audience_fit"`
	ToneMatch           float64 `json:"tone_match"`
	FormatFit           float64 `json:"format_fit"`
	AspirationAlignment float64 `json:"aspiration_alignment"`
}

// MatchResult is the full outcome of matching one video against one brand.
// Transient: computed per pair, persisted only as a MatchSignalRow if at all.
type MatchResult struct {
	VideoID string `json:"video_id"`
	BrandID string `json:"brand_id"`

	PassesFilters bool               `json:"passes_filters"`
	FilterResults []HardFilterResult `json:"filter_results"`

	SoftScores   []SoftScoreComponent `json:"soft_scores"`
	OverallScore float64              `json:"overall_score"`

	Explanation string       `json:"explanation"`
	Summary     MatchSummary `json:"summary"`
}

// RankedMatch is one entry of a batch ranking.
type RankedMatch struct {
	Rank int `json:"rank"`
	*MatchResult
}
