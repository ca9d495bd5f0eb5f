package domain

import "time"

// EmbeddingDim is the fixed dimensionality expected of video embeddings.
// Vectors of any other length are excluded from centroid computation.
const EmbeddingDim = 768

type Video struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	ProfileID string    `json:"profile_id,omitempty"`
	Embedding []float64 `json:"embedding,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// HasValidEmbedding reports whether the video carries an embedding of the
// expected dimensionality.
func (v *Video) HasValidEmbedding() bool {
	return v != nil && len(v.Embedding) == EmbeddingDim
}

// VideoRating holds human/automated quality ratings for one video. Quality is
// on a 1-10 scale, coherence on 0-1. Nil means never rated, not zero.
type VideoRating struct {
	VideoID   string     `json:"video_id"`
	Quality   *float64   `json:"quality,omitempty"`
	Coherence *float64   `json:"coherence,omitempty"`
	RatedAt   *time.Time `json:"rated_at,omitempty"`
}

// SignalSource distinguishes where a signal row came from. Direct rows are
// the flattened current-generation columns; payload rows are extracted from
// older nested AI-analysis documents.
type SignalSource string

const (
	SourceDirect  SignalSource = "direct"
	SourcePayload SignalSource = "payload"
)

// SignalRow is one stored extraction pass for a video. Re-analysis supersedes
// rather than merges: the latest row per source wins, and direct-column
// values take precedence over payload values field by field.
type SignalRow struct {
	VideoID    string        `json:"video_id"`
	Source     SignalSource  `json:"source"`
	Signals    *VideoSignals `json:"signals"`
	AnalyzedAt time.Time     `json:"analyzed_at"`
}

// UnifySignals builds the per-video signal view from all stored rows: rows
// are ranked direct-before-payload, newest first within a source, and each
// field independently picks the best available value.
func UnifySignals(rows []SignalRow) *VideoSignals {
	if len(rows) == 0 {
		return nil
	}

	ordered := make([]SignalRow, len(rows))
	copy(ordered, rows)

	// stable selection sort keeps equal-rank rows in input order
	rank := func(r SignalRow) int {
		if r.Source == SourceDirect {
			return 0
		}
		return 1
	}
	for i := 0; i < len(ordered); i++ {
		best := i
		for j := i + 1; j < len(ordered); j++ {
			if rank(ordered[j]) < rank(ordered[best]) ||
				(rank(ordered[j]) == rank(ordered[best]) && ordered[j].AnalyzedAt.After(ordered[best].AnalyzedAt)) {
				best = j
			}
		}
		ordered[i], ordered[best] = ordered[best], ordered[i]
	}

	unified := &VideoSignals{}
	for _, row := range ordered {
		if row.Signals == nil {
			continue
		}
		if unified.SchemaVersion == "" {
			unified.SchemaVersion = row.Signals.SchemaVersion
		}
		unified.MergeFrom(row.Signals)
	}

	if unified.IsEmpty() {
		return nil
	}
	return unified
}

// MatchSignalRow is the persisted outcome of one (video, brand) match
// computation, upserted by composite key.
type MatchSignalRow struct {
	VideoID       string       `json:"video_id"`
	BrandID       string       `json:"brand_id"`
	OverallScore  float64      `json:"overall_score"`
	PassesFilters bool         `json:"passes_filters"`
	Summary       MatchSummary `json:"summary"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
