package match

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/service/store"
	apperrors "github.com/partie/brandmatch-go/pkg/errors"
)

// Orchestrator composes the filter and scoring pipelines and handles batch
// ranking. The store is optional and only used when callers persist results.
type Orchestrator struct {
	store       store.VideoStore
	logger      *zap.Logger
	minScore    float64
	concurrency int
}

// RankOptions controls batch ranking output.
type RankOptions struct {
	// DropFailed removes candidates that failed hard filters from the output.
	DropFailed bool
	// Limit truncates the ranking; zero means unlimited.
	Limit int
	// MinScore drops results scoring below it when positive.
	MinScore float64
}

func NewOrchestrator(videoStore store.VideoStore, minScore float64, logger *zap.Logger) *Orchestrator {
	if minScore <= 0 {
		minScore = 0.70
	}
	return &Orchestrator{
		store:       videoStore,
		logger:      logger,
		minScore:    minScore,
		concurrency: 8,
	}
}

// MinScore exposes the configured useful-match threshold.
func (o *Orchestrator) MinScore() float64 {
	return o.minScore
}

// Match evaluates one candidate against one brand. Filter failure
// short-circuits: no soft scores, zero overall, and the explanation is the
// first failing filter's reason verbatim.
func (o *Orchestrator) Match(video *domain.VideoFingerprint, brand *domain.BrandFingerprint) *domain.MatchResult {
	result := &domain.MatchResult{
		VideoID: video.VideoID,
		BrandID: brand.BrandID,
	}

	filterResults, passed := RunFilters(video, brand)
	result.FilterResults = filterResults
	result.PassesFilters = passed

	if !passed {
		result.SoftScores = []domain.SoftScoreComponent{}
		result.Explanation = filterResults[len(filterResults)-1].Reason
		return result
	}

	components, overall := Score(video, brand)
	result.SoftScores = components
	result.OverallScore = overall
	result.Summary = buildSummary(components)
	result.Explanation = buildExplanation(video, components)

	return result
}

func buildSummary(components []domain.SoftScoreComponent) domain.MatchSummary {
	summary := domain.MatchSummary{}
	for _, c := range components {
		switch c.Name {
		case ComponentAudience:
			summary.AudienceFit = c.Score
		case ComponentTone:
			summary.ToneMatch = c.Score
		case ComponentFormat:
			summary.FormatFit = c.Score
		case ComponentAspiration:
			summary.AspirationAlignment = c.Score
		}
	}
	return summary
}

// buildExplanation composes one sentence from the top 1-3 contributing
// factors.
func buildExplanation(video *domain.VideoFingerprint, components []domain.SoftScoreComponent) string {
	ranked := make([]domain.SoftScoreComponent, len(components))
	copy(ranked, components)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weighted > ranked[j].Weighted
	})

	var factors []string
	for _, c := range ranked {
		if len(factors) == 3 {
			break
		}
		if c.Score < 0.6 {
			continue
		}
		switch c.Name {
		case ComponentAudience:
			factors = append(factors, "a strong audience match")
		case ComponentTone:
			factors = append(factors, "compatible tone")
		case ComponentFormat:
			if video.Feasibility >= 0.7 {
				factors = append(factors, "an easily replicable format")
			} else {
				factors = append(factors, "a fitting format")
			}
		case ComponentAspiration:
			factors = append(factors, "quality aligned with the brand's ambition")
		}
	}

	if len(factors) == 0 {
		return "This video is eligible but only weakly compatible with the brand."
	}

	return fmt.Sprintf("This video fits the brand thanks to %s.", joinFactors(factors))
}

func joinFactors(factors []string) string {
	switch len(factors) {
	case 1:
		return factors[0]
	case 2:
		return factors[0] + " and " + factors[1]
	default:
		return strings.Join(factors[:len(factors)-1], ", ") + ", and " + factors[len(factors)-1]
	}
}

// RankCandidates matches every candidate independently, in parallel, then
// sorts descending by overall score with video id as the deterministic
// tie-break.
func (o *Orchestrator) RankCandidates(ctx context.Context, candidates []*domain.VideoFingerprint, brand *domain.BrandFingerprint, opts RankOptions) []domain.RankedMatch {
	results := make([]*domain.MatchResult, len(candidates))
	var mu sync.Mutex

	p := pool.New().WithMaxGoroutines(o.concurrency)
	for idx, candidate := range candidates {
		idx, candidate := idx, candidate
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			result := o.Match(candidate, brand)
			mu.Lock()
			results[idx] = result
			mu.Unlock()
		})
	}
	p.Wait()

	filtered := make([]*domain.MatchResult, 0, len(results))
	for _, r := range results {
		if r == nil {
			continue
		}
		if opts.DropFailed && !r.PassesFilters {
			continue
		}
		if opts.MinScore > 0 && r.OverallScore < opts.MinScore {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].OverallScore != filtered[j].OverallScore {
			return filtered[i].OverallScore > filtered[j].OverallScore
		}
		return filtered[i].VideoID < filtered[j].VideoID
	})

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	ranked := make([]domain.RankedMatch, len(filtered))
	for i, r := range filtered {
		ranked[i] = domain.RankedMatch{Rank: i + 1, MatchResult: r}
	}

	o.logger.Debug("Batch ranking complete",
		zap.String("brand_id", brand.BrandID),
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(ranked)),
	)

	return ranked
}

// PersistResult writes a match outcome through the store's composite-key
// upsert. No-op without a configured store.
func (o *Orchestrator) PersistResult(ctx context.Context, result *domain.MatchResult) error {
	if o.store == nil || result == nil {
		return nil
	}

	row := domain.MatchSignalRow{
		VideoID:       result.VideoID,
		BrandID:       result.BrandID,
		OverallScore:  result.OverallScore,
		PassesFilters: result.PassesFilters,
		Summary:       result.Summary,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := o.store.UpsertMatchSignal(ctx, row); err != nil {
		o.logger.Error("Failed to persist match signal",
			zap.String("video_id", result.VideoID),
			zap.String("brand_id", result.BrandID),
			zap.Error(err),
		)
		return apperrors.NewEngineError("failed to persist match result", apperrors.CodeMatch, map[string]any{
			"video_id": result.VideoID,
			"brand_id": result.BrandID,
		}).WithCause(err)
	}

	return nil
}

// IsUseful reports whether a result clears the configured minimum score.
func (o *Orchestrator) IsUseful(result *domain.MatchResult) bool {
	return result != nil && result.PassesFilters && result.OverallScore >= o.minScore
}
