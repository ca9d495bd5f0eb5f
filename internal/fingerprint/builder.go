package fingerprint

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/narrative"
	"github.com/partie/brandmatch-go/internal/service/cache"
	"github.com/partie/brandmatch-go/internal/service/store"
	"github.com/partie/brandmatch-go/internal/util"
	"github.com/partie/brandmatch-go/pkg/errors"
)

// BuildRequest identifies the video set to aggregate. URLs and VideoIDs may
// be mixed; duplicates collapse on video id.
type BuildRequest struct {
	ProfileID   string
	ProfileName string
	URLs        []string
	VideoIDs    []string
}

// Cache is the optional fingerprint cache consumed by the builder. Misses
// and failures surface as nil; storage is best-effort.
type Cache interface {
	GetFingerprint(ctx context.Context, key string) *domain.ProfileFingerprint
	SetFingerprint(ctx context.Context, key string, fp *domain.ProfileFingerprint)
}

// Builder computes profile fingerprints against the persistence port. The
// cache and narrative manager are optional: without them the builder still
// produces complete numeric fingerprints with template summaries.
type Builder struct {
	store     store.VideoStore
	cache     Cache
	narrative *narrative.Manager
	logger    *zap.Logger
}

func NewBuilder(videoStore store.VideoStore, cacheSvc Cache, narrativeMgr *narrative.Manager, logger *zap.Logger) *Builder {
	return &Builder{
		store:     videoStore,
		cache:     cacheSvc,
		narrative: narrativeMgr,
		logger:    logger,
	}
}

// Build resolves the request's videos, aggregates their signals, and returns
// a complete fingerprint. Fatal only when zero videos resolve; every other
// gap degrades confidence and lands in missing-data notes.
func (b *Builder) Build(ctx context.Context, req BuildRequest) (*domain.ProfileFingerprint, error) {
	videos, urlsNotFound, err := b.resolveVideos(ctx, req)
	if err != nil {
		return nil, err
	}

	if len(videos) == 0 {
		return nil, errors.NewFingerprintError("no videos resolved", req.ProfileID, errors.ErrNoVideosResolved)
	}

	videoIDs := make([]string, len(videos))
	for i, v := range videos {
		videoIDs[i] = v.ID
	}

	cacheKey := ""
	if b.cache != nil {
		cacheKey = cache.FingerprintKey(req.ProfileID, videoIDs)
		if cached := b.cache.GetFingerprint(ctx, cacheKey); cached != nil {
			// The key covers only the resolved set, so the unresolved URLs
			// of this request replace whatever the stored copy carried.
			cached.URLsNotFound = urlsNotFound
			b.logger.Debug("Fingerprint cache hit", zap.String("profile_id", req.ProfileID))
			return cached, nil
		}
	}

	ratings, signalRows, err := b.fetchSources(ctx, videoIDs)
	if err != nil {
		return nil, errors.NewFingerprintError("failed to fetch video sources", req.ProfileID, err)
	}

	fp := b.aggregate(req, videos, ratings, signalRows)
	fp.URLsNotFound = urlsNotFound

	fp.Summary = b.summarize(ctx, fp)

	if b.cache != nil {
		b.cache.SetFingerprint(ctx, cacheKey, fp)
	}

	b.logger.Info("Fingerprint computed",
		zap.String("profile_id", req.ProfileID),
		zap.Int("videos", len(videos)),
		zap.Int("urls_not_found", len(urlsNotFound)),
		zap.Float64("confidence", fp.Confidence),
		zap.String("summary", util.TruncateString(fp.Summary, 80)),
	)

	return fp, nil
}

// resolveVideos performs the single batched identifier lookup. Unresolved
// URLs are reported, not fatal.
func (b *Builder) resolveVideos(ctx context.Context, req BuildRequest) ([]domain.Video, []string, error) {
	byID := make(map[string]domain.Video)
	var order []string

	add := func(videos []domain.Video) {
		for _, v := range videos {
			if _, seen := byID[v.ID]; !seen {
				byID[v.ID] = v
				order = append(order, v.ID)
			}
		}
	}

	if len(req.URLs) > 0 {
		found, err := b.store.FindVideosByURLs(ctx, req.URLs)
		if err != nil {
			return nil, nil, errors.NewFingerprintError("video lookup failed", req.ProfileID, err)
		}
		add(found)
	}

	if len(req.VideoIDs) > 0 {
		found, err := b.store.FindVideosByIDs(ctx, req.VideoIDs)
		if err != nil {
			return nil, nil, errors.NewFingerprintError("video lookup failed", req.ProfileID, err)
		}
		add(found)
	}

	foundURLs := make(map[string]struct{}, len(byID))
	for _, v := range byID {
		foundURLs[v.URL] = struct{}{}
	}

	var urlsNotFound []string
	for _, url := range req.URLs {
		if _, ok := foundURLs[url]; !ok {
			urlsNotFound = append(urlsNotFound, url)
		}
	}

	videos := make([]domain.Video, 0, len(order))
	for _, id := range order {
		videos = append(videos, byID[id])
	}

	return videos, urlsNotFound, nil
}

// fetchSources fans out the ratings and signals reads concurrently. A
// failure on either side aborts the computation: no partially-aggregated
// fingerprint is ever returned.
func (b *Builder) fetchSources(ctx context.Context, videoIDs []string) (map[string]domain.VideoRating, map[string][]domain.SignalRow, error) {
	var (
		ratings    map[string]domain.VideoRating
		signalRows map[string][]domain.SignalRow
		ratingsErr error
		signalsErr error
		mu         sync.Mutex
	)

	p := pool.New().WithMaxGoroutines(2)

	p.Go(func() {
		result, err := b.store.FindRatingsByVideoIDs(ctx, videoIDs)
		mu.Lock()
		ratings, ratingsErr = result, err
		mu.Unlock()
	})

	p.Go(func() {
		result, err := b.store.FindSignalsByVideoIDs(ctx, videoIDs)
		mu.Lock()
		signalRows, signalsErr = result, err
		mu.Unlock()
	})

	p.Wait()

	if ratingsErr != nil {
		return nil, nil, ratingsErr
	}
	if signalsErr != nil {
		return nil, nil, signalsErr
	}

	return ratings, signalRows, nil
}

func (b *Builder) aggregate(req BuildRequest, videos []domain.Video, ratings map[string]domain.VideoRating, signalRows map[string][]domain.SignalRow) *domain.ProfileFingerprint {
	total := len(videos)

	perVideoRatings := make([]*domain.VideoRating, total)
	perVideoSignals := make([]*domain.VideoSignals, total)
	weights := make([]float64, total)
	weightMap := make(map[string]float64, total)
	embeddings := make([][]float64, total)

	embeddingCount := 0
	ratingCount := 0
	signalCount := 0

	for i, video := range videos {
		if rating, ok := ratings[video.ID]; ok {
			r := rating
			perVideoRatings[i] = &r
			if r.Quality != nil {
				ratingCount++
			}
		}

		perVideoSignals[i] = domain.UnifySignals(signalRows[video.ID])
		if perVideoSignals[i] != nil {
			signalCount++
		}

		weights[i] = trustWeight(perVideoRatings[i])
		weightMap[video.ID] = weights[i]

		embeddings[i] = video.Embedding
		if video.HasValidEmbedding() {
			embeddingCount++
		}
	}

	centroid := util.WeightedMeanVectors(embeddings, weights, domain.EmbeddingDim)

	fp := &domain.ProfileFingerprint{
		ProfileID:    req.ProfileID,
		ProfileName:  req.ProfileName,
		Centroid:     centroid,
		VideoWeights: weightMap,
		Quality:      aggregateQuality(perVideoRatings, perVideoSignals),
		Personality:  aggregatePersonality(perVideoSignals),
		Production:   aggregateProduction(perVideoSignals, total),
		VideoCount:   total,
		ComputedAt:   time.Now().UTC(),
	}

	embeddingCoverage := float64(embeddingCount) / float64(total)
	ratingCoverage := float64(ratingCount) / float64(total)
	signalCoverage := float64(signalCount) / float64(total)

	fp.Confidence = (embeddingCoverage + ratingCoverage + signalCoverage) / 3.0

	if embeddingCoverage < 1 {
		fp.MissingDataNotes = append(fp.MissingDataNotes,
			fmt.Sprintf("embeddings present on %d of %d videos", embeddingCount, total))
	}
	if ratingCoverage < 1 {
		fp.MissingDataNotes = append(fp.MissingDataNotes,
			fmt.Sprintf("ratings present on %d of %d videos", ratingCount, total))
	}
	if signalCoverage < 1 {
		fp.MissingDataNotes = append(fp.MissingDataNotes,
			fmt.Sprintf("structured signals present on %d of %d videos", signalCount, total))
	}

	return fp
}

// summarize produces the narrative layer summary. With no manager configured
// the deterministic template runs directly; either way the result is never
// empty.
func (b *Builder) summarize(ctx context.Context, fp *domain.ProfileFingerprint) string {
	input := narrative.LayerInput{
		ProfileName: fp.ProfileName,
		VideoCount:  fp.VideoCount,
		Quality:     fp.Quality,
		Personality: fp.Personality,
		Production:  fp.Production,
	}

	if b.narrative != nil {
		return b.narrative.GenerateSummary(ctx, input)
	}

	text, _ := narrative.NewTemplateGenerator().GenerateSummary(ctx, input)
	return text
}
