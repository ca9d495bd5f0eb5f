package fingerprint

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/domain"
	pkgerrors "github.com/partie/brandmatch-go/pkg/errors"
)

type fakeStore struct {
	videos     []domain.Video
	ratings    map[string]domain.VideoRating
	signals    map[string][]domain.SignalRow
	ratingsErr error
	signalsErr error
	upserts    []domain.MatchSignalRow
}

func (f *fakeStore) FindVideosByURLs(_ context.Context, urls []string) ([]domain.Video, error) {
	var found []domain.Video
	for _, v := range f.videos {
		for _, url := range urls {
			if v.URL == url {
				found = append(found, v)
			}
		}
	}
	return found, nil
}

func (f *fakeStore) FindVideosByIDs(_ context.Context, ids []string) ([]domain.Video, error) {
	var found []domain.Video
	for _, v := range f.videos {
		for _, id := range ids {
			if v.ID == id {
				found = append(found, v)
			}
		}
	}
	return found, nil
}

func (f *fakeStore) FindRatingsByVideoIDs(_ context.Context, _ []string) (map[string]domain.VideoRating, error) {
	if f.ratingsErr != nil {
		return nil, f.ratingsErr
	}
	if f.ratings == nil {
		return map[string]domain.VideoRating{}, nil
	}
	return f.ratings, nil
}

func (f *fakeStore) FindSignalsByVideoIDs(_ context.Context, _ []string) (map[string][]domain.SignalRow, error) {
	if f.signalsErr != nil {
		return nil, f.signalsErr
	}
	if f.signals == nil {
		return map[string][]domain.SignalRow{}, nil
	}
	return f.signals, nil
}

func (f *fakeStore) UpsertMatchSignal(_ context.Context, row domain.MatchSignalRow) error {
	f.upserts = append(f.upserts, row)
	return nil
}

func embeddingOf(value float64) []float64 {
	vec := make([]float64, domain.EmbeddingDim)
	for i := range vec {
		vec[i] = value
	}
	return vec
}

func testVideos(n int) []domain.Video {
	videos := make([]domain.Video, n)
	for i := range videos {
		videos[i] = domain.Video{
			ID:  fmt.Sprintf("vid-%d", i),
			URL: fmt.Sprintf("https://example.com/video/%d", i),
		}
	}
	return videos
}

type fakeCache struct {
	entries map[string]*domain.ProfileFingerprint
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*domain.ProfileFingerprint{}}
}

func (f *fakeCache) GetFingerprint(_ context.Context, key string) *domain.ProfileFingerprint {
	return f.entries[key]
}

func (f *fakeCache) SetFingerprint(_ context.Context, key string, fp *domain.ProfileFingerprint) {
	f.entries[key] = fp
	f.sets++
}

func TestBuildFatalWhenZeroVideosResolve(t *testing.T) {
	builder := NewBuilder(&fakeStore{}, nil, nil, zap.NewNop())

	_, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs:      []string{"https://example.com/missing"},
	})

	if err == nil {
		t.Fatal("expected fatal error when nothing resolves")
	}
	if !errors.Is(err, pkgerrors.ErrNoVideosResolved) {
		t.Fatalf("expected ErrNoVideosResolved, got %v", err)
	}
}

func TestBuildReportsUnresolvedURLsNonFatally(t *testing.T) {
	store := &fakeStore{videos: testVideos(2)}
	builder := NewBuilder(store, nil, nil, zap.NewNop())

	fp, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs: []string{
			"https://example.com/video/0",
			"https://example.com/video/1",
			"https://example.com/gone",
		},
	})
	if err != nil {
		t.Fatalf("partial resolution must succeed, got %v", err)
	}

	if fp.VideoCount != 2 {
		t.Fatalf("expected 2 videos, got %d", fp.VideoCount)
	}
	if len(fp.URLsNotFound) != 1 || fp.URLsNotFound[0] != "https://example.com/gone" {
		t.Fatalf("expected one unresolved url, got %v", fp.URLsNotFound)
	}
}

func TestBuildAbortsOnSourceFetchFailure(t *testing.T) {
	store := &fakeStore{
		videos:     testVideos(1),
		ratingsErr: errors.New("ratings query failed"),
	}
	builder := NewBuilder(store, nil, nil, zap.NewNop())

	fp, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs:      []string{"https://example.com/video/0"},
	})

	if err == nil {
		t.Fatal("expected abort on fetch failure")
	}
	if fp != nil {
		t.Fatal("no partially-aggregated fingerprint may be returned")
	}
}

func TestBuildConfidenceIsMeanOfCoverages(t *testing.T) {
	videos := testVideos(5)
	// Embeddings on 3 of 5
	videos[0].Embedding = embeddingOf(0.1)
	videos[1].Embedding = embeddingOf(0.2)
	videos[2].Embedding = embeddingOf(0.3)

	// Ratings on 4 of 5
	ratings := map[string]domain.VideoRating{}
	for i := 0; i < 4; i++ {
		ratings[videos[i].ID] = domain.VideoRating{VideoID: videos[i].ID, Quality: floatPtr(7)}
	}

	// Signals on all 5
	signals := map[string][]domain.SignalRow{}
	for _, v := range videos {
		signals[v.ID] = []domain.SignalRow{{
			VideoID:    v.ID,
			Source:     domain.SourceDirect,
			Signals:    &domain.VideoSignals{Energy: floatPtr(5)},
			AnalyzedAt: time.Now(),
		}}
	}

	store := &fakeStore{videos: videos, ratings: ratings, signals: signals}
	builder := NewBuilder(store, nil, nil, zap.NewNop())

	urls := make([]string, len(videos))
	for i, v := range videos {
		urls[i] = v.URL
	}

	fp, err := builder.Build(context.Background(), BuildRequest{ProfileID: "p1", URLs: urls})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (3.0/5.0 + 4.0/5.0 + 5.0/5.0) / 3.0
	if math.Abs(fp.Confidence-want) > 1e-9 {
		t.Fatalf("expected confidence %v, got %v", want, fp.Confidence)
	}

	// Two coverage gaps, two notes.
	if len(fp.MissingDataNotes) != 2 {
		t.Fatalf("expected 2 missing-data notes, got %v", fp.MissingDataNotes)
	}
}

func TestBuildCentroidZeroVectorWithoutEmbeddings(t *testing.T) {
	store := &fakeStore{videos: testVideos(2)}
	builder := NewBuilder(store, nil, nil, zap.NewNop())

	fp, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs:      []string{"https://example.com/video/0", "https://example.com/video/1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fp.Centroid) != domain.EmbeddingDim {
		t.Fatalf("expected centroid of fixed dimensionality, got len %d", len(fp.Centroid))
	}
	for _, v := range fp.Centroid {
		if v != 0 {
			t.Fatal("expected zero-vector centroid when no video has an embedding")
		}
	}
}

func TestBuildWrongDimensionEmbeddingExcludedFromCentroid(t *testing.T) {
	videos := testVideos(2)
	videos[0].Embedding = embeddingOf(1.0)
	videos[1].Embedding = []float64{1, 2, 3} // wrong dim

	store := &fakeStore{videos: videos}
	builder := NewBuilder(store, nil, nil, zap.NewNop())

	fp, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs:      []string{videos[0].URL, videos[1].URL},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only the valid embedding contributes, so every component equals 1.
	for _, v := range fp.Centroid {
		if v != 1 {
			t.Fatalf("expected centroid of valid embedding only, got component %v", v)
		}
	}

	// The short video still contributes elsewhere: both videos counted.
	if fp.VideoCount != 2 {
		t.Fatalf("expected both videos in the set, got %d", fp.VideoCount)
	}
}

func TestBuildSummaryNeverEmpty(t *testing.T) {
	store := &fakeStore{videos: testVideos(1)}
	builder := NewBuilder(store, nil, nil, zap.NewNop())

	fp, err := builder.Build(context.Background(), BuildRequest{
		ProfileID:   "p1",
		ProfileName: "Chef Partie",
		URLs:        []string{"https://example.com/video/0"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.TrimSpace(fp.Summary) == "" {
		t.Fatal("summary must never be empty")
	}
	if !strings.Contains(fp.Summary, "Chef Partie") {
		t.Fatalf("template summary should name the profile, got %q", fp.Summary)
	}
}

func TestBuildCacheHitReflectsCurrentUnresolvedURLs(t *testing.T) {
	store := &fakeStore{videos: testVideos(2)}
	cacheSvc := newFakeCache()
	builder := NewBuilder(store, cacheSvc, nil, zap.NewNop())

	first, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs:      []string{"https://example.com/video/0", "https://example.com/video/1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.URLsNotFound) != 0 {
		t.Fatalf("first request resolves fully, got %v", first.URLsNotFound)
	}
	if cacheSvc.sets != 1 {
		t.Fatalf("expected the fingerprint to be cached once, got %d sets", cacheSvc.sets)
	}

	// Same resolved set plus one dead URL: the cache key matches, but the
	// unresolved list must describe this request, not the cached one.
	second, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs: []string{
			"https://example.com/video/0",
			"https://example.com/video/1",
			"https://example.com/gone",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cacheSvc.sets != 1 {
		t.Fatalf("second request should be served from cache, got %d sets", cacheSvc.sets)
	}
	if len(second.URLsNotFound) != 1 || second.URLsNotFound[0] != "https://example.com/gone" {
		t.Fatalf("cache hit must report this request's unresolved urls, got %v", second.URLsNotFound)
	}
}

func TestBuildDirectSignalsPrecedeOlderPayload(t *testing.T) {
	videos := testVideos(1)
	now := time.Now()

	signals := map[string][]domain.SignalRow{
		videos[0].ID: {
			{
				VideoID:    videos[0].ID,
				Source:     domain.SourcePayload,
				Signals:    &domain.VideoSignals{Energy: floatPtr(2), Warmth: floatPtr(9)},
				AnalyzedAt: now.Add(-time.Hour),
			},
			{
				VideoID:    videos[0].ID,
				Source:     domain.SourceDirect,
				Signals:    &domain.VideoSignals{Energy: floatPtr(8)},
				AnalyzedAt: now,
			},
		},
	}

	store := &fakeStore{videos: videos, signals: signals}
	builder := NewBuilder(store, nil, nil, zap.NewNop())

	fp, err := builder.Build(context.Background(), BuildRequest{
		ProfileID: "p1",
		URLs:      []string{videos[0].URL},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Direct energy wins; warmth falls back to the payload row field-by-field.
	if fp.Personality.Energy == nil || *fp.Personality.Energy != 8 {
		t.Fatalf("expected direct-column energy 8, got %v", fp.Personality.Energy)
	}
	if fp.Personality.Warmth == nil || *fp.Personality.Warmth != 9 {
		t.Fatalf("expected payload warmth 9 via field fallback, got %v", fp.Personality.Warmth)
	}
}
