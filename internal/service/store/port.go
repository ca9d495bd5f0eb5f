package store

import (
	"context"

	"github.com/partie/brandmatch-go/internal/domain"
)

// VideoStore is the persistence port consumed by the fingerprint builder and
// match orchestrator. All reads are set-based: implementations must never
// loop single-row queries.
type VideoStore interface {
	// FindVideosByURLs resolves URLs to stored videos in one query. URLs with
	// no stored video are simply absent from the result.
	FindVideosByURLs(ctx context.Context, urls []string) ([]domain.Video, error)

	// FindVideosByIDs resolves ids to stored videos in one query.
	FindVideosByIDs(ctx context.Context, ids []string) ([]domain.Video, error)

	// FindRatingsByVideoIDs fetches ratings for the whole set, keyed by video id.
	FindRatingsByVideoIDs(ctx context.Context, ids []string) (map[string]domain.VideoRating, error)

	// FindSignalsByVideoIDs fetches all stored signal rows for the set, keyed
	// by video id. A video may carry several rows across sources and passes.
	FindSignalsByVideoIDs(ctx context.Context, ids []string) (map[string][]domain.SignalRow, error)

	// UpsertMatchSignal writes a match outcome by composite (video_id, brand_id)
	// key. The upsert serializes concurrent writers per key.
	UpsertMatchSignal(ctx context.Context, row domain.MatchSignalRow) error
}
