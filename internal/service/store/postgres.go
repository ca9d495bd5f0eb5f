package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/internal/service/database"
	"github.com/partie/brandmatch-go/pkg/errors"
)

// PostgresStore implements VideoStore on the shared Postgres connection.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStore(postgres *database.PostgresService, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

func (s *PostgresStore) FindVideosByURLs(ctx context.Context, urls []string) ([]domain.Video, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, url, title, profile_id, embedding, created_at
		FROM videos
		WHERE url = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(urls))
	if err != nil {
		return nil, errors.NewStoreError("failed to query videos by url", "find_by_urls", "", err)
	}
	defer rows.Close()

	return s.scanVideos(rows)
}

func (s *PostgresStore) FindVideosByIDs(ctx context.Context, ids []string) ([]domain.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, url, title, profile_id, embedding, created_at
		FROM videos
		WHERE id = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, errors.NewStoreError("failed to query videos by id", "find_by_ids", "", err)
	}
	defer rows.Close()

	return s.scanVideos(rows)
}

func (s *PostgresStore) scanVideos(rows *sql.Rows) ([]domain.Video, error) {
	var videos []domain.Video

	for rows.Next() {
		var (
			video         domain.Video
			title         sql.NullString
			profileID     sql.NullString
			embeddingJSON []byte
		)

		if err := rows.Scan(&video.ID, &video.URL, &title, &profileID, &embeddingJSON, &video.CreatedAt); err != nil {
			return nil, errors.NewStoreError("failed to scan video row", "scan", "", err)
		}

		video.Title = title.String
		video.ProfileID = profileID.String

		if len(embeddingJSON) > 0 {
			if err := json.Unmarshal(embeddingJSON, &video.Embedding); err != nil {
				s.logger.Warn("Malformed embedding, skipping",
					zap.String("video_id", video.ID),
					zap.Error(err),
				)
				video.Embedding = nil
			}
		}

		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("video row iteration failed", "scan", "", err)
	}

	return videos, nil
}

func (s *PostgresStore) FindRatingsByVideoIDs(ctx context.Context, ids []string) (map[string]domain.VideoRating, error) {
	result := make(map[string]domain.VideoRating)
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT video_id, quality, coherence, rated_at
		FROM video_ratings
		WHERE video_id = ANY($1)
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, errors.NewStoreError("failed to query ratings", "find_ratings", "", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rating    domain.VideoRating
			quality   sql.NullFloat64
			coherence sql.NullFloat64
			ratedAt   sql.NullTime
		)

		if err := rows.Scan(&rating.VideoID, &quality, &coherence, &ratedAt); err != nil {
			return nil, errors.NewStoreError("failed to scan rating row", "scan", "", err)
		}

		if quality.Valid {
			rating.Quality = &quality.Float64
		}
		if coherence.Valid {
			rating.Coherence = &coherence.Float64
		}
		if ratedAt.Valid {
			rating.RatedAt = &ratedAt.Time
		}

		result[rating.VideoID] = rating
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("rating row iteration failed", "scan", "", err)
	}

	return result, nil
}

func (s *PostgresStore) FindSignalsByVideoIDs(ctx context.Context, ids []string) (map[string][]domain.SignalRow, error) {
	result := make(map[string][]domain.SignalRow)
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT video_id, source, signals, analyzed_at
		FROM video_signals
		WHERE video_id = ANY($1)
		ORDER BY analyzed_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, errors.NewStoreError("failed to query signals", "find_signals", "", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			row         domain.SignalRow
			source      string
			signalsJSON []byte
		)

		if err := rows.Scan(&row.VideoID, &source, &signalsJSON, &row.AnalyzedAt); err != nil {
			return nil, errors.NewStoreError("failed to scan signal row", "scan", "", err)
		}

		row.Source = domain.SignalSource(source)

		if len(signalsJSON) > 0 {
			var signals domain.VideoSignals
			if err := json.Unmarshal(signalsJSON, &signals); err != nil {
				s.logger.Warn("Malformed signal payload, skipping row",
					zap.String("video_id", row.VideoID),
					zap.Error(err),
				)
				continue
			}
			row.Signals = &signals
		}

		result[row.VideoID] = append(result[row.VideoID], row)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("signal row iteration failed", "scan", "", err)
	}

	return result, nil
}

func (s *PostgresStore) UpsertMatchSignal(ctx context.Context, row domain.MatchSignalRow) error {
	summaryJSON, err := json.Marshal(row.Summary)
	if err != nil {
		return errors.NewStoreError("failed to marshal match summary", "upsert_match",
			fmt.Sprintf("%s:%s", row.VideoID, row.BrandID), err)
	}

	query := `
		INSERT INTO match_signals (video_id, brand_id, overall_score, passes_filters, summary, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (video_id, brand_id)
		DO UPDATE SET
			overall_score = EXCLUDED.overall_score,
			passes_filters = EXCLUDED.passes_filters,
			summary = EXCLUDED.summary,
			updated_at = EXCLUDED.updated_at
	`

	updatedAt := row.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	if _, err := s.db.ExecContext(ctx, query,
		row.VideoID, row.BrandID, row.OverallScore, row.PassesFilters, summaryJSON, updatedAt,
	); err != nil {
		return errors.NewStoreError("failed to upsert match signal", "upsert_match",
			fmt.Sprintf("%s:%s", row.VideoID, row.BrandID), err)
	}

	return nil
}
