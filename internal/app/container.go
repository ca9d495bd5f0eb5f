package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/config"
	"github.com/partie/brandmatch-go/internal/fingerprint"
	"github.com/partie/brandmatch-go/internal/match"
	"github.com/partie/brandmatch-go/internal/narrative"
	"github.com/partie/brandmatch-go/internal/service/cache"
	"github.com/partie/brandmatch-go/internal/service/database"
	"github.com/partie/brandmatch-go/internal/service/store"
)

// Container bundles the assembled engine services.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Store        store.VideoStore
	Builder      *fingerprint.Builder
	Orchestrator *match.Orchestrator

	closers []func()
}

// Build assembles all infrastructure services. Heavy-weight initialization
// (DB, cache, AI clients) happens here so the engine packages stay pure.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	postgres, err := database.NewPostgresService(database.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Database: cfg.Postgres.Database,
		SSLMode:  cfg.Postgres.SSLMode,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres service: %w", err)
	}
	closers = append(closers, func() {
		_ = postgres.Close()
	})

	videoStore := store.NewPostgresStore(postgres, logger)

	var fpCache fingerprint.Cache
	if cfg.Redis.Enabled {
		cacheSvc, err := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", err)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
		fpCache = cacheSvc
	}

	narrativeMgr, err := buildNarrative(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	builder := fingerprint.NewBuilder(videoStore, fpCache, narrativeMgr, logger)
	orchestrator := match.NewOrchestrator(videoStore, cfg.Matching.MinScore, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Store:        videoStore,
		Builder:      builder,
		Orchestrator: orchestrator,
		closers:      closers,
	}, nil
}

// buildNarrative wires the provider chain: Gemini primary, OpenAI fallback,
// template always-last inside the manager. Without any API key the manager
// runs template-only.
func buildNarrative(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*narrative.Manager, error) {
	var primary narrative.Generator

	if cfg.Gemini.APIKey != "" {
		gemini, err := narrative.NewGeminiGenerator(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini generator: %w", err)
		}
		primary = gemini
	}

	var fallback narrative.Generator
	if cfg.OpenAI.EnableFallback {
		if openaiGen := narrative.NewOpenAIGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger); openaiGen != nil {
			fallback = openaiGen
			logger.Info("OpenAI narrative fallback enabled", zap.String("model", cfg.OpenAI.Model))
		}
	}

	return narrative.NewManager(primary, fallback, logger), nil
}

// Close releases held resources in reverse initialization order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
