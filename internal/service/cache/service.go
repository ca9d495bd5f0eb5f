package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/partie/brandmatch-go/internal/domain"
	"github.com/partie/brandmatch-go/pkg/errors"
)

// CacheService layers Redis over fingerprint computation. Optional: the
// builder works without it, and cache failures degrade to recompute.
type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

type CacheConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

const fingerprintTTL = 30 * time.Minute

func NewCacheService(cfg CacheConfig, logger *zap.Logger) (*CacheService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewCacheError("failed to connect to Redis", "ping", "", err)
	}

	logger.Info("Redis connected",
		zap.String("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		zap.Int("db", cfg.DB),
	)

	return &CacheService{
		client: client,
		logger: logger,
	}, nil
}

func (c *CacheService) Get(ctx context.Context, key string, dest any) (bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		c.logger.Error("Cache get failed", zap.String("key", key), zap.Error(err))
		return false, errors.NewCacheError("get failed", "get", key, err)
	}

	if dest != nil {
		if err := json.Unmarshal([]byte(value), dest); err != nil {
			c.logger.Error("Cache unmarshal failed", zap.String("key", key), zap.Error(err))
			return false, errors.NewCacheError("unmarshal failed", "get", key, err)
		}
	}

	return true, nil
}

func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return errors.NewCacheError("marshal failed", "set", key, err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		c.logger.Error("Cache set failed", zap.String("key", key), zap.Error(err))
		return errors.NewCacheError("set failed", "set", key, err)
	}

	return nil
}

func (c *CacheService) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return errors.NewCacheError("delete failed", "delete", key, err)
	}
	return nil
}

// FingerprintKey derives a stable cache key from the profile id and the
// video set, insensitive to input order.
func FingerprintKey(profileID string, videoIDs []string) string {
	sorted := append([]string(nil), videoIDs...)
	sort.Strings(sorted)

	hash := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return fmt.Sprintf("brandmatch:fingerprint:%s:%s", profileID, hex.EncodeToString(hash[:8]))
}

// GetFingerprint returns a cached fingerprint, or nil on miss or cache error.
func (c *CacheService) GetFingerprint(ctx context.Context, key string) *domain.ProfileFingerprint {
	var fp domain.ProfileFingerprint
	found, err := c.Get(ctx, key, &fp)
	if err != nil || !found {
		return nil
	}
	return &fp
}

// SetFingerprint stores a computed fingerprint. Failures are logged, never
// surfaced: caching is best-effort.
func (c *CacheService) SetFingerprint(ctx context.Context, key string, fp *domain.ProfileFingerprint) {
	if fp == nil {
		return
	}
	if err := c.Set(ctx, key, fp, fingerprintTTL); err != nil {
		c.logger.Warn("Failed to cache fingerprint", zap.String("key", key), zap.Error(err))
	}
}

func (c *CacheService) Close() error {
	return c.client.Close()
}
