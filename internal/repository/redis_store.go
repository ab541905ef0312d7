package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"CandleCache/internal/domain/models"
	"CandleCache/internal/domain/repository"
)

const redisKeyPrefix = "candles"

// RedisStore keeps cache entries in Redis, for deployments where several
// service replicas should share one cache. Entries carry a TTL as a safety
// net; date keying alone already makes stale entries unreadable.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects and pings Redis.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 48 * time.Hour
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

func redisKey(symbol, day string) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, SanitizeSymbol(symbol), day)
}

func (s *RedisStore) Read(ctx context.Context, symbol, day string) ([]models.Candle, error) {
	b, err := s.client.Get(ctx, redisKey(symbol, day)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrEntryNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var series []models.Candle
	if err := json.Unmarshal(b, &series); err != nil {
		return nil, models.ErrEntryNotFound
	}
	return series, nil
}

func (s *RedisStore) Write(ctx context.Context, symbol, day string, series []models.Candle) error {
	b, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(symbol, day), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ repository.CandleStore = (*RedisStore)(nil)
