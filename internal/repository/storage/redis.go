package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"rocketshoes/internal/domain"
)

type redisRepo struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedis accepts a redis:// URL, or a bare host:port address.
func NewRedis(addr string, logger *log.Logger) (Repository, *redis.Client) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}
	}
	client := redis.NewClient(opts)
	return &redisRepo{client: client, logger: logger}, client
}

func (r *redisRepo) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		r.logger.Printf("storage redis: get key=%s error=%v", key, err)
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (r *redisRepo) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		r.logger.Printf("storage redis: set key=%s error=%v", key, err)
		return fmt.Errorf("redis set: %w", err)
	}
	r.logger.Printf("storage redis: set key=%s bytes=%d", key, len(value))
	return nil
}

func (r *redisRepo) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return r.client.Ping(pingCtx).Err()
}
