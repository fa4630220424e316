package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nikbrunner/shelf/internal/model"
)

// KeyPrefix namespaces shelf keys in a shared Redis database.
const KeyPrefix = "shelf:"

// RedisKey returns the Redis key holding the collection.
func RedisKey() string {
	return KeyPrefix + StorageKey
}

// RedisParams holds connection settings for NewRedisStorage.
type RedisParams struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration // per-operation timeout, 3s when zero
}

// RedisStorage implements Storage as a single Redis string value.
type RedisStorage struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisStorage creates a RedisStorage. The connection is lazy.
func NewRedisStorage(params RedisParams) *RedisStorage {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:         params.Addr,
		Password:     params.Password,
		DB:           params.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		MaxRetries:   -1,
	})

	return &RedisStorage{client: client, timeout: timeout}
}

// Load reads the collection from RedisKey.
func (s *RedisStorage) Load() ([]model.Bookmark, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, RedisKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []model.Bookmark{}, nil
		}
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}
	return decode(data)
}

// Save stores the collection at RedisKey without expiry.
func (s *RedisStorage) Save(bookmarks []model.Bookmark) error {
	data, err := encode(bookmarks)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, RedisKey(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// Clear deletes RedisKey.
func (s *RedisStorage) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.client.Del(ctx, RedisKey()).Err(); err != nil {
		return fmt.Errorf("failed to delete bookmarks: %w", err)
	}
	return nil
}

// Close closes the client connection pool.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
