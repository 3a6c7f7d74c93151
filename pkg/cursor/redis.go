package cursor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
)

const redisHashKey = "ecoscout:cursors"

// RedisStore keeps cursors in a single Redis hash so that every server
// instance resumes from the same positions.
type RedisStore struct {
	client *redis.Client
	hash   string
}

// NewRedisStore connects to the Redis server at url and verifies the
// connection with a PING.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStoreFromClient(client), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, hash: redisHashKey}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Cursor, error) {
	data, err := s.client.HGet(ctx, s.hash, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cursor: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse cursor: %w", err)
	}
	return &c, nil
}

func (s *RedisStore) Set(ctx context.Context, c *Cursor) error {
	if c == nil || c.Key == "" {
		return fmt.Errorf("cursor key is required")
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal cursor: %w", err)
	}
	return s.client.HSet(ctx, s.hash, c.Key, data).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.HDel(ctx, s.hash, key).Err()
}

// List returns every stored cursor, most recently updated first.
func (s *RedisStore) List(ctx context.Context) ([]*Cursor, error) {
	all, err := s.client.HGetAll(ctx, s.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("list cursors: %w", err)
	}
	out := make([]*Cursor, 0, len(all))
	for _, v := range all {
		var c Cursor
		if json.Unmarshal([]byte(v), &c) == nil {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
