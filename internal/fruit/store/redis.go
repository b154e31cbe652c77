package store

import (
	"context"
	"errors"

	"github.com/fruitstore/fruit-api/internal/fruit"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the document as one JSON string under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed store. Key may be empty.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = "fruitstore:document"
	}
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Backend() string { return "redis" }

func (r *RedisStore) Load(ctx context.Context) (*fruit.Document, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fruit.NewDocument(), nil
		}
		return nil, &StorageError{Backend: r.Backend(), Op: "load", Err: err}
	}
	return decode(r.Backend(), b)
}

func (r *RedisStore) Save(ctx context.Context, doc *fruit.Document) error {
	b, err := encode(r.Backend(), doc)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, b, 0).Err(); err != nil {
		return &StorageError{Backend: r.Backend(), Op: "save", Err: err}
	}
	return nil
}

func (r *RedisStore) Exists(ctx context.Context) (bool, error) {
	n, err := r.client.Exists(ctx, r.key).Result()
	if err != nil {
		return false, &StorageError{Backend: r.Backend(), Op: "exists", Err: err}
	}
	return n > 0, nil
}
