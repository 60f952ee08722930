package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is where the host publishes its settings response.
const DefaultRedisKey = "alignview:settings"

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisBridge reads a settings response stored as JSON under a key. Hosts
// on another machine publish their settings this way.
type RedisBridge struct {
	client getter
	key    string
}

// NewRedisBridge connects to the Redis server at addr.
func NewRedisBridge(addr, password string, db int, key string) *RedisBridge {
	if key == "" {
		key = DefaultRedisKey
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return &RedisBridge{client: client, key: key}
}

// Fetch implements Bridge.
func (b *RedisBridge) Fetch(ctx context.Context) (Response, error) {
	raw, err := b.client.Get(ctx, b.key).Result()
	if errors.Is(err, redis.Nil) {
		return Failed(fmt.Errorf("%w: redis key %q", ErrNotFound, b.key)), nil
	}
	if err != nil {
		return Response{}, fmt.Errorf("redis get %q: %w", b.key, err)
	}
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return resp, nil
}

// Close releases the connection pool.
func (b *RedisBridge) Close() error {
	if c, ok := b.client.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
