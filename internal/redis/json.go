package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrMissing is returned by GetJSON when the key does not exist
var ErrMissing = errors.New("redis: key not found")

// GetJSON reads and decodes a JSON blob
func GetJSON[T any](ctx context.Context, client Client, key string) (*T, error) {
	raw, err := client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMissing
		}
		return nil, err
	}

	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return &out, nil
}

// MGetJSON reads several blobs in one round trip. Keys that no longer exist
// are returned in missing so callers can prune their indexes.
func MGetJSON[T any](ctx context.Context, client Client, keys []string) ([]*T, []string, error) {
	if len(keys) == 0 {
		return nil, nil, nil
	}

	values, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, nil, err
	}

	out := make([]*T, 0, len(values))
	var missing []string
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			missing = append(missing, keys[i])
			continue
		}
		var item T
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			return nil, nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, &item)
	}
	return out, missing, nil
}
