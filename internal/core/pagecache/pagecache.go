// Package pagecache keeps each console session's per-page state: the list
// fetched from the backend plus filters, sort, page and open modal.
package pagecache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const keyPrefix = "trackit:page"

// Store is safe for concurrent use. Values expire after the store's TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteSession drops every key that belongs to sessionID.
	DeleteSession(ctx context.Context, sessionID string) error
}

func Key(sessionID string, parts ...string) string {
	return keyPrefix + ":" + sessionID + ":" + strings.Join(parts, ":")
}

func sessionPrefix(sessionID string) string {
	return keyPrefix + ":" + sessionID + ":"
}

// Load decodes the value under key into a T.
func Load[T any](ctx context.Context, store Store, key string) (T, bool, error) {
	var out T
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("decode page cache %s: %w", key, err)
	}
	return out, true, nil
}

func Save[T any](ctx context.Context, store Store, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode page cache %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}
