// Package notification keeps the toast queue of each console session.
package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/trackit/internal/core/pagecache"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

const DefaultLimit = 20

type Toast struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Center stores toasts next to the session's page state so that ending a
// session drops both.
type Center struct {
	store  pagecache.Store
	limit  int
	logger *slog.Logger
	mu     sync.Mutex
	now    func() time.Time
}

func NewCenter(store pagecache.Store, limit int, logger *slog.Logger) *Center {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Center{store: store, limit: limit, logger: logger, now: time.Now}
}

func key(sessionID string) string {
	return pagecache.Key(sessionID, "toasts")
}

// Push appends a toast, dropping the oldest ones past the limit.
func (c *Center) Push(ctx context.Context, sessionID string, level Level, message, code string) (Toast, error) {
	t := Toast{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		Code:      code,
		CreatedAt: c.now(),
	}
	if sessionID == "" {
		return t, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	queue, _, err := pagecache.Load[[]Toast](ctx, c.store, key(sessionID))
	if err != nil {
		c.logger.Warn("toast queue unreadable, resetting", "error", err)
		queue = nil
	}
	queue = append(queue, t)
	if over := len(queue) - c.limit; over > 0 {
		queue = queue[over:]
	}
	return t, pagecache.Save(ctx, c.store, key(sessionID), queue)
}

// Drain returns the pending toasts, oldest first, and empties the queue.
func (c *Center) Drain(ctx context.Context, sessionID string) ([]Toast, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue, ok, err := pagecache.Load[[]Toast](ctx, c.store, key(sessionID))
	if err != nil {
		return nil, err
	}
	if !ok || len(queue) == 0 {
		return []Toast{}, nil
	}
	if err := c.store.Delete(ctx, key(sessionID)); err != nil {
		return nil, err
	}
	return queue, nil
}

func (c *Center) Clear(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Delete(ctx, key(sessionID))
}
