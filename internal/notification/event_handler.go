package notification

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
)

// EventHandler turns console events into toasts.
type EventHandler struct {
	center *Center
	store  pagecache.Store
	bundle *locale.Bundle
	logger *slog.Logger
}

func NewEventHandler(center *Center, store pagecache.Store, bundle *locale.Bundle, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		center: center,
		store:  store,
		bundle: bundle,
		logger: logger,
	}
}

func (h *EventHandler) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventTypeAPIFailed, h.HandleAPIFailed)
	bus.Subscribe(events.EventTypeResourceMutated, h.HandleResourceMutated)
	bus.Subscribe(events.EventTypeSessionEnded, h.HandleSessionEnded)
}

// HandleAPIFailed pushes one error toast. A refused token gets none: the
// browser is sent to the login page instead.
func (h *EventHandler) HandleAPIFailed(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.APIFailedEvent)
	if !ok || e.SessionID == "" || e.Err == nil {
		return nil
	}
	if e.Err.Code == errors.ErrCodeSessionExpired {
		return nil
	}
	msg := h.bundle.ErrorMessage(e.Locale, e.Err)
	_, err := h.center.Push(ctx, e.SessionID, LevelError, msg, string(e.Err.Code))
	return err
}

func (h *EventHandler) HandleResourceMutated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.ResourceMutatedEvent)
	if !ok || e.SessionID == "" {
		return nil
	}
	msg := h.bundle.T(e.Locale, "Toast."+e.Action, map[string]interface{}{
		"Resource": h.bundle.T(e.Locale, "Resource."+e.Resource, nil),
		"Key":      e.Key,
		"Count":    e.Count,
	})
	_, err := h.center.Push(ctx, e.SessionID, LevelSuccess, msg, "")
	return err
}

// HandleSessionEnded drops everything the session left behind.
func (h *EventHandler) HandleSessionEnded(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.SessionEndedEvent)
	if !ok || e.SessionID == "" {
		return nil
	}
	if err := h.store.DeleteSession(ctx, e.SessionID); err != nil {
		h.logger.Error("failed to drop session page state", "error", err)
		return err
	}
	return nil
}
