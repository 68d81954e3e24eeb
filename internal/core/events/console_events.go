package events

import (
	"time"

	"github.com/google/uuid"

	errors "github.com/frahmantamala/trackit/internal"
)

const (
	EventTypeAPIFailed       = "api.failed"
	EventTypeResourceMutated = "resource.mutated"
	EventTypeSessionEnded    = "session.ended"
)

// Mutation actions carried by ResourceMutatedEvent.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionClosed      = "closed"
	ActionStarted     = "started"
	ActionValidated   = "validated"
	ActionBulkCreated = "bulk_created"
)

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// APIFailedEvent is published once per failed backend call.
type APIFailedEvent struct {
	BaseEvent
	SessionID string           `json:"session_id"`
	Locale    string           `json:"locale"`
	Resource  string           `json:"resource"`
	Method    string           `json:"method"`
	Err       *errors.AppError `json:"error"`
}

func NewAPIFailedEvent(sessionID, locale, resource, method string, err *errors.AppError) *APIFailedEvent {
	return &APIFailedEvent{
		BaseEvent: newBase(EventTypeAPIFailed, map[string]interface{}{
			"session_id": sessionID,
			"resource":   resource,
			"method":     method,
			"code":       string(err.Code),
		}),
		SessionID: sessionID,
		Locale:    locale,
		Resource:  resource,
		Method:    method,
		Err:       err,
	}
}

type ResourceMutatedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	Locale    string `json:"locale"`
	Resource  string `json:"resource"`
	Action    string `json:"action"`
	Key       string `json:"key"`
	Count     int    `json:"count,omitempty"`
}

func NewResourceMutatedEvent(sessionID, locale, resource, action, key string) *ResourceMutatedEvent {
	return &ResourceMutatedEvent{
		BaseEvent: newBase(EventTypeResourceMutated, map[string]interface{}{
			"session_id": sessionID,
			"resource":   resource,
			"action":     action,
			"key":        key,
		}),
		SessionID: sessionID,
		Locale:    locale,
		Resource:  resource,
		Action:    action,
		Key:       key,
	}
}

type SessionEndedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

func NewSessionEndedEvent(sessionID, reason string) *SessionEndedEvent {
	return &SessionEndedEvent{
		BaseEvent: newBase(EventTypeSessionEnded, map[string]interface{}{
			"session_id": sessionID,
			"reason":     reason,
		}),
		SessionID: sessionID,
		Reason:    reason,
	}
}
