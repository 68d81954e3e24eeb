// Package crud is the list, create, update and delete flow every console
// resource page shares: validate the form, call the backend, patch the
// cached list and announce the change.
package crud

import (
	"context"
	"log/slog"
	"net/url"
	"reflect"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/apiclient"
	"github.com/frahmantamala/trackit/internal/core/common/validation"
	"github.com/frahmantamala/trackit/internal/core/events"
	"github.com/frahmantamala/trackit/internal/core/listing"
	"github.com/frahmantamala/trackit/internal/core/locale"
	"github.com/frahmantamala/trackit/internal/core/page"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
)

// Deps is what every resource service is built from.
type Deps struct {
	Client    *apiclient.Client
	Store     pagecache.Store
	PageSize  int
	Validator *validation.Validator
	Publisher events.Publisher
	Locale    *locale.Bundle
	Logger    *slog.Logger
}

// New wires a list page over the backend collection.
func New[T page.Record](d Deps, collection string, schema listing.Schema[T]) *Service[T] {
	client := apiclient.NewResource[T](d.Client, collection)
	p := page.New(collection, schema, d.Store, client.All, d.PageSize, d.Logger)
	return NewService(client, p, d.Validator, d.Publisher, d.Logger)
}

type Service[T page.Record] struct {
	Client    *apiclient.Resource[T]
	Page      *page.Page[T]
	Validator *validation.Validator
	publisher events.Publisher
	logger    *slog.Logger
}

func NewService[T page.Record](client *apiclient.Resource[T], p *page.Page[T], validator *validation.Validator, publisher events.Publisher, logger *slog.Logger) *Service[T] {
	return &Service[T]{
		Client:    client,
		Page:      p,
		Validator: validator,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *Service[T]) Publisher() events.Publisher {
	return s.publisher
}

func (s *Service[T]) Logger() *slog.Logger {
	return s.logger
}

func (s *Service[T]) Resource() string {
	return s.Client.Name()
}

func (s *Service[T]) List(ctx context.Context, q url.Values) (*page.View[T], error) {
	return s.Page.View(ctx, q)
}

// Get reads one record from the backend and refreshes the cached copy.
func (s *Service[T]) Get(ctx context.Context, key string) (T, error) {
	item, err := s.Client.Get(ctx, key)
	if err != nil {
		return item, err
	}
	if err := s.Page.Upsert(ctx, item); err != nil {
		s.logger.Warn("failed to patch page cache", "resource", s.Resource(), "error", err)
	}
	return item, nil
}

// Create validates form, posts it and inserts the result in the cached
// list. A backend that answers without a body triggers a full refresh.
func (s *Service[T]) Create(ctx context.Context, form interface{}) (T, error) {
	var zero T
	if err := s.Validator.Struct(ctx, form); err != nil {
		return zero, err
	}
	item, err := s.Client.Create(ctx, form)
	if err != nil {
		return zero, err
	}
	s.applyMutation(ctx, item, "")
	s.Announce(ctx, events.ActionCreated, item.Key())
	return item, nil
}

func (s *Service[T]) Update(ctx context.Context, key string, form interface{}) (T, error) {
	var zero T
	if err := s.Validator.Struct(ctx, form); err != nil {
		return zero, err
	}
	item, err := s.Client.Update(ctx, key, form)
	if err != nil {
		return zero, err
	}
	s.applyMutation(ctx, item, key)
	s.Announce(ctx, events.ActionUpdated, key)
	return item, nil
}

func (s *Service[T]) Delete(ctx context.Context, key string) error {
	if err := s.Client.Delete(ctx, key); err != nil {
		return err
	}
	if err := s.Page.Remove(ctx, key); err != nil {
		s.logger.Warn("failed to patch page cache", "resource", s.Resource(), "error", err)
	}
	s.Announce(ctx, events.ActionDeleted, key)
	return nil
}

// applyMutation patches the cache with item, or re-fetches when the backend
// did not echo the record back. The modal that led here is closed.
func (s *Service[T]) applyMutation(ctx context.Context, item T, key string) {
	var err error
	if reflect.ValueOf(item).IsZero() {
		err = s.Page.Refresh(ctx)
	} else {
		err = s.Page.Upsert(ctx, item)
	}
	if err != nil {
		s.logger.Warn("failed to update page after mutation", "resource", s.Resource(), "key", key, "error", err)
	}
	if err := s.Page.CloseModal(ctx); err != nil {
		s.logger.Warn("failed to close modal", "resource", s.Resource(), "error", err)
	}
}

// Announce publishes a resource.mutated event, which becomes a success toast.
func (s *Service[T]) Announce(ctx context.Context, action, key string) {
	s.AnnounceCount(ctx, action, key, 0)
}

func (s *Service[T]) AnnounceCount(ctx context.Context, action, key string, count int) {
	if s.publisher == nil {
		return
	}
	e := events.NewResourceMutatedEvent(errors.SessionIDFromContext(ctx), errors.LocaleFromContext(ctx), s.Resource(), action, key)
	e.Count = count
	if err := s.publisher.PublishSync(ctx, e); err != nil {
		s.logger.Error("failed to publish mutation", "resource", s.Resource(), "error", err)
	}
}

func (s *Service[T]) OpenModal(ctx context.Context, kind, key string) (*listing.Modal, error) {
	return s.Page.OpenModal(ctx, kind, key)
}

func (s *Service[T]) CloseModal(ctx context.Context) error {
	return s.Page.CloseModal(ctx)
}
