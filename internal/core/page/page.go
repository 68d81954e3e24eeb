// Package page holds the per-session state of one console list page and
// runs it through the listing pipeline.
package page

import (
	"context"
	"log/slog"
	"maps"
	"net/url"
	"slices"
	"time"

	errors "github.com/frahmantamala/trackit/internal"
	"github.com/frahmantamala/trackit/internal/core/listing"
	"github.com/frahmantamala/trackit/internal/core/pagecache"
)

// Record is anything a page lists. Key is its identity in the backend.
type Record interface {
	Key() string
}

type Loader[T any] func(ctx context.Context) ([]T, error)

const (
	ModalAdd     = "add"
	ModalEdit    = "edit"
	ModalView    = "view"
	ModalDelete  = "delete"
	ModalConfirm = "confirm"
	ModalBulkAdd = "bulk_add"
	ModalClose   = "close"
	ModalCount   = "count"
)

var keyedModals = []string{ModalEdit, ModalView, ModalDelete, ModalConfirm, ModalClose, ModalCount}

// Entry is what the page cache stores for a (session, resource) pair.
type Entry[T any] struct {
	Items     []T           `json:"items"`
	Loaded    bool          `json:"loaded"`
	FetchedAt time.Time     `json:"fetched_at"`
	State     listing.State `json:"state"`
}

type View[T any] struct {
	Resource   string             `json:"resource"`
	Rows       []T                `json:"rows"`
	Pagination listing.Pagination `json:"pagination"`
	State      listing.State      `json:"state"`
	Filters    []string           `json:"filters"`
	Sorts      []string           `json:"sorts"`
	FetchedAt  time.Time          `json:"fetched_at"`
}

type Page[T Record] struct {
	resource string
	schema   listing.Schema[T]
	store    pagecache.Store
	load     Loader[T]
	pageSize int
	logger   *slog.Logger
}

func New[T Record](resource string, schema listing.Schema[T], store pagecache.Store, load Loader[T], pageSize int, logger *slog.Logger) *Page[T] {
	return &Page[T]{
		resource: resource,
		schema:   schema,
		store:    store,
		load:     load,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (p *Page[T]) Resource() string {
	return p.resource
}

func (p *Page[T]) key(ctx context.Context) string {
	return pagecache.Key(errors.SessionIDFromContext(ctx), p.resource)
}

func (p *Page[T]) entry(ctx context.Context) (Entry[T], error) {
	e, ok, err := pagecache.Load[Entry[T]](ctx, p.store, p.key(ctx))
	if err != nil {
		p.logger.Warn("page cache read failed, starting fresh", "resource", p.resource, "error", err)
	}
	if !ok {
		e = Entry[T]{State: listing.NewState(p.pageSize)}
	}
	return e, nil
}

func (p *Page[T]) save(ctx context.Context, e Entry[T]) error {
	if err := pagecache.Save(ctx, p.store, p.key(ctx), e); err != nil {
		return errors.NewInternalError("failed to save page state", err)
	}
	return nil
}

// fetch replaces e's items from the backend. On failure e is untouched.
func (p *Page[T]) fetch(ctx context.Context, e *Entry[T]) error {
	items, err := p.load(ctx)
	if err != nil {
		return err
	}
	e.Items = items
	e.Loaded = true
	e.FetchedAt = time.Now()
	return nil
}

// View applies the query to the page state, fetches the list on first use
// or when refresh=1, and returns the visible rows. A failed fetch leaves
// both the cached list and the state as they were.
func (p *Page[T]) View(ctx context.Context, q url.Values) (*View[T], error) {
	e, err := p.entry(ctx)
	if err != nil {
		return nil, err
	}

	next := e
	next.State.Filters = maps.Clone(e.State.Filters)
	if err := p.schema.ApplyQuery(&next.State, q); err != nil {
		return nil, errors.NewValidationError(err.Error(), errors.ErrCodeBadRequest)
	}

	if !next.Loaded || q.Get("refresh") == "1" {
		if err := p.fetch(ctx, &next); err != nil {
			return nil, err
		}
	}

	res := p.schema.Apply(next.Items, next.State)
	next.State.Page = res.Pagination.Page
	if err := p.save(ctx, next); err != nil {
		return nil, err
	}

	filters, sorts := p.schema.Keys()
	return &View[T]{
		Resource:   p.resource,
		Rows:       res.Rows,
		Pagination: res.Pagination,
		State:      next.State,
		Filters:    filters,
		Sorts:      sorts,
		FetchedAt:  next.FetchedAt,
	}, nil
}

// Refresh re-fetches the whole list and keeps the listing state.
func (p *Page[T]) Refresh(ctx context.Context) error {
	e, err := p.entry(ctx)
	if err != nil {
		return err
	}
	if err := p.fetch(ctx, &e); err != nil {
		return err
	}
	return p.save(ctx, e)
}

// Matching returns every item passing the current filters and search, in
// the current sort order, fetching first if needed.
func (p *Page[T]) Matching(ctx context.Context) ([]T, error) {
	e, err := p.entry(ctx)
	if err != nil {
		return nil, err
	}
	if !e.Loaded {
		if err := p.fetch(ctx, &e); err != nil {
			return nil, err
		}
		if err := p.save(ctx, e); err != nil {
			return nil, err
		}
	}
	return p.schema.Sort(p.schema.Filter(e.Items, e.State), e.State), nil
}

// Find looks key up in the cached list only.
func (p *Page[T]) Find(ctx context.Context, key string) (T, bool, error) {
	var zero T
	e, err := p.entry(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, item := range e.Items {
		if item.Key() == key {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Upsert patches the cached list after a successful create or update.
// Nothing happens when the list has never been fetched.
func (p *Page[T]) Upsert(ctx context.Context, items ...T) error {
	e, err := p.entry(ctx)
	if err != nil || !e.Loaded {
		return err
	}
	for _, item := range items {
		idx := slices.IndexFunc(e.Items, func(x T) bool { return x.Key() == item.Key() })
		if idx >= 0 {
			e.Items[idx] = item
		} else {
			e.Items = append(e.Items, item)
		}
	}
	return p.save(ctx, e)
}

// Remove drops key from the cached list after a successful delete.
func (p *Page[T]) Remove(ctx context.Context, key string) error {
	e, err := p.entry(ctx)
	if err != nil || !e.Loaded {
		return err
	}
	e.Items = slices.DeleteFunc(e.Items, func(x T) bool { return x.Key() == key })
	if e.State.Modal != nil && e.State.Modal.Key == key {
		e.State.Modal = nil
	}
	return p.save(ctx, e)
}

func (p *Page[T]) OpenModal(ctx context.Context, kind, key string) (*listing.Modal, error) {
	e, err := p.entry(ctx)
	if err != nil {
		return nil, err
	}
	switch {
	case kind == ModalAdd || kind == ModalBulkAdd:
		key = ""
	case slices.Contains(keyedModals, kind):
		if key == "" {
			return nil, errors.NewValidationFieldError("key", "key is required", errors.ErrCodeValidationFailed)
		}
		found := false
		for _, item := range e.Items {
			if item.Key() == key {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.NewNotFoundError("item not found", errors.ErrCodeNotFound)
		}
	default:
		return nil, errors.NewValidationFieldError("kind", "unknown modal "+kind, errors.ErrCodeValidationFailed)
	}
	e.State.Modal = &listing.Modal{Kind: kind, Key: key}
	if err := p.save(ctx, e); err != nil {
		return nil, err
	}
	return e.State.Modal, nil
}

func (p *Page[T]) CloseModal(ctx context.Context) error {
	e, err := p.entry(ctx)
	if err != nil {
		return err
	}
	if e.State.Modal == nil {
		return nil
	}
	e.State.Modal = nil
	return p.save(ctx, e)
}

// State returns the current listing state without touching the backend.
func (p *Page[T]) State(ctx context.Context) (listing.State, error) {
	e, err := p.entry(ctx)
	return e.State, err
}
