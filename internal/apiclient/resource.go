package apiclient

import (
	"context"
	"net/url"
)

// Resource is the CRUD client for one backend collection.
type Resource[T any] struct {
	client     *Client
	collection string
}

func NewResource[T any](client *Client, collection string) *Resource[T] {
	return &Resource[T]{client: client, collection: collection}
}

func (r *Resource[T]) Name() string {
	return r.collection
}

func (r *Resource[T]) Client() *Client {
	return r.client
}

func (r *Resource[T]) Path(parts ...string) string {
	return JoinPath(r.collection, parts...)
}

func (r *Resource[T]) List(ctx context.Context, query url.Values) ([]T, error) {
	var out []T
	if err := r.client.Get(ctx, r.Path(), query, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// All lists the whole collection. It is the loader list pages use.
func (r *Resource[T]) All(ctx context.Context) ([]T, error) {
	return r.List(ctx, nil)
}

func (r *Resource[T]) Get(ctx context.Context, key string) (T, error) {
	var out T
	err := r.client.Get(ctx, r.Path(key), nil, &out)
	return out, err
}

// Create posts body. A backend answering with no body yields the zero T.
func (r *Resource[T]) Create(ctx context.Context, body interface{}) (T, error) {
	var out T
	err := r.client.Post(ctx, r.Path(), body, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, key string, body interface{}) (T, error) {
	var out T
	err := r.client.Put(ctx, r.Path(key), body, &out)
	return out, err
}

func (r *Resource[T]) Delete(ctx context.Context, key string) error {
	return r.client.Delete(ctx, r.Path(key))
}
