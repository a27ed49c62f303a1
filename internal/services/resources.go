package services

import (
	"context"
	"net/http"
	"net/url"

	"portfolio-bff/internal/models"
)

// Resource is the client for one backend collection, e.g. "/projects".
type Resource struct {
	s    *ServiceClient
	path string
}

func (r *Resource) Path() string { return r.path }

func (r *Resource) GetAll(ctx context.Context) ([]models.Record, error) {
	var out []models.Record
	if err := r.s.get(ctx, r.path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Variant fetches a resource-specific listing such as "/projects/featured".
func (r *Resource) Variant(ctx context.Context, variant string) ([]models.Record, error) {
	var out []models.Record
	if err := r.s.get(ctx, r.path+"/"+url.PathEscape(variant), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource) Get(ctx context.Context, id string) (models.Record, error) {
	var out models.Record
	if err := r.s.get(ctx, r.itemPath(id), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource) Create(ctx context.Context, rec models.Record) (models.Record, error) {
	var out models.Record
	if err := r.s.mutate(ctx, http.MethodPost, r.path, rec, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource) Update(ctx context.Context, id string, rec models.Record) (models.Record, error) {
	var out models.Record
	if err := r.s.mutate(ctx, http.MethodPut, r.itemPath(id), rec, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource) Delete(ctx context.Context, id string) error {
	return r.s.mutate(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// FetchList reads a collection (or one of its variants when variant is set)
// straight into typed models.
func FetchList[T any](ctx context.Context, r *Resource, variant string) ([]T, error) {
	path := r.path
	if variant != "" {
		path += "/" + url.PathEscape(variant)
	}
	var out []T
	if err := r.s.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Singleton is the client for a resource without identifiers that is
// replaced wholesale, such as "/hero".
type Singleton struct {
	s    *ServiceClient
	path string
}

func (r *Singleton) Path() string { return r.path }

// Get returns nil when the backend has nothing stored yet.
func (r *Singleton) Get(ctx context.Context) (models.Record, error) {
	var out models.Record
	if err := r.s.get(ctx, r.path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Singleton) Update(ctx context.Context, rec models.Record) error {
	return r.s.mutate(ctx, http.MethodPost, r.path, rec, nil)
}

// FetchOne reads a singleton into a typed model; value is nil when the
// backend answered null.
func FetchOne[T any](ctx context.Context, r *Singleton) (value *T, err error) {
	if err = r.s.get(ctx, r.path, &value); err != nil {
		return nil, err
	}
	return value, nil
}
